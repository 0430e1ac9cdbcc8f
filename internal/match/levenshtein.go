package match

// Distance returns the Levenshtein edit distance between a and b, counted in
// bytes.
func Distance(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}

	if a == b || len(a) == 0 {
		return len(b) - len(a)
	}

	// row[i] is the distance between a[:i] and the prefix of b seen so far.
	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(b); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			next := min(row[i]+1, row[i-1]+1, diag+cost)
			diag, row[i] = row[i], next
		}
	}

	return row[len(a)]
}

// Similarity returns 1 - Distance/maxLen of the normalized identifiers:
// 1 for equal names, 0 for names sharing nothing.
func Similarity(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)

	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(longest)
}
