package common

// UnknownStr is the String() value of unrecognized enum values.
const UnknownStr = "unknown"
