package common

// UnknownStr is the canonical string form for unrecognized enum values.
const UnknownStr = "unknown"
