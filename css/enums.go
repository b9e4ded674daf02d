package css

// Specification of requested output style.
// ENUM(expanded, compressed)
type OutputStyle int
