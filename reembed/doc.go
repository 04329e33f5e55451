// Package reembed recomputes the stored vectors of a project index.
//
// A record is stale when its embedding fingerprint does not match the
// current model and text, or when its vector length differs from the index
// dimension. Only stale records are re-embedded unless Force is set.
// Batches are retried with exponential backoff and written back whole.
package reembed
