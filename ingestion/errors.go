package ingestion

import "errors"

var (
	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidSource is returned when the source data cannot be decoded or a row is invalid.
	ErrInvalidSource = errors.New("invalid source data")

	// ErrEmbeddingMismatch is returned when the embedder returns a different
	// number of vectors than texts submitted.
	ErrEmbeddingMismatch = errors.New("embedding result mismatch")
)
