// Package ingestion loads project rows and writes them to the vector index.
//
// The Pipeline type manages the ingestion workflow:
//   - Formatting each row into the fixed Client / Project ID / Details /
//     Last Interaction document
//   - Creating the index if it does not exist
//   - Generating embeddings in batches on a worker pool
//   - Upserting the whole batch in one index write
//
// A batch either lands completely or not at all. Embedding or index errors
// are returned to the caller without retry.
package ingestion
