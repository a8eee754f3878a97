// Package knowledge is the orchestration layer of the knowledge base.
//
// A Store ties together the extractor, the vector index, and the document
// backend. Ingest runs extraction, chunking, and indexing per file with
// per-file failure isolation; Search joins vector hits back to their owning
// documents; analytics events are appended asynchronously on a worker pool
// so usage tracking never slows an interactive operation.
package knowledge
