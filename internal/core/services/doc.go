// Package services implements the core business logic: the retrieval
// pipeline (embed, search, post-process, assemble) and the ingestion
// pipeline that builds the corpus.
package services
