// Package domain contains the core business entities for taxsearch:
// documents, chunks, retrieval results, settings, and domain errors.
// It has no dependencies on adapters or infrastructure.
package domain
