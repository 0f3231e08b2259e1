// Package ingest turns raw legal source documents into embedded evidence
// chunks and loads them into the index.
//
// The Chunker splits documents into article or section sized units with
// structured metadata: statute XML yields one chunk per article, markdown
// splits on top-level headings, and page-oriented text splits on page
// breaks. Classification of law group and category is table-driven so the
// policy can evolve without touching chunking.
//
// The Pipeline embeds chunks concurrently using a worker pool and
// replaces the index contents in one rebuild. A malformed document is
// logged and skipped rather than failing the batch.
package ingest
