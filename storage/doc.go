// Package storage defines the evidence index contract and the binary
// serialization of persisted chunks.
//
// The index is rebuild-only: ingestion replaces the whole corpus in one
// operation rather than mutating individual entries. Chunks are encoded
// with the MUS format. The Badger-backed implementation lives in
// storage/badger.
package storage
