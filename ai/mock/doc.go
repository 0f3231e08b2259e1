// Package mock provides in-memory test doubles for the ai interfaces.
//
// MockEmbedder produces deterministic unit vectors from a text hash, so
// similarity-based assertions are stable across runs. MockGenerator
// returns fixed or scripted responses and records every request it sees.
package mock
