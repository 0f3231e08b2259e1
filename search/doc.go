// Package search implements the retrieval half of a compliance check:
// planning slot queries, executing them against the evidence index and
// merging the raw hits into one bounded evidence set.
//
// The Planner asks a text-generation model for one refined query per
// retrieval slot, falling back to deterministic template queries when
// the model's output does not satisfy the contract. The Retriever runs
// each slot's filtered similarity search independently. The Ranker
// rescores hits by rank decay and boost multipliers, deduplicates by
// exact content across slots and caps each slot's contribution, keeping
// the fixed slot order so every category stays represented.
package search
