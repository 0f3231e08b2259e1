// Package workflow runs the three-stage compliance pipeline:
// retrieve evidence, analyze the input against it, then generate
// compliant alternative phrasings and a verdict.
//
// Stages are sequential; each consumes the previous stage's State value
// and produces the next, so no stage observes a partially updated
// record. Text-generation calls go through the injected generator,
// which carries the provider fallback. The final verdict comes from a
// RuleSet evaluating explicit signals (marker presence, risky-phrase
// matches) with a conservative non-compliant default when the signals
// are ambiguous.
package workflow
