// Package source implements the provenance model: atomic Source tokens,
// union-only SourceSets, and per-band MultiBand sequences.
//
// Every value flowing through the graph carries one of these so that any
// output band can be traced back to the input slots and spectral filters
// that contributed to it. The whole package is pure: all combining
// operations return fresh values and never mutate their operands.
package source
