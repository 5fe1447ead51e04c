// Package grid generates 3x3 trivia grids from an entity pool.
//
// Generation runs in three stages. Extract scans the pool once and produces the
// deduplicated team, role and nationality values. BuildIndex precomputes every
// cross-dimension value pair whose matching-entity set reaches the minimum answer
// threshold and keeps them in an immutable, lookup-friendly Index. An Assembler
// then draws headers from the index per request, retrying with fresh randomness
// and falling back to hand-authored templates before reporting failure.
//
// An Index is never mutated after construction, so any number of Assemblers may
// read it concurrently.
package grid
