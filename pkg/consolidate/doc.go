// Package consolidate folds region variant locale directories into their
// base language directory.
//
// Every variant found under the resource root is resolved, in lexicographic
// order, to exactly one outcome:
//
//   - excepted: the variant is in the exception set and is left untouched
//   - skipped: no base directory exists and the variant is left untouched
//   - merged: every direct file child of the variant is moved into the base,
//     replacing same-named files, and the emptied variant is removed
//
// Because variants are processed in order, when two variants share a base
// the later one wins a filename collision. Per-directory failures are
// recorded in the report and never stop the run; only a resource root that
// cannot be read aborts it.
package consolidate
