// Package driver runs conversions end to end: a single shader job test, or
// a whole directory of them in parallel.
//
// # Purpose
//
//   - Split one conversion into load, assemble and write stages, time each
//     stage and report progress through a pipeline sink.
//   - Discover shader jobs under a directory root, pair variants with their
//     references by the work-tree layout, and convert them concurrently
//     with a bounded worker pool.
//   - Skip the load and assemble stages for inputs seen before, using a
//     content-addressed disk cache of rendered scripts.
//
// # Scope
//
// The driver orchestrates; it renders nothing itself. Failures of one job
// never stop the others: the batch collects them into a diag.Bag and keeps
// going.
package driver
