// SPDX-License-Identifier: MIT

// Package persist stores fitting results and run metadata.
//
// Artifacts written into a run directory:
//   - L.csv, V.csv (rankV > 0), B.csv and C.csv (rankB > 0): one matrix
//     row per line, space-separated %.18e values. ReadMatrix also accepts
//     comma-separated tables.
//   - model.json: a Snapshot of every learnable array, reloadable as a
//     starting point for further fitting or for prediction only.
//   - args.json and log.json: run configuration and per-epoch log.
package persist
