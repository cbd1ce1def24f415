// Package pack runs the pony.ini pipeline over a directory of ponies.
//
// A pack root holds one directory per pony, each with a pony.ini and its
// image and sound files. Run executes three stages in order:
//
//  1. RepairNames renames files and directories whose names contain
//     characters the sanitizer replaces (optional, see pack.repair_names).
//  2. RepairINI rewrites every pony.ini as _pony.ini with the matching
//     fields sanitized, and writes an index config.json at the root.
//  3. Convert transforms every _pony.ini into the pony's config.json and
//     records the result in the catalog.
//
// Ponies are processed in parallel on a bounded number of workers. A failed
// pony is reported in the stage Report and does not stop the others.
//
// # Caching
//
// With pack.cache_size > 0, outputs are cached by stage, path and SHA-256 of
// the input, so a watch-mode rerun only parses files that changed. Outputs
// are rewritten only when their content differs.
package pack
