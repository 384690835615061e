// Package mosaic implements the grid-based photo-mosaic engine: tile
// cataloging, nearest-color matching, grid planning, and assembly.
//
// # Pipeline
//
// A mosaic run flows through four stages:
//
//	sources := imaging.LoadSources(tileSource)
//	catalog, err := mosaic.BuildCatalog(sources, tileW, tileH)
//	index := mosaic.BuildIndex(catalog)
//	grid, err := mosaic.PlanGrid(w, h, tileW, tileH, factor)
//	out := mosaic.Assemble(target, grid, index, nil)
//
// # Matching and cycling
//
// Tiles are indexed by their average color in a balanced k-d tree over
// 3-D color space. Matching uses squared Euclidean distance with ties
// broken toward the lowest catalog index, so NearestMatch is a pure,
// reproducible function of the query color. Tiles sharing an average
// color form a bucket with a rotating cursor; CyclingPick spreads
// repeated matches across the whole bucket instead of reusing one tile.
//
// # Concurrency
//
// Catalogs, grids, and the k-d tree are immutable once built and safe
// to share. Bucket cursors are the only mutable state; they are
// guarded per bucket, and Assemble sequences its cursor-advancing
// phase so that identical inputs always produce byte-identical output.
package mosaic
