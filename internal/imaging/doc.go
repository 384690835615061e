// Package imaging provides the pixel-level operations surrounding the
// mosaic engine: tile-source loading, average-color computation,
// palette-tinted variant generation, and grid previews.
//
// All operations work with standard Go image.Image types and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, the top-left corner is inclusive and the
//     bottom-right corner is exclusive
//
// # Color Representation
//
// Colors are 8-bit per channel. Images decoded from 16-bit sources are
// scaled down by right-shifting 8 bits before any averaging, so average
// colors are exact for 8-bit inputs.
//
// # Error Handling
//
// Loading functions distinguish two failure classes:
//   - A source path that cannot be read at all is an error.
//   - An individual file that cannot be decoded is skipped with a
//     logged warning; bad files never abort a batch load.
package imaging
