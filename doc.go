// Package mosaic creates photomosaics: a source image is divided into a grid
// of square cells and every cell is replaced by the candidate image that
// matches it best.
//
// Candidates are processed one after another. Each one is cropped to its top
// left square, scaled to the cell size and compared with every cell; it
// replaces the tile in a cell if its score is strictly lower (better). Thus
// memory stays bounded by one candidate and the canvas, no matter how many
// candidates there are.
//
// The number of cells is derived from the number of requested tiles, see
// PlanGrid. Scoring functions can be registered with RegisterScoreFunc.
//
// It ships with an executable program to create mosaics, an interactive
// command line and an HTTP backend.
package mosaic
