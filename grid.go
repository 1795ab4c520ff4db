// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mosaic

import (
	"fmt"
	"image"
	"math"
)

// Grid describes how a source image is split into square cells.
// Each cell has an edge length of TileSize pixels, there are Rows * Cols
// cells. Pixels of the source right of Cols * TileSize or below
// Rows * TileSize are not part of the mosaic.
type Grid struct {
	TileSize     int
	Rows, Cols   int
	SourceWidth  int
	SourceHeight int
}

// intSqrt returns floor(sqrt(n)) for n ≥ 0.
func intSqrt(n int) int {
	res := int(math.Sqrt(float64(n)))
	// correct rounding errors of the float computation
	for res > 0 && res*res > n {
		res--
	}
	for (res+1)*(res+1) <= n {
		res++
	}
	return res
}

// PlanGrid computes the grid for a source image of the given width and height
// when numTiles tiles are requested.
// The tile edge is floor(sqrt((width * height) / numTiles)), the number of
// columns is floor(width / edge) and the number of rows floor(height / edge).
// The number of cells is therefore only an approximation of numTiles.
//
// If the geometry degenerates (edge, rows or columns would be zero) an error
// wrapping ErrInvalidGeometry is returned.
func PlanGrid(width, height, numTiles int) (Grid, error) {
	if width < 1 || height < 1 {
		return Grid{}, fmt.Errorf("%w: source image has dimensions %dx%d",
			ErrInvalidGeometry, width, height)
	}
	if numTiles < 1 {
		return Grid{}, fmt.Errorf("%w: number of tiles must be ≥ 1, got %d",
			ErrInvalidGeometry, numTiles)
	}
	tileSize := intSqrt((width * height) / numTiles)
	if tileSize < 1 {
		return Grid{}, fmt.Errorf("%w: %d tiles are too many for an image of size %dx%d",
			ErrInvalidGeometry, numTiles, width, height)
	}
	res := Grid{
		TileSize:     tileSize,
		Rows:         height / tileSize,
		Cols:         width / tileSize,
		SourceWidth:  width,
		SourceHeight: height,
	}
	if res.Rows < 1 || res.Cols < 1 {
		return Grid{}, fmt.Errorf("%w: grid would have %d rows and %d columns",
			ErrInvalidGeometry, res.Rows, res.Cols)
	}
	return res, nil
}

// CanvasWidth is the width of the mosaic, Cols * TileSize.
func (g Grid) CanvasWidth() int {
	return g.Cols * g.TileSize
}

// CanvasHeight is the height of the mosaic, Rows * TileSize.
func (g Grid) CanvasHeight() int {
	return g.Rows * g.TileSize
}

// NumCells returns Rows * Cols.
func (g Grid) NumCells() int {
	return g.Rows * g.Cols
}

// Contains tests if (row, col) is a cell of the grid.
func (g Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// CellOrigin returns the top left pixel of a cell.
func (g Grid) CellOrigin(row, col int) image.Point {
	return image.Pt(col*g.TileSize, row*g.TileSize)
}

// CellRect returns the pixel area of a cell.
func (g Grid) CellRect(row, col int) image.Rectangle {
	origin := g.CellOrigin(row, col)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(g.TileSize, g.TileSize))}
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d cells of %dx%d pixels (canvas %dx%d)",
		g.Cols, g.Rows, g.TileSize, g.TileSize, g.CanvasWidth(), g.CanvasHeight())
}
