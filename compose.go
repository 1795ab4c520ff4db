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

// NewCanvas allocates the (zero filled) mosaic for a grid.
func NewCanvas(grid Grid, channels int) (*PixelBuffer, error) {
	return NewPixelBuffer(grid.CanvasWidth(), grid.CanvasHeight(), channels)
}

func checkTile(canvas, tile *PixelBuffer, grid Grid) error {
	if tile.Width() != grid.TileSize || tile.Height() != grid.TileSize {
		return internalErrorf("tile has size %dx%d, expected %dx%d",
			tile.Width(), tile.Height(), grid.TileSize, grid.TileSize)
	}
	if tile.Channels() != canvas.Channels() {
		return internalErrorf("tile has %d channels, canvas has %d",
			tile.Channels(), canvas.Channels())
	}
	return nil
}

// Composite copies the tile into the canvas at the area of cell (row, col).
// The tile must have the size of a grid cell and the same number of channels
// as the canvas. If not or the cell is not part of the canvas an error
// wrapping ErrInternalConsistency is returned and the canvas is unchanged.
func Composite(canvas, tile *PixelBuffer, grid Grid, row, col int) error {
	if tileErr := checkTile(canvas, tile, grid); tileErr != nil {
		return tileErr
	}
	area := grid.CellRect(row, col)
	if !grid.Contains(row, col) || !area.In(canvas.Bounds()) {
		return internalErrorf("cell (%d, %d) with area %v is not inside canvas %v",
			row, col, area, canvas.Bounds())
	}
	rowLen := grid.TileSize * tile.Channels()
	dst, src := canvas.Pix(), tile.Pix()
	for y := 0; y < grid.TileSize; y++ {
		dstOffset := canvas.PixOffset(area.Min.X, area.Min.Y+y)
		srcOffset := y * rowLen
		copy(dst[dstOffset:dstOffset+rowLen], src[srcOffset:srcOffset+rowLen])
	}
	return nil
}
