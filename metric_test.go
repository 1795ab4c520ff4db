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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorChannels(t *testing.T) {
	assert.Equal(t, 1, ColorChannels(1))
	assert.Equal(t, 1, ColorChannels(2))
	assert.Equal(t, 3, ColorChannels(3))
	assert.Equal(t, 3, ColorChannels(4))
}

func TestSquaredDistance(t *testing.T) {
	assert.Equal(t, Score(0), SquaredDistance([]uint8{1, 2, 3}, []uint8{1, 2, 3}, 3))
	assert.Equal(t, Score(3*255*255), SquaredDistance([]uint8{0, 0, 0}, []uint8{255, 255, 255}, 3))
	// only the first n components are compared
	assert.Equal(t, Score(1), SquaredDistance([]uint8{1, 0, 0, 0}, []uint8{0, 0, 0, 255}, 3))
}

func TestAnchorScoreSinglePixel(t *testing.T) {
	source := uniformBuffer(t, 4, 4, 5, 5, 5)
	grid, err := PlanGrid(4, 4, 16)
	require.NoError(t, err)
	require.Equal(t, 1, grid.TileSize)

	assert.Equal(t, Score(75), AnchorScore(source, uniformBuffer(t, 1, 1, 10, 10, 10), grid, 0, 0))
	assert.Equal(t, Score(75), AnchorScore(source, uniformBuffer(t, 1, 1, 0, 0, 0), grid, 3, 3))
	assert.Equal(t, Score(675), AnchorScore(source, uniformBuffer(t, 1, 1, 20, 20, 20), grid, 1, 2))
}

func TestAnchorScoreUsesTopLeftPixel(t *testing.T) {
	source := uniformBuffer(t, 4, 4, 0, 0, 0)
	grid, err := PlanGrid(4, 4, 4)
	require.NoError(t, err)
	require.Equal(t, 2, grid.TileSize)
	// anchor of cell (1, 1) is (2, 2)
	copy(source.Pixel(2, 2), []uint8{5, 5, 5})
	tile := uniformBuffer(t, 2, 2, 5, 5, 5)

	assert.Equal(t, Score(0), AnchorScore(source, tile, grid, 1, 1))
	// four tile pixels, each with distance 75 to a black anchor
	assert.Equal(t, Score(300), AnchorScore(source, tile, grid, 0, 0))
	// the other three pixels of the cell differ from the tile
	assert.Equal(t, Score(225), FootprintScore(source, tile, grid, 1, 1))
}

func TestScoreIgnoresAlpha(t *testing.T) {
	source := uniformBuffer(t, 2, 2, 5, 5, 5, 0)
	grid, err := PlanGrid(2, 2, 4)
	require.NoError(t, err)
	tile := uniformBuffer(t, 1, 1, 5, 5, 5, 255)
	assert.Equal(t, Score(0), AnchorScore(source, tile, grid, 1, 0))
	assert.Equal(t, Score(0), FootprintScore(source, tile, grid, 1, 0))
	assert.Equal(t, Score(0), AverageScore(source, tile, grid, 1, 0))
}

func TestScoreGray(t *testing.T) {
	source := uniformBuffer(t, 2, 2, 10)
	grid, err := PlanGrid(2, 2, 4)
	require.NoError(t, err)
	tile := uniformBuffer(t, 1, 1, 13)
	assert.Equal(t, Score(9), AnchorScore(source, tile, grid, 0, 1))
	assert.Equal(t, Score(9), FootprintScore(source, tile, grid, 0, 1))
}

func TestFootprintScore(t *testing.T) {
	source, err := NewPixelBuffer(4, 2, 1)
	require.NoError(t, err)
	for i := range source.Pix() {
		source.Pix()[i] = uint8(10 * i)
	}
	grid, gridErr := PlanGrid(4, 2, 2)
	require.NoError(t, gridErr)
	require.Equal(t, 2, grid.TileSize)
	// cell (0, 1) contains the pixels 20, 30, 60, 70
	tile, tileErr := NewPixelBuffer(2, 2, 1)
	require.NoError(t, tileErr)
	copy(tile.Pix(), []uint8{20, 30, 60, 70})
	assert.Equal(t, Score(0), FootprintScore(source, tile, grid, 0, 1))
	assert.Equal(t, Score(4*400), FootprintScore(source, tile, grid, 0, 0))
}

func TestAverageScore(t *testing.T) {
	source, err := NewPixelBuffer(2, 2, 3)
	require.NoError(t, err)
	// average color of the source is (10, 20, 30)
	copy(source.Pix(), []uint8{0, 0, 0, 20, 40, 60, 0, 0, 0, 20, 40, 60})
	grid, gridErr := PlanGrid(2, 2, 1)
	require.NoError(t, gridErr)
	require.Equal(t, 2, grid.TileSize)

	assert.Equal(t, Score(0), AverageScore(source, uniformBuffer(t, 2, 2, 10, 20, 30), grid, 0, 0))
	assert.Equal(t, Score(3), AverageScore(source, uniformBuffer(t, 2, 2, 11, 21, 31), grid, 0, 0))
	assert.Equal(t, []float64{10, 20, 30}, AverageColor(source, source.Bounds(), 3))
}

func TestScoreFuncRegistry(t *testing.T) {
	assert.Equal(t, []string{"anchor", "average", "footprint"}, GetScoreFuncNames())
	f, has := GetScoreFunc("Footprint")
	require.True(t, has)
	require.NotNil(t, f)
	_, has = GetScoreFunc("histogram")
	assert.False(t, has)
	assert.False(t, RegisterScoreFunc("ANCHOR", FootprintScore))
}
