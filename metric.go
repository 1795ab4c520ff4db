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
	"sort"
	"strings"
)

// ScoreFunc computes the score of a tile placed in the cell (row, col) of
// the grid. The smaller the score the better the tile fits, scores must be
// ≥ 0.
//
// The engine guarantees that tile has size grid.TileSize x grid.TileSize,
// that the cell is part of the grid and that source and tile have the same
// number of channels.
type ScoreFunc func(source, tile *PixelBuffer, grid Grid, row, col int) Score

// ColorChannels returns the number of channels that describe a color for a
// buffer with the given number of channels: gray and gray + alpha have one,
// rgb and rgba three. The alpha channel is never compared.
func ColorChannels(channels int) int {
	if channels < 3 {
		return 1
	}
	return 3
}

// SquaredDistance returns the sum of (p[i] - q[i])² for the first n
// components.
func SquaredDistance(p, q []uint8, n int) Score {
	var res int
	for i := 0; i < n; i++ {
		diff := int(p[i]) - int(q[i])
		res += diff * diff
	}
	return Score(res)
}

// AnchorScore compares every pixel of the tile with one fixed pixel of the
// source: the top left pixel of the cell (the anchor). The score is the sum
// of the squared channel distances of all tile pixels to that anchor.
//
// It does not compare the tile with the corresponding source pixels of the
// cell footprint, see FootprintScore for this. This is the default scoring.
func AnchorScore(source, tile *PixelBuffer, grid Grid, row, col int) Score {
	origin := grid.CellOrigin(row, col)
	anchor := source.Pixel(origin.X, origin.Y)
	n := ColorChannels(IntMin(source.Channels(), tile.Channels()))
	stride := tile.Channels()
	pix := tile.Pix()
	var res Score
	for offset := 0; offset < len(pix); offset += stride {
		res += SquaredDistance(anchor, pix[offset:offset+stride], n)
	}
	return res
}

// FootprintScore compares each pixel of the tile with the source pixel at the
// same position inside the cell and sums up the squared channel distances.
func FootprintScore(source, tile *PixelBuffer, grid Grid, row, col int) Score {
	origin := grid.CellOrigin(row, col)
	n := ColorChannels(IntMin(source.Channels(), tile.Channels()))
	var res Score
	for i := 0; i < grid.TileSize; i++ {
		for j := 0; j < grid.TileSize; j++ {
			res += SquaredDistance(source.Pixel(origin.X+j, origin.Y+i), tile.Pixel(j, i), n)
		}
	}
	return res
}

var (
	scoreFuncs = map[string]ScoreFunc{
		"anchor":    AnchorScore,
		"footprint": FootprintScore,
		"average":   AverageScore,
	}
)

// DefaultScoreFuncName is the name of the score function used if nothing else
// is configured.
const DefaultScoreFuncName = "anchor"

// RegisterScoreFunc is used to register a named score function. It will only
// add the function if the name does not exist yet. The result is true if the
// function was successfully registered and false otherwise.
// Names are case insensitive.
//
// Score functions should be registered by an init method.
func RegisterScoreFunc(name string, f ScoreFunc) bool {
	name = strings.ToLower(name)
	if _, has := scoreFuncs[name]; has {
		return false
	}
	scoreFuncs[name] = f
	return true
}

// GetScoreFuncNames returns the sorted names of all registered score
// functions.
func GetScoreFuncNames() []string {
	res := make([]string, 0, len(scoreFuncs))
	for key := range scoreFuncs {
		res = append(res, key)
	}
	sort.Strings(res)
	return res
}

// GetScoreFunc returns a registered score function.
func GetScoreFunc(name string) (ScoreFunc, bool) {
	f, has := scoreFuncs[strings.ToLower(name)]
	return f, has
}
