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
	"image"
)

// AverageColor computes the average of the first n channels of all pixels of
// buf inside area. area must be inside the bounds of buf.
func AverageColor(buf *PixelBuffer, area image.Rectangle, n int) []float64 {
	res := make([]float64, n)
	// don't do anything for empty areas
	if area.Empty() {
		return res
	}
	// big integers, the sums for large areas don't fit in an uint32
	sums := make([]uint64, n)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			pixel := buf.Pixel(x, y)
			for ch := 0; ch < n; ch++ {
				sums[ch] += uint64(pixel[ch])
			}
		}
	}
	numPixels := float64(area.Dx() * area.Dy())
	for ch, sum := range sums {
		res[ch] = float64(sum) / numPixels
	}
	return res
}

// AverageScore compares the average color of the tile with the average color
// of the cell footprint in the source. The score is the squared distance of
// both averages.
func AverageScore(source, tile *PixelBuffer, grid Grid, row, col int) Score {
	n := ColorChannels(IntMin(source.Channels(), tile.Channels()))
	cellAvg := AverageColor(source, grid.CellRect(row, col), n)
	tileAvg := AverageColor(tile, tile.Bounds(), n)
	var res float64
	for ch := 0; ch < n; ch++ {
		diff := cellAvg[ch] - tileAvg[ch]
		res += diff * diff
	}
	return Score(res)
}
