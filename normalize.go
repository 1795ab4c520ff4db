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

	"github.com/disintegration/imaging"
)

// TopLeftSquare returns the largest square of img that starts in the top left
// corner.
func TopLeftSquare(img image.Image) image.Image {
	bounds := img.Bounds()
	side := IntMin(bounds.Dx(), bounds.Dy())
	return imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y,
		bounds.Min.X+side, bounds.Min.Y+side))
}

// SquareNormalizer turns candidate images into tiles: it crops the top left
// square of an image (so resizing doesn't distort the image) and scales it to
// the tile size. The resulting buffer has Channels channels.
type SquareNormalizer struct {
	Resizer  ImageResizer
	Channels int
}

// NewSquareNormalizer returns a normalizer, if resizer is nil DefaultResizer
// is used.
func NewSquareNormalizer(resizer ImageResizer, channels int) *SquareNormalizer {
	if resizer == nil {
		resizer = DefaultResizer
	}
	return &SquareNormalizer{Resizer: resizer, Channels: channels}
}

// Normalize returns the tile with edge x edge pixels for img.
func (n *SquareNormalizer) Normalize(img image.Image, edge int) (*PixelBuffer, error) {
	if edge < 1 {
		return nil, fmt.Errorf("Invalid tile size %d", edge)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("Can't create tile from empty image")
	}
	square := TopLeftSquare(img)
	resized := n.Resizer.Resize(uint(edge), uint(edge), square)
	if bounds := resized.Bounds(); bounds.Dx() != edge || bounds.Dy() != edge {
		return nil, internalErrorf("resizer returned image of size %dx%d, expected %dx%d",
			bounds.Dx(), bounds.Dy(), edge, edge)
	}
	return BufferFromImage(resized, n.Channels)
}
