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
	"bytes"
	"fmt"
	"image"
	"image/color"
)

const (
	// MaxChannels is the maximal number of channels of a PixelBuffer (r, g, b
	// and alpha).
	MaxChannels = 4
)

// PixelBuffer is an owned pixel matrix addressed by (x, y, channel).
// The pixels are stored row by row, the channels of a pixel are interleaved.
// A buffer with 1 channel is gray, 2 channels is gray + alpha, 3 channels is
// rgb and 4 channels rgb + alpha.
//
// The source image, the candidate tiles and the mosaic canvas are all
// PixelBuffers.
type PixelBuffer struct {
	width, height, channels int
	pix                     []uint8
}

// NewPixelBuffer returns a zero filled buffer. width and height must be ≥ 1
// and channels must be between 1 and MaxChannels.
func NewPixelBuffer(width, height, channels int) (*PixelBuffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("Invalid buffer dimensions %dx%d", width, height)
	}
	if channels < 1 || channels > MaxChannels {
		return nil, fmt.Errorf("Invalid number of channels %d, must be between 1 and %d",
			channels, MaxChannels)
	}
	return &PixelBuffer{
		width:    width,
		height:   height,
		channels: channels,
		pix:      make([]uint8, width*height*channels),
	}, nil
}

// Width returns the width in pixels.
func (buf *PixelBuffer) Width() int {
	return buf.width
}

// Height returns the height in pixels.
func (buf *PixelBuffer) Height() int {
	return buf.height
}

// Channels returns the number of samples per pixel.
func (buf *PixelBuffer) Channels() int {
	return buf.channels
}

// Pix returns the raw samples. The slice is shared with the buffer.
func (buf *PixelBuffer) Pix() []uint8 {
	return buf.pix
}

// Bounds returns the rectangle (0, 0, width, height).
func (buf *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, buf.width, buf.height)
}

// Contains tests if (x, y) is a pixel of the buffer.
func (buf *PixelBuffer) Contains(x, y int) bool {
	return x >= 0 && x < buf.width && y >= 0 && y < buf.height
}

// PixOffset returns the index of the first sample of pixel (x, y).
func (buf *PixelBuffer) PixOffset(x, y int) int {
	return (y*buf.width + x) * buf.channels
}

// Pixel returns the samples of pixel (x, y), the returned slice has length
// Channels and shares memory with the buffer.
// It panics if (x, y) is not inside the buffer.
func (buf *PixelBuffer) Pixel(x, y int) []uint8 {
	if !buf.Contains(x, y) {
		panic(internalErrorf("pixel (%d, %d) not in buffer of size %dx%d",
			x, y, buf.width, buf.height))
	}
	offset := buf.PixOffset(x, y)
	return buf.pix[offset : offset+buf.channels : offset+buf.channels]
}

// At returns a single sample.
func (buf *PixelBuffer) At(x, y, channel int) (uint8, error) {
	if !buf.Contains(x, y) || channel < 0 || channel >= buf.channels {
		return 0, internalErrorf("sample (%d, %d, %d) not in buffer of size %dx%dx%d",
			x, y, channel, buf.width, buf.height, buf.channels)
	}
	return buf.pix[buf.PixOffset(x, y)+channel], nil
}

// Set sets a single sample.
func (buf *PixelBuffer) Set(x, y, channel int, value uint8) error {
	if !buf.Contains(x, y) || channel < 0 || channel >= buf.channels {
		return internalErrorf("sample (%d, %d, %d) not in buffer of size %dx%dx%d",
			x, y, channel, buf.width, buf.height, buf.channels)
	}
	buf.pix[buf.PixOffset(x, y)+channel] = value
	return nil
}

// Fill sets every pixel to the given samples, values must have length
// Channels.
func (buf *PixelBuffer) Fill(values ...uint8) error {
	if len(values) != buf.channels {
		return fmt.Errorf("Fill requires %d values, got %d", buf.channels, len(values))
	}
	for offset := 0; offset < len(buf.pix); offset += buf.channels {
		copy(buf.pix[offset:offset+buf.channels], values)
	}
	return nil
}

// Clone returns a deep copy of the buffer.
func (buf *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint8, len(buf.pix))
	copy(pix, buf.pix)
	return &PixelBuffer{width: buf.width, height: buf.height, channels: buf.channels, pix: pix}
}

// Equals tests if two buffers have the same layout and samples.
func (buf *PixelBuffer) Equals(other *PixelBuffer) bool {
	return buf.width == other.width && buf.height == other.height &&
		buf.channels == other.channels && bytes.Equal(buf.pix, other.pix)
}

// BufferFromImage converts an image to a buffer with the given number of
// channels. The image bounds are translated s.t. the top left pixel of the
// image becomes (0, 0).
func BufferFromImage(img image.Image, channels int) (*PixelBuffer, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("Can't create buffer from empty image")
	}
	res, bufErr := NewPixelBuffer(bounds.Dx(), bounds.Dy(), channels)
	if bufErr != nil {
		return nil, bufErr
	}
	offset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.At(x, y)
			switch channels {
			case 1:
				res.pix[offset] = color.GrayModel.Convert(c).(color.Gray).Y
			case 2:
				nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
				res.pix[offset] = color.GrayModel.Convert(c).(color.Gray).Y
				res.pix[offset+1] = nrgba.A
			default:
				nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
				res.pix[offset] = nrgba.R
				res.pix[offset+1] = nrgba.G
				res.pix[offset+2] = nrgba.B
				if channels == 4 {
					res.pix[offset+3] = nrgba.A
				}
			}
			offset += channels
		}
	}
	return res, nil
}

// ToImage converts the buffer to an image that can be encoded by the image
// packages. Gray buffers become *image.Gray, all others *image.NRGBA.
func (buf *PixelBuffer) ToImage() image.Image {
	rect := buf.Bounds()
	if buf.channels == 1 {
		res := image.NewGray(rect)
		copy(res.Pix, buf.pix)
		return res
	}
	res := image.NewNRGBA(rect)
	src, dst := 0, 0
	for i := 0; i < buf.width*buf.height; i++ {
		switch buf.channels {
		case 2:
			gray := buf.pix[src]
			res.Pix[dst], res.Pix[dst+1], res.Pix[dst+2] = gray, gray, gray
			res.Pix[dst+3] = buf.pix[src+1]
		case 3:
			copy(res.Pix[dst:dst+3], buf.pix[src:src+3])
			res.Pix[dst+3] = 0xff
		default:
			copy(res.Pix[dst:dst+4], buf.pix[src:src+4])
		}
		src += buf.channels
		dst += 4
	}
	return res
}
