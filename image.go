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
	"strings"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

// SupportedImageFunc is a function that takes a file extension and decides if
// this file extension is supported.
//
// The extension passed to this function could be for example ".txt" or ".jpg".
type SupportedImageFunc func(ext string) bool

// JPGAndPNG is an implementation of SupportedImageFunc accepting jpg and png
// file extensions.
func JPGAndPNG(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

// AllSupported accepts all formats that can be decoded by LoadImage.
func AllSupported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	default:
		return false
	}
}

// ChannelsOf returns the number of channels used to represent an image:
// 1 for gray images, 3 for images without transparent pixels and 4 for
// all others.
func ChannelsOf(img image.Image) int {
	switch typed := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case interface{ Opaque() bool }:
		if typed.Opaque() {
			return 3
		}
		return 4
	default:
		return 4
	}
}

// ImageResizer resizes an image to the given width and height.
type ImageResizer interface {
	Resize(width, height uint, img image.Image) image.Image
}

// NfntResizer uses the nfnt/resize package to resize an image.
type NfntResizer struct {
	// InterP is the interpolation function to use.
	InterP resize.InterpolationFunction
}

// NewNfntResizer returns a new resizer given the interpolation function.
func NewNfntResizer(interP resize.InterpolationFunction) NfntResizer {
	return NfntResizer{interP}
}

// Resize calls nfnt/resize methods.
func (resizer NfntResizer) Resize(width, height uint, img image.Image) image.Image {
	return resize.Resize(width, height, img, resizer.InterP)
}

// GetInterP returns an interpolation function given a desired quality.
// The higher the quality the better the interpolation should be, but execution
// time is higher. Currently supported are values between 0 and 5, each
// selecting a different interpolation function. Values greater than 5 are
// treated as 5.
func GetInterP(quality uint) resize.InterpolationFunction {
	switch quality {
	case 0:
		return resize.NearestNeighbor
	case 1:
		return resize.Bilinear
	case 2:
		return resize.Bicubic
	case 3:
		return resize.MitchellNetravali
	case 4:
		return resize.Lanczos2
	default:
		return resize.Lanczos3
	}
}

var interPNames = map[resize.InterpolationFunction]string{
	resize.NearestNeighbor:   "nearest",
	resize.Bilinear:          "bilinear",
	resize.Bicubic:           "bicubic",
	resize.MitchellNetravali: "mitchell",
	resize.Lanczos2:          "lanczos2",
	resize.Lanczos3:          "lanczos3",
}

// InterPString returns a human readable name of an interpolation function.
func InterPString(interP resize.InterpolationFunction) string {
	if name, has := interPNames[interP]; has {
		return name
	}
	return "unknown"
}

// InterPFromString parses the name of an interpolation function, see
// InterPString.
func InterPFromString(s string) (resize.InterpolationFunction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for interP, name := range interPNames {
		if name == s {
			return interP, nil
		}
	}
	return resize.NearestNeighbor, fmt.Errorf("Unknown interpolation function \"%s\"", s)
}

// XDrawResizer resizes images with one of the kernels of
// golang.org/x/image/draw.
type XDrawResizer struct {
	Scaler xdraw.Scaler
}

// NewXDrawResizer returns a resizer given a kernel name: "nearest",
// "approx-bilinear", "bilinear" or "catmullrom".
func NewXDrawResizer(kernel string) (XDrawResizer, error) {
	switch strings.ToLower(kernel) {
	case "nearest":
		return XDrawResizer{xdraw.NearestNeighbor}, nil
	case "approx-bilinear":
		return XDrawResizer{xdraw.ApproxBiLinear}, nil
	case "bilinear":
		return XDrawResizer{xdraw.BiLinear}, nil
	case "catmullrom":
		return XDrawResizer{xdraw.CatmullRom}, nil
	default:
		return XDrawResizer{}, fmt.Errorf("Unknown x/image/draw kernel \"%s\"", kernel)
	}
}

// Resize scales img into a new NRGBA image.
func (resizer XDrawResizer) Resize(width, height uint, img image.Image) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	resizer.Scaler.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

var (
	// DefaultResizer is the resizer that is used by default, if you're
	// looking for a resizer default argument this seems useful.
	DefaultResizer = NewNfntResizer(resize.Lanczos3)
)

// ImageID is used to unambiguously identify an image.
type ImageID int

const (
	// NoImageID is used to signal errors etc. on images.
	NoImageID ImageID = -1
)
