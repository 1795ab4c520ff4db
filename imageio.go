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
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	// These anonymous imports register decoders, the image package can now
	// read these files.
	_ "image/gif"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DecodeImage reads an image from the filesystem. If autoOrient is true the
// EXIF orientation of jpeg files is applied.
// All errors are returned as *DecodeError.
func DecodeImage(path string, autoOrient bool) (image.Image, error) {
	r, openErr := os.Open(path)
	if openErr != nil {
		return nil, &DecodeError{Path: path, Err: openErr}
	}
	defer r.Close()
	var img image.Image
	var decodeErr error
	if autoOrient {
		img, decodeErr = imaging.Decode(r, imaging.AutoOrientation(true))
	} else {
		img, _, decodeErr = image.Decode(r)
	}
	if decodeErr != nil {
		return nil, &DecodeError{Path: path, Err: decodeErr}
	}
	if img.Bounds().Empty() {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("Image is empty")}
	}
	return img, nil
}

// LoadImage reads an image and converts it to a buffer. The number of
// channels is determined by ChannelsOf.
func LoadImage(path string, autoOrient bool) (*PixelBuffer, error) {
	img, decodeErr := DecodeImage(path, autoOrient)
	if decodeErr != nil {
		return nil, decodeErr
	}
	buf, bufErr := BufferFromImage(img, ChannelsOf(img))
	if bufErr != nil {
		return nil, &DecodeError{Path: path, Err: bufErr}
	}
	return buf, nil
}

// PlanConfig reads only the header of an image and computes the grid for
// numTiles tiles.
func PlanConfig(r io.Reader, numTiles int) (Grid, error) {
	config, _, decodeErr := image.DecodeConfig(r)
	if decodeErr != nil {
		return Grid{}, decodeErr
	}
	return PlanGrid(config.Width, config.Height, numTiles)
}

// SupportedOutput tests if SaveImage can write files with the extension.
func SupportedOutput(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

// SaveImage writes the buffer to path, the format is determined by the file
// extension. jpgQuality is used for jpeg files and must be between 1 and 100.
// All errors are returned as *EncodeError.
func SaveImage(path string, buf *PixelBuffer, jpgQuality int) error {
	ext := filepath.Ext(path)
	if !SupportedOutput(ext) {
		return &EncodeError{Path: path,
			Err: fmt.Errorf("Unsupported file type: \"%s\", expected .jpg, .png, .bmp or .tiff", ext)}
	}
	outFile, outErr := os.Create(path)
	if outErr != nil {
		return &EncodeError{Path: path, Err: outErr}
	}
	img := buf.ToImage()
	var encErr error
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		encErr = jpeg.Encode(outFile, img, &jpeg.Options{Quality: jpgQuality})
	case ".png":
		encErr = png.Encode(outFile, img)
	case ".bmp":
		encErr = bmp.Encode(outFile, img)
	default:
		encErr = tiff.Encode(outFile, img, nil)
	}
	closeErr := outFile.Close()
	if encErr != nil {
		return &EncodeError{Path: path, Err: encErr}
	}
	if closeErr != nil {
		return &EncodeError{Path: path, Err: closeErr}
	}
	return nil
}
