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

package web

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	mosaic "github.com/ManuDeBuck/picture-mosaic-generator"
)

func encodeBase64(encode func(w io.Writer) error) (string, error) {
	var w strings.Builder
	encoder := base64.NewEncoder(base64.StdEncoding, &w)
	if err := encode(encoder); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return w.String(), nil
}

// EncodePNG returns the base64 encoded png of img.
func EncodePNG(img image.Image) (string, error) {
	return encodeBase64(func(w io.Writer) error {
		return png.Encode(w, img)
	})
}

// EncodeJPEG returns the base64 encoded jpeg of img.
func EncodeJPEG(img image.Image, quality int) (string, error) {
	return encodeBase64(func(w io.Writer) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	})
}

// EncodeBuffer encodes a mosaic in the given format ("jpeg" or "png") and
// returns the base64 data and the mime type.
func EncodeBuffer(buf *mosaic.PixelBuffer, format string, quality int) (string, string, error) {
	switch strings.ToLower(format) {
	case "", "jpeg", "jpg":
		data, err := EncodeJPEG(buf.ToImage(), quality)
		return data, "image/jpeg", err
	case "png":
		data, err := EncodePNG(buf.ToImage())
		return data, "image/png", err
	default:
		return "", "", fmt.Errorf("Unsupported format \"%s\", expected jpeg or png", format)
	}
}
