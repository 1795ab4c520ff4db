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
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// uniformBuffer returns a buffer with all pixels set to values.
func uniformBuffer(t *testing.T, width, height int, values ...uint8) *PixelBuffer {
	t.Helper()
	buf, err := NewPixelBuffer(width, height, len(values))
	require.NoError(t, err)
	require.NoError(t, buf.Fill(values...))
	return buf
}

// writeNumbered writes one uniform png for each color, named 1.png, 2.png, ...
func writeNumbered(t *testing.T, dir string, width, height int, colors ...[]uint8) {
	t.Helper()
	for i, color := range colors {
		path := filepath.Join(dir, strconv.Itoa(i+1)+".png")
		require.NoError(t, SaveImage(path, uniformBuffer(t, width, height, color...), 100))
	}
}

func TestIntMinMax(t *testing.T) {
	require.Equal(t, 1, IntMin(3, 1, 2))
	require.Equal(t, 3, IntMax(3, 1, 2))
	require.Equal(t, 7, IntMin(7))
	require.Equal(t, -1, IntMax(-4, -1))
}
