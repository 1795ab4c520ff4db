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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberedTileDB(t *testing.T) {
	dir := t.TempDir()
	writeNumbered(t, dir, 3, 2, []uint8{1, 2, 3}, []uint8{4, 5, 6})
	db := NewNumberedTileDB(dir, 3, ".png")
	assert.Equal(t, ImageID(3), db.NumImages())
	assert.Equal(t, filepath.Join(dir, "1.png"), db.Path(0))
	assert.Equal(t, filepath.Join(dir, "3.png"), db.Path(2))
	assert.Equal(t, []ImageID{0, 1, 2}, IDList(db))

	img, err := db.LoadImage(1)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	config, configErr := db.LoadConfig(0)
	require.NoError(t, configErr)
	assert.Equal(t, 2, config.Height)

	// the third file doesn't exist
	_, err = db.LoadImage(2)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = db.LoadImage(3)
	assert.Error(t, err)
	_, err = db.LoadImage(-1)
	assert.Error(t, err)

	assert.Equal(t, ".jpg", NewNumberedTileDB(dir, 1, "").Ext)
}

func TestGenFSDatabase(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	buf := uniformBuffer(t, 2, 2, 0, 0, 0)
	for _, path := range []string{"b.png", "a.jpg", "sub/c.png"} {
		require.NoError(t, SaveImage(filepath.Join(dir, filepath.FromSlash(path)), buf, 100))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("no image"), 0644))

	flat, err := GenFSDatabase(dir, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.png"}, flat.Paths)
	assert.Equal(t, filepath.Join(flat.Root, "b.png"), flat.Path(1))

	recursive, recErr := GenFSDatabase(dir, true, nil)
	require.NoError(t, recErr)
	assert.Equal(t, []string{"a.jpg", "b.png", filepath.Join("sub", "c.png")}, recursive.Paths)
	img, loadErr := recursive.LoadImage(2)
	require.NoError(t, loadErr)
	assert.Equal(t, 2, img.Bounds().Dx())
	_, loadErr = recursive.LoadImage(3)
	assert.Error(t, loadErr)

	onlyJPG, jpgErr := GenFSDatabase(dir, true, func(ext string) bool { return ext == ".jpg" })
	require.NoError(t, jpgErr)
	assert.Equal(t, []string{"a.jpg"}, onlyJPG.Paths)

	_, err = GenFSDatabase(filepath.Join(dir, "missing"), false, nil)
	assert.Error(t, err)
}
