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
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStorage wraps a storage and counts the loaded images.
type countingStorage struct {
	ImageStorage
	loads int
}

func (s *countingStorage) LoadImage(id ImageID) (image.Image, error) {
	s.loads++
	return s.ImageStorage.LoadImage(id)
}

func testOptions(numTiles int) GenerateOptions {
	opts := DefaultGenerateOptions(numTiles)
	opts.Resizer = NewNfntResizer(GetInterP(0))
	return opts
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	writeNumbered(t, dir, 30, 30, []uint8{0, 0, 0}, []uint8{90, 90, 90},
		[]uint8{110, 110, 110}, []uint8{200, 200, 200})
	source := uniformBuffer(t, 100, 100, 100, 100, 100)
	var progress []int
	opts := testOptions(25)
	opts.Progress = func(num int) { progress = append(progress, num) }

	canvas, stats, err := Generate(source, NewNumberedTileDB(dir, 4, ".png"), opts)
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Grid.TileSize)
	assert.Equal(t, 5, stats.Grid.Rows)
	assert.Equal(t, 5, stats.Grid.Cols)
	assert.Equal(t, 4, stats.Candidates)
	assert.Equal(t, 25, stats.Filled)
	// all cells filled by the first candidate and replaced by the second one,
	// the third one has the same score
	assert.Equal(t, 50, stats.Replacements)
	assert.Equal(t, []CandidateEntry{{Image: 1, Value: 25}}, stats.Top)
	assert.Equal(t, []int{1, 2, 3, 4}, progress)
	assert.True(t, canvas.Equals(uniformBuffer(t, 100, 100, 90, 90, 90)))
	assert.Contains(t, stats.String(), "4 candidates")
}

func TestGenerateCropsCanvas(t *testing.T) {
	dir := t.TempDir()
	writeNumbered(t, dir, 5, 5, []uint8{10, 20, 30})
	source := uniformBuffer(t, 50, 20, 0, 0, 0)
	canvas, stats, err := Generate(source, NewNumberedTileDB(dir, 1, ".png"), testOptions(7))
	require.NoError(t, err)
	assert.Equal(t, 44, canvas.Width())
	assert.Equal(t, 11, canvas.Height())
	assert.Equal(t, 4, stats.Filled)
}

func TestGenerateEmptyStorage(t *testing.T) {
	source := uniformBuffer(t, 10, 10, 0, 0, 0)
	_, _, err := Generate(source, NewFSImageDB(t.TempDir()), testOptions(4))
	assert.ErrorIs(t, err, ErrEmptyStorage)
}

func TestGenerateInvalidGeometry(t *testing.T) {
	dir := t.TempDir()
	writeNumbered(t, dir, 5, 5, []uint8{0, 0, 0})
	storage := &countingStorage{ImageStorage: NewNumberedTileDB(dir, 1, ".png")}
	source := uniformBuffer(t, 100, 100, 0, 0, 0)
	canvas, _, err := Generate(source, storage, testOptions(20000))
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	assert.Nil(t, canvas)
	assert.Equal(t, 0, storage.loads)
}

func TestGenerateLoadError(t *testing.T) {
	dir := t.TempDir()
	writeNumbered(t, dir, 5, 5, []uint8{0, 0, 0}, []uint8{1, 1, 1})
	storage := &countingStorage{ImageStorage: NewNumberedTileDB(dir, 4, ".png")}
	source := uniformBuffer(t, 10, 10, 0, 0, 0)
	canvas, stats, err := Generate(source, storage, testOptions(4))
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, canvas)
	assert.Equal(t, 2, stats.Candidates)
	assert.Equal(t, 3, storage.loads)
}

func TestGenerateParallel(t *testing.T) {
	dir := t.TempDir()
	rnd := rand.New(rand.NewSource(11))
	colors := make([][]uint8, 12)
	for i := range colors {
		colors[i] = []uint8{uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), uint8(rnd.Intn(256))}
	}
	writeNumbered(t, dir, 8, 8, colors...)
	source := randomBuffer(t, rnd, 64, 48, 3)
	storage := NewNumberedTileDB(dir, len(colors), ".png")

	serialOpts := testOptions(48)
	serialOpts.Score = FootprintScore
	serial, serialStats, err := Generate(source, storage, serialOpts)
	require.NoError(t, err)

	parallelOpts := serialOpts
	parallelOpts.NumRoutines = 4
	parallel, parallelStats, parallelErr := Generate(source, storage, parallelOpts)
	require.NoError(t, parallelErr)
	assert.True(t, serial.Equals(parallel))
	assert.Equal(t, serialStats.Replacements, parallelStats.Replacements)
	assert.Equal(t, serialStats.Top, parallelStats.Top)
}
