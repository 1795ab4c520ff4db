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
	"time"

	log "github.com/sirupsen/logrus"
)

// GenerateOptions describes how a mosaic is created.
type GenerateOptions struct {
	// NumTiles is the number of tiles requested by the user, the actual number
	// of cells is computed by PlanGrid and is usually a bit smaller.
	NumTiles int

	// Score is used to compare candidates with cells, defaults to AnchorScore.
	Score ScoreFunc

	// NumRoutines is the number of go routines used by the engine.
	NumRoutines int

	// Resizer is used to scale candidates to the tile size, defaults to
	// DefaultResizer.
	Resizer ImageResizer

	// Progress is called after each candidate with the number of processed
	// candidates.
	Progress ProgressFunc
}

// DefaultGenerateOptions returns the options for numTiles tiles and all other
// values set to their defaults.
func DefaultGenerateOptions(numTiles int) GenerateOptions {
	return GenerateOptions{
		NumTiles:    numTiles,
		Score:       AnchorScore,
		NumRoutines: 1,
		Resizer:     DefaultResizer,
		Progress:    ProgressIgnore,
	}
}

// NumTopCandidates is the number of candidates reported in Stats.Top.
const NumTopCandidates = 5

// Stats describes a finished mosaic run.
type Stats struct {
	Grid         Grid
	Candidates   int
	Filled       int
	Replacements int
	Elapsed      time.Duration

	// Top contains the candidates that fill the most cells, the value of each
	// entry is the number of cells.
	Top []CandidateEntry
}

func (stats Stats) String() string {
	return fmt.Sprintf("%s: %d candidates, %d cells filled, %d replacements in %v",
		stats.Grid, stats.Candidates, stats.Filled, stats.Replacements, stats.Elapsed)
}

// Generate creates a mosaic of source with the candidates from storage.
//
// First the grid is computed, if this fails the error wraps
// ErrInvalidGeometry and nothing has been allocated. Then the candidates are
// processed in the order of their ids: Each one is loaded, cropped and scaled
// to the tile size and placed by an Engine. The first error while loading a
// candidate aborts the run.
//
// The returned canvas has size Cols*T x Rows*T, which might be smaller than
// the source.
func Generate(source *PixelBuffer, storage ImageStorage, opts GenerateOptions) (*PixelBuffer, Stats, error) {
	start := time.Now()
	grid, gridErr := PlanGrid(source.Width(), source.Height(), opts.NumTiles)
	if gridErr != nil {
		return nil, Stats{}, gridErr
	}
	log.WithFields(log.Fields{
		"width":    source.Width(),
		"height":   source.Height(),
		"channels": source.Channels(),
		"tileSize": grid.TileSize,
		"rows":     grid.Rows,
		"cols":     grid.Cols,
	}).Info("Planned mosaic grid")
	numImages := int(storage.NumImages())
	if numImages == 0 {
		return nil, Stats{Grid: grid}, ErrEmptyStorage
	}
	engine, engineErr := NewEngine(source, grid, opts.Score, opts.NumRoutines)
	if engineErr != nil {
		return nil, Stats{Grid: grid}, engineErr
	}
	progress := opts.Progress
	if progress == nil {
		progress = ProgressIgnore
	}
	normalizer := NewSquareNormalizer(opts.Resizer, source.Channels())
	for id := 0; id < numImages; id++ {
		img, loadErr := storage.LoadImage(ImageID(id))
		if loadErr != nil {
			return nil, Stats{Grid: grid, Candidates: id}, loadErr
		}
		tile, normErr := normalizer.Normalize(img, grid.TileSize)
		if normErr != nil {
			return nil, Stats{Grid: grid, Candidates: id},
				fmt.Errorf("Can't create tile from %s: %w", storage.Path(ImageID(id)), normErr)
		}
		if _, placeErr := engine.Place(tile); placeErr != nil {
			return nil, Stats{Grid: grid, Candidates: id}, placeErr
		}
		progress(id + 1)
	}
	stats := Stats{
		Grid:         grid,
		Candidates:   engine.Placed(),
		Filled:       engine.Scores.Filled(),
		Replacements: engine.Replacements(),
		Elapsed:      time.Since(start),
		Top:          engine.Usage(NumTopCandidates),
	}
	log.WithFields(log.Fields{
		"candidates":   stats.Candidates,
		"replacements": stats.Replacements,
		"elapsed":      stats.Elapsed,
	}).Info("Mosaic done")
	for _, entry := range stats.Top {
		log.WithFields(log.Fields{
			"candidate": storage.Path(entry.Image),
			"cells":     int(entry.Value),
		}).Debug("Most used candidate")
	}
	return engine.Canvas, stats, nil
}
