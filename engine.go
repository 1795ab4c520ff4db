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
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Engine places candidate tiles in the cells of a grid.
//
// Candidates are placed one after another with Place. For each cell the
// candidate is scored and if it is better than the tile currently in the cell
// (or the cell is still empty) it replaces that tile: the score table is
// updated and the tile is copied into the canvas. Thus the canvas always
// contains the best candidate seen so far for each cell. If two candidates
// have the same score the one placed first wins.
//
// The assignment is greedy, a tile that has been replaced is never
// reconsidered.
type Engine struct {
	Source *PixelBuffer
	Grid   Grid
	Scores *ScoreTable
	Canvas *PixelBuffer
	Score  ScoreFunc

	// NumRoutines is the number of go routines that score the cells of one
	// candidate. Each go routine handles a range of rows, so every cell is
	// written by exactly one routine and the result does not depend on
	// NumRoutines.
	NumRoutines int

	owners       []ImageID
	placed       int
	replacements int
}

// NewEngine returns an engine for the source image and a grid previously
// computed by PlanGrid. It allocates the score table and the canvas, the
// canvas has the same number of channels as the source.
// If score is nil AnchorScore is used.
func NewEngine(source *PixelBuffer, grid Grid, score ScoreFunc, numRoutines int) (*Engine, error) {
	if grid.SourceWidth != source.Width() || grid.SourceHeight != source.Height() {
		return nil, internalErrorf("grid planned for %dx%d, source has size %dx%d",
			grid.SourceWidth, grid.SourceHeight, source.Width(), source.Height())
	}
	if grid.TileSize < 1 || grid.Rows < 1 || grid.Cols < 1 {
		return nil, ErrInvalidGeometry
	}
	canvas, canvasErr := NewCanvas(grid, source.Channels())
	if canvasErr != nil {
		return nil, canvasErr
	}
	if score == nil {
		score = AnchorScore
	}
	if numRoutines <= 0 {
		numRoutines = 1
	}
	owners := make([]ImageID, grid.NumCells())
	for i := range owners {
		owners[i] = NoImageID
	}
	return &Engine{
		Source:      source,
		Grid:        grid,
		Scores:      NewScoreTable(grid.Rows, grid.Cols),
		Canvas:      canvas,
		Score:       score,
		NumRoutines: numRoutines,
		owners:      owners,
	}, nil
}

// Placed returns the number of candidates placed so far.
func (e *Engine) Placed() int {
	return e.placed
}

// Replacements returns how often a cell got a new tile.
func (e *Engine) Replacements() int {
	return e.replacements
}

// Owner returns the candidate in the cell (row, col), NoImageID if the cell is
// empty. Candidates are numbered in the order they're placed, starting with 0.
func (e *Engine) Owner(row, col int) ImageID {
	if !e.Grid.Contains(row, col) {
		return NoImageID
	}
	return e.owners[row*e.Grid.Cols+col]
}

// Usage returns the k candidates that fill the most cells together with the
// number of cells, if k < 0 all candidates in the canvas are returned.
func (e *Engine) Usage(k int) []CandidateEntry {
	counts := make(map[ImageID]int)
	for _, owner := range e.owners {
		if owner != NoImageID {
			counts[owner]++
		}
	}
	h := NewCandidateHeap(k)
	for id, count := range counts {
		h.Add(id, float64(count))
	}
	return h.GetView()
}

func (e *Engine) placeRows(tile *PixelBuffer, from, to int) (int, error) {
	improved := 0
	for row := from; row < to; row++ {
		for col := 0; col < e.Grid.Cols; col++ {
			score := e.Score(e.Source, tile, e.Grid, row, col)
			if !e.Scores.Improves(row, col, score) {
				continue
			}
			if compErr := Composite(e.Canvas, tile, e.Grid, row, col); compErr != nil {
				return improved, compErr
			}
			e.Scores.Set(row, col, score)
			e.owners[row*e.Grid.Cols+col] = ImageID(e.placed)
			improved++
		}
	}
	return improved, nil
}

// Place scores the tile against all cells and puts it in every cell where it
// is better than the current tile. It returns the number of cells the tile
// has been placed in.
// The tile is not retained by the engine.
//
// An error is only returned if the tile does not match the grid, that is its
// size is not TileSize x TileSize or the number of channels differs from the
// canvas. Such an error wraps ErrInternalConsistency.
func (e *Engine) Place(tile *PixelBuffer) (int, error) {
	if tileErr := checkTile(e.Canvas, tile, e.Grid); tileErr != nil {
		return 0, tileErr
	}
	var improved int
	numRoutines := IntMin(e.NumRoutines, e.Grid.Rows)
	if numRoutines <= 1 {
		var placeErr error
		improved, placeErr = e.placeRows(tile, 0, e.Grid.Rows)
		if placeErr != nil {
			return improved, placeErr
		}
	} else {
		counts := make([]int, numRoutines)
		rowsPerRoutine := (e.Grid.Rows + numRoutines - 1) / numRoutines
		var group errgroup.Group
		for w := 0; w < numRoutines; w++ {
			w := w
			from := w * rowsPerRoutine
			to := IntMin(from+rowsPerRoutine, e.Grid.Rows)
			group.Go(func() error {
				var placeErr error
				counts[w], placeErr = e.placeRows(tile, from, to)
				return placeErr
			})
		}
		waitErr := group.Wait()
		for _, count := range counts {
			improved += count
		}
		if waitErr != nil {
			return improved, waitErr
		}
	}
	e.placed++
	e.replacements += improved
	log.WithFields(log.Fields{
		"candidate": e.placed,
		"improved":  improved,
	}).Debug("Placed candidate")
	return improved, nil
}
