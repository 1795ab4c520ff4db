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

// Score is the dissimilarity of a tile and a grid cell. The smaller the score
// the more equal they are considered, scores are always ≥ 0.
type Score float64

type scoreCell struct {
	score  Score
	filled bool
}

// ScoreTable stores for each cell of the grid the score of the tile that
// currently occupies the cell. A cell is either empty (no tile placed yet) or
// holds the score of its tile.
//
// A ScoreTable is not safe for concurrent use, but different cells may be
// accessed by different go routines.
type ScoreTable struct {
	rows, cols int
	cells      []scoreCell
}

// NewScoreTable returns a table with all cells empty.
func NewScoreTable(rows, cols int) *ScoreTable {
	return &ScoreTable{
		rows:  rows,
		cols:  cols,
		cells: make([]scoreCell, rows*cols),
	}
}

// Rows returns the number of rows.
func (table *ScoreTable) Rows() int {
	return table.rows
}

// Cols returns the number of columns.
func (table *ScoreTable) Cols() int {
	return table.cols
}

func (table *ScoreTable) index(row, col int) int {
	if row < 0 || row >= table.rows || col < 0 || col >= table.cols {
		panic(internalErrorf("cell (%d, %d) not in score table of size %dx%d",
			row, col, table.rows, table.cols))
	}
	return row*table.cols + col
}

// Get returns the score of a cell. The bool is false if the cell is still
// empty, in this case the score is meaningless.
func (table *ScoreTable) Get(row, col int) (Score, bool) {
	cell := table.cells[table.index(row, col)]
	return cell.score, cell.filled
}

// Set overwrites the score of a cell.
func (table *ScoreTable) Set(row, col int, score Score) {
	table.cells[table.index(row, col)] = scoreCell{score: score, filled: true}
}

// Improves tests if score would replace the current occupant of the cell:
// that is if the cell is empty or score is strictly smaller.
func (table *ScoreTable) Improves(row, col int, score Score) bool {
	current, filled := table.Get(row, col)
	return !filled || score < current
}

// Filled returns the number of cells that hold a score.
func (table *ScoreTable) Filled() int {
	res := 0
	for _, cell := range table.cells {
		if cell.filled {
			res++
		}
	}
	return res
}
