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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreTableEmpty(t *testing.T) {
	table := NewScoreTable(2, 3)
	assert.Equal(t, 2, table.Rows())
	assert.Equal(t, 3, table.Cols())
	assert.Equal(t, 0, table.Filled())
	_, filled := table.Get(1, 2)
	assert.False(t, filled)
	// an empty cell accepts every score, also zero
	assert.True(t, table.Improves(1, 2, 0))
	assert.True(t, table.Improves(1, 2, 1e12))
}

func TestScoreTableImproves(t *testing.T) {
	table := NewScoreTable(2, 2)
	table.Set(0, 1, 75)
	score, filled := table.Get(0, 1)
	require.True(t, filled)
	assert.Equal(t, Score(75), score)
	assert.True(t, table.Improves(0, 1, 74))
	// equal scores don't replace
	assert.False(t, table.Improves(0, 1, 75))
	assert.False(t, table.Improves(0, 1, 300))
	assert.Equal(t, 1, table.Filled())

	table.Set(0, 1, 0)
	assert.False(t, table.Improves(0, 1, 0))
	table.Set(1, 1, 3)
	assert.Equal(t, 2, table.Filled())
}

func TestScoreTableOutOfBounds(t *testing.T) {
	table := NewScoreTable(2, 2)
	assert.Panics(t, func() { table.Get(2, 0) })
	assert.Panics(t, func() { table.Set(0, -1, 1) })
}
