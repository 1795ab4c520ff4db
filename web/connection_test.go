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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionID(t *testing.T) {
	id, err := GenConnectionID()
	require.NoError(t, err)
	parsed, parseErr := ParseConnectionID(id.String())
	require.NoError(t, parseErr)
	assert.Equal(t, id, parsed)
	_, parseErr = ParseConnectionID("foo")
	assert.Error(t, parseErr)
}

func TestMemStorage(t *testing.T) {
	storage := NewMemStorage()
	active, expired := NewState(), NewState()
	expired.Touch(time.Now().UTC().Add(-time.Hour))
	activeID, _ := GenConnectionID()
	expiredID, _ := GenConnectionID()
	require.NoError(t, storage.Set(activeID, active))
	require.NoError(t, storage.Set(expiredID, expired))
	assert.Equal(t, 2, storage.Len())

	require.NoError(t, storage.Filter(time.Minute))
	assert.Equal(t, 1, storage.Len())
	state, err := storage.Get(activeID)
	require.NoError(t, err)
	assert.Same(t, active, state)
	_, err = storage.Get(expiredID)
	assert.ErrorIs(t, err, ErrConnNotFound)

	require.NoError(t, storage.Delete(activeID))
	assert.Equal(t, 0, storage.Len())
}

func TestStateConfigCopy(t *testing.T) {
	state := NewState()
	config := state.Config()
	config.Tiles = 99
	assert.Equal(t, 0, state.Config().Tiles)
	require.NoError(t, state.Set("tiles", "99"))
	assert.Equal(t, 99, state.Config().Tiles)
	assert.Error(t, state.Set("tiles", "many"))
}

func TestRunFilter(t *testing.T) {
	storage := NewMemStorage()
	expired := NewState()
	expired.Touch(time.Now().UTC().Add(-time.Hour))
	id, _ := GenConnectionID()
	require.NoError(t, storage.Set(id, expired))
	done := RunFilter(storage, time.Minute, 5*time.Millisecond)
	defer close(done)
	assert.Eventually(t, func() bool { return storage.Len() == 0 }, time.Second, 5*time.Millisecond)
}
