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
	"errors"
	"sync"
	"time"

	mosaic "github.com/ManuDeBuck/picture-mosaic-generator"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ConnectionID identifies a client session.
type ConnectionID uuid.UUID

// GenConnectionID returns a new random id.
func GenConnectionID() (ConnectionID, error) {
	id, idErr := uuid.NewRandom()
	return ConnectionID(id), idErr
}

// ParseConnectionID parses the string representation of an id.
func ParseConnectionID(s string) (ConnectionID, error) {
	id, parseErr := uuid.Parse(s)
	return ConnectionID(id), parseErr
}

func (id ConnectionID) String() string {
	return uuid.UUID(id).String()
}

// State is the state of a session: the config used to create mosaics.
// All methods are safe for concurrent use.
type State struct {
	mutex          sync.Mutex
	created        time.Time
	lastConnection time.Time
	config         *mosaic.Config
}

// NewState returns a state with the default config.
func NewState() *State {
	now := time.Now().UTC()
	return &State{
		created:        now,
		lastConnection: now,
		config:         mosaic.DefaultConfig(),
	}
}

// Touch sets the time of the last connection.
func (s *State) Touch(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastConnection = now
}

// Expired returns true if the last connection is at least maxAge ago.
func (s *State) Expired(now time.Time, maxAge time.Duration) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return now.Sub(s.lastConnection) >= maxAge
}

// Config returns a copy of the current config.
func (s *State) Config() mosaic.Config {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return *s.config
}

// Set sets a config variable, see mosaic.Config.Set.
func (s *State) Set(name, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.config.Set(name, value)
}

var (
	// ErrConnNotFound is returned if there is no session with a given id.
	ErrConnNotFound = errors.New("Connection not found")
)

// ConnectionStorage stores the sessions.
type ConnectionStorage interface {
	Get(conn ConnectionID) (*State, error)
	Set(conn ConnectionID, state *State) error
	Delete(conn ConnectionID) error
	Filter(maxAge time.Duration) error
}

// MemStorage is a ConnectionStorage that keeps all sessions in memory.
type MemStorage struct {
	mutex   *sync.RWMutex
	connMap map[ConnectionID]*State
}

// NewMemStorage returns an empty storage.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		mutex:   new(sync.RWMutex),
		connMap: make(map[ConnectionID]*State, 1000),
	}
}

func (s *MemStorage) Get(conn ConnectionID) (*State, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	state, has := s.connMap[conn]
	if has {
		return state, nil
	}
	return nil, ErrConnNotFound
}

func (s *MemStorage) Set(conn ConnectionID, state *State) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.connMap[conn] = state
	return nil
}

func (s *MemStorage) Delete(conn ConnectionID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.connMap, conn)
	return nil
}

// Len returns the number of sessions.
func (s *MemStorage) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.connMap)
}

// Filter removes all expired sessions.
func (s *MemStorage) Filter(maxAge time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	now := time.Now().UTC()
	for id, state := range s.connMap {
		if state.Expired(now, maxAge) {
			delete(s.connMap, id)
		}
	}
	return nil
}

// RunFilter calls storage.Filter every interval until the returned channel
// is closed.
func RunFilter(storage ConnectionStorage, maxAge, interval time.Duration) chan<- struct{} {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if filterErr := storage.Filter(maxAge); filterErr != nil {
					log.WithError(filterErr).Error("Can't remove expired sessions")
				}
			}
		}
	}()
	return done
}
