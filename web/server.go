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
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	mosaic "github.com/ManuDeBuck/picture-mosaic-generator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrAlreadyHandled is returned by a handler that already wrote an error
	// response.
	ErrAlreadyHandled = errors.New("Error was already handled")
)

const (
	VarKey        = "var"
	ValueKey      = "value"
	ConnectionKey = "connection"
)

// Context is shared by all handlers.
type Context struct {
	Storage ConnectionStorage

	// Root is the directory that contains all images the server can access,
	// paths in requests are relative to Root.
	Root string

	// NumRoutines is used if a session doesn't specify the number of
	// routines.
	NumRoutines int
}

// NewContext returns a new context, root should be an absolute path.
func NewContext(storage ConnectionStorage, root string) *Context {
	initialRoutines := runtime.NumCPU()
	if initialRoutines <= 0 {
		initialRoutines = 1
	}
	return &Context{
		Storage:     storage,
		Root:        root,
		NumRoutines: initialRoutines,
	}
}

// ResolvePath returns the path of a file relative to Root. An error is
// returned if the path is not inside of Root.
func (context *Context) ResolvePath(path string) (string, error) {
	joined := filepath.Join(context.Root, filepath.FromSlash(path))
	rel, relErr := filepath.Rel(context.Root, joined)
	if relErr != nil {
		return "", relErr
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("Path \"%s\" is not allowed", path)
	}
	return joined, nil
}

// HandlerFunc handles a request and returns the data that is sent as json.
type HandlerFunc func(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error)

// ToHTTPFunc returns an http handler that writes the result of handler as
// json. If handler returns an error other than ErrAlreadyHandled a 500 is
// written.
func ToHTTPFunc(context *Context, handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonData, err := handler(context, w, r)
		if err != nil {
			if !errors.Is(err, ErrAlreadyHandled) {
				log.WithError(err).Error("Error in request")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}
		jData, jErr := json.Marshal(jsonData)
		if jErr != nil {
			log.WithError(jErr).Error("Internal error: Can't marshal json")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(jData)
	}
}

// JSONMap is the decoded body of a request.
type JSONMap map[string]interface{}

func (m JSONMap) Has(key string) bool {
	_, has := m[key]
	return has
}

func (m JSONMap) GetString(key string) (string, error) {
	val, has := m[key]
	if !has {
		return "", fmt.Errorf("Key not found: %s", key)
	}
	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("Entry for %s not of type string", key)
	}
	return str, nil
}

// GetInt returns an integer, json numbers are decoded as float64 so
// the value must be a float without fractional part.
func (m JSONMap) GetInt(key string) (int, error) {
	val, has := m[key]
	if !has {
		return -1, fmt.Errorf("Key not found: %s", key)
	}
	asFloat, ok := val.(float64)
	if !ok || asFloat != math.Trunc(asFloat) {
		return -1, fmt.Errorf("Entry for %s not of type int", key)
	}
	return int(asFloat), nil
}

func (m JSONMap) GetBool(key string) (bool, error) {
	val, has := m[key]
	if !has {
		return false, fmt.Errorf("Key not found: %s", key)
	}
	asBool, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("Entry for %s not of type bool", key)
	}
	return asBool, nil
}

// GetValueString returns a string, number or bool as string.
func (m JSONMap) GetValueString(key string) (string, error) {
	val, has := m[key]
	if !has {
		return "", fmt.Errorf("Key not found: %s", key)
	}
	switch typed := val.(type) {
	case string:
		return typed, nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(typed), nil
	default:
		return "", fmt.Errorf("Entry for %s must be a string, number or bool", key)
	}
}

func (m JSONMap) GetConnection() (ConnectionID, error) {
	str, lookupErr := m.GetString(ConnectionKey)
	if lookupErr != nil {
		return ConnectionID{}, lookupErr
	}
	return ParseConnectionID(str)
}

// ProcessRequest decodes the json body of a request. On error a 400 is
// written and ErrAlreadyHandled returned.
func ProcessRequest(w http.ResponseWriter, r *http.Request) (JSONMap, error) {
	if r.Body == nil {
		http.Error(w, "No request body given", http.StatusBadRequest)
		return nil, ErrAlreadyHandled
	}
	dec := json.NewDecoder(r.Body)
	m := make(map[string]interface{})
	if err := dec.Decode(&m); err != nil {
		http.Error(w,
			fmt.Sprintf("Invalid request, expected valid JSON, got: %s", err.Error()),
			http.StatusBadRequest)
		return nil, ErrAlreadyHandled
	}
	return m, nil
}

func badRequest(w http.ResponseWriter, err error) (interface{}, error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
	return nil, ErrAlreadyHandled
}

// StateHandlerFunc handles a request of an existing session.
type StateHandlerFunc func(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error)

// StateHandlerToHTTPFunc looks up the session given in the request and calls
// handler with it.
func StateHandlerToHTTPFunc(context *Context, handler StateHandlerFunc) http.HandlerFunc {
	mosaicHandler := func(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error) {
		jsonMap, jsonErr := ProcessRequest(w, r)
		if jsonErr != nil {
			return nil, jsonErr
		}
		connectionID, connectionKeyErr := jsonMap.GetConnection()
		if connectionKeyErr != nil {
			return badRequest(w, connectionKeyErr)
		}
		state, connErr := context.Storage.Get(connectionID)
		if connErr != nil {
			return badRequest(w, connErr)
		}
		state.Touch(time.Now().UTC())
		return handler(state, context, w, jsonMap)
	}
	return ToHTTPFunc(context, mosaicHandler)
}

// InitHandler creates a new session.
func InitHandler(context *Context, w http.ResponseWriter, r *http.Request) (interface{}, error) {
	id, idErr := GenConnectionID()
	if idErr != nil {
		return nil, idErr
	}
	if setErr := context.Storage.Set(id, NewState()); setErr != nil {
		return nil, setErr
	}
	log.WithField("connection", id).Debug("New session")
	return map[string]string{ConnectionKey: id.String()}, nil
}

// CloseHandler removes a session.
func CloseHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	id, idErr := jsonMap.GetConnection()
	if idErr != nil {
		return badRequest(w, idErr)
	}
	if deleteErr := context.Storage.Delete(id); deleteErr != nil {
		return nil, deleteErr
	}
	return map[string]bool{"success": true}, nil
}

// GetVarHandler returns all variables of the session config.
func GetVarHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	config := state.Config()
	return config.Variables(), nil
}

// SetVarHandler sets a variable of the session config.
func SetVarHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	varName, varErr := jsonMap.GetString(VarKey)
	if varErr != nil {
		return badRequest(w, varErr)
	}
	value, valueErr := jsonMap.GetValueString(ValueKey)
	if valueErr != nil {
		return badRequest(w, valueErr)
	}
	if setErr := state.Set(varName, value); setErr != nil {
		return badRequest(w, setErr)
	}
	return map[string]bool{"success": true}, nil
}

// MosaicHandler creates a mosaic of the image "source" with the candidates
// in the tile directory of the session (or "tile-dir" if given). The number
// of tiles is taken from "tiles" or the session. The result is returned
// base64 encoded in the format "format" (jpeg or png).
func MosaicHandler(state *State, context *Context, w http.ResponseWriter, jsonMap JSONMap) (interface{}, error) {
	config := state.Config()
	sourceName, sourceErr := jsonMap.GetString("source")
	if sourceErr != nil {
		return badRequest(w, sourceErr)
	}
	if jsonMap.Has("tile-dir") {
		dir, dirErr := jsonMap.GetString("tile-dir")
		if dirErr != nil {
			return badRequest(w, dirErr)
		}
		config.TileDir = dir
	}
	if jsonMap.Has("tiles") {
		tiles, tilesErr := jsonMap.GetInt("tiles")
		if tilesErr != nil {
			return badRequest(w, tilesErr)
		}
		config.Tiles = tiles
	}
	format := "jpeg"
	if jsonMap.Has("format") {
		var formatErr error
		if format, formatErr = jsonMap.GetString("format"); formatErr != nil {
			return badRequest(w, formatErr)
		}
	}
	if config.Routines <= 1 {
		config.Routines = context.NumRoutines
	}
	sourcePath, sourcePathErr := context.ResolvePath(sourceName)
	if sourcePathErr != nil {
		return badRequest(w, sourcePathErr)
	}
	tileDir, tileDirErr := context.ResolvePath(config.TileDir)
	if tileDirErr != nil {
		return badRequest(w, tileDirErr)
	}
	config.TileDir = tileDir
	opts, optsErr := config.GenerateOptions()
	if optsErr != nil {
		return badRequest(w, optsErr)
	}
	storage, storageErr := config.Storage()
	if storageErr != nil {
		return badRequest(w, storageErr)
	}
	source, loadErr := mosaic.LoadImage(sourcePath, config.AutoOrient)
	if loadErr != nil {
		return badRequest(w, loadErr)
	}
	canvas, stats, genErr := mosaic.Generate(source, storage, opts)
	if genErr != nil {
		var decodeErr *mosaic.DecodeError
		if errors.Is(genErr, mosaic.ErrInvalidGeometry) || errors.Is(genErr, mosaic.ErrEmptyStorage) ||
			errors.As(genErr, &decodeErr) {
			return badRequest(w, genErr)
		}
		return nil, genErr
	}
	data, mime, encErr := EncodeBuffer(canvas, format, config.JPGQuality)
	if encErr != nil {
		return badRequest(w, encErr)
	}
	top := make([]map[string]interface{}, len(stats.Top))
	for i, entry := range stats.Top {
		name := storage.Path(entry.Image)
		if rel, relErr := filepath.Rel(context.Root, name); relErr == nil {
			name = rel
		}
		top[i] = map[string]interface{}{
			"candidate": filepath.ToSlash(name),
			"cells":     int(entry.Value),
		}
	}
	return map[string]interface{}{
		"top":          top,
		"image":        data,
		"mime":         mime,
		"width":        canvas.Width(),
		"height":       canvas.Height(),
		"tileSize":     stats.Grid.TileSize,
		"rows":         stats.Grid.Rows,
		"cols":         stats.Grid.Cols,
		"candidates":   stats.Candidates,
		"replacements": stats.Replacements,
	}, nil
}

// DefaultHandlers returns a router with all handlers registered.
func DefaultHandlers(context *Context) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/init", ToHTTPFunc(context, InitHandler))
	r.Post("/close", StateHandlerToHTTPFunc(context, CloseHandler))
	r.Post("/get", StateHandlerToHTTPFunc(context, GetVarHandler))
	r.Post("/set", StateHandlerToHTTPFunc(context, SetVarHandler))
	r.Post("/mosaic", StateHandlerToHTTPFunc(context, MosaicHandler))
	return r
}
