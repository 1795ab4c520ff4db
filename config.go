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
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	homedir "github.com/mitchellh/go-homedir"
)

// DefaultConfigFile is the config file read by the command line tools if it
// exists.
const DefaultConfigFile = "~/.picture-mosaic.toml"

// Config contains all options to create a mosaic. It can be read from a toml
// file, all keys are optional.
type Config struct {
	// Tiles is the number of tiles requested.
	Tiles int `toml:"tiles"`

	// TileFiles is the number of numbered candidate files in TileDir.
	TileFiles int `toml:"tile-files"`

	// TileDir is the directory containing the candidate images.
	TileDir string `toml:"tile-dir"`

	// TileExt is the extension of the numbered candidate files.
	TileExt string `toml:"tile-ext"`

	// Output is the file the mosaic is written to.
	Output string `toml:"output"`

	// JPGQuality is the quality between 1 and 100 used when storing jpeg
	// images.
	JPGQuality int `toml:"jpeg-quality"`

	// InterP is the name of the interpolation function or kernel used when
	// scaling candidates.
	InterP string `toml:"interp"`

	// Resizer is either "nfnt" or "xdraw".
	Resizer string `toml:"resizer"`

	// Scoring is the name of a registered ScoreFunc.
	Scoring string `toml:"scoring"`

	// Routines is the number of go routines used by the engine.
	Routines int `toml:"routines"`

	// AutoOrient applies the EXIF orientation of jpeg files.
	AutoOrient bool `toml:"auto-orient"`

	// Recursive is used when candidates are read from a directory without
	// numbered files.
	Recursive bool `toml:"recursive"`

	Verbose bool `toml:"verbose"`
}

// DefaultConfig returns the config used if nothing else is specified.
func DefaultConfig() *Config {
	return &Config{
		TileExt:    ".jpg",
		Output:     "output.jpg",
		JPGQuality: 100,
		InterP:     "lanczos3",
		Resizer:    "nfnt",
		Scoring:    DefaultScoreFuncName,
		Routines:   1,
	}
}

// LoadConfig reads a toml file, keys missing in the file have the value from
// DefaultConfig. Unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	expanded, expandErr := homedir.Expand(path)
	if expandErr != nil {
		return nil, expandErr
	}
	res := DefaultConfig()
	meta, decodeErr := toml.DecodeFile(expanded, res)
	if decodeErr != nil {
		return nil, fmt.Errorf("Can't read config file %s: %w", expanded, decodeErr)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("Unknown keys in config file %s: %s", expanded,
			strings.Join(keys, ", "))
	}
	return res, nil
}

// Encode writes the config in toml format.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks the ranges of all values.
func (c *Config) Validate() error {
	if c.Tiles < 0 {
		return fmt.Errorf("Number of tiles must be ≥ 0, got %d", c.Tiles)
	}
	if c.TileFiles < 0 {
		return fmt.Errorf("Number of tile files must be ≥ 0, got %d", c.TileFiles)
	}
	if c.JPGQuality < 1 || c.JPGQuality > 100 {
		return fmt.Errorf("JPEG quality must be between 1 and 100, got %d", c.JPGQuality)
	}
	if c.Routines < 0 {
		return fmt.Errorf("Number of routines must be ≥ 0, got %d", c.Routines)
	}
	if c.Output != "" && !SupportedOutput(filepath.Ext(c.Output)) {
		return fmt.Errorf("Unsupported output file \"%s\"", c.Output)
	}
	if _, scoreErr := c.ScoreFunc(); scoreErr != nil {
		return scoreErr
	}
	if _, resizerErr := c.ImageResizer(); resizerErr != nil {
		return resizerErr
	}
	return nil
}

// Variables returns the value of each variable, the keys are the keys of the
// toml file.
func (c *Config) Variables() map[string]interface{} {
	return map[string]interface{}{
		"tiles":        c.Tiles,
		"tile-files":   c.TileFiles,
		"tile-dir":     c.TileDir,
		"tile-ext":     c.TileExt,
		"output":       c.Output,
		"jpeg-quality": c.JPGQuality,
		"interp":       c.InterP,
		"resizer":      c.Resizer,
		"scoring":      c.Scoring,
		"routines":     c.Routines,
		"auto-orient":  c.AutoOrient,
		"recursive":    c.Recursive,
		"verbose":      c.Verbose,
	}
}

func parseNonNegative(name, s string) (int, error) {
	val, parseErr := strconv.Atoi(s)
	if parseErr != nil {
		return 0, fmt.Errorf("Invalid value for %s (must be int ≥ 0): %w", name, parseErr)
	}
	if val < 0 {
		return 0, fmt.Errorf("Invalid value for %s (must be int ≥ 0): %d", name, val)
	}
	return val, nil
}

func parseBoolVar(name, s string) (bool, error) {
	val, parseErr := strconv.ParseBool(s)
	if parseErr != nil {
		return false, fmt.Errorf("Invalid value for %s (must be true or false): %w", name, parseErr)
	}
	return val, nil
}

// Set parses value and assigns it to the variable name, see Variables for
// the names. The config is only changed if the result is valid.
func (c *Config) Set(name, value string) error {
	updated := *c
	var err error
	switch name {
	case "tiles":
		updated.Tiles, err = parseNonNegative(name, value)
	case "tile-files":
		updated.TileFiles, err = parseNonNegative(name, value)
	case "routines":
		updated.Routines, err = parseNonNegative(name, value)
	case "jpeg-quality":
		updated.JPGQuality, err = strconv.Atoi(value)
	case "tile-dir":
		updated.TileDir = value
	case "tile-ext":
		updated.TileExt = value
	case "output":
		updated.Output = value
	case "interp":
		updated.InterP = value
	case "resizer":
		updated.Resizer = value
	case "scoring":
		updated.Scoring = value
	case "auto-orient":
		updated.AutoOrient, err = parseBoolVar(name, value)
	case "recursive":
		updated.Recursive, err = parseBoolVar(name, value)
	case "verbose":
		updated.Verbose, err = parseBoolVar(name, value)
	default:
		return fmt.Errorf("Invalid variable \"%s\"", name)
	}
	if err != nil {
		return err
	}
	if validErr := updated.Validate(); validErr != nil {
		return validErr
	}
	*c = updated
	return nil
}

// ImageResizer returns the resizer described by Resizer and InterP.
func (c *Config) ImageResizer() (ImageResizer, error) {
	switch strings.ToLower(c.Resizer) {
	case "", "nfnt":
		interP, interPErr := InterPFromString(c.InterP)
		if interPErr != nil {
			return nil, interPErr
		}
		return NewNfntResizer(interP), nil
	case "xdraw":
		return NewXDrawResizer(c.InterP)
	default:
		return nil, fmt.Errorf("Unknown resizer \"%s\", expected nfnt or xdraw", c.Resizer)
	}
}

// ScoreFunc returns the registered function with name Scoring.
func (c *Config) ScoreFunc() (ScoreFunc, error) {
	name := c.Scoring
	if name == "" {
		name = DefaultScoreFuncName
	}
	f, has := GetScoreFunc(name)
	if !has {
		return nil, fmt.Errorf("Unknown scoring \"%s\", available: %s", name,
			strings.Join(GetScoreFuncNames(), ", "))
	}
	return f, nil
}

// GenerateOptions returns the options to generate a mosaic with this config.
func (c *Config) GenerateOptions() (GenerateOptions, error) {
	score, scoreErr := c.ScoreFunc()
	if scoreErr != nil {
		return GenerateOptions{}, scoreErr
	}
	resizer, resizerErr := c.ImageResizer()
	if resizerErr != nil {
		return GenerateOptions{}, resizerErr
	}
	return GenerateOptions{
		NumTiles:    c.Tiles,
		Score:       score,
		NumRoutines: c.Routines,
		Resizer:     resizer,
		Progress:    ProgressIgnore,
	}, nil
}

// Storage returns the candidates described by the config: If TileFiles is
// positive the numbered files 1 ... TileFiles in TileDir, otherwise all
// supported images in TileDir.
func (c *Config) Storage() (ImageStorage, error) {
	dir, expandErr := homedir.Expand(c.TileDir)
	if expandErr != nil {
		return nil, expandErr
	}
	if c.TileFiles > 0 {
		db := NewNumberedTileDB(dir, c.TileFiles, c.TileExt)
		db.AutoOrient = c.AutoOrient
		return db, nil
	}
	db, dbErr := GenFSDatabase(dir, c.Recursive, AllSupported)
	if dbErr != nil {
		return nil, dbErr
	}
	db.AutoOrient = c.AutoOrient
	return db, nil
}
