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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"pwd", []string{"pwd"}},
		{"foo bar", []string{"foo", "bar"}},
		{"  set\ttiles   400 ", []string{"set", "tiles", "400"}},
		{`cd "my pictures"`, []string{"cd", "my pictures"}},
		{`cd "say \"hi\""`, []string{"cd", `say "hi"`}},
		{`a\\b \"c`, []string{`a\b`, `"c`}},
		{`cd ""`, []string{"cd", ""}},
	}
	for _, tc := range tests {
		res, err := ParseCommand(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.expected, res, tc.in)
	}
	for _, in := range []string{`cd "foo`, `cd foo\`, `cd fo"o`, `cd \x`, `cd "\x"`} {
		_, err := ParseCommand(in)
		assert.Error(t, err, in)
	}
}

func TestParameterized(t *testing.T) {
	args := make([]string, 10)
	for i := range args {
		args[i] = fmt.Sprintf("a%d", i+1)
	}
	r, err := Parameterized(strings.NewReader("mosaic $1 $10\nstorage load $2"), args...)
	require.NoError(t, err)
	content, readErr := io.ReadAll(r)
	require.NoError(t, readErr)
	assert.Equal(t, "mosaic a1 a10\nstorage load a2", string(content))

	content, readErr = io.ReadAll(ParameterizedFromStrings([]string{"cd $1", "pwd"}, "/tmp"))
	require.NoError(t, readErr)
	assert.Equal(t, "cd /tmp\npwd", string(content))
}

type scriptRun struct {
	ok     bool
	state  *ExecutorState
	out    strings.Builder
	errOut strings.Builder
}

// recordingHandler is a ScriptHandler that remembers the state.
type recordingHandler struct {
	ScriptHandler
	run *scriptRun
}

func (h recordingHandler) Init() *ExecutorState {
	h.run.state = h.ScriptHandler.Init()
	return h.run.state
}

func runScript(t *testing.T, config *Config, lines ...string) *scriptRun {
	t.Helper()
	t.Cleanup(func() { SetLogLevel(false) })
	run := &scriptRun{}
	handler := recordingHandler{
		ScriptHandler: ScriptHandler{
			Config: config,
			Source: ReaderFromCmdLines(lines),
			Out:    &run.out,
			ErrOut: &run.errOut,
		},
		run: run,
	}
	run.ok = Execute(handler, DefaultCommands)
	return run
}

func TestScriptSetAndStats(t *testing.T) {
	run := runScript(t, nil,
		"# tiles for the next mosaic",
		"",
		"set tiles 12",
		"stats tiles",
		"set scoring footprint",
	)
	require.True(t, run.ok, run.errOut.String())
	assert.Equal(t, "tiles ==> 12\n", run.out.String())
	assert.Equal(t, 12, run.state.Config.Tiles)
	assert.Equal(t, "footprint", run.state.Config.Scoring)
}

func TestScriptStopsOnError(t *testing.T) {
	run := runScript(t, nil, "frobnicate", "set tiles 12")
	assert.False(t, run.ok)
	assert.Contains(t, run.errOut.String(), "Invalid command \"frobnicate\"")
	assert.Equal(t, 0, run.state.Config.Tiles)

	run = runScript(t, nil, "set tiles -3", "set tiles 12")
	assert.False(t, run.ok)
	assert.Equal(t, 0, run.state.Config.Tiles)

	run = runScript(t, nil, "cd")
	assert.False(t, run.ok)
	assert.Contains(t, run.errOut.String(), "Usage: cd <dir>")

	run = runScript(t, nil, `cd "foo`)
	assert.False(t, run.ok)
	assert.Contains(t, run.errOut.String(), "Syntax error")
}

func TestScriptCd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "tiles"), 0755))
	run := runScript(t, nil, fmt.Sprintf("cd \"%s\"", dir), "cd tiles", "pwd")
	require.True(t, run.ok, run.errOut.String())
	assert.Equal(t, filepath.Join(dir, "tiles")+"\n", run.out.String())

	run = runScript(t, nil, fmt.Sprintf("cd \"%s\"", filepath.Join(dir, "missing")))
	assert.False(t, run.ok)
}

func TestScriptMosaic(t *testing.T) {
	dir := t.TempDir()
	tileDir := filepath.Join(dir, "tiles")
	require.NoError(t, os.Mkdir(tileDir, 0755))
	writeNumbered(t, tileDir, 30, 30, []uint8{0, 0, 0}, []uint8{90, 90, 90},
		[]uint8{110, 110, 110}, []uint8{200, 200, 200})
	source := filepath.Join(dir, "source.png")
	require.NoError(t, SaveImage(source, uniformBuffer(t, 100, 100, 100, 100, 100), 100))

	script, err := Parameterized(strings.NewReader(RunNumbered), tileDir, "4", source, "out.png", "25")
	require.NoError(t, err)
	config := DefaultConfig()
	config.InterP = "nearest"
	config.TileExt = ".png"
	lines := []string{fmt.Sprintf("cd \"%s\"", dir), "plan source.png 25", "storage"}
	content, readErr := io.ReadAll(script)
	require.NoError(t, readErr)
	lines = append(lines, strings.Split(string(content), "\n")...)

	run := runScript(t, config, lines...)
	require.True(t, run.ok, run.errOut.String())
	assert.Contains(t, run.out.String(), "Tiles: 25")
	assert.Contains(t, run.out.String(), "Number of database images: 0")
	assert.Contains(t, run.out.String(), "Mosaic written to "+filepath.Join(dir, "out.png"))

	mosaic, loadErr := LoadImage(filepath.Join(dir, "out.png"), false)
	require.NoError(t, loadErr)
	assert.True(t, mosaic.Equals(uniformBuffer(t, 100, 100, 90, 90, 90)))
}

func TestScriptMosaicWithoutStorage(t *testing.T) {
	run := runScript(t, nil, "mosaic in.jpg out.jpg 10")
	assert.False(t, run.ok)
	assert.Contains(t, run.errOut.String(), "No images in storage")
}

func TestScriptStorageLoad(t *testing.T) {
	dir := t.TempDir()
	writeNumbered(t, dir, 2, 2, []uint8{1, 1, 1}, []uint8{2, 2, 2})
	run := runScript(t, nil, fmt.Sprintf("storage load \"%s\"", dir), "storage list")
	require.True(t, run.ok, run.errOut.String())
	assert.Contains(t, run.out.String(), "Successfully read 2 images")
	assert.Contains(t, run.out.String(), filepath.Join(dir, "2.png"))
	assert.Contains(t, run.out.String(), "Total: 2")
}

func TestScriptConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.toml")
	run := runScript(t, nil, "set tiles 77", fmt.Sprintf("config save \"%s\"", path))
	require.True(t, run.ok, run.errOut.String())

	run = runScript(t, nil, fmt.Sprintf("config load \"%s\"", path), "config")
	require.True(t, run.ok, run.errOut.String())
	assert.Equal(t, 77, run.state.Config.Tiles)
	assert.Contains(t, run.out.String(), "tiles = 77")
}

func TestScriptHelp(t *testing.T) {
	run := runScript(t, nil, "help", "help mosaic")
	require.True(t, run.ok, run.errOut.String())
	for name, cmd := range DefaultCommands {
		assert.Contains(t, run.out.String(), cmd.Usage, name)
	}
	assert.Contains(t, run.out.String(), "Example Usage")
}

func TestPredefinedScripts(t *testing.T) {
	for name, script := range PredefinedScripts {
		r, err := Parameterized(strings.NewReader(script), "a", "b", "c", "d", "e")
		require.NoError(t, err, name)
		content, readErr := io.ReadAll(r)
		require.NoError(t, readErr)
		assert.NotContains(t, string(content), "$", name)
		for _, line := range strings.Split(string(content), "\n") {
			parsed, parseErr := ParseCommand(line)
			require.NoError(t, parseErr, line)
			_, has := DefaultCommands[parsed[0]]
			assert.True(t, has, line)
		}
	}
}

func TestReplHandler(t *testing.T) {
	t.Cleanup(func() { SetLogLevel(false) })
	var out strings.Builder
	handler := ReplHandler{
		Config:  DefaultConfig(),
		In:      strings.NewReader("frobnicate\nset tiles 5\nstats tiles\n"),
		Out:     &out,
		Welcome: true,
	}
	assert.True(t, Execute(handler, DefaultCommands))
	assert.Contains(t, out.String(), "Welcome")
	assert.Contains(t, out.String(), "Invalid command \"frobnicate\"")
	assert.Contains(t, out.String(), "tiles ==> 5")
}
