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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrCmdSyntaxErr is returned by a CommandFunc if the syntax for the command
	// is invalid.
	ErrCmdSyntaxErr = errors.New("Invalid command syntax")
)

// ExecutorState is the state during a CommandHandler execution, see that
// type for more details of the workflow.
//
// The variables in the state are shared among the executions of the command
// functions.
type ExecutorState struct {
	// WorkingDir is the current directory. It must always be an absolute path.
	WorkingDir string

	// Storage contains the candidate images, nil if no storage has been loaded
	// yet.
	Storage ImageStorage

	// Config contains all variables that can be changed with "set".
	Config *Config

	// In is the source to read commands from (line by line).
	In io.Reader

	// Out is used to write state information.
	Out io.Writer

	// ErrOut is used to report errors.
	ErrOut io.Writer
}

// NewExecutorState returns a state with the working directory set to the
// current directory and the given config (DefaultConfig if nil).
// This method might panic if something with filepath is wrong, this should
// however usually not be the case.
func NewExecutorState(config *Config, in io.Reader, out, errOut io.Writer) *ExecutorState {
	dir, err := filepath.Abs(".")
	if err != nil {
		panic(fmt.Errorf("Unable to retrieve path: %s", err.Error()))
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &ExecutorState{
		WorkingDir: dir,
		Config:     config,
		In:         in,
		Out:        out,
		ErrOut:     errOut,
	}
}

// GetPath returns the absolute path given some other path.
// The idea is the following: If the user inputs a path we have two cases:
// The user used an absolute path, in this case we use this absolute path
// to perform tasks with.
// If it is a relative path we join the working directory with this path
// and thus retrieve the absolute path we work on.
//
// The home directory can be used like on Unix: ~/Pictures is the Pictures
// directory in the home directory of the user.
func (state *ExecutorState) GetPath(path string) (string, error) {
	res, pathErr := homedir.Expand(path)
	if pathErr != nil {
		return "", pathErr
	}
	if !filepath.IsAbs(res) {
		res = filepath.Join(state.WorkingDir, res)
	}
	res, pathErr = filepath.Abs(res)
	if pathErr != nil {
		return "", pathErr
	}
	return res, nil
}

// CommandFunc is a function that is applied to the current states and
// arguments to that command.
type CommandFunc func(state *ExecutorState, args ...string) error

// Command a command consists of a function to actually execute the command
// and some information about the command.
type Command struct {
	Exec        CommandFunc
	Usage       string
	Description string
}

// CommandMap maps command names to Commands.
type CommandMap map[string]Command

// DefaultCommands contains all commands to create mosaics.
var DefaultCommands CommandMap

// CommandHandler together with Execute implements a high-level command
// execution loop. CommandFuncs are applied to the current state until there
// are no more commands to execute (no more input).
//
// A command has the form "COMMAND ARG1 ... ARGN" where COMMAND is the command
// name and ARG1 to ARGN are the arguments for the command.
//
// Execute first creates an initial state by calling Init and then calls
// Start. Then all lines from the state's reader are processed: Before is
// called, the line is parsed (OnParseErr on error), the command is looked up
// (OnInvalidCmd if it doesn't exist) and executed (OnSuccess or OnError).
// After is called when the line was processed. The On*Err methods return
// true if the execution should continue despite the error.
// Commands should return ErrCmdSyntaxErr if the syntax of the command is
// incorrect (for example invalid number of arguments) and OnError can do
// special handling in this case.
// OnScanErr is called if there is an error while reading a command line from
// the state's reader.
type CommandHandler interface {
	Init() *ExecutorState
	Start(s *ExecutorState)
	Before(s *ExecutorState)
	After(s *ExecutorState)
	OnParseErr(s *ExecutorState, err error) bool
	OnInvalidCmd(s *ExecutorState, cmd string) bool
	OnSuccess(s *ExecutorState, cmd Command)
	OnError(s *ExecutorState, err error, cmd Command) bool
	OnScanErr(s *ExecutorState, err error)
}

// Execute implements the high-level execution loop as described in the
// documentation of CommandHandler. commandMap is used to lookup commands.
// It returns false if the execution was stopped by the handler.
func Execute(handler CommandHandler, commandMap CommandMap) bool {
	state := handler.Init()
	handler.Start(state)
	scanner := bufio.NewScanner(state.In)
	for scanner.Scan() {
		handler.Before(state)
		if !executeLine(handler, commandMap, state, scanner.Text()) {
			return false
		}
		handler.After(state)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		handler.OnScanErr(state, scanErr)
		return false
	}
	return true
}

func executeLine(handler CommandHandler, commandMap CommandMap, state *ExecutorState, line string) bool {
	parsedCmd, parseErr := ParseCommand(line)
	if parseErr != nil {
		return handler.OnParseErr(state, parseErr)
	}
	// empty lines and comments
	if len(parsedCmd) == 0 || strings.HasPrefix(parsedCmd[0], "#") {
		return true
	}
	cmd := parsedCmd[0]
	nextCmd, ok := commandMap[cmd]
	if !ok {
		return handler.OnInvalidCmd(state, cmd)
	}
	if execErr := nextCmd.Exec(state, parsedCmd[1:]...); execErr != nil {
		return handler.OnError(state, execErr, nextCmd)
	}
	handler.OnSuccess(state, nextCmd)
	return true
}

func isEOF(r []rune, i int) bool {
	return i == len(r)
}

// ParseCommand parses a command of the form "COMMAND ARG1 ... ARGN".
// Examples:
//
// foo bar is the command "foo" with argument "bar". Arguments might also
// be enclosed in quotes, so foo "bar bar" is parsed as command foo with
// argument bar bar (a single argument). Inside and outside of quotes \" and
// \\ escape a quote or a backslash.
func ParseCommand(s string) ([]string, error) {
	parseErr := errors.New("Error parsing command line")
	res := make([]string, 0)
	// a deterministic automaton with the states
	// 0: between arguments
	// 1: inside an argument without quotes
	// 2: after a \ in state 1
	// 3: inside an argument enclosed in quotes
	// 4: after a \ in state 3
	r := []rune(s)
	state := 0
	currentArg := make([]rune, 0)
L:
	for i := 0; i <= len(r); i++ {
		switch state {
		case 0:
			if isEOF(r, i) {
				break L
			}
			switch r[i] {
			case ' ', '\t':
			case '\\':
				state = 2
			case '"':
				state = 3
			default:
				currentArg = append(currentArg, r[i])
				state = 1
			}
		case 1:
			if isEOF(r, i) {
				break L
			}
			switch r[i] {
			case ' ', '\t':
				res = append(res, string(currentArg))
				currentArg = nil
				state = 0
			case '\\':
				state = 2
			case '"':
				return nil, parseErr
			default:
				currentArg = append(currentArg, r[i])
			}
		case 2:
			if isEOF(r, i) {
				return nil, parseErr
			}
			switch r[i] {
			case '\\', '"':
				currentArg = append(currentArg, r[i])
				state = 1
			default:
				return nil, parseErr
			}
		case 3:
			if isEOF(r, i) {
				return nil, parseErr
			}
			switch r[i] {
			case '"':
				res = append(res, string(currentArg))
				currentArg = nil
				state = 0
			case '\\':
				state = 4
			default:
				currentArg = append(currentArg, r[i])
			}
		case 4:
			if isEOF(r, i) {
				return nil, parseErr
			}
			switch r[i] {
			case '\\', '"':
				currentArg = append(currentArg, r[i])
				state = 3
			default:
				return nil, parseErr
			}
		}
	}
	if len(currentArg) > 0 {
		res = append(res, string(currentArg))
	}
	return res, nil
}

// PwdCommand is a command that prints the current working directory.
func PwdCommand(state *ExecutorState, args ...string) error {
	fmt.Fprintln(state.Out, state.WorkingDir)
	return nil
}

// CdCommand is a command that changes the current directory.
func CdCommand(state *ExecutorState, args ...string) error {
	if len(args) != 1 {
		return ErrCmdSyntaxErr
	}
	path, pathErr := state.GetPath(args[0])
	if pathErr != nil {
		return fmt.Errorf("Changing directory failed: %w", pathErr)
	}
	fi, statErr := os.Stat(path)
	if statErr != nil {
		return fmt.Errorf("Changing directory failed: %w", statErr)
	}
	if !fi.IsDir() {
		return fmt.Errorf("Changing directory failed: \"%s\" is not a directory", path)
	}
	state.WorkingDir = path
	return nil
}

// StatsCommand is a command that prints variable / value pairs.
func StatsCommand(state *ExecutorState, args ...string) error {
	m := state.Config.Variables()
	switch len(args) {
	case 0:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, variable := range keys {
			fmt.Fprintf(state.Out, "%s ==> %v\n", variable, m[variable])
		}
		return nil
	case 1:
		val, has := m[args[0]]
		if !has {
			return fmt.Errorf("Unknown variable %s", args[0])
		}
		fmt.Fprintf(state.Out, "%s ==> %v\n", args[0], val)
		return nil
	default:
		return ErrCmdSyntaxErr
	}
}

// SetVarCommand sets a variable to a new value. The config is only changed
// if the new config is valid.
func SetVarCommand(state *ExecutorState, args ...string) error {
	if len(args) != 2 {
		return errors.New("Invalid set syntax: Requires variable and value. For a list of variables use \"stats\"")
	}
	name, value := args[0], args[1]
	if name == "tile-dir" {
		var pathErr error
		if value, pathErr = state.GetPath(value); pathErr != nil {
			return pathErr
		}
	}
	if setErr := state.Config.Set(name, value); setErr != nil {
		return setErr
	}
	SetLogLevel(state.Config.Verbose)
	return nil
}

// SetLogLevel sets the level of the logger to debug if verbose is true and
// info otherwise.
func SetLogLevel(verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// ConfigCommand prints the config in toml format or reads / writes it from / to
// a file.
func ConfigCommand(state *ExecutorState, args ...string) error {
	switch {
	case len(args) == 0:
		return state.Config.Encode(state.Out)
	case len(args) == 2 && args[0] == "load":
		path, pathErr := state.GetPath(args[1])
		if pathErr != nil {
			return pathErr
		}
		config, loadErr := LoadConfig(path)
		if loadErr != nil {
			return loadErr
		}
		if validErr := config.Validate(); validErr != nil {
			return validErr
		}
		*state.Config = *config
		SetLogLevel(config.Verbose)
		return nil
	case len(args) == 2 && args[0] == "save":
		path, pathErr := state.GetPath(args[1])
		if pathErr != nil {
			return pathErr
		}
		f, createErr := os.Create(path)
		if createErr != nil {
			return createErr
		}
		encErr := state.Config.Encode(f)
		closeErr := f.Close()
		if encErr != nil {
			return encErr
		}
		return closeErr
	default:
		return ErrCmdSyntaxErr
	}
}

// ImageStorageCommand is a command that controls the candidate images.
// Without arguments it prints the number of images in the storage.
// With the single argument "list" it prints the path of each image in the
// storage.
// "load [DIR] [RECURSIVE]" loads all images from a directory (the working
// directory if omitted).
// "numbered DIR COUNT [EXT]" uses the files DIR/1.jpg to DIR/COUNT.jpg.
func ImageStorageCommand(state *ExecutorState, args ...string) error {
	if len(args) == 0 {
		if state.Storage == nil {
			fmt.Fprintln(state.Out, "Number of database images: 0")
		} else {
			fmt.Fprintln(state.Out, "Number of database images:", state.Storage.NumImages())
		}
		return nil
	}
	switch args[0] {
	case "list":
		if state.Storage == nil {
			return errors.New("No images in storage, use \"storage load\"")
		}
		for _, id := range IDList(state.Storage) {
			fmt.Fprintf(state.Out, "  %s\n", state.Storage.Path(id))
		}
		fmt.Fprintln(state.Out, "Total:", state.Storage.NumImages())
		return nil
	case "load":
		if len(args) > 3 {
			return ErrCmdSyntaxErr
		}
		dir := state.WorkingDir
		recursive := state.Config.Recursive
		if len(args) > 1 {
			var pathErr error
			if dir, pathErr = state.GetPath(args[1]); pathErr != nil {
				return pathErr
			}
		}
		if len(args) > 2 {
			var boolErr error
			if recursive, boolErr = parseBoolVar("recursive", args[2]); boolErr != nil {
				return boolErr
			}
		}
		fmt.Fprintln(state.Out, "Loading images from", dir)
		db, dbErr := GenFSDatabase(dir, recursive, AllSupported)
		if dbErr != nil {
			return dbErr
		}
		db.AutoOrient = state.Config.AutoOrient
		state.Storage = db
		fmt.Fprintln(state.Out, "Successfully read", db.NumImages(), "images")
		return nil
	case "numbered":
		if len(args) < 3 || len(args) > 4 {
			return ErrCmdSyntaxErr
		}
		dir, pathErr := state.GetPath(args[1])
		if pathErr != nil {
			return pathErr
		}
		count, countErr := parseNonNegative("count", args[2])
		if countErr != nil {
			return countErr
		}
		ext := state.Config.TileExt
		if len(args) == 4 {
			ext = args[3]
		}
		db := NewNumberedTileDB(dir, count, ext)
		db.AutoOrient = state.Config.AutoOrient
		state.Storage = db
		fmt.Fprintln(state.Out, "Using", count, "numbered images from", dir)
		return nil
	default:
		return ErrCmdSyntaxErr
	}
}

func (state *ExecutorState) numTilesArg(args []string, pos int) (int, error) {
	if len(args) > pos {
		return parseNonNegative("tiles", args[pos])
	}
	return state.Config.Tiles, nil
}

// PlanCommand prints the grid for an image without creating the mosaic.
func PlanCommand(state *ExecutorState, args ...string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrCmdSyntaxErr
	}
	path, pathErr := state.GetPath(args[0])
	if pathErr != nil {
		return pathErr
	}
	numTiles, tilesErr := state.numTilesArg(args, 1)
	if tilesErr != nil {
		return tilesErr
	}
	r, openErr := os.Open(path)
	if openErr != nil {
		return &DecodeError{Path: path, Err: openErr}
	}
	defer r.Close()
	grid, gridErr := PlanConfig(r, numTiles)
	if gridErr != nil {
		return gridErr
	}
	fmt.Fprintln(state.Out, grid)
	fmt.Fprintln(state.Out, "Tiles:", grid.NumCells())
	return nil
}

// MosaicCommand creates a mosaic with the images in the current storage.
// Usage example:
// mosaic in.jpg out.jpg 400
func MosaicCommand(state *ExecutorState, args ...string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrCmdSyntaxErr
	}
	if state.Storage == nil || state.Storage.NumImages() == 0 {
		return errors.New("No images in storage, use \"storage load\" or \"storage numbered\"")
	}
	inPath, inPathErr := state.GetPath(args[0])
	if inPathErr != nil {
		return inPathErr
	}
	outPath, outPathErr := state.GetPath(args[1])
	if outPathErr != nil {
		return outPathErr
	}
	if !SupportedOutput(filepath.Ext(outPath)) {
		return fmt.Errorf("Unsupported output file \"%s\"", outPath)
	}
	numTiles, tilesErr := state.numTilesArg(args, 2)
	if tilesErr != nil {
		return tilesErr
	}
	opts, optsErr := state.Config.GenerateOptions()
	if optsErr != nil {
		return optsErr
	}
	opts.NumTiles = numTiles
	if state.Config.Verbose {
		opts.Progress = BarProgressFunc(state.Out, int(state.Storage.NumImages()), 50)
	}
	source, loadErr := LoadImage(inPath, state.Config.AutoOrient)
	if loadErr != nil {
		return loadErr
	}
	canvas, stats, genErr := Generate(source, state.Storage, opts)
	if genErr != nil {
		return genErr
	}
	if saveErr := SaveImage(outPath, canvas, state.Config.JPGQuality); saveErr != nil {
		return saveErr
	}
	fmt.Fprintln(state.Out, stats)
	fmt.Fprintln(state.Out, "Mosaic written to", outPath)
	return nil
}

// HelpCommand prints the usage of all commands or of a single command.
func HelpCommand(state *ExecutorState, args ...string) error {
	switch len(args) {
	case 0:
		names := make([]string, 0, len(DefaultCommands))
		for name := range DefaultCommands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(state.Out, "  %s\n", DefaultCommands[name].Usage)
		}
		return nil
	case 1:
		cmd, has := DefaultCommands[args[0]]
		if !has {
			return fmt.Errorf("Unknown command \"%s\"", args[0])
		}
		fmt.Fprintln(state.Out, "Usage:", cmd.Usage)
		fmt.Fprintln(state.Out, cmd.Description)
		return nil
	default:
		return ErrCmdSyntaxErr
	}
}

func init() {
	DefaultCommands = make(map[string]Command, 10)
	DefaultCommands["pwd"] = Command{
		Exec:        PwdCommand,
		Usage:       "pwd",
		Description: "Show current working directory.",
	}
	DefaultCommands["cd"] = Command{
		Exec:        CdCommand,
		Usage:       "cd <dir>",
		Description: "Change working directory to the specified directory.",
	}
	DefaultCommands["stats"] = Command{
		Exec:        StatsCommand,
		Usage:       "stats [var]",
		Description: "Show value of variables that can be changed via set, if var is given only value of that variable.",
	}
	DefaultCommands["set"] = Command{
		Exec:  SetVarCommand,
		Usage: "set <variable> <value>",
		Description: "Set value for a variable. Variables are the keys of the" +
			" config file, use \"stats\" for a list. Available scorings: " +
			strings.Join(GetScoreFuncNames(), ", ") + ".",
	}
	DefaultCommands["config"] = Command{
		Exec:        ConfigCommand,
		Usage:       "config [load <file> | save <file>]",
		Description: "Print the current config in toml format or load / save it.",
	}
	DefaultCommands["storage"] = Command{
		Exec:  ImageStorageCommand,
		Usage: "storage [list | load [dir] [recursive] | numbered <dir> <count> [ext]]",
		Description: "Controls the candidate images.\n\n" +
			"\"list\" prints all images. \"load\" uses all images from a directory" +
			" (working directory if omitted). \"numbered\" uses the files 1.jpg to" +
			" <count>.jpg from a directory. The images are placed in this order.",
	}
	DefaultCommands["plan"] = Command{
		Exec:        PlanCommand,
		Usage:       "plan <image> [tiles]",
		Description: "Show tile size and grid for an image without creating a mosaic.",
	}
	DefaultCommands["mosaic"] = Command{
		Exec:  MosaicCommand,
		Usage: "mosaic <in> <out> [tiles]",
		Description: "Creates a mosaic of the image in with the images from the" +
			" storage and writes it to out. tiles is the number of tiles, if" +
			" omitted the value of the variable tiles is used.\n\n" +
			"Example Usage: \"mosaic in.jpg out.jpg 400\"",
	}
	DefaultCommands["help"] = Command{
		Exec:        HelpCommand,
		Usage:       "help [command]",
		Description: "Show all commands or details for a command.",
	}
}

// ReplHandler implements CommandHandler by reading commands from In and
// writing output to Out.
type ReplHandler struct {
	Config  *Config
	In      io.Reader
	Out     io.Writer
	Welcome bool
}

// NewReplHandler returns a handler for stdin and stdout.
func NewReplHandler(config *Config) ReplHandler {
	return ReplHandler{Config: config, In: os.Stdin, Out: os.Stdout, Welcome: true}
}

// Init creates an initial ExecutorState with the working directory set to
// the current directory.
func (h ReplHandler) Init() *ExecutorState {
	return NewExecutorState(h.Config, h.In, h.Out, h.Out)
}

func (h ReplHandler) Start(s *ExecutorState) {
	if h.Welcome {
		fmt.Fprintln(s.Out, "Welcome to the picture mosaic generator")
		fmt.Fprintln(s.Out, "Type \"help\" for a list of commands")
	}
	fmt.Fprint(s.Out, ">>> ")
}

func (h ReplHandler) Before(s *ExecutorState) {}

func (h ReplHandler) After(s *ExecutorState) {
	fmt.Fprint(s.Out, ">>> ")
}

func (h ReplHandler) OnParseErr(s *ExecutorState, err error) bool {
	fmt.Fprintln(s.ErrOut, "Syntax error", err)
	return true
}

func (h ReplHandler) OnInvalidCmd(s *ExecutorState, cmd string) bool {
	fmt.Fprintf(s.ErrOut, "Invalid command \"%s\"\n", cmd)
	return true
}

func (h ReplHandler) OnSuccess(s *ExecutorState, cmd Command) {}

func (h ReplHandler) OnError(s *ExecutorState, err error, cmd Command) bool {
	if errors.Is(err, ErrCmdSyntaxErr) {
		fmt.Fprintln(s.ErrOut, "Invalid syntax for command.")
		fmt.Fprintln(s.ErrOut, "Usage:", cmd.Usage)
	} else {
		fmt.Fprintln(s.ErrOut, "Error while executing command:", err.Error())
	}
	return true
}

func (h ReplHandler) OnScanErr(s *ExecutorState, err error) {
	fmt.Fprintln(s.ErrOut, "Error while reading:", err.Error())
}

// ScriptHandler implements CommandHandler. It reads from a specified reader
// and stops whenever an error is encountered.
type ScriptHandler struct {
	Config *Config
	Source io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// NewScriptHandler returns a new script handler that reads input from the given
// source and writes to stdout / stderr.
func NewScriptHandler(config *Config, source io.Reader) ScriptHandler {
	return ScriptHandler{Config: config, Source: source, Out: os.Stdout, ErrOut: os.Stderr}
}

// Init creates an initial ExecutorState with the working directory set to
// the current directory.
func (h ScriptHandler) Init() *ExecutorState {
	return NewExecutorState(h.Config, h.Source, h.Out, h.ErrOut)
}

func (h ScriptHandler) Start(s *ExecutorState) {}

func (h ScriptHandler) Before(s *ExecutorState) {}

func (h ScriptHandler) After(s *ExecutorState) {}

func (h ScriptHandler) OnParseErr(s *ExecutorState, err error) bool {
	fmt.Fprintln(s.ErrOut, "Syntax error:", err)
	return false
}

func (h ScriptHandler) OnInvalidCmd(s *ExecutorState, cmd string) bool {
	fmt.Fprintf(s.ErrOut, "Invalid command \"%s\"\n", cmd)
	return false
}

func (h ScriptHandler) OnSuccess(s *ExecutorState, cmd Command) {}

func (h ScriptHandler) OnError(s *ExecutorState, err error, cmd Command) bool {
	if errors.Is(err, ErrCmdSyntaxErr) {
		fmt.Fprintln(s.ErrOut, "Error: Invalid syntax for command.")
		fmt.Fprintln(s.ErrOut, "Usage:", cmd.Usage)
	} else {
		fmt.Fprintln(s.ErrOut, "Error while executing command:", err.Error())
	}
	return false
}

func (h ScriptHandler) OnScanErr(s *ExecutorState, err error) {
	fmt.Fprintln(s.ErrOut, "Error while reading:", err.Error())
}

// ReaderFromCmdLines returns a reader for a script source that reads the
// content of the combined lines.
func ReaderFromCmdLines(lines []string) io.Reader {
	combined := strings.Join(lines, "\n")
	return strings.NewReader(combined)
}

func paramReplacer(args []string) *strings.Replacer {
	// replace $10 before $1
	replaceArgs := make([]string, 0, 2*len(args))
	for i := len(args) - 1; i >= 0; i-- {
		replaceArgs = append(replaceArgs, fmt.Sprintf("$%d", i+1), args[i])
	}
	return strings.NewReplacer(replaceArgs...)
}

// Parameterized is used to transform parameterized commands into executable
// commands, that means replacing variables $i with the provided argument.
// Example:
// The command "storage load $1" can be called with one argument that will
// replace the placeholder $1.
//
// The whole reader is read before the lines are transformed.
func Parameterized(r io.Reader, args ...string) (io.Reader, error) {
	replacer := paramReplacer(args)
	lines := make([]string, 0, 20)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, replacer.Replace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ReaderFromCmdLines(lines), nil
}

// ParameterizedFromStrings works as Parameterized, but each entry in commands
// is a command line.
func ParameterizedFromStrings(commands []string, args ...string) io.Reader {
	replacer := paramReplacer(args)
	lines := make([]string, len(commands))
	for i, line := range commands {
		lines[i] = replacer.Replace(line)
	}
	return ReaderFromCmdLines(lines)
}
