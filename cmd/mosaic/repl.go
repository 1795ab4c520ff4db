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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	mosaic "github.com/ManuDeBuck/picture-mosaic-generator"
	"github.com/spf13/cobra"
)

func newReplCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive command line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, configErr := buildConfig(cmd, f)
			if configErr != nil {
				return configErr
			}
			handler := mosaic.NewReplHandler(config)
			handler.In = cmd.InOrStdin()
			handler.Out = cmd.OutOrStdout()
			mosaic.Execute(handler, mosaic.DefaultCommands)
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func runScript(cmd *cobra.Command, f *flags, r io.Reader, args []string) error {
	config, configErr := buildConfig(cmd, f)
	if configErr != nil {
		return configErr
	}
	source, paramErr := mosaic.Parameterized(r, args...)
	if paramErr != nil {
		return paramErr
	}
	handler := mosaic.NewScriptHandler(config, source)
	handler.Out = cmd.OutOrStdout()
	handler.ErrOut = cmd.ErrOrStderr()
	if !mosaic.Execute(handler, mosaic.DefaultCommands) {
		return errors.New("Script execution stopped")
	}
	return nil
}

func newScriptCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "script <file> [args...]",
		Short: "Execute the commands of a file",
		Long: `Execute the commands of a file, one command per line. The placeholders
$1, $2, ... are replaced by the arguments. Execution stops on the first error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, openErr := os.Open(args[0])
			if openErr != nil {
				return openErr
			}
			defer r.Close()
			return runScript(cmd, f, r, args[1:])
		},
	}
}

func newRunCmd(f *flags) *cobra.Command {
	names := make([]string, 0, len(mosaic.PredefinedScripts))
	for name := range mosaic.PredefinedScripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return &cobra.Command{
		Use:       "run <script> [args...]",
		Short:     "Execute a predefined script",
		Long:      "Execute a predefined script, available scripts: " + strings.Join(names, ", "),
		ValidArgs: names,
		Args:      cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, has := mosaic.PredefinedScripts[args[0]]
			if !has {
				return fmt.Errorf("Unknown script \"%s\", available: %s", args[0],
					strings.Join(names, ", "))
			}
			return runScript(cmd, f, strings.NewReader(script), args[1:])
		},
	}
}

func newPlanCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <image> [tiles]",
		Short: "Show the grid for an image without creating a mosaic",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, configErr := buildConfig(cmd, f)
			if configErr != nil {
				return configErr
			}
			if len(args) == 2 {
				tiles, parseErr := strconv.Atoi(args[1])
				if parseErr != nil {
					return fmt.Errorf("Invalid number of tiles: %w", parseErr)
				}
				config.Tiles = tiles
			}
			state := mosaic.NewExecutorState(config, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			return mosaic.PlanCommand(state, args[0])
		},
	}
}
