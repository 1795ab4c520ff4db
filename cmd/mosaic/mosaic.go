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
	"os"

	mosaic "github.com/ManuDeBuck/picture-mosaic-generator"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// flags contains the values of all flags, they overwrite the values from the
// config file if they're set.
type flags struct {
	configFile string
	image      string
	tileDir    string
	tiles      int
	tileFiles  int
	tileExt    string
	output     string
	quality    int
	interp     string
	resizer    string
	scoring    string
	routines   int
	autoOrient bool
	recursive  bool
	verbose    bool
	noProgress bool
}

func (f *flags) register(cmd *cobra.Command) {
	pflags := cmd.PersistentFlags()
	pflags.StringVar(&f.configFile, "config", "", "config file (default "+mosaic.DefaultConfigFile+" if it exists)")
	pflags.StringVarP(&f.tileDir, "tile-dir", "d", "", "directory containing the candidate images")
	pflags.IntVarP(&f.tiles, "tiles", "t", 0, "number of tiles in the mosaic")
	pflags.IntVarP(&f.tileFiles, "tile-files", "c", 0, "number of candidate files named 1.jpg, 2.jpg, ... (all images in the directory if 0)")
	pflags.StringVar(&f.tileExt, "tile-ext", ".jpg", "extension of the numbered candidate files")
	pflags.IntVar(&f.quality, "quality", 100, "jpeg quality between 1 and 100")
	pflags.StringVar(&f.interp, "interp", "lanczos3", "interpolation function used to scale candidates")
	pflags.StringVar(&f.resizer, "resizer", "nfnt", "resizer to scale candidates, nfnt or xdraw")
	pflags.StringVar(&f.scoring, "scoring", mosaic.DefaultScoreFuncName, "function to compare candidates and cells")
	pflags.IntVar(&f.routines, "routines", 1, "number of go routines that place a candidate")
	pflags.BoolVar(&f.autoOrient, "auto-orient", false, "apply the EXIF orientation of jpeg files")
	pflags.BoolVar(&f.recursive, "recursive", false, "scan the tile directory recursively")
	pflags.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose logging")

	local := cmd.Flags()
	local.StringVarP(&f.image, "image", "i", "", "source image")
	local.StringVarP(&f.output, "output", "o", "output.jpg", "output file (.jpg, .png, .bmp or .tiff)")
	local.BoolVar(&f.noProgress, "no-progress", false, "don't show a progress bar")
}

func readConfig(f *flags) (*mosaic.Config, error) {
	if f.configFile != "" {
		return mosaic.LoadConfig(f.configFile)
	}
	defaultPath, expandErr := homedir.Expand(mosaic.DefaultConfigFile)
	if expandErr != nil {
		return nil, expandErr
	}
	if _, statErr := os.Stat(defaultPath); statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return mosaic.DefaultConfig(), nil
		}
		return nil, statErr
	}
	return mosaic.LoadConfig(defaultPath)
}

// buildConfig reads the config file and applies all flags that have been set.
func buildConfig(cmd *cobra.Command, f *flags) (*mosaic.Config, error) {
	config, configErr := readConfig(f)
	if configErr != nil {
		return nil, configErr
	}
	changed := cmd.Flags().Changed
	if changed("tile-dir") {
		config.TileDir = f.tileDir
	}
	if changed("tiles") {
		config.Tiles = f.tiles
	}
	if changed("tile-files") {
		config.TileFiles = f.tileFiles
	}
	if changed("tile-ext") {
		config.TileExt = f.tileExt
	}
	if changed("output") {
		config.Output = f.output
	}
	if changed("quality") {
		config.JPGQuality = f.quality
	}
	if changed("interp") {
		config.InterP = f.interp
	}
	if changed("resizer") {
		config.Resizer = f.resizer
	}
	if changed("scoring") {
		config.Scoring = f.scoring
	}
	if changed("routines") {
		config.Routines = f.routines
	}
	if changed("auto-orient") {
		config.AutoOrient = f.autoOrient
	}
	if changed("recursive") {
		config.Recursive = f.recursive
	}
	if changed("verbose") {
		config.Verbose = f.verbose
	}
	if validErr := config.Validate(); validErr != nil {
		return nil, validErr
	}
	mosaic.SetLogLevel(config.Verbose)
	return config, nil
}

func generate(cmd *cobra.Command, f *flags) error {
	config, configErr := buildConfig(cmd, f)
	if configErr != nil {
		return configErr
	}
	if f.image == "" {
		return errors.New("No source image given, use -i")
	}
	opts, optsErr := config.GenerateOptions()
	if optsErr != nil {
		return optsErr
	}
	storage, storageErr := config.Storage()
	if storageErr != nil {
		return storageErr
	}
	if !f.noProgress {
		opts.Progress = mosaic.BarProgressFunc(cmd.ErrOrStderr(), int(storage.NumImages()), 50)
	}
	imagePath, expandErr := homedir.Expand(f.image)
	if expandErr != nil {
		return expandErr
	}
	source, loadErr := mosaic.LoadImage(imagePath, config.AutoOrient)
	if loadErr != nil {
		return loadErr
	}
	canvas, stats, genErr := mosaic.Generate(source, storage, opts)
	if genErr != nil {
		return genErr
	}
	if saveErr := mosaic.SaveImage(config.Output, canvas, config.JPGQuality); saveErr != nil {
		return saveErr
	}
	log.WithField("output", config.Output).Info("Mosaic written")
	fmt.Fprintln(cmd.OutOrStdout(), stats)
	return nil
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "mosaic",
		Short: "Create photomosaics",
		Long: `mosaic divides a source image into square cells and replaces each cell by
the candidate image that matches it best.

Example:
  mosaic -i in.jpg -d tiles/ -c 500 -t 2000 -o out.jpg`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, f)
		},
	}
	f.register(root)
	root.AddCommand(newReplCmd(f))
	root.AddCommand(newScriptCmd(f))
	root.AddCommand(newRunCmd(f))
	root.AddCommand(newPlanCmd(f))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Fatal("Creating mosaic failed")
	}
}
