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

// This file contains some predefined scripts that can be executed. This way
// we have some easy way to create mosaics without requiring the user to know
// any details.

var (
	// RunNumbered uses the candidates 1.jpg to N.jpg from a directory.
	// It is parameterized by five parameters: the directory containing the
	// candidates, the number of candidate files, the input file, the output
	// file and the number of tiles.
	//
	// Example usage: RunNumbered ~/tiles/ 500 input.jpg output.jpg 2000
	RunNumbered = `storage numbered $1 $2
mosaic $3 $4 $5`

	// RunDirectory uses all images in a directory as candidates, ordered by
	// their file names.
	// The parameters are the directory, the input file, the output file and the
	// number of tiles.
	//
	// Example usage: RunDirectory ~/Pictures/ input.jpg output.png 2000
	RunDirectory = `storage load $1
mosaic $2 $3 $4`

	// CompareScorings is similar to RunDirectory but generates one mosaic for
	// each scoring. Thus the third argument is not a path for a file but a
	// directory.
	//
	// Example usage: CompareScorings ~/Pictures/ input.jpg ./output/ 2000
	CompareScorings = `storage load $1
set scoring anchor
mosaic $2 $3/mosaic-anchor.jpg $4
set scoring footprint
mosaic $2 $3/mosaic-footprint.jpg $4
set scoring average
mosaic $2 $3/mosaic-average.jpg $4`
)

// PredefinedScripts maps the names of the predefined scripts to the script
// source.
var PredefinedScripts = map[string]string{
	"RunNumbered":     RunNumbered,
	"RunDirectory":    RunDirectory,
	"CompareScorings": CompareScorings,
}
