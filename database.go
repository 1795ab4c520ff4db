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
	"image"
	"os"
	"path/filepath"
	"sort"
)

// ImageStorage is used to administrate a collection of candidate images.
// Images are not stored in memory but are identified by an id and can be loaded
// into memory when required.
// All ids smaller than NumImages are valid, the mosaic generator processes
// the images in the order of their ids.
// The access methods should return an error if the image id is not associated
// with any image data or if there is an error reading the image (e.g. from
// the filesystem).
type ImageStorage interface {
	// NumImages returns the number of images in the storage as an ImageID.
	NumImages() ImageID

	// LoadImage loads an image into memory.
	LoadImage(id ImageID) (image.Image, error)

	// LoadConfig loads the config of the image with the given id.
	LoadConfig(id ImageID) (image.Config, error)

	// Path returns a description of the image, for files the path.
	Path(id ImageID) string
}

// IDList returns the list [0, 1, ..., storage.NumImages - 1].
func IDList(storage ImageStorage) []ImageID {
	numImages := storage.NumImages()
	res := make([]ImageID, numImages)
	var i ImageID
	for ; i < numImages; i++ {
		res[i] = i
	}
	return res
}

func loadFSConfig(file string) (image.Config, error) {
	r, openErr := os.Open(file)
	if openErr != nil {
		return image.Config{}, &DecodeError{Path: file, Err: openErr}
	}
	defer r.Close()
	config, _, decodeErr := image.DecodeConfig(r)
	if decodeErr != nil {
		return image.Config{}, &DecodeError{Path: file, Err: decodeErr}
	}
	return config, nil
}

// NumberedTileDB is a storage of files named by consecutive numbers starting
// with 1: The image with id 0 is "Dir/1.jpg", the image with id 1 "Dir/2.jpg"
// and so on (if Ext is ".jpg").
// The files are not checked when the storage is created, a missing file
// results in an error when it is loaded.
type NumberedTileDB struct {
	Dir        string
	Count      int
	Ext        string
	AutoOrient bool
}

// NewNumberedTileDB returns a new storage with count images. If ext is empty
// ".jpg" is used.
func NewNumberedTileDB(dir string, count int, ext string) *NumberedTileDB {
	if ext == "" {
		ext = ".jpg"
	}
	return &NumberedTileDB{Dir: dir, Count: count, Ext: ext}
}

// NumImages returns Count.
func (db *NumberedTileDB) NumImages() ImageID {
	return ImageID(db.Count)
}

// Path returns the file name of the image.
func (db *NumberedTileDB) Path(id ImageID) string {
	return filepath.Join(db.Dir, fmt.Sprintf("%d%s", int(id)+1, db.Ext))
}

func (db *NumberedTileDB) checkID(id ImageID) error {
	if id < 0 || id >= db.NumImages() {
		return fmt.Errorf("Invalid image id: Not associated with an image %d", id)
	}
	return nil
}

// LoadImage decodes the file of the image.
func (db *NumberedTileDB) LoadImage(id ImageID) (image.Image, error) {
	if idErr := db.checkID(id); idErr != nil {
		return nil, idErr
	}
	return DecodeImage(db.Path(id), db.AutoOrient)
}

// LoadConfig decodes the config of the image.
func (db *NumberedTileDB) LoadConfig(id ImageID) (image.Config, error) {
	if idErr := db.checkID(id); idErr != nil {
		return image.Config{}, idErr
	}
	return loadFSConfig(db.Path(id))
}

// FSImageDB implements ImageStorage. It uses images stored on the filesystem
// and opens them on demand.
// The paths are stored relative to a Root directory.
type FSImageDB struct {
	Root       string
	Paths      []string
	AutoOrient bool
}

// NewFSImageDB returns an empty storage.
func NewFSImageDB(root string) *FSImageDB {
	return &FSImageDB{Root: root, Paths: nil}
}

// Path returns the absolute path of an image.
func (db *FSImageDB) Path(id ImageID) string {
	return filepath.Join(db.Root, db.Paths[id])
}

// NumImages returns the number of paths.
func (db *FSImageDB) NumImages() ImageID {
	return ImageID(len(db.Paths))
}

// LoadImage decodes the file of the image.
func (db *FSImageDB) LoadImage(id ImageID) (image.Image, error) {
	if id < 0 || id >= db.NumImages() {
		return nil, fmt.Errorf("Invalid image id: Not associated with an image %d", id)
	}
	return DecodeImage(db.Path(id), db.AutoOrient)
}

// LoadConfig decodes the config of the image.
func (db *FSImageDB) LoadConfig(id ImageID) (image.Config, error) {
	if id < 0 || id >= db.NumImages() {
		return image.Config{}, fmt.Errorf("Invalid image id: Not associated with an image %d", id)
	}
	return loadFSConfig(db.Path(id))
}

// GenFSDatabase creates a storage with all images in the directory root that
// are accepted by filter (if filter is nil AllSupported is used).
// If recursive is true all sub-directories are scanned as well.
// The paths are sorted, s.t. the order of the candidates is deterministic.
func GenFSDatabase(root string, recursive bool, filter SupportedImageFunc) (*FSImageDB, error) {
	root, absErr := filepath.Abs(root)
	if absErr != nil {
		return nil, absErr
	}
	if filter == nil {
		filter = AllSupported
	}
	var res *FSImageDB
	var genErr error
	if recursive {
		res, genErr = genFSDBRecursive(root, filter)
	} else {
		res, genErr = genFSDBNonRecursive(root, filter)
	}
	if genErr != nil {
		return nil, genErr
	}
	sort.Strings(res.Paths)
	return res, nil
}

func genFSDBRecursive(root string, filter SupportedImageFunc) (*FSImageDB, error) {
	result := NewFSImageDB(root)
	walkFunc := func(path string, info os.FileInfo, err error) error {
		switch {
		case err != nil:
			return err
		case !info.IsDir() && filter(filepath.Ext(path)):
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			result.Paths = append(result.Paths, rel)
			return nil
		default:
			return nil
		}
	}
	if err := filepath.Walk(root, walkFunc); err != nil {
		return nil, err
	}
	return result, nil
}

func genFSDBNonRecursive(root string, filter SupportedImageFunc) (*FSImageDB, error) {
	result := NewFSImageDB(root)
	files, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if !file.IsDir() && filter(filepath.Ext(file.Name())) {
			result.Paths = append(result.Paths, file.Name())
		}
	}
	return result, nil
}
