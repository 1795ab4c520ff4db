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
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is returned if the grid for a source image would
	// degenerate, that is the tile edge or the number of rows / columns would
	// be zero. It is always returned before any buffer is allocated.
	ErrInvalidGeometry = errors.New("Invalid mosaic geometry")

	// ErrInternalConsistency signals that a buffer does not have the size the
	// grid requires. This is a bug and never caused by user input, callers
	// should abort.
	ErrInternalConsistency = errors.New("Internal consistency error")

	// ErrEmptyStorage is returned if a mosaic should be created but there are
	// no candidate images.
	ErrEmptyStorage = errors.New("No candidate images in storage")
)

// DecodeError is returned if an image can't be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("Can't decode image %s: %s", err.Path, err.Err.Error())
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

// EncodeError is returned if an image can't be encoded or written.
type EncodeError struct {
	Path string
	Err  error
}

func (err *EncodeError) Error() string {
	return fmt.Sprintf("Can't encode image %s: %s", err.Path, err.Err.Error())
}

func (err *EncodeError) Unwrap() error {
	return err.Err
}

func internalErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInternalConsistency, fmt.Sprintf(format, args...))
}
