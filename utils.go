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
	"strings"

	log "github.com/sirupsen/logrus"
)

// ProgressFunc is a function that is used to inform a caller about the progress
// of a called function.
// For example if we process thousands of candidate images we might wish to
// know how far the call is and give feedback to the user.
// The called method calls the process function after each iteration with the
// number of processed elements.
type ProgressFunc func(num int)

// ProgressIgnore is a ProgressFunc that does nothing.
func ProgressIgnore(num int) {}

func reportProgress(num, max, step int) (float64, bool) {
	if step == 0 || max == 0 {
		return 0, false
	}
	if !(step < 0 || num%step == 0 || num == max) {
		return 0, false
	}
	percent := (float64(num) / float64(max)) * 100.0
	if percent > 100.0 {
		percent = 100.0
	}
	return percent, true
}

// LoggerProgressFunc is a parameterized ProgressFunc that logs to log.
// The output describes the progress (how many of how many objects processed).
// Log messages may have an addition prefix. max is the total number of elements
// to process and step describes how often to print to the log (for example
// step = 100 every 100 items).
func LoggerProgressFunc(prefix string, max, step int) ProgressFunc {
	return func(num int) {
		percent, report := reportProgress(num, max, step)
		if !report {
			return
		}
		if prefix == "" {
			log.Printf("Progress: %d of %d (%.1f%%)", num, max, percent)
		} else {
			log.Printf("%s: %d of %d (%.1f%%)", prefix, num, max, percent)
		}
	}
}

// StdProgressFunc is a parameterized ProgressFunc that writes to w.
// The parameters are the same as for LoggerProgressFunc.
func StdProgressFunc(w io.Writer, prefix string, max, step int) ProgressFunc {
	return func(num int) {
		percent, report := reportProgress(num, max, step)
		if !report {
			return
		}
		if prefix == "" {
			fmt.Fprintf(w, "Progress: %d of %d (%.1f%%)\n", num, max, percent)
		} else {
			fmt.Fprintf(w, "%s: %d of %d (%.1f%%)\n", prefix, num, max, percent)
		}
	}
}

// ProgressBar renders a bar of the given length for num of max processed
// elements, for example "Progress: [█████     ] 50.00%".
func ProgressBar(num, max, length int) string {
	if max <= 0 || length <= 0 {
		return ""
	}
	filled := IntMax(0, IntMin(num*length/max, length))
	percent := (float64(num) / float64(max)) * 100.0
	return fmt.Sprintf("Progress: [%s%s] %.2f%%",
		strings.Repeat("█", filled), strings.Repeat(" ", length-filled), percent)
}

// BarProgressFunc is a ProgressFunc that redraws a progress bar on a single
// line of w. After the last element a newline is written.
func BarProgressFunc(w io.Writer, max, length int) ProgressFunc {
	return func(num int) {
		bar := ProgressBar(num, max, length)
		if bar == "" {
			return
		}
		fmt.Fprint(w, "\r"+bar)
		if num >= max {
			fmt.Fprintln(w)
		}
	}
}
