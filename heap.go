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
	"container/heap"
)

// CandidateEntry is an entry stored in a candidate heap. It consists of a
// candidate (by id) and the value of that candidate.
type CandidateEntry struct {
	Image ImageID
	Value float64
}

// candidateHeapInterface implements heap.Interface, the root is the entry
// that is removed first if the heap is full: the smallest value and for equal
// values the largest id.
type candidateHeapInterface []CandidateEntry

func (h candidateHeapInterface) Len() int {
	return len(h)
}

func (h candidateHeapInterface) Less(i, j int) bool {
	if h[i].Value == h[j].Value {
		return h[i].Image > h[j].Image
	}
	return h[i].Value < h[j].Value
}

func (h candidateHeapInterface) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *candidateHeapInterface) Push(x interface{}) {
	*h = append(*h, x.(CandidateEntry))
}

func (h *candidateHeapInterface) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// CandidateHeap stores the bound candidates with the largest values.
// If two candidates have the same value the one with the smaller id is kept.
type CandidateHeap struct {
	interf candidateHeapInterface
	bound  int
}

// NewCandidateHeap returns a new heap with the given bound. If bound < 0 all
// entries are kept.
func NewCandidateHeap(bound int) *CandidateHeap {
	capacity := bound
	if capacity < 1 {
		capacity = 100
	}
	return &CandidateHeap{interf: make(candidateHeapInterface, 0, capacity), bound: bound}
}

// Add adds a new entry to the heap, truncating the heap if bound is ≥ 0.
func (h *CandidateHeap) Add(image ImageID, value float64) {
	heap.Push(&h.interf, CandidateEntry{Image: image, Value: value})
	if h.bound >= 0 {
		for h.interf.Len() > h.bound {
			heap.Pop(&h.interf)
		}
	}
}

// Len returns the number of entries in the heap.
func (h *CandidateHeap) Len() int {
	return h.interf.Len()
}

// GetView returns the sorted entries in the heap, largest values first.
// The complexity is O(n * log(n)) where n is the size of the heap.
func (h *CandidateHeap) GetView() []CandidateEntry {
	n := h.interf.Len()
	tmp := make(candidateHeapInterface, n)
	copy(tmp, h.interf)
	res := make([]CandidateEntry, n)
	for i := 0; i < n; i++ {
		res[n-i-1] = heap.Pop(&tmp).(CandidateEntry)
	}
	return res
}
