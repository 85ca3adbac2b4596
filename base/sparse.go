// Copyright 2026 filmrate Project Authors
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

package base

import (
	"sort"

	"github.com/juju/errors"
)

// SparseVector is the data structure for the sparse vector. When obtained
// from a compressed matrix, Indices are sorted in ascending order and the
// slices alias the matrix storage.
type SparseVector struct {
	Indices []int32
	Values  []float32
}

// Len returns the number of items.
func (vec SparseVector) Len() int {
	return len(vec.Values)
}

// Less returns true if the index of i-th item is less than the index of j-th item.
func (vec SparseVector) Less(i, j int) bool {
	return vec.Indices[i] < vec.Indices[j]
}

// Swap two items.
func (vec SparseVector) Swap(i, j int) {
	vec.Indices[i], vec.Indices[j] = vec.Indices[j], vec.Indices[i]
	vec.Values[i], vec.Values[j] = vec.Values[j], vec.Values[i]
}

// ForEach iterates items in the sparse vector.
func (vec SparseVector) ForEach(f func(i int, index int32, value float32)) {
	for i := range vec.Indices {
		f(i, vec.Indices[i], vec.Values[i])
	}
}

// Get returns the value at an index by binary search. Missing entries are zero.
func (vec SparseVector) Get(index int32) float32 {
	pos := sort.Search(len(vec.Indices), func(i int) bool {
		return vec.Indices[i] >= index
	})
	if pos < len(vec.Indices) && vec.Indices[pos] == index {
		return vec.Values[pos]
	}
	return 0
}

// Dot computes the inner product with another sparse vector by merging the
// two sorted index lists. Both vectors must be sorted.
func (vec SparseVector) Dot(other SparseVector) float32 {
	var sum float32
	i, j := 0, 0
	for i < vec.Len() && j < other.Len() {
		switch {
		case vec.Indices[i] == other.Indices[j]:
			sum += vec.Values[i] * other.Values[j]
			i++
			j++
		case vec.Indices[i] < other.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// SquaredNorm computes the squared euclidean norm of the sparse vector.
func (vec SparseVector) SquaredNorm() float32 {
	var sum float32
	for _, v := range vec.Values {
		sum += v * v
	}
	return sum
}

// COOMatrix collects matrix entries in coordinate form before conversion to
// a compressed format. Duplicate coordinates are kept and accumulate
// additively during conversion. If created with non-positive dimensions,
// the shape is inferred as (max row + 1, max column + 1).
type COOMatrix struct {
	NumRows int
	NumCols int
	rows    []int32
	cols    []int32
	values  []float32
}

// NewCOOMatrix creates a COOMatrix. Pass non-positive dimensions to infer
// the shape from the added entries.
func NewCOOMatrix(numRows, numCols int) *COOMatrix {
	return &COOMatrix{
		NumRows: max(numRows, 0),
		NumCols: max(numCols, 0),
	}
}

// Add appends an entry. Row and column must be non-negative.
func (m *COOMatrix) Add(row, col int32, value float32) {
	if row < 0 || col < 0 {
		panic("COOMatrix: negative coordinate")
	}
	if int(row) >= m.NumRows {
		m.NumRows = int(row) + 1
	}
	if int(col) >= m.NumCols {
		m.NumCols = int(col) + 1
	}
	m.rows = append(m.rows, row)
	m.cols = append(m.cols, col)
	m.values = append(m.values, value)
}

// NNZ returns the number of collected entries, duplicates included.
func (m *COOMatrix) NNZ() int {
	return len(m.values)
}

// ToCSR converts the coordinate list to compressed sparse row form. Within
// each row, entries are sorted by column and duplicate coordinates are
// summed, matching the conventional coordinate-to-compressed conversion.
func (m *COOMatrix) ToCSR() *CSRMatrix {
	// bucket entries by row
	counts := make([]int, m.NumRows+1)
	for _, r := range m.rows {
		counts[r+1]++
	}
	for i := 1; i <= m.NumRows; i++ {
		counts[i] += counts[i-1]
	}
	cols := make([]int32, len(m.cols))
	values := make([]float32, len(m.values))
	next := make([]int, m.NumRows)
	copy(next, counts[:m.NumRows])
	for k, r := range m.rows {
		p := next[r]
		cols[p] = m.cols[k]
		values[p] = m.values[k]
		next[r]++
	}
	// sort each row by column and sum duplicates
	outPtr := make([]int, m.NumRows+1)
	outCols := cols[:0]
	outValues := values[:0]
	w := 0
	for i := 0; i < m.NumRows; i++ {
		begin, end := counts[i], counts[i+1]
		row := SparseVector{Indices: cols[begin:end], Values: values[begin:end]}
		sort.Sort(row)
		for k := begin; k < end; k++ {
			if w > outPtr[i] && outCols[w-1] == cols[k] {
				outValues[w-1] += values[k]
			} else {
				outCols = append(outCols[:w], cols[k])
				outValues = append(outValues[:w], values[k])
				w++
			}
		}
		outPtr[i+1] = w
	}
	return &CSRMatrix{
		NumRows: m.NumRows,
		NumCols: m.NumCols,
		RowPtr:  outPtr,
		Cols:    outCols[:w],
		Values:  outValues[:w],
	}
}

// CSRMatrix is a sparse matrix in compressed sparse row form. Columns are
// sorted in ascending order within each row.
type CSRMatrix struct {
	NumRows int
	NumCols int
	RowPtr  []int
	Cols    []int32
	Values  []float32
}

// NNZ returns the number of stored entries.
func (m *CSRMatrix) NNZ() int {
	return len(m.Values)
}

// Row returns the i-th row as a sparse vector view.
func (m *CSRMatrix) Row(i int) SparseVector {
	return SparseVector{
		Indices: m.Cols[m.RowPtr[i]:m.RowPtr[i+1]],
		Values:  m.Values[m.RowPtr[i]:m.RowPtr[i+1]],
	}
}

// At returns the entry at (i, j). Missing entries are zero.
func (m *CSRMatrix) At(i int, j int32) float32 {
	return m.Row(i).Get(j)
}

// SliceRows gathers the rows at the given indices, in order. Duplicate
// indices are fetched independently. Out-of-range indices are an error.
func (m *CSRMatrix) SliceRows(indices []int32) (*CSRMatrix, error) {
	nnz := 0
	for _, i := range indices {
		if i < 0 || int(i) >= m.NumRows {
			return nil, errors.Errorf("row index %d out of range [0, %d)", i, m.NumRows)
		}
		nnz += m.RowPtr[i+1] - m.RowPtr[i]
	}
	out := &CSRMatrix{
		NumRows: len(indices),
		NumCols: m.NumCols,
		RowPtr:  make([]int, len(indices)+1),
		Cols:    make([]int32, 0, nnz),
		Values:  make([]float32, 0, nnz),
	}
	for k, i := range indices {
		out.Cols = append(out.Cols, m.Cols[m.RowPtr[i]:m.RowPtr[i+1]]...)
		out.Values = append(out.Values, m.Values[m.RowPtr[i]:m.RowPtr[i+1]]...)
		out.RowPtr[k+1] = len(out.Values)
	}
	return out, nil
}

// ToCSC converts the matrix to compressed sparse column form.
func (m *CSRMatrix) ToCSC() *CSCMatrix {
	counts := make([]int, m.NumCols+1)
	for _, j := range m.Cols {
		counts[j+1]++
	}
	for j := 1; j <= m.NumCols; j++ {
		counts[j] += counts[j-1]
	}
	rows := make([]int32, len(m.Cols))
	values := make([]float32, len(m.Values))
	next := make([]int, m.NumCols)
	copy(next, counts[:m.NumCols])
	// iterating rows in ascending order keeps each column sorted by row
	for i := 0; i < m.NumRows; i++ {
		for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
			j := m.Cols[k]
			p := next[j]
			rows[p] = int32(i)
			values[p] = m.Values[k]
			next[j]++
		}
	}
	return &CSCMatrix{
		NumRows: m.NumRows,
		NumCols: m.NumCols,
		ColPtr:  counts,
		Rows:    rows,
		Values:  values,
	}
}

// ToDense materializes the matrix as dense rows. Only suitable for small
// matrices.
func (m *CSRMatrix) ToDense() [][]float32 {
	dense := make([][]float32, m.NumRows)
	for i := range dense {
		dense[i] = make([]float32, m.NumCols)
		m.Row(i).ForEach(func(_ int, index int32, value float32) {
			dense[i][index] = value
		})
	}
	return dense
}

// HStack concatenates two matrices horizontally, row for row. The result
// stays sparse.
func HStack(a, b *CSRMatrix) (*CSRMatrix, error) {
	if a.NumRows != b.NumRows {
		return nil, errors.Errorf("row count mismatch: %d != %d", a.NumRows, b.NumRows)
	}
	out := &CSRMatrix{
		NumRows: a.NumRows,
		NumCols: a.NumCols + b.NumCols,
		RowPtr:  make([]int, a.NumRows+1),
		Cols:    make([]int32, 0, a.NNZ()+b.NNZ()),
		Values:  make([]float32, 0, a.NNZ()+b.NNZ()),
	}
	offset := int32(a.NumCols)
	for i := 0; i < a.NumRows; i++ {
		out.Cols = append(out.Cols, a.Cols[a.RowPtr[i]:a.RowPtr[i+1]]...)
		out.Values = append(out.Values, a.Values[a.RowPtr[i]:a.RowPtr[i+1]]...)
		for k := b.RowPtr[i]; k < b.RowPtr[i+1]; k++ {
			out.Cols = append(out.Cols, b.Cols[k]+offset)
			out.Values = append(out.Values, b.Values[k])
		}
		out.RowPtr[i+1] = len(out.Values)
	}
	return out, nil
}

// CSCMatrix is a sparse matrix in compressed sparse column form. Rows are
// sorted in ascending order within each column.
type CSCMatrix struct {
	NumRows int
	NumCols int
	ColPtr  []int
	Rows    []int32
	Values  []float32
}

// NNZ returns the number of stored entries.
func (m *CSCMatrix) NNZ() int {
	return len(m.Values)
}

// Col returns the j-th column as a sparse vector view.
func (m *CSCMatrix) Col(j int) SparseVector {
	return SparseVector{
		Indices: m.Rows[m.ColPtr[j]:m.ColPtr[j+1]],
		Values:  m.Values[m.ColPtr[j]:m.ColPtr[j+1]],
	}
}

// SliceColsT gathers the columns at the given indices, in order, transposed
// so that each gathered column becomes a row of the result. Duplicate
// indices are fetched independently. Out-of-range indices are an error.
func (m *CSCMatrix) SliceColsT(indices []int32) (*CSRMatrix, error) {
	nnz := 0
	for _, j := range indices {
		if j < 0 || int(j) >= m.NumCols {
			return nil, errors.Errorf("column index %d out of range [0, %d)", j, m.NumCols)
		}
		nnz += m.ColPtr[j+1] - m.ColPtr[j]
	}
	out := &CSRMatrix{
		NumRows: len(indices),
		NumCols: m.NumRows,
		RowPtr:  make([]int, len(indices)+1),
		Cols:    make([]int32, 0, nnz),
		Values:  make([]float32, 0, nnz),
	}
	for k, j := range indices {
		out.Cols = append(out.Cols, m.Rows[m.ColPtr[j]:m.ColPtr[j+1]]...)
		out.Values = append(out.Values, m.Values[m.ColPtr[j]:m.ColPtr[j+1]]...)
		out.RowPtr[k+1] = len(out.Values)
	}
	return out, nil
}
