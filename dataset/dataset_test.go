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

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTable(t *testing.T) {
	table := NewTable()
	table.Add(0, 0, 5)
	table.Add(1, 1, 3)
	table.Add(0, 2, 4)
	assert.Equal(t, 3, table.Count())
	assert.Equal(t, 2, table.NumUsers())
	assert.Equal(t, 3, table.NumMovies())
	assert.Equal(t, float32(4), table.Mean())
	assert.Equal(t, float32(1), table.StdDev())
	assert.Equal(t, float32(3), table.Min())
	assert.Equal(t, float32(5), table.Max())
	assert.Equal(t, []Pair{{0, 0}, {1, 1}, {0, 2}}, table.Pairs())
	user, movie, rating := table.Get(1)
	assert.Equal(t, int32(1), user)
	assert.Equal(t, int32(1), movie)
	assert.Equal(t, float32(3), rating)
	// subset preserves order of indices
	sub := table.SubSet([]int{2, 0})
	assert.Equal(t, []int32{0, 0}, sub.Users)
	assert.Equal(t, []int32{2, 0}, sub.Movies)
	assert.Equal(t, []float32{4, 5}, sub.Ratings)
}

func TestTableCountDuplicates(t *testing.T) {
	table := NewTable()
	table.Add(0, 0, 5)
	table.Add(0, 0, 3)
	table.Add(1, 0, 4)
	assert.Equal(t, 1, table.CountDuplicates())
}

func TestNewTableFromPairs(t *testing.T) {
	table, err := NewTableFromPairs([]Pair{{0, 1}, {1, 0}}, []float32{4, 2})
	assert.NoError(t, err)
	assert.Equal(t, []int32{0, 1}, table.Users)
	assert.Equal(t, []int32{1, 0}, table.Movies)
	assert.Equal(t, []float32{4, 2}, table.Ratings)
	_, err = NewTableFromPairs([]Pair{{0, 1}}, []float32{4, 2})
	assert.Error(t, err)
}

func TestLoadTableFromCSV(t *testing.T) {
	path := writeTempFile(t, "user,movie,rating\n0,0,5\n1,1,3.5\n")
	table, err := LoadTableFromCSV(path, ",", true)
	assert.NoError(t, err)
	assert.Equal(t, 2, table.Count())
	assert.Equal(t, []int32{0, 1}, table.Users)
	assert.Equal(t, []int32{0, 1}, table.Movies)
	assert.Equal(t, []float32{5, 3.5}, table.Ratings)
}

func TestLoadTableFromCSVMalformed(t *testing.T) {
	path := writeTempFile(t, "0,0,five\n")
	_, err := LoadTableFromCSV(path, ",", false)
	assert.Error(t, err)
	path = writeTempFile(t, "0,0\n")
	_, err = LoadTableFromCSV(path, ",", false)
	assert.Error(t, err)
	path = writeTempFile(t, "-1,0,5\n")
	_, err = LoadTableFromCSV(path, ",", false)
	assert.Error(t, err)
	_, err = LoadTableFromCSV(filepath.Join(t.TempDir(), "missing.csv"), ",", false)
	assert.Error(t, err)
}

func TestLoadPairsFromCSV(t *testing.T) {
	path := writeTempFile(t, "user,movie\n0,1\n1,0\n")
	pairs, err := LoadPairsFromCSV(path, ",", true)
	assert.NoError(t, err)
	assert.Equal(t, []Pair{{0, 1}, {1, 0}}, pairs)
}

func TestLoadLabelsFromCSV(t *testing.T) {
	path := writeTempFile(t, "rating\n4\n2.5\n")
	labels, err := LoadLabelsFromCSV(path, ",", true)
	assert.NoError(t, err)
	assert.Equal(t, []float32{4, 2.5}, labels)
}

func TestSplit(t *testing.T) {
	table := NewTable()
	for i := int32(0); i < 10; i++ {
		table.Add(i, i, float32(i))
	}
	train, test := table.Split(0.2, 0)
	assert.Equal(t, 8, train.Count())
	assert.Equal(t, 2, test.Count())
	// same seed, same split
	train2, test2 := table.Split(0.2, 0)
	assert.Equal(t, train.Users, train2.Users)
	assert.Equal(t, test.Users, test2.Users)
	// every triplet lands in exactly one side
	seen := make(map[int32]int)
	for _, u := range append(append([]int32{}, train.Users...), test.Users...) {
		seen[u]++
	}
	assert.Len(t, seen, 10)
}

func TestKFold(t *testing.T) {
	trains, tests := KFold(10, 3, 0)
	assert.Len(t, trains, 3)
	assert.Len(t, tests, 3)
	seen := make(map[int32]int)
	for i := range tests {
		assert.Equal(t, 10, len(trains[i])+len(tests[i]))
		for _, p := range tests[i] {
			seen[p]++
		}
	}
	// each position appears in exactly one test fold
	assert.Len(t, seen, 10)
	for _, count := range seen {
		assert.Equal(t, 1, count)
	}
	// the first n % k folds take the extra positions
	assert.Len(t, tests[0], 4)
	assert.Len(t, tests[1], 3)
	assert.Len(t, tests[2], 3)
}
