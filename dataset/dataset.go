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
	"bufio"
	"os"
	"strconv"

	"github.com/chewxy/math32"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/zhenghaoz/filmrate/base"
	"github.com/zhenghaoz/filmrate/base/log"
	"go.uber.org/zap"
)

// Pair is a (user, movie) combination for which a feature vector or a
// prediction is requested.
type Pair struct {
	User  int32
	Movie int32
}

// Table is a columnar store of (user, movie, rating) triplets.
type Table struct {
	Users   []int32
	Movies  []int32
	Ratings []float32
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return new(Table)
}

// NewTableFromPairs joins query pairs with their ratings into a Table. The
// two slices must have the same length.
func NewTableFromPairs(pairs []Pair, ratings []float32) (*Table, error) {
	if len(pairs) != len(ratings) {
		return nil, errors.Errorf("pair count %d doesn't match rating count %d", len(pairs), len(ratings))
	}
	t := NewTable()
	for i, pair := range pairs {
		t.Add(pair.User, pair.Movie, ratings[i])
	}
	return t, nil
}

// Add appends a triplet.
func (t *Table) Add(user, movie int32, rating float32) {
	t.Users = append(t.Users, user)
	t.Movies = append(t.Movies, movie)
	t.Ratings = append(t.Ratings, rating)
}

// Count returns the number of triplets.
func (t *Table) Count() int {
	return len(t.Ratings)
}

// Get returns the i-th triplet.
func (t *Table) Get(i int) (user, movie int32, rating float32) {
	return t.Users[i], t.Movies[i], t.Ratings[i]
}

// ForEach iterates over all triplets.
func (t *Table) ForEach(f func(user, movie int32, rating float32)) {
	for i := 0; i < t.Count(); i++ {
		f(t.Users[i], t.Movies[i], t.Ratings[i])
	}
}

// Pairs returns the (user, movie) pairs of all triplets, in order.
func (t *Table) Pairs() []Pair {
	pairs := make([]Pair, t.Count())
	for i := range pairs {
		pairs[i] = Pair{User: t.Users[i], Movie: t.Movies[i]}
	}
	return pairs
}

// NumUsers returns the inferred user dimension (max user id + 1).
func (t *Table) NumUsers() int {
	var m int32 = -1
	for _, u := range t.Users {
		if u > m {
			m = u
		}
	}
	return int(m) + 1
}

// NumMovies returns the inferred movie dimension (max movie id + 1).
func (t *Table) NumMovies() int {
	var m int32 = -1
	for _, v := range t.Movies {
		if v > m {
			m = v
		}
	}
	return int(m) + 1
}

// CountDuplicates returns the number of triplets whose (user, movie) pair
// appeared earlier in the table.
func (t *Table) CountDuplicates() int {
	seen := mapset.NewSetWithSize[Pair](t.Count())
	duplicates := 0
	for i := 0; i < t.Count(); i++ {
		pair := Pair{User: t.Users[i], Movie: t.Movies[i]}
		if !seen.Add(pair) {
			duplicates++
		}
	}
	return duplicates
}

// SubSet gathers the triplets at the given positions into a new table.
func (t *Table) SubSet(indices []int) *Table {
	out := &Table{
		Users:   make([]int32, 0, len(indices)),
		Movies:  make([]int32, 0, len(indices)),
		Ratings: make([]float32, 0, len(indices)),
	}
	for _, i := range indices {
		out.Add(t.Users[i], t.Movies[i], t.Ratings[i])
	}
	return out
}

// Mean returns the mean rating.
func (t *Table) Mean() float32 {
	if t.Count() == 0 {
		return 0
	}
	var sum float32
	for _, r := range t.Ratings {
		sum += r
	}
	return sum / float32(t.Count())
}

// StdDev returns the sample standard deviation of ratings.
func (t *Table) StdDev() float32 {
	if t.Count() < 2 {
		return 0
	}
	mean := t.Mean()
	var sum float32
	for _, r := range t.Ratings {
		sum += (r - mean) * (r - mean)
	}
	return math32.Sqrt(sum / float32(t.Count()-1))
}

// Min returns the minimum rating.
func (t *Table) Min() float32 {
	ret := math32.Inf(1)
	for _, r := range t.Ratings {
		if r < ret {
			ret = r
		}
	}
	return ret
}

// Max returns the maximum rating.
func (t *Table) Max() float32 {
	ret := math32.Inf(-1)
	for _, r := range t.Ratings {
		if r > ret {
			ret = r
		}
	}
	return ret
}

// LoadTableFromCSV reads (user, movie, rating) triplets from a
// delimiter-separated file. Columns are interpreted positionally. Malformed
// lines are fatal. Duplicate (user, movie) pairs are reported as a warning
// since they accumulate additively in the rating matrix.
func LoadTableFromCSV(path, sep string, hasHeader bool) (*Table, error) {
	table := NewTable()
	err := readCSV(path, sep, hasHeader, func(line int, fields []string) error {
		if len(fields) < 3 {
			return errors.Errorf("expected at least 3 fields, got %d", len(fields))
		}
		user, movie, err := parsePair(fields)
		if err != nil {
			return err
		}
		rating, err := strconv.ParseFloat(fields[2], 32)
		if err != nil {
			return errors.Annotate(err, "parse rating")
		}
		table.Add(user, movie, float32(rating))
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if duplicates := table.CountDuplicates(); duplicates > 0 {
		log.Logger().Warn("duplicate (user, movie) pairs accumulate in the rating matrix",
			zap.String("path", path), zap.Int("duplicates", duplicates))
	}
	return table, nil
}

// LoadPairsFromCSV reads (user, movie) query pairs from a
// delimiter-separated file. Columns are interpreted positionally.
func LoadPairsFromCSV(path, sep string, hasHeader bool) ([]Pair, error) {
	var pairs []Pair
	err := readCSV(path, sep, hasHeader, func(line int, fields []string) error {
		if len(fields) < 2 {
			return errors.Errorf("expected at least 2 fields, got %d", len(fields))
		}
		user, movie, err := parsePair(fields)
		if err != nil {
			return err
		}
		pairs = append(pairs, Pair{User: user, Movie: movie})
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return pairs, nil
}

// LoadLabelsFromCSV reads a single column of ratings from a
// delimiter-separated file.
func LoadLabelsFromCSV(path, sep string, hasHeader bool) ([]float32, error) {
	var labels []float32
	err := readCSV(path, sep, hasHeader, func(line int, fields []string) error {
		rating, err := strconv.ParseFloat(fields[0], 32)
		if err != nil {
			return errors.Annotate(err, "parse rating")
		}
		labels = append(labels, float32(rating))
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return labels, nil
}

func parsePair(fields []string) (int32, int32, error) {
	user, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return 0, 0, errors.Annotate(err, "parse user id")
	}
	movie, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return 0, 0, errors.Annotate(err, "parse movie id")
	}
	if user < 0 || movie < 0 {
		return 0, 0, errors.Errorf("negative id in (%d, %d)", user, movie)
	}
	return int32(user), int32(movie), nil
}

func readCSV(path, sep string, hasHeader bool, handler func(line int, fields []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	var handlerErr error
	scanner := bufio.NewScanner(file)
	err = base.ReadLines(scanner, sep, func(line int, fields []string) bool {
		if hasHeader && line == 0 {
			return true
		}
		if len(fields) == 1 && fields[0] == "" {
			// trailing empty line
			return true
		}
		if err := handler(line, fields); err != nil {
			handlerErr = errors.Annotatef(err, "%s:%d", path, line+1)
			return false
		}
		return true
	})
	if err != nil {
		return errors.Trace(err)
	}
	return handlerErr
}
