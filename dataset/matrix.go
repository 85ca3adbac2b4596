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
	"github.com/juju/errors"
	"github.com/zhenghaoz/filmrate/base"
)

// BuildRatingMatrix assembles the sparse user-by-movie rating matrix from a
// table of triplets. When numUsers or numMovies is non-positive the
// corresponding dimension is inferred as the maximum id plus one. Triplets
// sharing the same (user, movie) coordinate are summed. A zero entry is
// indistinguishable from an unrated cell, so a literal rating of zero
// disappears from the sparse structure.
func BuildRatingMatrix(table *Table, numUsers, numMovies int) *base.CSRMatrix {
	coo := base.NewCOOMatrix(numUsers, numMovies)
	table.ForEach(func(user, movie int32, rating float32) {
		coo.Add(user, movie, rating)
	})
	return coo.ToCSR()
}

// BuildFeatures assembles the learning matrix for the given query pairs. The
// i-th output row is the user row of pair i from the rating matrix followed
// by the movie column of pair i, so each row has numMovies + numUsers
// columns. Output rows follow the order of pairs, and repeated pairs produce
// repeated rows. Pairs referencing users or movies outside the rating matrix
// are an error.
func BuildFeatures(ratingMatrix *base.CSRMatrix, pairs []Pair) (*base.CSRMatrix, error) {
	users := make([]int32, len(pairs))
	movies := make([]int32, len(pairs))
	for i, pair := range pairs {
		users[i] = pair.User
		movies[i] = pair.Movie
	}
	userFeatures, err := ratingMatrix.SliceRows(users)
	if err != nil {
		return nil, errors.Annotate(err, "gather user rows")
	}
	movieFeatures, err := ratingMatrix.ToCSC().SliceColsT(movies)
	if err != nil {
		return nil, errors.Annotate(err, "gather movie columns")
	}
	features, err := base.HStack(userFeatures, movieFeatures)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return features, nil
}
