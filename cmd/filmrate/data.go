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

package main

import (
	"github.com/juju/errors"
	"github.com/zhenghaoz/filmrate/base"
	"github.com/zhenghaoz/filmrate/base/log"
	"github.com/zhenghaoz/filmrate/config"
	"github.com/zhenghaoz/filmrate/dataset"
	"go.uber.org/zap"
)

// loadTable loads the training triplets following the configuration: a
// built-in dataset, a triplet file, or a pair file joined with a label file.
func loadTable(conf *config.Config) (*dataset.Table, error) {
	var table *dataset.Table
	var err error
	switch {
	case conf.Data.BuiltIn != "":
		table, err = dataset.LoadBuiltInDataset(conf.Data.BuiltIn)
	case conf.Data.Triplets != "":
		table, err = dataset.LoadTableFromCSV(conf.Data.Triplets, conf.Data.Separator, conf.Data.HasHeader)
	default:
		var pairs []dataset.Pair
		var labels []float32
		pairs, err = dataset.LoadPairsFromCSV(conf.Data.Pairs, conf.Data.Separator, conf.Data.HasHeader)
		if err != nil {
			return nil, errors.Trace(err)
		}
		labels, err = dataset.LoadLabelsFromCSV(conf.Data.Labels, conf.Data.Separator, conf.Data.HasHeader)
		if err != nil {
			return nil, errors.Trace(err)
		}
		table, err = dataset.NewTableFromPairs(pairs, labels)
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("load training set",
		zap.Int("triplets", table.Count()),
		zap.Int("users", table.NumUsers()),
		zap.Int("movies", table.NumMovies()),
		zap.Float32("mean_rating", table.Mean()))
	return table, nil
}

// dimensions returns the rating matrix shape, preferring configured values
// over shapes inferred from the full training set. Fixing the shape up front
// keeps matrices built from different subsets aligned.
func dimensions(conf *config.Config, table *dataset.Table) (numUsers, numMovies int) {
	numUsers = conf.Data.NumUsers
	if numUsers <= 0 {
		numUsers = table.NumUsers()
	}
	numMovies = conf.Data.NumMovies
	if numMovies <= 0 {
		numMovies = table.NumMovies()
	}
	return
}

// buildFeatures assembles the learning matrix and targets of a triplet table.
func buildFeatures(table *dataset.Table, numUsers, numMovies int) (*base.CSRMatrix, []float32, error) {
	ratingMatrix := dataset.BuildRatingMatrix(table, numUsers, numMovies)
	features, err := dataset.BuildFeatures(ratingMatrix, table.Pairs())
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	return features, table.Ratings, nil
}
