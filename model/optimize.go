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

package model

import (
	"context"

	"github.com/c-bata/goptuna"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/zhenghaoz/filmrate/base"
)

type ModelCreator func() Regressor

// SearchResult is the best model found by a search.
type SearchResult struct {
	Type   string
	Params Params
	Score  Score
}

// ModelSearch searches model types and hyper-parameters with a goptuna
// sampler. Scores come from a held-out test set and lower MSE wins.
type ModelSearch struct {
	modelCreators map[string]ModelCreator
	modelTypes    []string
	trainX        *base.CSRMatrix
	trainY        []float32
	testX         *base.CSRMatrix
	testY         []float32
	config        *FitConfig
	result        SearchResult
	found         bool
}

func NewModelSearch(models map[string]ModelCreator, trainX *base.CSRMatrix, trainY []float32,
	testX *base.CSRMatrix, testY []float32, config *FitConfig) *ModelSearch {
	return &ModelSearch{
		modelCreators: models,
		modelTypes:    lo.Keys(models),
		trainX:        trainX,
		trainY:        trainY,
		testX:         testX,
		testY:         testY,
		config:        config,
	}
}

func (ms *ModelSearch) Objective(trial goptuna.Trial) (float64, error) {
	if len(ms.modelCreators) == 0 {
		return 0, errors.New("no model to search")
	}
	modelType, err := trial.SuggestCategorical("Model", ms.modelTypes)
	if err != nil {
		return 0, errors.Trace(err)
	}
	m := ms.modelCreators[modelType]()
	m.SetParams(m.GetParams().Overwrite(m.SuggestParams(trial)))
	if err := m.Fit(context.Background(), ms.trainX, ms.trainY, ms.config); err != nil {
		return 0, errors.Trace(err)
	}
	score, err := EvaluateRegressor(m, ms.testX, ms.testY)
	if err != nil {
		return 0, errors.Trace(err)
	}
	if !ms.found || score.BetterThan(ms.result.Score) {
		ms.result = SearchResult{
			Type:   modelType,
			Params: m.GetParams(),
			Score:  score,
		}
		ms.found = true
	}
	return float64(score.MSE), nil
}

func (ms *ModelSearch) Result() SearchResult {
	return ms.result
}
