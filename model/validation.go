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
	"math"
	"reflect"
	"time"

	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/zhenghaoz/filmrate/base"
	"github.com/zhenghaoz/filmrate/dataset"
	"gonum.org/v1/gonum/stat"
)

// CrossValidateResult contains the scores of one evaluator over all folds.
type CrossValidateResult struct {
	TestScore []float64
	FitTime   []time.Duration
	TestTime  []time.Duration
}

// MeanAndMargin returns the mean and the margin of cross validation scores.
func (cv CrossValidateResult) MeanAndMargin() (float64, float64) {
	mean := stat.Mean(cv.TestScore, nil)
	margin := 0.0
	for _, score := range cv.TestScore {
		temp := math.Abs(score - mean)
		if temp > margin {
			margin = temp
		}
	}
	return mean, margin
}

// Clone creates a fresh model of the same type carrying a copy of the
// hyper-parameters but no weights.
func Clone(m Regressor) Regressor {
	cp := reflect.New(reflect.TypeOf(m).Elem()).Interface().(Regressor)
	cp.SetParams(m.GetParams().Copy())
	return cp
}

// CrossValidate evaluates a model by k-fold cross validation. A fresh clone
// of the estimator is fitted per fold. One result is returned per evaluator,
// each holding one score per fold.
func CrossValidate(ctx context.Context, estimator Regressor, x *base.CSRMatrix, y []float32, folds int, seed int64,
	config *FitConfig, evaluators ...Evaluator) ([]CrossValidateResult, error) {
	if len(evaluators) == 0 {
		return nil, errors.New("no evaluator")
	}
	results := make([]CrossValidateResult, len(evaluators))
	trainFolds, testFolds := dataset.KFold(x.NumRows, folds, seed)
	for i := 0; i < folds; i++ {
		trainX, err := x.SliceRows(trainFolds[i])
		if err != nil {
			return nil, errors.Trace(err)
		}
		testX, err := x.SliceRows(testFolds[i])
		if err != nil {
			return nil, errors.Trace(err)
		}
		trainY := gather(y, trainFolds[i])
		testY := gather(y, testFolds[i])
		cp := Clone(estimator)
		fitStart := time.Now()
		if err := cp.Fit(ctx, trainX, trainY, config); err != nil {
			return nil, errors.Trace(err)
		}
		fitTime := time.Since(fitStart)
		testStart := time.Now()
		predictions, err := cp.Predict(testX)
		if err != nil {
			return nil, errors.Trace(err)
		}
		testTime := time.Since(testStart)
		for j, evaluator := range evaluators {
			results[j].TestScore = append(results[j].TestScore, float64(evaluator(predictions, testY)))
			results[j].FitTime = append(results[j].FitTime, fitTime)
			results[j].TestTime = append(results[j].TestTime, testTime)
		}
	}
	return results, nil
}

// ModelSelectionResult contains the return of hyper-parameter search.
type ModelSelectionResult struct {
	BestScore  float64
	BestParams Params
	BestIndex  int
	CVResults  []CrossValidateResult
	AllParams  []Params
}

// GridSearchCV finds the best hyper-parameters for a model by exhausting the
// grid. Scores come from k-fold cross validation with the given evaluator.
func GridSearchCV(ctx context.Context, estimator Regressor, x *base.CSRMatrix, y []float32, grid ParamsGrid,
	folds int, seed int64, config *FitConfig, evaluator Evaluator) (ModelSelectionResult, error) {
	paramNames := make([]ParamName, 0, len(grid))
	for paramName := range grid {
		paramNames = append(paramNames, paramName)
	}
	result := ModelSelectionResult{
		BestScore: math.Inf(1),
		BestIndex: -1,
	}
	bar := progressbar.Default(int64(grid.NumCombinations()), "grid search")
	var dfs func(deep int, params Params) error
	dfs = func(deep int, params Params) error {
		if deep == len(paramNames) {
			cp := Clone(estimator)
			cp.SetParams(cp.GetParams().Overwrite(params))
			cvResults, err := CrossValidate(ctx, cp, x, y, folds, seed, config, evaluator)
			if err != nil {
				return errors.Trace(err)
			}
			result.CVResults = append(result.CVResults, cvResults[0])
			result.AllParams = append(result.AllParams, params.Copy())
			score := stat.Mean(cvResults[0].TestScore, nil)
			if score < result.BestScore {
				result.BestScore = score
				result.BestParams = params.Copy()
				result.BestIndex = len(result.AllParams) - 1
			}
			return errors.Trace(bar.Add(1))
		}
		paramName := paramNames[deep]
		for _, val := range grid[paramName] {
			params[paramName] = val
			if err := dfs(deep+1, params); err != nil {
				return errors.Trace(err)
			}
		}
		return nil
	}
	if err := dfs(0, Params{}); err != nil {
		return ModelSelectionResult{}, errors.Trace(err)
	}
	if err := bar.Finish(); err != nil {
		return ModelSelectionResult{}, errors.Trace(err)
	}
	return result, nil
}

// RandomSearchCV searches hyper-parameters by random draws from the grid.
func RandomSearchCV(ctx context.Context, estimator Regressor, x *base.CSRMatrix, y []float32, grid ParamsGrid,
	trials, folds int, seed int64, config *FitConfig, evaluator Evaluator) (ModelSelectionResult, error) {
	rng := base.NewRandomGenerator(seed)
	result := ModelSelectionResult{
		BestScore: math.Inf(1),
		BestIndex: -1,
	}
	bar := progressbar.Default(int64(trials), "random search")
	for i := 0; i < trials; i++ {
		params := Params{}
		for paramName, values := range grid {
			params[paramName] = values[rng.Intn(len(values))]
		}
		cp := Clone(estimator)
		cp.SetParams(cp.GetParams().Overwrite(params))
		cvResults, err := CrossValidate(ctx, cp, x, y, folds, seed, config, evaluator)
		if err != nil {
			return ModelSelectionResult{}, errors.Trace(err)
		}
		result.CVResults = append(result.CVResults, cvResults[0])
		result.AllParams = append(result.AllParams, params.Copy())
		score := stat.Mean(cvResults[0].TestScore, nil)
		if score < result.BestScore {
			result.BestScore = score
			result.BestParams = params.Copy()
			result.BestIndex = len(result.AllParams) - 1
		}
		if err := bar.Add(1); err != nil {
			return ModelSelectionResult{}, errors.Trace(err)
		}
	}
	if err := bar.Finish(); err != nil {
		return ModelSelectionResult{}, errors.Trace(err)
	}
	return result, nil
}

func gather(values []float32, indices []int32) []float32 {
	out := make([]float32, len(indices))
	for i, p := range indices {
		out[i] = values[p]
	}
	return out
}
