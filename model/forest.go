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
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/c-bata/goptuna"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/zhenghaoz/filmrate/base"
	"github.com/zhenghaoz/filmrate/base/log"
	"github.com/zhenghaoz/filmrate/common/parallel"
	"go.uber.org/zap"
)

// RandomForest averages regression trees fitted on bootstrap samples.
type RandomForest struct {
	BaseModel
	trees []*DecisionTree
	// Hyper-parameters
	nEstimators int
	subSample   float32
}

// NewRandomForest creates a random forest.
func NewRandomForest(params Params) *RandomForest {
	f := new(RandomForest)
	f.SetParams(params)
	return f
}

// SetParams sets hyper-parameters for the random forest.
func (f *RandomForest) SetParams(params Params) {
	f.BaseModel.SetParams(params)
	f.nEstimators = f.Params.GetInt(NEstimators, 100)
	f.subSample = f.Params.GetFloat32(SubSample, 1)
}

func (f *RandomForest) GetParamsGrid() ParamsGrid {
	return ParamsGrid{
		NEstimators: []interface{}{10, 50, 100, 200},
		MaxDepth:    []interface{}{8, 16, 0},
		MaxFeatures: []interface{}{0, 64, 256},
	}
}

func (f *RandomForest) SuggestParams(trial goptuna.Trial) Params {
	return Params{
		NEstimators: lo.Must(trial.SuggestDiscreteFloat(string(NEstimators), 10, 200, 10)),
		MaxDepth:    lo.Must(trial.SuggestDiscreteFloat(string(MaxDepth), 0, 32, 1)),
		MaxFeatures: lo.Must(trial.SuggestDiscreteFloat(string(MaxFeatures), 0, 256, 64)),
	}
}

func (f *RandomForest) Clear() {
	f.trees = nil
}

// Fit builds nEstimators trees on bootstrap samples of x. Trees are fitted
// in parallel on config.Jobs workers. The out-of-bag error is reported when
// config.Verbose is positive.
func (f *RandomForest) Fit(ctx context.Context, x *base.CSRMatrix, y []float32, config *FitConfig) error {
	config = config.LoadDefaultIfNil()
	if x.NumRows != len(y) {
		return errors.Errorf("sample count %d doesn't match target count %d", x.NumRows, len(y))
	}
	if x.NumRows == 0 {
		return errors.New("empty training set")
	}
	start := time.Now()
	f.Clear()
	f.trees = make([]*DecisionTree, f.nEstimators)
	inBag := make([]*bitset.BitSet, f.nEstimators)
	seeds := make([]int64, f.nEstimators)
	for i := range seeds {
		seeds[i] = f.rng.Int63()
	}
	sampleSize := int(f.subSample * float32(x.NumRows))
	if sampleSize < 1 {
		sampleSize = 1
	}
	err := parallel.Parallel(ctx, f.nEstimators, config.Jobs, func(_, i int) error {
		rng := base.NewRandomGenerator(seeds[i])
		indices := make([]int32, sampleSize)
		bag := bitset.New(uint(x.NumRows))
		for j := range indices {
			p := rng.Intn(x.NumRows)
			indices[j] = int32(p)
			bag.Set(uint(p))
		}
		sampleX, err := x.SliceRows(indices)
		if err != nil {
			return errors.Trace(err)
		}
		sampleY := make([]float32, sampleSize)
		for j, p := range indices {
			sampleY[j] = y[p]
		}
		tree := NewDecisionTree(f.Params.Overwrite(Params{RandomState: seeds[i]}))
		if err := tree.Fit(ctx, sampleX, sampleY, NewFitConfig()); err != nil {
			return errors.Trace(err)
		}
		f.trees[i] = tree
		inBag[i] = bag
		return nil
	})
	if err != nil {
		return errors.Trace(err)
	}
	if config.Verbose > 0 {
		oob, err := f.outOfBagError(x, y, inBag)
		if err != nil {
			return errors.Trace(err)
		}
		log.Logger().Info("fit random forest",
			zap.Int("n_estimators", f.nEstimators),
			zap.Float32("oob_mse", oob),
			zap.Duration("fit_time", time.Since(start)))
	}
	return nil
}

// outOfBagError estimates the generalization error from samples each tree
// never saw.
func (f *RandomForest) outOfBagError(x *base.CSRMatrix, y []float32, inBag []*bitset.BitSet) (float32, error) {
	sums := make([]float32, x.NumRows)
	counts := make([]int, x.NumRows)
	for i, tree := range f.trees {
		predictions, err := tree.Predict(x)
		if err != nil {
			return 0, errors.Trace(err)
		}
		for j := range predictions {
			if !inBag[i].Test(uint(j)) {
				sums[j] += predictions[j]
				counts[j]++
			}
		}
	}
	var sse float32
	var n int
	for j := range sums {
		if counts[j] > 0 {
			diff := sums[j]/float32(counts[j]) - y[j]
			sse += diff * diff
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sse / float32(n), nil
}

// Predict averages the predictions of all trees.
func (f *RandomForest) Predict(x *base.CSRMatrix) ([]float32, error) {
	if f.trees == nil {
		return nil, errors.New("model is not fitted")
	}
	predictions := make([]float32, x.NumRows)
	for _, tree := range f.trees {
		treePredictions, err := tree.Predict(x)
		if err != nil {
			return nil, errors.Trace(err)
		}
		for i := range predictions {
			predictions[i] += treePredictions[i]
		}
	}
	for i := range predictions {
		predictions[i] /= float32(len(f.trees))
	}
	return predictions, nil
}
