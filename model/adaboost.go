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
	"sort"
	"time"

	"github.com/c-bata/goptuna"
	"github.com/chewxy/math32"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/zhenghaoz/filmrate/base"
	"github.com/zhenghaoz/filmrate/base/log"
	"go.uber.org/zap"
)

// AdaBoost implements the AdaBoost.R2 boosting scheme over regression
// trees. Each stage fits a tree on a bootstrap sample drawn with the current
// weights and the final prediction is the weighted median of the stages.
type AdaBoost struct {
	BaseModel
	trees       []*DecisionTree
	treeWeights []float32
	// Hyper-parameters
	nEstimators int
	lr          float32
}

// NewAdaBoost creates an AdaBoost.R2 regressor.
func NewAdaBoost(params Params) *AdaBoost {
	a := new(AdaBoost)
	a.SetParams(params)
	return a
}

// SetParams sets hyper-parameters for AdaBoost.
func (a *AdaBoost) SetParams(params Params) {
	a.BaseModel.SetParams(params)
	a.nEstimators = a.Params.GetInt(NEstimators, 50)
	a.lr = a.Params.GetFloat32(Lr, 1)
}

func (a *AdaBoost) GetParamsGrid() ParamsGrid {
	return ParamsGrid{
		NEstimators: []interface{}{10, 50, 100},
		Lr:          []interface{}{0.1, 0.5, 1.0},
		MaxDepth:    []interface{}{3, 6, 9},
	}
}

func (a *AdaBoost) SuggestParams(trial goptuna.Trial) Params {
	return Params{
		NEstimators: lo.Must(trial.SuggestDiscreteFloat(string(NEstimators), 10, 100, 10)),
		Lr:          lo.Must(trial.SuggestDiscreteFloat(string(Lr), 0.1, 1, 0.1)),
		MaxDepth:    lo.Must(trial.SuggestDiscreteFloat(string(MaxDepth), 3, 9, 3)),
	}
}

func (a *AdaBoost) Clear() {
	a.trees = nil
	a.treeWeights = nil
}

// Fit runs boosting stages until nEstimators trees are fitted, the training
// set is predicted perfectly, or the weighted loss of a stage reaches 0.5.
func (a *AdaBoost) Fit(ctx context.Context, x *base.CSRMatrix, y []float32, config *FitConfig) error {
	config = config.LoadDefaultIfNil()
	if x.NumRows != len(y) {
		return errors.Errorf("sample count %d doesn't match target count %d", x.NumRows, len(y))
	}
	if x.NumRows == 0 {
		return errors.New("empty training set")
	}
	start := time.Now()
	a.Clear()
	weights := make([]float64, x.NumRows)
	for i := range weights {
		weights[i] = 1 / float64(x.NumRows)
	}
	for stage := 0; stage < a.nEstimators; stage++ {
		if err := ctx.Err(); err != nil {
			return errors.Trace(err)
		}
		indices := a.weightedBootstrap(weights)
		sampleX, err := x.SliceRows(indices)
		if err != nil {
			return errors.Trace(err)
		}
		sampleY := make([]float32, len(indices))
		for j, p := range indices {
			sampleY[j] = y[p]
		}
		tree := NewDecisionTree(a.Params.Overwrite(Params{RandomState: a.rng.Int63()}))
		if err := tree.Fit(ctx, sampleX, sampleY, NewFitConfig()); err != nil {
			return errors.Trace(err)
		}
		predictions, err := tree.Predict(x)
		if err != nil {
			return errors.Trace(err)
		}
		// linear loss normalized by the largest error
		losses := make([]float64, x.NumRows)
		var maxError float64
		for i := range losses {
			losses[i] = float64(math32.Abs(predictions[i] - y[i]))
			if losses[i] > maxError {
				maxError = losses[i]
			}
		}
		if maxError == 0 {
			// perfect fit
			a.trees = append(a.trees, tree)
			a.treeWeights = append(a.treeWeights, 1)
			break
		}
		var loss float64
		for i := range losses {
			losses[i] /= maxError
			loss += weights[i] * losses[i]
		}
		if loss >= 0.5 {
			if len(a.trees) == 0 {
				a.trees = append(a.trees, tree)
				a.treeWeights = append(a.treeWeights, 1)
			}
			break
		}
		beta := loss / (1 - loss)
		a.trees = append(a.trees, tree)
		a.treeWeights = append(a.treeWeights, a.lr*float32(math.Log(1/beta)))
		// re-weight towards hard samples
		var total float64
		for i := range weights {
			weights[i] *= math.Pow(beta, (1-losses[i])*float64(a.lr))
			total += weights[i]
		}
		for i := range weights {
			weights[i] /= total
		}
	}
	if config.Verbose > 0 {
		log.Logger().Info("fit adaboost",
			zap.Int("n_estimators", len(a.trees)),
			zap.Duration("fit_time", time.Since(start)))
	}
	return nil
}

// weightedBootstrap draws sample positions with replacement following the
// cumulative weight distribution.
func (a *AdaBoost) weightedBootstrap(weights []float64) []int32 {
	cdf := make([]float64, len(weights))
	var cum float64
	for i, w := range weights {
		cum += w
		cdf[i] = cum
	}
	indices := make([]int32, len(weights))
	for i := range indices {
		p := a.rng.Float64() * cum
		indices[i] = int32(sort.SearchFloat64s(cdf, p))
		if indices[i] >= int32(len(weights)) {
			indices[i] = int32(len(weights)) - 1
		}
	}
	return indices
}

// Predict returns the weighted median of the stage predictions for each row.
func (a *AdaBoost) Predict(x *base.CSRMatrix) ([]float32, error) {
	if a.trees == nil {
		return nil, errors.New("model is not fitted")
	}
	stagePredictions := make([][]float32, len(a.trees))
	for i, tree := range a.trees {
		predictions, err := tree.Predict(x)
		if err != nil {
			return nil, errors.Trace(err)
		}
		stagePredictions[i] = predictions
	}
	var halfWeight float32
	for _, w := range a.treeWeights {
		halfWeight += w
	}
	halfWeight /= 2
	predictions := make([]float32, x.NumRows)
	order := make([]int, len(a.trees))
	for i := range predictions {
		for j := range order {
			order[j] = j
		}
		sort.Slice(order, func(p, q int) bool {
			return stagePredictions[order[p]][i] < stagePredictions[order[q]][i]
		})
		var cum float32
		for _, j := range order {
			cum += a.treeWeights[j]
			if cum >= halfWeight {
				predictions[i] = stagePredictions[j][i]
				break
			}
		}
	}
	return predictions, nil
}
