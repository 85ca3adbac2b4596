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
	"github.com/zhenghaoz/filmrate/common/floats"
	"github.com/zhenghaoz/filmrate/common/heap"
	"github.com/zhenghaoz/filmrate/common/parallel"
)

// KNN predicts the mean target of the k nearest training rows by euclidean
// distance.
type KNN struct {
	BaseModel
	trainX *base.CSRMatrix
	trainY []float32
	norms  []float32
	jobs   int
	// Hyper-parameters
	k int
}

// NewKNN creates a k-nearest-neighbors regressor.
func NewKNN(params Params) *KNN {
	k := new(KNN)
	k.SetParams(params)
	return k
}

// SetParams sets hyper-parameters for KNN.
func (knn *KNN) SetParams(params Params) {
	knn.BaseModel.SetParams(params)
	knn.k = knn.Params.GetInt(K, 5)
	if knn.k < 1 {
		knn.k = 1
	}
}

func (knn *KNN) GetParamsGrid() ParamsGrid {
	return ParamsGrid{
		K: []interface{}{3, 5, 10, 20, 50},
	}
}

func (knn *KNN) SuggestParams(trial goptuna.Trial) Params {
	return Params{
		K: lo.Must(trial.SuggestDiscreteFloat(string(K), 1, 50, 1)),
	}
}

func (knn *KNN) Clear() {
	knn.trainX = nil
	knn.trainY = nil
	knn.norms = nil
}

// Fit stores the training rows and precomputes their squared norms.
func (knn *KNN) Fit(_ context.Context, x *base.CSRMatrix, y []float32, config *FitConfig) error {
	config = config.LoadDefaultIfNil()
	knn.jobs = config.Jobs
	if knn.jobs < 1 {
		knn.jobs = 1
	}
	if x.NumRows != len(y) {
		return errors.Errorf("sample count %d doesn't match target count %d", x.NumRows, len(y))
	}
	if x.NumRows == 0 {
		return errors.New("empty training set")
	}
	knn.trainX = x
	knn.trainY = y
	knn.norms = make([]float32, x.NumRows)
	for i := range knn.norms {
		knn.norms[i] = x.Row(i).SquaredNorm()
	}
	return nil
}

// Predict averages the targets of the k nearest training rows for each row
// of x.
func (knn *KNN) Predict(x *base.CSRMatrix) ([]float32, error) {
	if knn.trainX == nil {
		return nil, errors.New("model is not fitted")
	}
	if x.NumCols != knn.trainX.NumCols {
		return nil, errors.Errorf("feature count %d doesn't match training feature count %d", x.NumCols, knn.trainX.NumCols)
	}
	predictions := make([]float32, x.NumRows)
	parallel.For(x.NumRows, knn.jobs, func(i int) {
		row := x.Row(i)
		norm := row.SquaredNorm()
		neighbors := heap.NewTopKFilter[int, float32](knn.k)
		for j := 0; j < knn.trainX.NumRows; j++ {
			// d^2 = |a|^2 + |b|^2 - 2 a.b
			distance := norm + knn.norms[j] - 2*row.Dot(knn.trainX.Row(j))
			if distance < 0 {
				distance = 0
			}
			neighbors.Push(j, -distance)
		}
		indices := neighbors.PopAllValues()
		targets := make([]float32, len(indices))
		for t, j := range indices {
			targets[t] = knn.trainY[j]
		}
		predictions[i] = floats.Mean(targets)
	})
	return predictions, nil
}
