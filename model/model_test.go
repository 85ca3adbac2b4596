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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegressor(t *testing.T) {
	m, err := NewRegressor(TypeDecisionTree, Params{MaxDepth: 4})
	assert.NoError(t, err)
	assert.IsType(t, &DecisionTree{}, m)
	assert.Equal(t, 4, m.GetParams().GetInt(MaxDepth, 0))
	m, err = NewRegressor(TypeRandomForest, nil)
	assert.NoError(t, err)
	assert.IsType(t, &RandomForest{}, m)
	m, err = NewRegressor(TypeAdaBoost, nil)
	assert.NoError(t, err)
	assert.IsType(t, &AdaBoost{}, m)
	m, err = NewRegressor(TypeKNN, nil)
	assert.NoError(t, err)
	assert.IsType(t, &KNN{}, m)
	_, err = NewRegressor("svd", nil)
	assert.Error(t, err)
}

func TestEvaluators(t *testing.T) {
	predictions := []float32{1, 2, 3}
	truth := []float32{1, 2, 5}
	assert.InDelta(t, 4.0/3, MSE(predictions, truth), 1e-6)
	assert.InDelta(t, 1.1547, RMSE(predictions, truth), 1e-4)
	assert.InDelta(t, 2.0/3, MAE(predictions, truth), 1e-6)
}

func TestEvaluatorsEmpty(t *testing.T) {
	assert.Zero(t, MSE(nil, nil))
	assert.Zero(t, RMSE(nil, nil))
	assert.Zero(t, MAE(nil, nil))
}

func TestScore(t *testing.T) {
	a := Score{MSE: 1, RMSE: 1, MAE: 1}
	b := Score{MSE: 2, RMSE: 1.41, MAE: 1.2}
	assert.True(t, a.BetterThan(b))
	assert.False(t, b.BetterThan(a))
	assert.Len(t, a.ZapFields(), 3)
}

func TestEvaluateRegressor(t *testing.T) {
	x, y := constantTargets(5, 3)
	m := &constantRegressor{}
	m.SetParams(Params{Lr: 2.0})
	score, err := EvaluateRegressor(m, x, y)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, score.MSE, 1e-6)
	assert.InDelta(t, 1.0, score.RMSE, 1e-6)
	assert.InDelta(t, 1.0, score.MAE, 1e-6)
}
