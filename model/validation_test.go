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
	"testing"

	"github.com/c-bata/goptuna"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/zhenghaoz/filmrate/base"
)

// constantRegressor predicts the value of its Lr parameter everywhere.
type constantRegressor struct {
	BaseModel
	value float32
}

func (m *constantRegressor) SetParams(params Params) {
	m.BaseModel.SetParams(params)
	m.value = m.Params.GetFloat32(Lr, 0)
}

func (m *constantRegressor) GetParamsGrid() ParamsGrid {
	return ParamsGrid{Lr: []interface{}{1.0, 2.0, 3.0}}
}

func (m *constantRegressor) Clear() {}

func (m *constantRegressor) Fit(_ context.Context, _ *base.CSRMatrix, _ []float32, _ *FitConfig) error {
	return nil
}

func (m *constantRegressor) Predict(x *base.CSRMatrix) ([]float32, error) {
	predictions := make([]float32, x.NumRows)
	for i := range predictions {
		predictions[i] = m.value
	}
	return predictions, nil
}

func (m *constantRegressor) SuggestParams(trial goptuna.Trial) Params {
	return Params{
		Lr: lo.Must(trial.SuggestDiscreteFloat(string(Lr), 3, 3, 1)),
	}
}

func constantTargets(n int, value float32) (*base.CSRMatrix, []float32) {
	dense := make([][]float32, n)
	y := make([]float32, n)
	for i := range dense {
		dense[i] = []float32{float32(i + 1)}
		y[i] = value
	}
	return denseToCSR(dense), y
}

func TestCrossValidate(t *testing.T) {
	x, y := constantTargets(10, 3)
	m := &constantRegressor{}
	m.SetParams(Params{Lr: 2.0})
	results, err := CrossValidate(context.Background(), m, x, y, 5, 0, nil, MSE, MAE)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Len(t, results[0].TestScore, 5)
	mean, margin := results[0].MeanAndMargin()
	assert.InDelta(t, 1.0, mean, 1e-6)
	assert.InDelta(t, 0.0, margin, 1e-6)
	mean, _ = results[1].MeanAndMargin()
	assert.InDelta(t, 1.0, mean, 1e-6)
}

func TestGridSearchCV(t *testing.T) {
	x, y := constantTargets(10, 3)
	m := &constantRegressor{}
	m.SetParams(Params{})
	result, err := GridSearchCV(context.Background(), m, x, y,
		ParamsGrid{Lr: []interface{}{1.0, 2.0, 3.0, 4.0}}, 5, 0, nil, MSE)
	assert.NoError(t, err)
	assert.Equal(t, Params{Lr: 3.0}, result.BestParams)
	assert.InDelta(t, 0.0, result.BestScore, 1e-6)
	assert.Len(t, result.AllParams, 4)
	assert.Len(t, result.CVResults, 4)
	assert.Equal(t, result.AllParams[result.BestIndex], result.BestParams)
}

func TestRandomSearchCV(t *testing.T) {
	x, y := constantTargets(10, 3)
	m := &constantRegressor{}
	m.SetParams(Params{})
	result, err := RandomSearchCV(context.Background(), m, x, y,
		ParamsGrid{Lr: []interface{}{1.0, 3.0}}, 10, 5, 0, nil, MSE)
	assert.NoError(t, err)
	assert.Equal(t, Params{Lr: 3.0}, result.BestParams)
	assert.InDelta(t, 0.0, result.BestScore, 1e-6)
	assert.Len(t, result.AllParams, 10)
}

func TestClone(t *testing.T) {
	m := &constantRegressor{}
	m.SetParams(Params{Lr: 2.0})
	cp := Clone(m).(*constantRegressor)
	assert.Equal(t, float32(2), cp.value)
	cp.SetParams(Params{Lr: 4.0})
	assert.Equal(t, float32(2), m.value)
}
