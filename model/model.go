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
	"github.com/zhenghaoz/filmrate/base"
	"go.uber.org/zap"
)

// Model types supported by NewRegressor.
const (
	TypeDecisionTree = "decision_tree"
	TypeRandomForest = "random_forest"
	TypeAdaBoost     = "adaboost"
	TypeKNN          = "knn"
)

// Model is the interface for all models. Any model in this package should
// implement it.
type Model interface {
	// Set parameters.
	SetParams(params Params)
	// Get parameters.
	GetParams() Params
	// Get parameters grid.
	GetParamsGrid() ParamsGrid
	// Clear model weights.
	Clear()
}

// Regressor is a model predicting a rating from a feature vector.
type Regressor interface {
	Model
	// Fit the model on rows of x with targets y.
	Fit(ctx context.Context, x *base.CSRMatrix, y []float32, config *FitConfig) error
	// Predict a target for every row of x.
	Predict(x *base.CSRMatrix) ([]float32, error)
	// SuggestParams draws hyper-parameters from a trial.
	SuggestParams(trial goptuna.Trial) Params
}

// BaseModel must be included by every model. Hyper-parameters, the random
// generator and the random seed are managed by BaseModel.
type BaseModel struct {
	Params    Params
	rng       base.RandomGenerator
	randState int64
}

// SetParams sets hyper-parameters for the BaseModel.
func (model *BaseModel) SetParams(params Params) {
	model.Params = params
	model.randState = model.Params.GetInt64(RandomState, 0)
	model.rng = base.NewRandomGenerator(model.randState)
}

// GetParams returns all hyper-parameters.
func (model *BaseModel) GetParams() Params {
	return model.Params
}

func (model *BaseModel) GetRandomGenerator() base.RandomGenerator {
	return model.rng
}

// FitConfig carries fitting options.
type FitConfig struct {
	Jobs    int
	Verbose int
}

func NewFitConfig() *FitConfig {
	return &FitConfig{
		Jobs:    1,
		Verbose: 10,
	}
}

func (config *FitConfig) SetVerbose(verbose int) *FitConfig {
	config.Verbose = verbose
	return config
}

func (config *FitConfig) SetJobs(jobs int) *FitConfig {
	config.Jobs = jobs
	return config
}

func (config *FitConfig) LoadDefaultIfNil() *FitConfig {
	if config == nil {
		return NewFitConfig()
	}
	return config
}

// Score bundles the regression metrics of a model on a test set.
type Score struct {
	MSE  float32
	RMSE float32
	MAE  float32
}

func (score Score) ZapFields() []zap.Field {
	return []zap.Field{
		zap.Float32("MSE", score.MSE),
		zap.Float32("RMSE", score.RMSE),
		zap.Float32("MAE", score.MAE),
	}
}

func (score Score) BetterThan(s Score) bool {
	return score.MSE < s.MSE
}

// EvaluateRegressor scores a fitted model on a test set.
func EvaluateRegressor(m Regressor, x *base.CSRMatrix, y []float32) (Score, error) {
	predictions, err := m.Predict(x)
	if err != nil {
		return Score{}, errors.Trace(err)
	}
	return Score{
		MSE:  MSE(predictions, y),
		RMSE: RMSE(predictions, y),
		MAE:  MAE(predictions, y),
	}, nil
}

// NewRegressor creates a model of the given type with hyper-parameters.
func NewRegressor(modelType string, params Params) (Regressor, error) {
	var m Regressor
	switch modelType {
	case TypeDecisionTree:
		m = NewDecisionTree(params)
	case TypeRandomForest:
		m = NewRandomForest(params)
	case TypeAdaBoost:
		m = NewAdaBoost(params)
	case TypeKNN:
		m = NewKNN(params)
	default:
		return nil, errors.Errorf("unknown model type %v", modelType)
	}
	return m, nil
}
