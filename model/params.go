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
	"encoding/json"
	"reflect"

	"github.com/zhenghaoz/filmrate/base/log"
	"go.uber.org/zap"
)

// ParamName is the type of hyper-parameter names.
type ParamName string

// Predefined hyper-parameter names
const (
	NEstimators     ParamName = "NEstimators"     // number of base estimators in an ensemble
	MaxDepth        ParamName = "MaxDepth"        // maximum tree depth (0 means unlimited)
	MinSamplesSplit ParamName = "MinSamplesSplit" // minimum samples required to split a node
	MinSamplesLeaf  ParamName = "MinSamplesLeaf"  // minimum samples required at a leaf
	MaxFeatures     ParamName = "MaxFeatures"     // features considered per split (0 means all)
	SubSample       ParamName = "SubSample"       // bootstrap sample ratio
	K               ParamName = "K"               // number of neighbors
	Lr              ParamName = "Lr"              // learning rate
	RandomState     ParamName = "RandomState"     // random state (seed)
)

// Params stores hyper-parameters for a model. It is a map between strings
// (names) and interface{}s (values). For example, hyper-parameters for a
// random forest are given by:
//
//	model.Params{
//		model.NEstimators: 100,
//		model.MaxDepth:    10,
//	}
type Params map[ParamName]interface{}

// Copy hyper-parameters.
func (parameters Params) Copy() Params {
	newParams := make(Params)
	for k, v := range parameters {
		newParams[k] = v
	}
	return newParams
}

// GetInt gets an integer parameter by name. Returns _default if not exists
// or type doesn't match. The type will be converted if given float64 with an
// integral value since samplers produce float64.
func (parameters Params) GetInt(name ParamName, _default int) int {
	if val, exist := parameters[name]; exist {
		switch val := val.(type) {
		case int:
			return val
		case float64:
			if val == float64(int(val)) {
				return int(val)
			}
			log.Logger().Error("failed to convert parameter",
				zap.String("name", string(name)), zap.Float64("value", val))
		default:
			log.Logger().Error("unexpected parameter type",
				zap.String("name", string(name)), zap.String("type", reflect.TypeOf(val).String()))
		}
	}
	return _default
}

// GetInt64 gets an int64 parameter by name. Returns _default if not exists
// or type doesn't match. The type will be converted if given int.
func (parameters Params) GetInt64(name ParamName, _default int64) int64 {
	if val, exist := parameters[name]; exist {
		switch val := val.(type) {
		case int64:
			return val
		case int:
			return int64(val)
		default:
			log.Logger().Error("unexpected parameter type",
				zap.String("name", string(name)), zap.String("type", reflect.TypeOf(val).String()))
		}
	}
	return _default
}

// GetBool gets a bool parameter by name. Returns _default if not exists or
// type doesn't match.
func (parameters Params) GetBool(name ParamName, _default bool) bool {
	if val, exist := parameters[name]; exist {
		switch val := val.(type) {
		case bool:
			return val
		default:
			log.Logger().Error("unexpected parameter type",
				zap.String("name", string(name)), zap.String("type", reflect.TypeOf(val).String()))
		}
	}
	return _default
}

// GetFloat32 gets a float32 parameter by name. Returns _default if not
// exists or type doesn't match.
func (parameters Params) GetFloat32(name ParamName, _default float32) float32 {
	if val, exist := parameters[name]; exist {
		switch val := val.(type) {
		case float32:
			return val
		case float64:
			return float32(val)
		case int:
			return float32(val)
		default:
			log.Logger().Error("unexpected parameter type",
				zap.String("name", string(name)), zap.String("type", reflect.TypeOf(val).String()))
		}
	}
	return _default
}

// GetString gets a string parameter. Returns _default if not exists or type
// doesn't match.
func (parameters Params) GetString(name ParamName, _default string) string {
	if val, exist := parameters[name]; exist {
		switch val := val.(type) {
		case string:
			return val
		default:
			log.Logger().Error("unexpected parameter type",
				zap.String("name", string(name)), zap.String("type", reflect.TypeOf(val).String()))
		}
	}
	return _default
}

// Overwrite merges params into the current parameters. Values in params win.
func (parameters Params) Overwrite(params Params) Params {
	merged := make(Params)
	for k, v := range parameters {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}
	return merged
}

func (parameters Params) ToString() string {
	b, err := json.Marshal(parameters)
	if err != nil {
		log.Logger().Fatal("failed to marshal parameters", zap.Error(err))
	}
	return string(b)
}

// ParamsGrid contains candidate values for grid search.
type ParamsGrid map[ParamName][]interface{}

// NumCombinations returns the number of combinations in the grid.
func (grid ParamsGrid) NumCombinations() int {
	count := 1
	for _, values := range grid {
		count *= len(values)
	}
	return count
}

// Fill adds default candidates from params for names missing in the grid.
func (grid ParamsGrid) Fill(params Params) {
	for name, value := range params {
		if _, exist := grid[name]; !exist {
			grid[name] = []interface{}{value}
		}
	}
}
