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

package config

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/zhenghaoz/filmrate/model"
)

// Validate reports the first invalid setting.
func (config *Config) Validate() error {
	if config.Data.BuiltIn == "" && config.Data.Triplets == "" &&
		(config.Data.Pairs == "" || config.Data.Labels == "") {
		return errors.New("one of `data.built_in`, `data.triplets` or `data.pairs` with `data.labels` is required")
	}
	if config.Data.Separator == "" {
		return errors.New("`data.separator` must not be empty")
	}
	if err := validateIn("model.type", config.Model.Type,
		model.TypeDecisionTree, model.TypeRandomForest, model.TypeAdaBoost, model.TypeKNN); err != nil {
		return errors.Trace(err)
	}
	if err := validateIn("tune.method", config.Tune.Method, "grid", "random", "tpe"); err != nil {
		return errors.Trace(err)
	}
	if err := validatePositive("train.jobs", config.Train.Jobs); err != nil {
		return errors.Trace(err)
	}
	if err := validatePositive("tune.folds", config.Tune.Folds); err != nil {
		return errors.Trace(err)
	}
	if err := validatePositive("tune.trials", config.Tune.Trials); err != nil {
		return errors.Trace(err)
	}
	if config.Train.TestRatio <= 0 || config.Train.TestRatio >= 1 {
		return errors.Errorf("value of `train.test_ratio` must be in (0, 1), but the current value is %v",
			config.Train.TestRatio)
	}
	return nil
}

func validatePositive(name string, val int) error {
	if val <= 0 {
		return errors.Errorf("value of `%s` must be positive, but the current value is %d", name, val)
	}
	return nil
}

func validateIn(name, val string, expectedValues ...string) error {
	expectedValueSet := mapset.NewSet[string](expectedValues...)
	if !expectedValueSet.Contains(val) {
		return errors.Errorf("value of `%s` must be one of [%s], but the current value is %s",
			name, strings.Join(expectedValues, ","), val)
	}
	return nil
}
