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

	"github.com/juju/errors"
	"github.com/spf13/viper"
	"github.com/zhenghaoz/filmrate/model"
)

// Config is the configuration for the toolkit.
type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Model  ModelConfig  `mapstructure:"model"`
	Train  TrainConfig  `mapstructure:"train"`
	Tune   TuneConfig   `mapstructure:"tune"`
	Output OutputConfig `mapstructure:"output"`
}

// DataConfig points at the input files. Either triplets or the pairs/labels
// combination feeds the training set. built_in overrides both.
type DataConfig struct {
	Triplets  string `mapstructure:"triplets"`
	Pairs     string `mapstructure:"pairs"`
	Labels    string `mapstructure:"labels"`
	TestPairs string `mapstructure:"test_pairs"`
	BuiltIn   string `mapstructure:"built_in"`
	Separator string `mapstructure:"separator"`
	HasHeader bool   `mapstructure:"has_header"`
	NumUsers  int    `mapstructure:"num_users"`
	NumMovies int    `mapstructure:"num_movies"`
}

// ModelConfig selects a model and its hyper-parameters.
type ModelConfig struct {
	Type   string       `mapstructure:"type"`
	Params ParamsConfig `mapstructure:"params"`
}

// ParamsConfig carries hyper-parameters. Zero values fall back to the
// model's defaults.
type ParamsConfig struct {
	NEstimators     int     `mapstructure:"n_estimators"`
	MaxDepth        int     `mapstructure:"max_depth"`
	MinSamplesSplit int     `mapstructure:"min_samples_split"`
	MinSamplesLeaf  int     `mapstructure:"min_samples_leaf"`
	MaxFeatures     int     `mapstructure:"max_features"`
	SubSample       float64 `mapstructure:"sub_sample"`
	K               int     `mapstructure:"k"`
	Lr              float64 `mapstructure:"lr"`
	RandomState     int64   `mapstructure:"random_state"`
}

// ToParams converts the configured hyper-parameters, dropping zero values so
// models keep their defaults.
func (c ParamsConfig) ToParams() model.Params {
	params := model.Params{}
	if c.NEstimators > 0 {
		params[model.NEstimators] = c.NEstimators
	}
	if c.MaxDepth > 0 {
		params[model.MaxDepth] = c.MaxDepth
	}
	if c.MinSamplesSplit > 0 {
		params[model.MinSamplesSplit] = c.MinSamplesSplit
	}
	if c.MinSamplesLeaf > 0 {
		params[model.MinSamplesLeaf] = c.MinSamplesLeaf
	}
	if c.MaxFeatures > 0 {
		params[model.MaxFeatures] = c.MaxFeatures
	}
	if c.SubSample > 0 {
		params[model.SubSample] = c.SubSample
	}
	if c.K > 0 {
		params[model.K] = c.K
	}
	if c.Lr > 0 {
		params[model.Lr] = c.Lr
	}
	if c.RandomState != 0 {
		params[model.RandomState] = c.RandomState
	}
	return params
}

// TrainConfig carries fitting options.
type TrainConfig struct {
	Jobs      int     `mapstructure:"jobs"`
	Verbose   int     `mapstructure:"verbose"`
	TestRatio float64 `mapstructure:"test_ratio"`
	Seed      int64   `mapstructure:"seed"`
}

// TuneConfig carries hyper-parameter search options.
type TuneConfig struct {
	Method string `mapstructure:"method"`
	Folds  int    `mapstructure:"folds"`
	Trials int    `mapstructure:"trials"`
}

// OutputConfig controls submission files.
type OutputConfig struct {
	Dir  string `mapstructure:"dir"`
	Name string `mapstructure:"name"`
}

func setDefault() {
	viper.SetDefault("data.separator", ",")
	viper.SetDefault("data.has_header", true)
	viper.SetDefault("model.type", model.TypeRandomForest)
	viper.SetDefault("train.jobs", 1)
	viper.SetDefault("train.verbose", 10)
	viper.SetDefault("train.test_ratio", 0.2)
	viper.SetDefault("tune.method", "grid")
	viper.SetDefault("tune.folds", 5)
	viper.SetDefault("tune.trials", 10)
	viper.SetDefault("output.dir", "submissions")
	viper.SetDefault("output.name", "submission")
}

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Separator: ",",
			HasHeader: true,
		},
		Model: ModelConfig{
			Type: model.TypeRandomForest,
		},
		Train: TrainConfig{
			Jobs:      1,
			Verbose:   10,
			TestRatio: 0.2,
		},
		Tune: TuneConfig{
			Method: "grid",
			Folds:  5,
			Trials: 10,
		},
		Output: OutputConfig{
			Dir:  "submissions",
			Name: "submission",
		},
	}
}

// LoadConfig loads the configuration from a TOML file. Settings can be
// overridden by FILMRATE_ prefixed environment variables.
func LoadConfig(path string) (*Config, error) {
	setDefault()
	viper.SetConfigFile(path)
	viper.SetEnvPrefix("filmrate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	var conf Config
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}
