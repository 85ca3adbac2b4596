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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/c-bata/goptuna"
	"github.com/c-bata/goptuna/tpe"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/zhenghaoz/filmrate/base/log"
	"github.com/zhenghaoz/filmrate/model"
	"go.uber.org/zap"
)

func init() {
	rootCommand.AddCommand(tuneCommand)
}

var tuneCommand = &cobra.Command{
	Use:   "tune",
	Short: "Search hyper-parameters for a rating model",
	Run: func(cmd *cobra.Command, args []string) {
		conf := setup(cmd)
		table, err := loadTable(conf)
		if err != nil {
			log.Logger().Fatal("failed to load training set", zap.Error(err))
		}
		numUsers, numMovies := dimensions(conf, table)
		m, err := model.NewRegressor(conf.Model.Type, conf.Model.Params.ToParams())
		if err != nil {
			log.Logger().Fatal("failed to create model", zap.Error(err))
		}
		fitConfig := model.NewFitConfig().
			SetJobs(conf.Train.Jobs).
			SetVerbose(0)
		switch conf.Tune.Method {
		case "grid", "random":
			x, y, err := buildFeatures(table, numUsers, numMovies)
			if err != nil {
				log.Logger().Fatal("failed to build features", zap.Error(err))
			}
			var result model.ModelSelectionResult
			if conf.Tune.Method == "grid" {
				result, err = model.GridSearchCV(context.Background(), m, x, y, m.GetParamsGrid(),
					conf.Tune.Folds, conf.Train.Seed, fitConfig, model.MSE)
			} else {
				result, err = model.RandomSearchCV(context.Background(), m, x, y, m.GetParamsGrid(),
					conf.Tune.Trials, conf.Tune.Folds, conf.Train.Seed, fitConfig, model.MSE)
			}
			if err != nil {
				log.Logger().Fatal("failed to search hyper-parameters", zap.Error(err))
			}
			printSearchResult(conf.Model.Type, result.BestScore, result.BestParams)
		case "tpe":
			trainTable, testTable := table.Split(conf.Train.TestRatio, conf.Train.Seed)
			trainX, trainY, err := buildFeatures(trainTable, numUsers, numMovies)
			if err != nil {
				log.Logger().Fatal("failed to build training features", zap.Error(err))
			}
			testX, testY, err := buildFeatures(testTable, numUsers, numMovies)
			if err != nil {
				log.Logger().Fatal("failed to build test features", zap.Error(err))
			}
			search := model.NewModelSearch(map[string]model.ModelCreator{
				conf.Model.Type: func() model.Regressor { return model.Clone(m) },
			}, trainX, trainY, testX, testY, fitConfig)
			study, err := goptuna.CreateStudy("filmrate",
				goptuna.StudyOptionDirection(goptuna.StudyDirectionMinimize),
				goptuna.StudyOptionSampler(tpe.NewSampler()))
			if err != nil {
				log.Logger().Fatal("failed to create study", zap.Error(err))
			}
			if err = study.Optimize(search.Objective, conf.Tune.Trials); err != nil {
				log.Logger().Fatal("failed to optimize", zap.Error(err))
			}
			result := search.Result()
			printSearchResult(result.Type, float64(result.Score.MSE), result.Params)
		}
	},
}

func printSearchResult(modelType string, bestScore float64, bestParams model.Params) {
	log.Logger().Info("search complete",
		zap.String("model", modelType),
		zap.Float64("best_mse", bestScore),
		zap.String("best_params", bestParams.ToString()))
	out := tablewriter.NewWriter(os.Stdout)
	out.SetHeader([]string{"Model", "Best MSE", "Best Params"})
	out.Append([]string{modelType, fmt.Sprintf("%.6f", bestScore), bestParams.ToString()})
	out.Render()
}
