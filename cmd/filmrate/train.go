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
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/zhenghaoz/filmrate/base/log"
	"github.com/zhenghaoz/filmrate/dataset"
	"github.com/zhenghaoz/filmrate/model"
	"github.com/zhenghaoz/filmrate/submission"
	"go.uber.org/zap"
)

func init() {
	rootCommand.AddCommand(trainCommand)
}

var trainCommand = &cobra.Command{
	Use:   "train",
	Short: "Train a rating model and write a submission",
	Run: func(cmd *cobra.Command, args []string) {
		conf := setup(cmd)
		table, err := loadTable(conf)
		if err != nil {
			log.Logger().Fatal("failed to load training set", zap.Error(err))
		}
		numUsers, numMovies := dimensions(conf, table)
		trainTable, testTable := table.Split(conf.Train.TestRatio, conf.Train.Seed)
		trainX, trainY, err := buildFeatures(trainTable, numUsers, numMovies)
		if err != nil {
			log.Logger().Fatal("failed to build training features", zap.Error(err))
		}
		m, err := model.NewRegressor(conf.Model.Type, conf.Model.Params.ToParams())
		if err != nil {
			log.Logger().Fatal("failed to create model", zap.Error(err))
		}
		fitConfig := model.NewFitConfig().
			SetJobs(conf.Train.Jobs).
			SetVerbose(conf.Train.Verbose)
		start := time.Now()
		if err = m.Fit(context.Background(), trainX, trainY, fitConfig); err != nil {
			log.Logger().Fatal("failed to fit model", zap.Error(err))
		}
		log.Logger().Info("fit model",
			zap.String("model", conf.Model.Type),
			zap.Duration("fit_time", time.Since(start)))
		// score on both splits to expose overfitting
		trainScore, err := model.EvaluateRegressor(m, trainX, trainY)
		if err != nil {
			log.Logger().Fatal("failed to evaluate model", zap.Error(err))
		}
		testX, testY, err := buildFeatures(testTable, numUsers, numMovies)
		if err != nil {
			log.Logger().Fatal("failed to build test features", zap.Error(err))
		}
		testScore, err := model.EvaluateRegressor(m, testX, testY)
		if err != nil {
			log.Logger().Fatal("failed to evaluate model", zap.Error(err))
		}
		printScore(conf.Model.Type, trainScore, testScore)
		// predict the query pairs against the full training set
		if conf.Data.TestPairs != "" {
			pairs, err := dataset.LoadPairsFromCSV(conf.Data.TestPairs, conf.Data.Separator, conf.Data.HasHeader)
			if err != nil {
				log.Logger().Fatal("failed to load query pairs", zap.Error(err))
			}
			ratingMatrix := dataset.BuildRatingMatrix(table, numUsers, numMovies)
			queryX, err := dataset.BuildFeatures(ratingMatrix, pairs)
			if err != nil {
				log.Logger().Fatal("failed to build query features", zap.Error(err))
			}
			predictions, err := m.Predict(queryX)
			if err != nil {
				log.Logger().Fatal("failed to predict", zap.Error(err))
			}
			path := submission.TimestampedPath(conf.Output.Dir, conf.Output.Name, time.Now())
			if err = submission.WriteFile(path, pairs, predictions); err != nil {
				log.Logger().Fatal("failed to write submission", zap.Error(err))
			}
			fmt.Println("submission written to", path)
		}
	},
}

func printScore(modelType string, trainScore, testScore model.Score) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Model", "Split", "MSE", "RMSE", "MAE"})
	for _, row := range []struct {
		split string
		score model.Score
	}{
		{"train", trainScore},
		{"test", testScore},
	} {
		table.Append([]string{
			modelType,
			row.split,
			fmt.Sprintf("%.6f", row.score.MSE),
			fmt.Sprintf("%.6f", row.score.RMSE),
			fmt.Sprintf("%.6f", row.score.MAE),
		})
	}
	table.Render()
}
