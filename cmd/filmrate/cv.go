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

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/zhenghaoz/filmrate/base/log"
	"github.com/zhenghaoz/filmrate/model"
	"go.uber.org/zap"
)

func init() {
	rootCommand.AddCommand(cvCommand)
}

var cvCommand = &cobra.Command{
	Use:   "cv",
	Short: "Cross validate a rating model",
	Run: func(cmd *cobra.Command, args []string) {
		conf := setup(cmd)
		table, err := loadTable(conf)
		if err != nil {
			log.Logger().Fatal("failed to load training set", zap.Error(err))
		}
		numUsers, numMovies := dimensions(conf, table)
		x, y, err := buildFeatures(table, numUsers, numMovies)
		if err != nil {
			log.Logger().Fatal("failed to build features", zap.Error(err))
		}
		m, err := model.NewRegressor(conf.Model.Type, conf.Model.Params.ToParams())
		if err != nil {
			log.Logger().Fatal("failed to create model", zap.Error(err))
		}
		fitConfig := model.NewFitConfig().
			SetJobs(conf.Train.Jobs).
			SetVerbose(conf.Train.Verbose)
		results, err := model.CrossValidate(context.Background(), m, x, y,
			conf.Tune.Folds, conf.Train.Seed, fitConfig, model.MSE, model.RMSE, model.MAE)
		if err != nil {
			log.Logger().Fatal("failed to cross validate", zap.Error(err))
		}
		out := tablewriter.NewWriter(os.Stdout)
		out.SetHeader([]string{"Metric", "Mean", "Margin"})
		for i, name := range []string{"MSE", "RMSE", "MAE"} {
			mean, margin := results[i].MeanAndMargin()
			out.Append([]string{name, fmt.Sprintf("%.6f", mean), fmt.Sprintf("%.6f", margin)})
		}
		out.Render()
	},
}
