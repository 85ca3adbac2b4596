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
	"github.com/chewxy/math32"
	"github.com/zhenghaoz/filmrate/common/floats"
)

// Evaluator measures the distance between predictions and ground truth.
// Lower is better. All evaluators return 0 on empty input.
type Evaluator func(predictions, truth []float32) float32

// MSE is the mean squared error.
func MSE(predictions, truth []float32) float32 {
	if len(predictions) == 0 {
		return 0
	}
	residuals := make([]float32, len(predictions))
	floats.SubTo(predictions, truth, residuals)
	return floats.Dot(residuals, residuals) / float32(len(residuals))
}

// RMSE is the root mean squared error.
func RMSE(predictions, truth []float32) float32 {
	return math32.Sqrt(MSE(predictions, truth))
}

// MAE is the mean absolute error.
func MAE(predictions, truth []float32) float32 {
	if len(predictions) == 0 {
		return 0
	}
	residuals := make([]float32, len(predictions))
	floats.SubTo(predictions, truth, residuals)
	for i := range residuals {
		residuals[i] = math32.Abs(residuals[i])
	}
	return floats.Mean(residuals)
}
