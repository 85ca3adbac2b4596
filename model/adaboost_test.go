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

	"github.com/stretchr/testify/assert"
)

func TestAdaBoost(t *testing.T) {
	x, y := syntheticRegression(200, 0)
	boost := NewAdaBoost(Params{NEstimators: 10, MaxDepth: 6, RandomState: int64(42)})
	err := boost.Fit(context.Background(), x, y, NewFitConfig().SetVerbose(0))
	assert.NoError(t, err)
	predictions, err := boost.Predict(x)
	assert.NoError(t, err)
	var sum float32
	for _, v := range y {
		sum += v
	}
	mean := make([]float32, len(y))
	for i := range mean {
		mean[i] = sum / float32(len(y))
	}
	assert.Less(t, MSE(predictions, y), MSE(mean, y)/2)
}

func TestAdaBoostPerfectFit(t *testing.T) {
	// the first stage fits this set perfectly, boosting stops early
	x := denseToCSR([][]float32{{1}, {2}, {3}, {4}})
	y := []float32{1, 1, 1, 1}
	boost := NewAdaBoost(Params{NEstimators: 10})
	err := boost.Fit(context.Background(), x, y, NewFitConfig().SetVerbose(0))
	assert.NoError(t, err)
	assert.Len(t, boost.trees, 1)
	predictions, err := boost.Predict(x)
	assert.NoError(t, err)
	assert.Equal(t, y, predictions)
}

func TestAdaBoostErrors(t *testing.T) {
	boost := NewAdaBoost(nil)
	_, err := boost.Predict(denseToCSR([][]float32{{1}}))
	assert.Error(t, err)
	x := denseToCSR([][]float32{{1}, {2}})
	assert.Error(t, boost.Fit(context.Background(), x, []float32{1}, nil))
}
