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
	"github.com/zhenghaoz/filmrate/base"
)

func denseToCSR(dense [][]float32) *base.CSRMatrix {
	coo := base.NewCOOMatrix(len(dense), len(dense[0]))
	for i, row := range dense {
		for j, v := range row {
			if v != 0 {
				coo.Add(int32(i), int32(j), v)
			}
		}
	}
	return coo.ToCSR()
}

// synthetic regression data: y = 2*x0 + x1
func syntheticRegression(n int, seed int64) (*base.CSRMatrix, []float32) {
	rng := base.NewRandomGenerator(seed)
	coo := base.NewCOOMatrix(n, 5)
	y := make([]float32, n)
	for i := 0; i < n; i++ {
		row := rng.UniformVector(5, 0, 1)
		for j, v := range row {
			coo.Add(int32(i), int32(j), v)
		}
		y[i] = 2*row[0] + row[1]
	}
	return coo.ToCSR(), y
}

func TestDecisionTreeFit(t *testing.T) {
	x := denseToCSR([][]float32{{1}, {2}, {3}, {4}})
	y := []float32{0, 0, 1, 1}
	tree := NewDecisionTree(nil)
	err := tree.Fit(context.Background(), x, y, nil)
	assert.NoError(t, err)
	predictions, err := tree.Predict(x)
	assert.NoError(t, err)
	assert.Equal(t, y, predictions)
}

func TestDecisionTreeStump(t *testing.T) {
	x := denseToCSR([][]float32{{1}, {2}, {3}, {4}})
	y := []float32{0, 1, 2, 3}
	tree := NewDecisionTree(Params{MaxDepth: 1})
	err := tree.Fit(context.Background(), x, y, nil)
	assert.NoError(t, err)
	predictions, err := tree.Predict(x)
	assert.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5, 2.5, 2.5}, predictions)
}

func TestDecisionTreeConstantTarget(t *testing.T) {
	x := denseToCSR([][]float32{{1}, {2}, {3}})
	y := []float32{7, 7, 7}
	tree := NewDecisionTree(nil)
	err := tree.Fit(context.Background(), x, y, nil)
	assert.NoError(t, err)
	predictions, err := tree.Predict(x)
	assert.NoError(t, err)
	assert.Equal(t, []float32{7, 7, 7}, predictions)
}

func TestDecisionTreeMinSamplesLeaf(t *testing.T) {
	x := denseToCSR([][]float32{{1}, {2}, {3}, {4}})
	y := []float32{0, 1, 2, 3}
	tree := NewDecisionTree(Params{MinSamplesLeaf: 2})
	err := tree.Fit(context.Background(), x, y, nil)
	assert.NoError(t, err)
	predictions, err := tree.Predict(x)
	assert.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5, 2.5, 2.5}, predictions)
}

func TestDecisionTreeErrors(t *testing.T) {
	tree := NewDecisionTree(nil)
	_, err := tree.Predict(denseToCSR([][]float32{{1}}))
	assert.Error(t, err)
	x := denseToCSR([][]float32{{1}, {2}})
	assert.Error(t, tree.Fit(context.Background(), x, []float32{1}, nil))
	assert.NoError(t, tree.Fit(context.Background(), x, []float32{1, 2}, nil))
	_, err = tree.Predict(denseToCSR([][]float32{{1, 2}}))
	assert.Error(t, err)
}

func TestDecisionTreeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	x, y := syntheticRegression(100, 0)
	tree := NewDecisionTree(nil)
	assert.Error(t, tree.Fit(ctx, x, y, nil))
}

func TestDecisionTreeSynthetic(t *testing.T) {
	x, y := syntheticRegression(200, 0)
	tree := NewDecisionTree(nil)
	err := tree.Fit(context.Background(), x, y, nil)
	assert.NoError(t, err)
	predictions, err := tree.Predict(x)
	assert.NoError(t, err)
	// a fully grown tree reproduces its training targets
	assert.Less(t, MSE(predictions, y), float32(1e-6))
}
