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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams(t *testing.T) {
	p := Params{
		NEstimators: 10,
		SubSample:   0.5,
		Lr:          float64(0.1),
		RandomState: int64(42),
	}
	assert.Equal(t, 10, p.GetInt(NEstimators, 0))
	assert.Equal(t, 1, p.GetInt(MaxDepth, 1))
	assert.Equal(t, float32(0.5), p.GetFloat32(SubSample, 0))
	assert.Equal(t, float32(0.1), p.GetFloat32(Lr, 0))
	assert.Equal(t, int64(42), p.GetInt64(RandomState, 0))
	assert.Equal(t, int64(10), p.GetInt64(NEstimators, 0))
	// samplers produce float64 for integral parameters
	q := Params{MaxDepth: float64(8)}
	assert.Equal(t, 8, q.GetInt(MaxDepth, 0))
}

func TestParamsCopy(t *testing.T) {
	p := Params{NEstimators: 10}
	q := p.Copy()
	q[NEstimators] = 20
	assert.Equal(t, 10, p.GetInt(NEstimators, 0))
	assert.Equal(t, 20, q.GetInt(NEstimators, 0))
}

func TestParamsOverwrite(t *testing.T) {
	p := Params{NEstimators: 10, MaxDepth: 4}
	q := p.Overwrite(Params{MaxDepth: 8, K: 5})
	assert.Equal(t, 10, q.GetInt(NEstimators, 0))
	assert.Equal(t, 8, q.GetInt(MaxDepth, 0))
	assert.Equal(t, 5, q.GetInt(K, 0))
	// original untouched
	assert.Equal(t, 4, p.GetInt(MaxDepth, 0))
}

func TestParamsGrid(t *testing.T) {
	grid := ParamsGrid{
		NEstimators: []interface{}{10, 20},
		MaxDepth:    []interface{}{4, 8, 16},
	}
	assert.Equal(t, 6, grid.NumCombinations())
	grid.Fill(Params{MaxDepth: 2, K: 5})
	assert.Equal(t, []interface{}{4, 8, 16}, grid[MaxDepth])
	assert.Equal(t, []interface{}{5}, grid[K])
}
