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

package base

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_UniformVector(t *testing.T) {
	rng := NewRandomGenerator(0)
	vec := rng.UniformVector(1000, 1, 2)
	assert.Len(t, vec, 1000)
	for _, v := range vec {
		assert.GreaterOrEqual(t, v, float32(1))
		assert.Less(t, v, float32(2))
	}
}

func TestRandomGenerator_Sample(t *testing.T) {
	rng := NewRandomGenerator(42)
	sampled := rng.Sample(0, 100, 10)
	assert.Len(t, sampled, 10)
	seen := mapset.NewSet[int]()
	for _, v := range sampled {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 100)
		assert.False(t, seen.Contains(v))
		seen.Add(v)
	}
	// sampling more than available returns everything not excluded
	exclude := mapset.NewSet(0, 1)
	sampled = rng.Sample(0, 5, 10, exclude)
	assert.ElementsMatch(t, []int{2, 3, 4}, sampled)
}

func TestRandomGenerator_Deterministic(t *testing.T) {
	a := NewRandomGenerator(7).NormalVector(32, 0, 1)
	b := NewRandomGenerator(7).NormalVector(32, 0, 1)
	assert.Equal(t, a, b)
}
