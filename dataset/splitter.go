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

package dataset

import "math/rand"

// Split shuffles the table and splits it into a train set and a test set.
// The test set holds floor(count * testRatio) triplets.
func (t *Table) Split(testRatio float64, seed int64) (train, test *Table) {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(t.Count())
	testSize := int(float64(t.Count()) * testRatio)
	test = t.SubSet(perm[:testSize])
	train = t.SubSet(perm[testSize:])
	return
}

// KFold shuffles n sample positions and partitions them into k folds. The
// i-th fold pairs the positions outside fold i for training with the
// positions inside fold i for testing. The first n % k test folds receive
// one extra position.
func KFold(n, k int, seed int64) (trainIndices, testIndices [][]int32) {
	trainIndices = make([][]int32, k)
	testIndices = make([][]int32, k)
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	foldSize := n / k
	begin, end := 0, 0
	for i := 0; i < k; i++ {
		end += foldSize
		if i < n%k {
			end++
		}
		testIndices[i] = make([]int32, 0, end-begin)
		for _, p := range perm[begin:end] {
			testIndices[i] = append(testIndices[i], int32(p))
		}
		trainIndices[i] = make([]int32, 0, n-(end-begin))
		for _, p := range perm[:begin] {
			trainIndices[i] = append(trainIndices[i], int32(p))
		}
		for _, p := range perm[end:] {
			trainIndices[i] = append(trainIndices[i], int32(p))
		}
		begin = end
	}
	return
}
