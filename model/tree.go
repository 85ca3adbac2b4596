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
	"sort"

	"github.com/c-bata/goptuna"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/zhenghaoz/filmrate/base"
)

type treeNode struct {
	Feature   int32
	Threshold float32
	Left      int
	Right     int
	Value     float32
	Leaf      bool
}

// DecisionTree is a regression tree splitting on variance reduction.
type DecisionTree struct {
	BaseModel
	nodes       []treeNode
	numFeatures int
	// Hyper-parameters
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int
}

// NewDecisionTree creates a regression tree.
func NewDecisionTree(params Params) *DecisionTree {
	t := new(DecisionTree)
	t.SetParams(params)
	return t
}

// SetParams sets hyper-parameters for the regression tree.
func (t *DecisionTree) SetParams(params Params) {
	t.BaseModel.SetParams(params)
	t.maxDepth = t.Params.GetInt(MaxDepth, 0)
	t.minSamplesSplit = t.Params.GetInt(MinSamplesSplit, 2)
	t.minSamplesLeaf = t.Params.GetInt(MinSamplesLeaf, 1)
	t.maxFeatures = t.Params.GetInt(MaxFeatures, 0)
}

func (t *DecisionTree) GetParamsGrid() ParamsGrid {
	return ParamsGrid{
		MaxDepth:       []interface{}{4, 8, 16, 0},
		MinSamplesLeaf: []interface{}{1, 2, 4},
	}
}

func (t *DecisionTree) SuggestParams(trial goptuna.Trial) Params {
	return Params{
		MaxDepth:       lo.Must(trial.SuggestDiscreteFloat(string(MaxDepth), 0, 32, 1)),
		MinSamplesLeaf: lo.Must(trial.SuggestDiscreteFloat(string(MinSamplesLeaf), 1, 8, 1)),
	}
}

func (t *DecisionTree) Clear() {
	t.nodes = nil
	t.numFeatures = 0
}

// Fit builds the tree on rows of x with targets y.
func (t *DecisionTree) Fit(ctx context.Context, x *base.CSRMatrix, y []float32, config *FitConfig) error {
	_ = config.LoadDefaultIfNil()
	if x.NumRows != len(y) {
		return errors.Errorf("sample count %d doesn't match target count %d", x.NumRows, len(y))
	}
	if x.NumRows == 0 {
		return errors.New("empty training set")
	}
	t.Clear()
	t.numFeatures = x.NumCols
	samples := make([]int32, x.NumRows)
	for i := range samples {
		samples[i] = int32(i)
	}
	_, err := t.buildNode(ctx, x, y, samples, 1)
	return errors.Trace(err)
}

// buildNode grows a subtree over samples and returns its node index.
func (t *DecisionTree) buildNode(ctx context.Context, x *base.CSRMatrix, y []float32, samples []int32, depth int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.Trace(err)
	}
	mean := targetMean(y, samples)
	if len(samples) < t.minSamplesSplit ||
		(t.maxDepth > 0 && depth > t.maxDepth) ||
		targetsConstant(y, samples) {
		return t.addLeaf(mean), nil
	}
	feature, threshold, found := t.findBestSplit(x, y, samples)
	if !found {
		return t.addLeaf(mean), nil
	}
	var left, right []int32
	for _, s := range samples {
		if x.At(int(s), feature) <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	if len(left) < t.minSamplesLeaf || len(right) < t.minSamplesLeaf {
		return t.addLeaf(mean), nil
	}
	// reserve the parent slot before growing children
	index := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{Feature: feature, Threshold: threshold})
	leftIndex, err := t.buildNode(ctx, x, y, left, depth+1)
	if err != nil {
		return 0, errors.Trace(err)
	}
	rightIndex, err := t.buildNode(ctx, x, y, right, depth+1)
	if err != nil {
		return 0, errors.Trace(err)
	}
	t.nodes[index].Left = leftIndex
	t.nodes[index].Right = rightIndex
	return index, nil
}

func (t *DecisionTree) addLeaf(value float32) int {
	t.nodes = append(t.nodes, treeNode{Leaf: true, Value: value})
	return len(t.nodes) - 1
}

// findBestSplit scans candidate features for the split minimizing the sum of
// squared errors of the two children.
func (t *DecisionTree) findBestSplit(x *base.CSRMatrix, y []float32, samples []int32) (bestFeature int32, bestThreshold float32, found bool) {
	features := t.candidateFeatures(x.NumCols)
	bestScore := float64(0)
	values := make([]float32, len(samples))
	order := make([]int, len(samples))
	for _, feature := range features {
		for i, s := range samples {
			values[i] = x.At(int(s), feature)
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })
		// prefix sums over targets in value order
		var sumLeft, sumSqLeft float64
		var sumRight, sumSqRight float64
		for _, i := range order {
			target := float64(y[samples[i]])
			sumRight += target
			sumSqRight += target * target
		}
		total := sumSqRight - sumRight*sumRight/float64(len(samples))
		for i := 0; i < len(order)-1; i++ {
			target := float64(y[samples[order[i]]])
			sumLeft += target
			sumSqLeft += target * target
			sumRight -= target
			sumSqRight -= target * target
			if values[order[i]] == values[order[i+1]] {
				continue
			}
			numLeft, numRight := i+1, len(order)-i-1
			if numLeft < t.minSamplesLeaf || numRight < t.minSamplesLeaf {
				continue
			}
			sse := (sumSqLeft - sumLeft*sumLeft/float64(numLeft)) +
				(sumSqRight - sumRight*sumRight/float64(numRight))
			gain := total - sse
			if gain > bestScore {
				bestScore = gain
				bestFeature = feature
				bestThreshold = (values[order[i]] + values[order[i+1]]) / 2
				found = true
			}
		}
	}
	return
}

// candidateFeatures returns the features considered for a split. When
// maxFeatures is positive a random subset is drawn per node.
func (t *DecisionTree) candidateFeatures(numFeatures int) []int32 {
	if t.maxFeatures <= 0 || t.maxFeatures >= numFeatures {
		features := make([]int32, numFeatures)
		for i := range features {
			features[i] = int32(i)
		}
		return features
	}
	sampled := t.rng.Sample(0, numFeatures, t.maxFeatures)
	features := make([]int32, len(sampled))
	for i, s := range sampled {
		features[i] = int32(s)
	}
	return features
}

// Predict walks each row of x down the tree.
func (t *DecisionTree) Predict(x *base.CSRMatrix) ([]float32, error) {
	if t.nodes == nil {
		return nil, errors.New("model is not fitted")
	}
	if x.NumCols != t.numFeatures {
		return nil, errors.Errorf("feature count %d doesn't match training feature count %d", x.NumCols, t.numFeatures)
	}
	predictions := make([]float32, x.NumRows)
	for i := range predictions {
		node := t.nodes[0]
		for !node.Leaf {
			if x.At(i, node.Feature) <= node.Threshold {
				node = t.nodes[node.Left]
			} else {
				node = t.nodes[node.Right]
			}
		}
		predictions[i] = node.Value
	}
	return predictions, nil
}

func targetMean(y []float32, samples []int32) float32 {
	var sum float32
	for _, s := range samples {
		sum += y[s]
	}
	return sum / float32(len(samples))
}

func targetsConstant(y []float32, samples []int32) bool {
	for _, s := range samples[1:] {
		if y[s] != y[samples[0]] {
			return false
		}
	}
	return true
}
