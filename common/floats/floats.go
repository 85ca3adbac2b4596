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

package floats

import "github.com/chewxy/math32"

// Dot computes the inner product of two vectors.
func Dot(a, b []float32) (ret float32) {
	for i := range a {
		ret += a[i] * b[i]
	}
	return
}

// Euclidean computes the euclidean distance between two vectors.
func Euclidean(a, b []float32) (ret float32) {
	for i := range a {
		ret += (a[i] - b[i]) * (a[i] - b[i])
	}
	return math32.Sqrt(ret)
}

// Sum returns the sum of the elements.
func Sum(a []float32) (ret float32) {
	for _, v := range a {
		ret += v
	}
	return
}

// Mean returns the arithmetic mean of the elements. The mean of an empty
// slice is zero.
func Mean(a []float32) float32 {
	if len(a) == 0 {
		return 0
	}
	return Sum(a) / float32(len(a))
}

// SubTo subtracts b from a element-wise and stores the result in dst.
func SubTo(a, b, dst []float32) {
	for i := range a {
		dst[i] = a[i] - b[i]
	}
}

// MulTo multiplies a and b element-wise and stores the result in dst.
func MulTo(a, b, dst []float32) {
	for i := range a {
		dst[i] = a[i] * b[i]
	}
}

// MulConst multiplies the vector by a constant in place.
func MulConst(a []float32, c float32) {
	for i := range a {
		a[i] *= c
	}
}

// AddConst adds a constant to the vector in place.
func AddConst(a []float32, c float32) {
	for i := range a {
		a[i] += c
	}
}
