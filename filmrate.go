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

// Package filmrate is a toolkit for movie rating prediction competitions.
//
// It assembles sparse user-by-movie rating matrices from triplet files,
// derives per-pair feature vectors, fits regression models (decision tree,
// random forest, AdaBoost.R2 and k-nearest-neighbors), searches their
// hyper-parameters, and renders predictions in the submission format
// expected by the grader.
package filmrate
