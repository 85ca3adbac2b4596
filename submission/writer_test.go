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

package submission

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/zhenghaoz/filmrate/dataset"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []dataset.Pair{{User: 0, Movie: 1}, {User: 1, Movie: 0}}, []float32{3.5, 4})
	assert.NoError(t, err)
	assert.Equal(t, "\"USER_ID_MOVIE_ID\",\"PREDICTED_RATING\"\n0_1,3.5\n1_0,4\n", buf.String())
}

func TestWriteErrors(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []dataset.Pair{{User: 0, Movie: 1}}, []float32{3.5, 4})
	assert.Error(t, err)
	err = Write(&buf, []dataset.Pair{{User: 0, Movie: 1}}, []float32{math32.NaN()})
	assert.Error(t, err)
	err = Write(&buf, []dataset.Pair{{User: 0, Movie: 1}}, []float32{math32.Inf(1)})
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "submission.txt")
	err := WriteFile(path, []dataset.Pair{{User: 2, Movie: 3}}, []float32{1.25})
	assert.NoError(t, err)
	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "\"USER_ID_MOVIE_ID\",\"PREDICTED_RATING\"\n2_3,1.25\n", string(content))
}

func TestTimestampedPath(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 5, 0, 0, time.UTC)
	path := TimestampedPath("out", "submission", now)
	assert.Equal(t, filepath.Join("out", "submission_29-08-2026_14h05.txt"), path)
}
