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

// Package submission renders predictions in the format expected by the
// rating competition grader.
package submission

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chewxy/math32"
	"github.com/juju/errors"
	"github.com/zhenghaoz/filmrate/base/log"
	"github.com/zhenghaoz/filmrate/dataset"
	"go.uber.org/zap"
)

const header = `"USER_ID_MOVIE_ID","PREDICTED_RATING"`

// Write renders one line per pair as {user}_{movie},{prediction} after the
// header. A NaN or infinite prediction aborts the write.
func Write(w io.Writer, pairs []dataset.Pair, predictions []float32) error {
	if len(pairs) != len(predictions) {
		return errors.Errorf("pair count %d doesn't match prediction count %d", len(pairs), len(predictions))
	}
	buf := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(buf, header); err != nil {
		return errors.Trace(err)
	}
	for i, pair := range pairs {
		if math32.IsNaN(predictions[i]) || math32.IsInf(predictions[i], 0) {
			return errors.Errorf("prediction for (%d, %d) is not finite", pair.User, pair.Movie)
		}
		if _, err := fmt.Fprintf(buf, "%d_%d,%s\n", pair.User, pair.Movie,
			strconv.FormatFloat(float64(predictions[i]), 'g', -1, 32)); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(buf.Flush())
}

// WriteFile writes a submission to path, creating parent directories.
func WriteFile(path string, pairs []dataset.Pair, predictions []float32) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.Trace(err)
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	if err := Write(file, pairs, predictions); err != nil {
		return errors.Trace(err)
	}
	log.Logger().Info("write submission",
		zap.String("path", path), zap.Int("predictions", len(predictions)))
	return nil
}

// TimestampedPath builds a submission file name carrying the creation time,
// like dir/name_02-01-2006_15h04.txt.
func TimestampedPath(dir, name string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, now.Format("02-01-2006_15h04")))
}
