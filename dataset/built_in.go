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

import (
	"path/filepath"

	"github.com/juju/errors"
	"github.com/zhenghaoz/filmrate/common/datautil"
)

type builtInDataset struct {
	name   string
	path   string
	sep    string
	header bool
}

var builtInDatasets = map[string]builtInDataset{
	// MovieLens: https://grouplens.org/datasets/movielens/
	"ml-100k": {
		name:   "ml-100k",
		path:   "ml-100k/u.data",
		sep:    "\t",
		header: false,
	},
	"filmtrust": {
		name:   "filmtrust",
		path:   "filmtrust/ratings.txt",
		sep:    " ",
		header: false,
	},
}

// LoadBuiltInDataset downloads a public rating dataset into the local cache
// and loads it as triplets.
func LoadBuiltInDataset(name string) (*Table, error) {
	ds, exist := builtInDatasets[name]
	if !exist {
		return nil, errors.Errorf("unknown built-in dataset %v", name)
	}
	dir, err := datautil.DownloadAndUnzip(ds.name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	table, err := LoadTableFromCSV(filepath.Join(filepath.Dir(dir), ds.path), ds.sep, ds.header)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return table, nil
}
