// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
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
package library

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/penny-vault/pvdash/data"
	"github.com/rs/zerolog/log"
)

// LoadDatasetCSV parses a CSV file with a header row naming the dataset
// columns. Columns not used by the dashboard are ignored. Empty and NaN cells
// decode as zero values.
func LoadDatasetCSV(fn string) ([]*data.CompanyYear, error) {
	csvBytes, err := os.ReadFile(fn)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("cannot read dataset file")
		return nil, err
	}

	records := []*data.CompanyYear{}
	if err := gocsv.UnmarshalBytes(csvBytes, &records); err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("failed to unmarshal dataset csv")
		return nil, err
	}

	for _, record := range records {
		record.Normalize()
	}

	log.Debug().Str("FileName", fn).Int("NumRecords", len(records)).Msg("read dataset csv")

	return records, nil
}
