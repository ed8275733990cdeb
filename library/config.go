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

const (
	DefaultDataset      = "finance_with_predictions_day6.csv"
	DefaultDatasetTable = "finance_with_predictions"
	DefaultBuffett      = "buffett_quotes.txt"
	DefaultMultiDisc    = "multi_disc_quotes.json"
	DefaultLLM          = "llm_generated_quotes.json"
	DefaultCurrency     = "¥"
)

// QuotePaths locates the three quote sources. An empty path means the source
// is not configured and loads as empty.
type QuotePaths struct {
	Buffett   string `mapstructure:"buffett" toml:"buffett"`
	MultiDisc string `mapstructure:"multi_disc" toml:"multi_disc"`
	LLM       string `mapstructure:"llm" toml:"llm"`
}

// Config locates the dataset and the quote files. It is filled from viper
// and written back by `pvdash init`.
type Config struct {
	// Dataset is a CSV or parquet file name, or a postgres:// connection string
	Dataset string `mapstructure:"dataset" toml:"dataset"`

	// DatasetTable is the table read when Dataset is a database URL
	DatasetTable string `mapstructure:"dataset_table" toml:"dataset_table,omitempty"`

	Currency string     `mapstructure:"currency" toml:"currency"`
	Quotes   QuotePaths `mapstructure:"quotes" toml:"quotes"`
}

// DefaultConfig returns the file names used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Dataset:      DefaultDataset,
		DatasetTable: DefaultDatasetTable,
		Currency:     DefaultCurrency,
		Quotes: QuotePaths{
			Buffett:   DefaultBuffett,
			MultiDisc: DefaultMultiDisc,
			LLM:       DefaultLLM,
		},
	}
}
