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
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/penny-vault/pvdash/data"
	"github.com/rs/zerolog/log"
)

var (
	ErrDatasetLoad  = errors.New("could not load dataset")
	ErrEmptyDataset = errors.New("dataset contains no valid rows")
)

// Library is the read-only state loaded once at startup
type Library struct {
	Dataset *data.Dataset
	Quotes  *data.QuoteCollections

	// Warnings holds a *QuoteSourceError for every quote source that could
	// not be loaded. They never prevent the library from being used.
	Warnings []error

	Source       string
	LastModified time.Time
	LoadTime     time.Duration
	NumDropped   int
}

// Load reads the dataset and the quote collections described by conf. A
// dataset failure is fatal and returned as an error; quote failures are
// recorded in Library.Warnings.
func Load(ctx context.Context, conf Config) (*Library, error) {
	startTime := time.Now()

	myLibrary := &Library{
		Source: describeSource(conf.Dataset),
	}

	records, err := loadRecords(ctx, conf, myLibrary)
	if err != nil {
		return nil, err
	}

	valid := make([]*data.CompanyYear, 0, len(records))
	for _, record := range records {
		if err := record.Validate(); err != nil {
			log.Warn().Err(err).Object("Record", record).Msg("dropping invalid dataset row")
			myLibrary.NumDropped++
			continue
		}
		valid = append(valid, record)
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, myLibrary.Source)
	}

	myLibrary.Dataset = data.NewDataset(valid)
	myLibrary.Quotes, myLibrary.Warnings = LoadQuotes(conf.Quotes)
	myLibrary.LoadTime = time.Since(startTime)

	log.Info().
		Str("Source", myLibrary.Source).
		Int("NumRecords", myLibrary.Dataset.Len()).
		Int("NumCompanies", len(myLibrary.Dataset.Companies())).
		Int("NumDropped", myLibrary.NumDropped).
		Int("NumWarnings", len(myLibrary.Warnings)).
		Str("LoadTime", durafmt.Parse(myLibrary.LoadTime).String()).
		Msg("library loaded")

	return myLibrary, nil
}

func loadRecords(ctx context.Context, conf Config, myLibrary *Library) ([]*data.CompanyYear, error) {
	if conf.Dataset == "" {
		return nil, fmt.Errorf("%w: no dataset configured", ErrDatasetLoad)
	}

	if isDatabaseURL(conf.Dataset) {
		table := conf.DatasetTable
		if table == "" {
			table = DefaultDatasetTable
		}

		records, err := LoadDatasetFromDB(ctx, conf.Dataset, table)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatasetLoad, err)
		}

		return records, nil
	}

	info, err := os.Stat(conf.Dataset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetLoad, err)
	}
	myLibrary.LastModified = info.ModTime()

	var records []*data.CompanyYear
	if strings.EqualFold(filepath.Ext(conf.Dataset), ".parquet") {
		records, err = LoadDatasetParquet(conf.Dataset)
	} else {
		records, err = LoadDatasetCSV(conf.Dataset)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetLoad, err)
	}

	return records, nil
}

func isDatabaseURL(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// describeSource strips credentials from database URLs, both the user info
// and password query parameters, so the source can be logged and displayed
func describeSource(location string) string {
	if !isDatabaseURL(location) {
		return location
	}

	dbURL, err := url.Parse(location)
	if err != nil {
		scheme, _, _ := strings.Cut(location, "://")
		return scheme + "://(unparseable url)"
	}

	dbURL.User = nil

	query := dbURL.Query()
	for key := range query {
		if strings.Contains(strings.ToLower(key), "password") {
			query.Del(key)
		}
	}
	dbURL.RawQuery = query.Encode()

	return dbURL.String()
}
