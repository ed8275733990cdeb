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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/penny-vault/pvdash/data"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotConfigured = errors.New("source not configured")
)

// QuoteSourceError describes a quote source that could not be loaded. The
// source is left empty and loading continues.
type QuoteSourceError struct {
	Source data.QuoteSource
	Path   string
	Err    error
}

func (e *QuoteSourceError) Error() string {
	return fmt.Sprintf("load %s quotes from %q: %v", e.Source, e.Path, e.Err)
}

func (e *QuoteSourceError) Unwrap() error {
	return e.Err
}

// LoadQuotes loads each quote source independently. Sources that fail are
// returned empty and reported in the warnings slice.
func LoadQuotes(paths QuotePaths) (*data.QuoteCollections, []error) {
	quotes := data.NewQuoteCollections()
	warnings := make([]error, 0)

	warn := func(source data.QuoteSource, path string, err error) {
		sourceErr := &QuoteSourceError{Source: source, Path: path, Err: err}
		log.Warn().Err(err).Str("Source", string(source)).Str("FileName", path).Msg("quote source unavailable")
		warnings = append(warnings, sourceErr)
	}

	if buffett, err := LoadLineQuotes(paths.Buffett); err != nil {
		warn(data.BuffettQuotes, paths.Buffett, err)
	} else {
		quotes.Buffett = buffett
	}

	multiDisc := make(map[string][]string)
	if err := loadJSON(paths.MultiDisc, &multiDisc); err != nil {
		warn(data.MultiDiscQuotes, paths.MultiDisc, err)
	} else {
		quotes.MultiDisc = multiDisc
	}

	llm := make(map[string]string)
	if err := loadJSON(paths.LLM, &llm); err != nil {
		warn(data.LLMQuotes, paths.LLM, err)
	} else {
		quotes.LLM = llm
	}

	return quotes, warnings
}

// LoadLineQuotes reads one quote per line, trimming surrounding whitespace and
// skipping blank lines
func LoadLineQuotes(fn string) ([]string, error) {
	if fn == "" {
		return nil, ErrNotConfigured
	}

	content, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	quotes := make([]string, 0)
	for _, line := range strings.Split(string(content), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			quotes = append(quotes, line)
		}
	}

	return quotes, nil
}

// loadJSON decodes fn into dst. dst is left untouched when decoding fails.
func loadJSON[T any](fn string, dst *T) error {
	if fn == "" {
		return ErrNotConfigured
	}

	content, err := os.ReadFile(fn)
	if err != nil {
		return err
	}

	var decoded T
	if err := json.Unmarshal(content, &decoded); err != nil {
		return err
	}

	*dst = decoded
	return nil
}
