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
package data

import "sort"

// QuoteSource names one of the three quote collections
type QuoteSource string

const (
	BuffettQuotes   QuoteSource = "buffett"
	MultiDiscQuotes QuoteSource = "multi_disc"
	LLMQuotes       QuoteSource = "llm"
)

// QuoteCollections holds the three independent quote sources. Any of them may
// be empty when its file could not be loaded.
type QuoteCollections struct {
	// Buffett is a flat list of attributed quotes
	Buffett []string `json:"buffett"`

	// MultiDisc maps a discipline (topic) to its quotes
	MultiDisc map[string][]string `json:"multi_disc"`

	// LLM maps a company name to a single generated commentary
	LLM map[string]string `json:"llm"`
}

// NewQuoteCollections returns collections with every source empty
func NewQuoteCollections() *QuoteCollections {
	return &QuoteCollections{
		Buffett:   []string{},
		MultiDisc: map[string][]string{},
		LLM:       map[string]string{},
	}
}

// Topics returns the sorted topics that hold at least one quote
func (quotes *QuoteCollections) Topics() []string {
	topics := make([]string, 0, len(quotes.MultiDisc))
	for topic, list := range quotes.MultiDisc {
		if len(list) > 0 {
			topics = append(topics, topic)
		}
	}

	sort.Strings(topics)
	return topics
}

// CompanyQuote returns the generated commentary for company if there is one
func (quotes *QuoteCollections) CompanyQuote(company string) (string, bool) {
	quote, ok := quotes.LLM[company]
	return quote, ok
}

// Empty reports whether no source holds any quote
func (quotes *QuoteCollections) Empty() bool {
	return len(quotes.Buffett) == 0 && len(quotes.Topics()) == 0 && len(quotes.LLM) == 0
}
