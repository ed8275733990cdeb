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
package quote

import (
	"fmt"
	"math/rand"

	"github.com/penny-vault/pvdash/data"
)

// NoQuote is returned when none of the collections can supply a quote
const NoQuote = "no quote available"

// Chooser returns a uniformly distributed integer in [0, n). *rand.Rand
// satisfies it.
type Chooser interface {
	Intn(n int) int
}

type globalChooser struct{}

// Intn uses the package-level source which is safe for concurrent use
func (globalChooser) Intn(n int) int {
	return rand.Intn(n)
}

// DefaultChooser is backed by math/rand's shared source
var DefaultChooser Chooser = globalChooser{}

// Picker draws quotes from a set of collections using its Chooser
type Picker struct {
	quotes  *data.QuoteCollections
	chooser Chooser
}

// NewPicker returns a picker over quotes. A nil chooser selects DefaultChooser
// and nil quotes behave like empty collections.
func NewPicker(quotes *data.QuoteCollections, chooser Chooser) *Picker {
	if quotes == nil {
		quotes = data.NewQuoteCollections()
	}

	if chooser == nil {
		chooser = DefaultChooser
	}

	return &Picker{
		quotes:  quotes,
		chooser: chooser,
	}
}

// Random returns one formatted quote. A coin is flipped first: on heads a
// Buffett quote is used if there are any; otherwise a random topic and a
// random quote from that topic are chosen. NoQuote is returned when neither
// branch has anything to offer.
func (picker *Picker) Random() string {
	heads := picker.chooser.Intn(2) == 0
	if heads && len(picker.quotes.Buffett) > 0 {
		return format(string(data.BuffettQuotes), picker.choose(picker.quotes.Buffett))
	}

	topics := picker.quotes.Topics()
	if len(topics) > 0 {
		topic := topics[picker.chooser.Intn(len(topics))]
		return format(topic, picker.choose(picker.quotes.MultiDisc[topic]))
	}

	return NoQuote
}

// ForCompany returns the generated commentary for company when the LLM
// collection has one, otherwise a random quote. The boolean reports whether
// the commentary was company specific.
func (picker *Picker) ForCompany(company string) (string, bool) {
	if quote, ok := picker.quotes.CompanyQuote(company); ok {
		return quote, true
	}

	return picker.Random(), false
}

func (picker *Picker) choose(list []string) string {
	return list[picker.chooser.Intn(len(list))]
}

func format(tag, quote string) string {
	return fmt.Sprintf("[%s] %s", tag, quote)
}

// Random picks a quote from quotes using DefaultChooser
func Random(quotes *data.QuoteCollections) string {
	return NewPicker(quotes, nil).Random()
}
