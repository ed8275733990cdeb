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
	"fmt"
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the library in markdown
func (myLibrary *Library) Summary() string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString("# Financial Dataset\n")
	builder.WriteString("## Details\n\n")
	builder.WriteString(fmt.Sprintf("Source: %s\n\n", myLibrary.Source))

	first, last := myLibrary.Dataset.YearRange()
	builder.WriteString(p.Sprintf("  * Companies: %d\n", len(myLibrary.Dataset.Companies())))
	builder.WriteString(p.Sprintf("  * Records: %d\n", myLibrary.Dataset.Len()))
	builder.WriteString(fmt.Sprintf("  * Years: %d - %d\n", first, last))
	if myLibrary.NumDropped > 0 {
		builder.WriteString(p.Sprintf("  * Dropped Rows: %d\n", myLibrary.NumDropped))
	}
	builder.WriteString("\n")

	if myLibrary.LastModified.Equal(time.Time{}) {
		builder.WriteString("Last Modified: Unknown\n\n")
	} else {
		age := timeago.English.Format(myLibrary.LastModified)
		builder.WriteString(fmt.Sprintf("Last Modified: %s (%s)\n\n", age, myLibrary.LastModified.Local().Format("01/02/2006")))
	}

	builder.WriteString("## Quotes\n\n")

	quotes := myLibrary.Quotes
	numTopicQuotes := 0
	for _, topic := range quotes.Topics() {
		numTopicQuotes += len(quotes.MultiDisc[topic])
	}

	builder.WriteString(p.Sprintf("  * Buffett: %d\n", len(quotes.Buffett)))
	builder.WriteString(p.Sprintf("  * Disciplines: %d topics, %d quotes\n", len(quotes.Topics()), numTopicQuotes))
	builder.WriteString(p.Sprintf("  * Company Commentary: %d\n", len(quotes.LLM)))

	if len(myLibrary.Warnings) > 0 {
		builder.WriteString("\n## Warnings\n\n")
		for _, warning := range myLibrary.Warnings {
			builder.WriteString(fmt.Sprintf("  * %s\n", warning))
		}
	}

	return builder.String()
}
