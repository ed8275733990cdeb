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
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// companiesCmd represents the companies command
var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List the companies available in the dataset",
	Run: func(cmd *cobra.Command, args []string) {
		myLibrary, _ := loadLibrary(context.Background())
		p := message.NewPrinter(language.English)

		builder := strings.Builder{}
		builder.WriteString("# Companies\n\n")
		builder.WriteString("| Company | Years | First | Last |\n")
		builder.WriteString("| --- | ---: | ---: | ---: |\n")
		for _, company := range myLibrary.Dataset.Companies() {
			rows := myLibrary.Dataset.Company(company)
			builder.WriteString(p.Sprintf("| %s | %d | ", company, len(rows)))
			builder.WriteString(fmt.Sprintf("%d | %d |\n", rows[0].Year, rows[len(rows)-1].Year))
		}

		renderMarkdown(builder.String())
	},
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}
