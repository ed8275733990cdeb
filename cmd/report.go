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

	"github.com/goccy/go-json"
	"github.com/penny-vault/pvdash/metrics"
	"github.com/penny-vault/pvdash/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportGrowth float64
	reportTier   string
	reportJSON   bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <company>",
	Short: "Print the analysis report for a company",
	Long: `The report sub-command builds the quick, intermediate and deep analysis for a
single company and prints it. The company may be given by its exact name or
by its slug (e.g. "alpha-corp" for "Alpha Corp"). Use --tier to limit the
output to one level of detail and --growth to set the revenue growth scenario.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tiers, err := report.ParseTier(reportTier)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid --tier")
		}

		if !metrics.ValidGrowth(reportGrowth) {
			log.Fatal().Float64("Growth", reportGrowth).Float64("Min", metrics.MinGrowth).Float64("Max", metrics.MaxGrowth).
				Msg("--growth is out of range")
		}

		myLibrary, conf := loadLibrary(context.Background())
		company := resolveCompany(myLibrary.Dataset, args[0])

		builder := report.NewBuilder(myLibrary.Dataset, myLibrary.Quotes, nil)
		result := builder.Build(company, reportGrowth)
		if result.Empty {
			log.Warn().Str("Company", company).Msg("company not found in dataset")
		}

		if reportJSON {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				log.Fatal().Err(err).Msg("could not marshal report")
			}
			fmt.Println(string(out))
			return
		}

		renderMarkdown(report.NewRenderer(conf.Currency).Markdown(result, tiers...))
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Float64VarP(&reportGrowth, "growth", "g", 0, "expected revenue growth in percent (-20 to 20)")
	reportCmd.Flags().StringVarP(&reportTier, "tier", "t", "all", "report tier: quick, intermediate, deep or all")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the report as JSON")
}
