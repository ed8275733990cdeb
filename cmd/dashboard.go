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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/penny-vault/pvdash/metrics"
	"github.com/penny-vault/pvdash/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errGrowthRange = fmt.Errorf("growth must be between %.0f and %.0f", metrics.MinGrowth, metrics.MaxGrowth)

func validateGrowth(s string) error {
	growth, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("growth must be a number")
	}

	if !metrics.ValidGrowth(growth) {
		return errGrowthRange
	}

	return nil
}

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactively explore the dataset one company at a time",
	Long: `The dashboard walks you through choosing a company, the level of detail and a
revenue growth scenario, then renders the report. After each report you can
pick another company; the dataset is only loaded once.`,
	Run: func(cmd *cobra.Command, args []string) {
		myLibrary, conf := loadLibrary(context.Background())
		builder := report.NewBuilder(myLibrary.Dataset, myLibrary.Quotes, nil)
		renderer := report.NewRenderer(conf.Currency)

		if len(myLibrary.Warnings) > 0 {
			fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).
				Render(fmt.Sprintf("%d quote source(s) could not be loaded, see `pvdash info`", len(myLibrary.Warnings))))
		}

		companyOptions := make([]huh.Option[string], 0, len(myLibrary.Dataset.Companies()))
		for _, company := range myLibrary.Dataset.Companies() {
			companyOptions = append(companyOptions, huh.NewOption(company, company))
		}

		tierOptions := []huh.Option[string]{
			huh.NewOption("Quick (3s)", string(report.Quick)),
			huh.NewOption("Intermediate (5min)", string(report.Intermediate)),
			huh.NewOption("Deep (30min)", string(report.Deep)),
			huh.NewOption("Everything", "all"),
		}

		var (
			company  string
			tierName = string(report.Quick)
			growth   = "0"
		)

		for {
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Which company do you want to analyze?").
						Options(companyOptions...).
						Height(12).
						Value(&company),
					huh.NewSelect[string]().
						Title("How deep should the analysis go?").
						Options(tierOptions...).
						Value(&tierName),
					huh.NewInput().
						Title("Expected revenue growth (%)").
						Placeholder("0").
						Validate(validateGrowth).
						Value(&growth),
				),
			)

			if err := form.Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return
				}
				log.Fatal().Err(err).Msg("failed to create wizard")
			}

			growthPercent, _ := strconv.ParseFloat(strings.TrimSpace(growth), 64)
			tiers, err := report.ParseTier(tierName)
			if err != nil {
				log.Fatal().Err(err).Msg("invalid tier selected")
			}

			result := builder.Build(company, growthPercent)

			keyword := func(s string) string {
				return lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render(s)
			}

			fmt.Println(
				lipgloss.NewStyle().
					Width(60).
					BorderStyle(lipgloss.RoundedBorder()).
					BorderForeground(lipgloss.Color("63")).
					Padding(0, 2).
					Render(fmt.Sprintf("%s\n\nCompany: %s\nTier: %s\nGrowth: %s",
						lipgloss.NewStyle().Bold(true).Render("FINANCIAL ANALYSIS"),
						keyword(result.Company),
						keyword(tierName),
						keyword(report.Delta(growthPercent)),
					)),
			)

			renderMarkdown(renderer.Markdown(result, tiers...))

			again := true
			confirm := huh.NewConfirm().
				Title("Analyze another company?").
				Value(&again)
			if err := confirm.Run(); err != nil || !again {
				return
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
