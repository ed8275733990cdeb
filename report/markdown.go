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
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Renderer turns reports into markdown suitable for glamour
type Renderer struct {
	Currency string

	printer *message.Printer
}

// NewRenderer formats money with the currency symbol, e.g. "¥"
func NewRenderer(currency string) *Renderer {
	return &Renderer{
		Currency: currency,
		printer:  message.NewPrinter(language.English),
	}
}

// Money formats v with the currency symbol, thousands separators and two
// decimals, e.g. ¥1,234.56
func (renderer *Renderer) Money(v float64) string {
	return renderer.printer.Sprintf("%s%.2f", renderer.Currency, v)
}

// Percent formats a ratio that is already scaled to percent, e.g. 12.3%
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Delta formats a signed percent change, e.g. +10.0%
func Delta(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// Markdown renders the requested tiers of report. No tiers means all of them.
func (renderer *Renderer) Markdown(report *Report, tiers ...Tier) string {
	if len(tiers) == 0 {
		tiers = AllTiers
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", report.Company)

	if report.Empty {
		sb.WriteString("No data available for this company.\n")
		return sb.String()
	}

	for _, tier := range tiers {
		switch tier {
		case Quick:
			renderer.quick(&sb, report.Quick)
		case Intermediate:
			renderer.intermediate(&sb, report.Intermediate)
		case Deep:
			renderer.deep(&sb, report.Deep)
		}
	}

	return sb.String()
}

func (renderer *Renderer) quick(sb *strings.Builder, tier *QuickTier) {
	sb.WriteString("## Quick (3s)\n\n")
	fmt.Fprintf(sb, "Company State: **%s**\n\n", tier.State)
	fmt.Fprintf(sb, "Revenue (%d): **%s**\n\n", tier.Year, renderer.Money(tier.Revenue))
	writeQuote(sb, tier.Quote)
}

func (renderer *Renderer) intermediate(sb *strings.Builder, tier *IntermediateTier) {
	sb.WriteString("## Intermediate (5min)\n\n")

	sb.WriteString("### Trend\n\n")
	sb.WriteString("| Year | Revenue | Net Income | Operating Cash Flow |\n")
	sb.WriteString("| ---: | ---: | ---: | ---: |\n")
	for _, point := range tier.Series {
		fmt.Fprintf(sb, "| %d | %s | %s | %s |\n", point.Year,
			renderer.Money(point.Revenue), renderer.Money(point.NetIncome), renderer.Money(point.OperatingCashFlow))
	}
	sb.WriteString("\n")

	sb.WriteString("### Growth Scenario\n\n")
	fmt.Fprintf(sb, "Projected Revenue: **%s** (%s)\n\n", renderer.Money(tier.Projection.Projected), Delta(tier.Projection.GrowthPercent))

	sb.WriteString("### Commentary\n\n")
	for _, quote := range tier.Quotes {
		writeQuote(sb, quote)
	}
}

func (renderer *Renderer) deep(sb *strings.Builder, tier *DeepTier) {
	sb.WriteString("## Deep (30min)\n\n")

	sb.WriteString("### Financials\n\n")
	sb.WriteString("| Year | Revenue | Net Income | Operating Cash Flow | Total Liabilities | Total Assets | State |\n")
	sb.WriteString("| ---: | ---: | ---: | ---: | ---: | ---: | --- |\n")
	for _, row := range tier.Rows {
		state := row.MultiState
		if state == "" {
			state = UnknownState
		}

		fmt.Fprintf(sb, "| %d | %s | %s | %s | %s | %s | %s |\n", row.Year,
			renderer.Money(row.Revenue), renderer.Money(row.NetIncome), renderer.Money(row.OperatingCashFlow),
			renderer.Money(row.TotalLiabilities), renderer.Money(row.TotalAssets), escapeCell(state))
	}
	sb.WriteString("\n")

	sb.WriteString("### Key Ratios\n\n")
	fmt.Fprintf(sb, "  * Debt Ratio: %s\n", Percent(tier.Ratios.DebtRatio))
	fmt.Fprintf(sb, "  * Net Margin: %s\n", Percent(tier.Ratios.NetMargin))
	fmt.Fprintf(sb, "  * Cash Flow Ratio: %s\n\n", Percent(tier.Ratios.CashFlowRatio))

	sb.WriteString("### AI Commentary\n\n")
	writeQuote(sb, tier.Quote)
}

func writeQuote(sb *strings.Builder, quote string) {
	fmt.Fprintf(sb, "> %s\n\n", quote)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
