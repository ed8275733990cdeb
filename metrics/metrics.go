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
package metrics

import (
	"errors"
	"math"
	"sort"

	"github.com/penny-vault/pvdash/data"
)

const (
	MinGrowth = -20.0
	MaxGrowth = 20.0
)

var (
	ErrNoData = errors.New("no data for company")
)

// Ratios are computed from the latest record and expressed as percentages
type Ratios struct {
	// [Metrics] Total liabilities divided by total assets
	DebtRatio float64 `json:"debt_ratio"`

	// [Metrics] Net income divided by revenue
	NetMargin float64 `json:"net_margin"`

	// [Metrics] Operating cash flow divided by revenue
	CashFlowRatio float64 `json:"cash_flow_ratio"`
}

// Metrics are the figures derived from the latest record of one company
type Metrics struct {
	Latest *data.CompanyYear `json:"latest"`
	Ratios Ratios            `json:"ratios"`
}

// Derive computes the latest-period metrics for one company. Rows that are
// not ascending by year are sorted (on a copy) before the latest row is chosen.
// An empty input returns ErrNoData.
func Derive(rows []*data.CompanyYear) (*Metrics, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	latest := Latest(rows)

	return &Metrics{
		Latest: latest,
		Ratios: Ratios{
			DebtRatio:     percent(latest.TotalLiabilities, latest.TotalAssets),
			NetMargin:     percent(latest.NetIncome, latest.Revenue),
			CashFlowRatio: percent(latest.OperatingCashFlow, latest.Revenue),
		},
	}, nil
}

// Latest returns the record with the highest year, or nil for no rows. Ties
// resolve to the row that comes last in the input.
func Latest(rows []*data.CompanyYear) *data.CompanyYear {
	if len(rows) == 0 {
		return nil
	}

	if !sort.SliceIsSorted(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year }) {
		sorted := make([]*data.CompanyYear, len(rows))
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })
		rows = sorted
	}

	return rows[len(rows)-1]
}

// percent divides numerator by denominator and scales to a percentage. A zero
// or missing denominator is replaced by 1 and a missing numerator by 0, so the
// result is always finite (though meaningless when the denominator was zero).
func percent(numerator, denominator float64) float64 {
	if math.IsNaN(numerator) {
		numerator = 0
	}

	if denominator == 0 || math.IsNaN(denominator) {
		denominator = 1
	}

	return numerator / denominator * 100
}
