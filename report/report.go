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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/penny-vault/pvdash/data"
	"github.com/penny-vault/pvdash/metrics"
)

// UnknownState is shown when the latest record has no predicted state
const UnknownState = "N/A"

// Tier is a level of detail of a report
type Tier string

const (
	Quick        Tier = "quick"
	Intermediate Tier = "intermediate"
	Deep         Tier = "deep"
)

var (
	AllTiers = []Tier{Quick, Intermediate, Deep}

	ErrUnknownTier = errors.New("unknown tier")
)

// ParseTier converts a tier name to the tiers it selects. "all" (or an empty
// string) selects every tier.
func ParseTier(name string) ([]Tier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return AllTiers, nil
	case string(Quick):
		return []Tier{Quick}, nil
	case string(Intermediate):
		return []Tier{Intermediate}, nil
	case string(Deep):
		return []Tier{Deep}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTier, name)
	}
}

// Report is the render-ready analysis of one company. When Empty is set the
// company had no rows and every tier is nil.
type Report struct {
	ID          uuid.UUID `json:"id"`
	Company     string    `json:"company"`
	Slug        string    `json:"slug"`
	GeneratedAt time.Time `json:"generated_at"`
	Empty       bool      `json:"empty"`

	Quick        *QuickTier        `json:"quick,omitempty"`
	Intermediate *IntermediateTier `json:"intermediate,omitempty"`
	Deep         *DeepTier         `json:"deep,omitempty"`
}

// QuickTier is the at-a-glance diagnosis
type QuickTier struct {
	Year    int     `json:"year"`
	State   string  `json:"state"`
	Revenue float64 `json:"revenue"`
	Quote   string  `json:"quote"`
}

// SeriesPoint is one year of the charted figures
type SeriesPoint struct {
	Year              int     `json:"year"`
	Revenue           float64 `json:"revenue"`
	NetIncome         float64 `json:"n_income"`
	OperatingCashFlow float64 `json:"net_operate_cash_flow"`
}

// IntermediateTier is the trend view with a revenue growth scenario
type IntermediateTier struct {
	Series     []SeriesPoint      `json:"series"`
	Projection metrics.Projection `json:"projection"`
	Quotes     [2]string          `json:"quotes"`
}

// DeepTier holds the full table, the ratios and the commentary
type DeepTier struct {
	Rows            []*data.CompanyYear `json:"rows"`
	Ratios          metrics.Ratios      `json:"ratios"`
	Quote           string              `json:"quote"`
	CompanySpecific bool                `json:"company_specific"`
}
