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
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/penny-vault/pvdash/data"
	"github.com/penny-vault/pvdash/metrics"
	"github.com/penny-vault/pvdash/quote"
	"github.com/rs/zerolog/log"
)

// Builder produces reports from the read-only dataset and quotes. It holds no
// per-request state and may be shared between goroutines as long as its
// Chooser is safe for concurrent use.
type Builder struct {
	dataset *data.Dataset
	picker  *quote.Picker
}

// NewBuilder creates a builder. A nil chooser uses quote.DefaultChooser.
func NewBuilder(dataset *data.Dataset, quotes *data.QuoteCollections, chooser quote.Chooser) *Builder {
	if dataset == nil {
		dataset = data.NewDataset(nil)
	}

	return &Builder{
		dataset: dataset,
		picker:  quote.NewPicker(quotes, chooser),
	}
}

// Build assembles the three report tiers for company. A company without rows
// yields an Empty report.
func (builder *Builder) Build(company string, growthPercent float64) *Report {
	report := &Report{
		ID:          uuid.New(),
		Company:     company,
		Slug:        slug.Make(company),
		GeneratedAt: time.Now(),
	}

	rows := builder.dataset.Company(company)
	derived, err := metrics.Derive(rows)
	if err != nil {
		if !errors.Is(err, metrics.ErrNoData) {
			log.Error().Err(err).Str("Company", company).Msg("could not derive metrics")
		}
		log.Debug().Str("ReportID", report.ID.String()).Str("Company", company).Msg("no rows for company")
		report.Empty = true
		return report
	}

	latest := derived.Latest

	state := latest.MultiState
	if state == "" {
		state = UnknownState
	}

	report.Quick = &QuickTier{
		Year:    latest.Year,
		State:   state,
		Revenue: latest.Revenue,
		Quote:   builder.picker.Random(),
	}

	series := make([]SeriesPoint, 0, len(rows))
	for _, row := range rows {
		series = append(series, SeriesPoint{
			Year:              row.Year,
			Revenue:           row.Revenue,
			NetIncome:         row.NetIncome,
			OperatingCashFlow: row.OperatingCashFlow,
		})
	}

	report.Intermediate = &IntermediateTier{
		Series:     series,
		Projection: metrics.NewProjection(latest.Revenue, growthPercent),
		Quotes:     [2]string{builder.picker.Random(), builder.picker.Random()},
	}

	commentary, companySpecific := builder.picker.ForCompany(company)
	report.Deep = &DeepTier{
		Rows:            rows,
		Ratios:          derived.Ratios,
		Quote:           commentary,
		CompanySpecific: companySpecific,
	}

	log.Debug().Str("ReportID", report.ID.String()).Str("Company", company).Int("NumRows", len(rows)).
		Float64("GrowthPercent", growthPercent).Msg("built report")

	return report
}

// Build is a convenience wrapper that builds a single report with the
// default random source
func Build(dataset *data.Dataset, company string, quotes *data.QuoteCollections, growthPercent float64) *Report {
	return NewBuilder(dataset, quotes, nil).Build(company, growthPercent)
}
