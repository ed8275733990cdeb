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

import (
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = validator.New()

// CompanyYear is one row of the prediction dataset: the reported figures of a
// single company for a single fiscal year along with the predicted state label.
type CompanyYear struct {
	// [Entity] Name of the company, used as the selection key.
	Company string `csv:"company" json:"company" db:"company" validate:"required"`

	// [Entity] Fiscal year of the observation.
	Year int `csv:"year" json:"year" db:"year" validate:"required"`

	// [Income Statement] Total revenue for the year.
	Revenue float64 `csv:"revenue" json:"revenue" db:"revenue"`

	// [Income Statement] Net income attributable to the company.
	NetIncome float64 `csv:"n_income" json:"n_income" db:"n_income"`

	// [Cash Flow Statement] Net cash flow from operating activities.
	OperatingCashFlow float64 `csv:"net_operate_cash_flow" json:"net_operate_cash_flow" db:"net_operate_cash_flow"`

	// [Balance Sheet] Total liabilities at year end.
	TotalLiabilities float64 `csv:"total_liab" json:"total_liab" db:"total_liab"`

	// [Balance Sheet] Total assets at year end.
	TotalAssets float64 `csv:"total_assets" json:"total_assets" db:"total_assets"`

	// [Prediction] State label produced by the upstream model. An empty
	// string means the model produced no label for this row.
	MultiState string `csv:"multi_state" json:"multi_state" db:"multi_state"`
}

// Validate checks that the record identifies a company and a year
func (record *CompanyYear) Validate() error {
	return validate.Struct(record)
}

// Normalize trims the text fields and treats NaN and infinite figures as
// missing, which count as 0
func (record *CompanyYear) Normalize() {
	record.Company = strings.TrimSpace(record.Company)
	record.MultiState = strings.TrimSpace(record.MultiState)

	for _, field := range []*float64{
		&record.Revenue,
		&record.NetIncome,
		&record.OperatingCashFlow,
		&record.TotalLiabilities,
		&record.TotalAssets,
	} {
		if math.IsNaN(*field) || math.IsInf(*field, 0) {
			*field = 0
		}
	}
}

// MarshalZerologObject logs every field of the record
func (record *CompanyYear) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Company", record.Company)
	e.Int("Year", record.Year)
	e.Float64("Revenue", record.Revenue)
	e.Float64("NetIncome", record.NetIncome)
	e.Float64("OperatingCashFlow", record.OperatingCashFlow)
	e.Float64("TotalLiabilities", record.TotalLiabilities)
	e.Float64("TotalAssets", record.TotalAssets)
	e.Str("MultiState", record.MultiState)
}
