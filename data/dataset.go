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
	"sort"

	"github.com/alphadose/haxmap"
)

// Dataset is the read-only collection of company-year records loaded at
// startup. Records are ordered by company and then ascending by year.
type Dataset struct {
	records   []*CompanyYear
	companies []string
	index     *haxmap.Map[string, []*CompanyYear]
}

type companyYearKey struct {
	company string
	year    int
}

// NewDataset orders the records by company and year and builds the company
// index. When the same (company, year) pair occurs more than once the record
// that appears last in the input wins.
func NewDataset(records []*CompanyYear) *Dataset {
	latest := make(map[companyYearKey]int, len(records))
	for idx, record := range records {
		latest[companyYearKey{record.Company, record.Year}] = idx
	}

	deduped := make([]*CompanyYear, 0, len(latest))
	for idx, record := range records {
		if latest[companyYearKey{record.Company, record.Year}] == idx {
			deduped = append(deduped, record)
		}
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].Company != deduped[j].Company {
			return deduped[i].Company < deduped[j].Company
		}
		return deduped[i].Year < deduped[j].Year
	})

	dataset := &Dataset{
		records: deduped,
		index:   haxmap.New[string, []*CompanyYear](),
	}

	// records are grouped by company so each group is a contiguous sub-slice
	start := 0
	for idx := 1; idx <= len(deduped); idx++ {
		if idx == len(deduped) || deduped[idx].Company != deduped[start].Company {
			company := deduped[start].Company
			dataset.companies = append(dataset.companies, company)
			dataset.index.Set(company, deduped[start:idx:idx])
			start = idx
		}
	}

	return dataset
}

// Len returns the number of records in the dataset
func (dataset *Dataset) Len() int {
	return len(dataset.records)
}

// Records returns every record in the dataset
func (dataset *Dataset) Records() []*CompanyYear {
	return dataset.records
}

// Companies returns the sorted list of distinct company names
func (dataset *Dataset) Companies() []string {
	return dataset.companies
}

// Company returns the records for the named company ascending by year, or nil
// if the company is not part of the dataset.
func (dataset *Dataset) Company(name string) []*CompanyYear {
	rows, ok := dataset.index.Get(name)
	if !ok {
		return nil
	}

	return rows
}

// YearRange returns the first and last year present in the dataset
func (dataset *Dataset) YearRange() (first, last int) {
	for idx, record := range dataset.records {
		if idx == 0 || record.Year < first {
			first = record.Year
		}
		if idx == 0 || record.Year > last {
			last = record.Year
		}
	}

	return
}
