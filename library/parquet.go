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
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/penny-vault/pvdash/data"
	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/common"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/schema"
)

var (
	ErrParquetSchema = errors.New("parquet schema does not match the dataset")
	ErrParquetRead   = errors.New("parquet read failed")
)

type parquetKind int

const (
	parquetText parquetKind = iota
	parquetInteger
	parquetNumber
)

// parquetColumn maps a dataset column onto a CompanyYear field
type parquetColumn struct {
	name string
	kind parquetKind
	set  func(record *data.CompanyYear, value interface{}) error
}

var parquetColumns = []parquetColumn{
	{"company", parquetText, func(r *data.CompanyYear, v interface{}) (err error) {
		r.Company, err = parquetString(v)
		return
	}},
	{"year", parquetInteger, func(r *data.CompanyYear, v interface{}) (err error) {
		r.Year, err = parquetInt(v)
		return
	}},
	{"revenue", parquetNumber, func(r *data.CompanyYear, v interface{}) (err error) {
		r.Revenue, err = parquetFloat(v)
		return
	}},
	{"n_income", parquetNumber, func(r *data.CompanyYear, v interface{}) (err error) {
		r.NetIncome, err = parquetFloat(v)
		return
	}},
	{"net_operate_cash_flow", parquetNumber, func(r *data.CompanyYear, v interface{}) (err error) {
		r.OperatingCashFlow, err = parquetFloat(v)
		return
	}},
	{"total_liab", parquetNumber, func(r *data.CompanyYear, v interface{}) (err error) {
		r.TotalLiabilities, err = parquetFloat(v)
		return
	}},
	{"total_assets", parquetNumber, func(r *data.CompanyYear, v interface{}) (err error) {
		r.TotalAssets, err = parquetFloat(v)
		return
	}},
	{"multi_state", parquetText, func(r *data.CompanyYear, v interface{}) (err error) {
		r.MultiState, err = parquetString(v)
		return
	}},
}

// parquetLeaf is a top-level column as declared in the file footer
type parquetLeaf struct {
	path    string
	element *parquet.SchemaElement
}

// LoadDatasetParquet reads a parquet dataset using the schema stored in the
// file. Columns may be REQUIRED or OPTIONAL (nulls decode as zero values) and
// integers may be INT32 or INT64, so files written by pandas or pyarrow load
// as well as ones written by parquet-go. Extra columns are ignored; a missing
// or mistyped dataset column is reported as ErrParquetSchema.
func LoadDatasetParquet(fn string) (records []*data.CompanyYear, err error) {
	fh, err := local.NewLocalFileReader(fn)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("cannot open parquet file")
		return nil, err
	}
	defer fh.Close()

	// parquet-go panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("Panic", r).Str("FileName", fn).Msg("parquet reader panicked")
			records = nil
			err = fmt.Errorf("%w: %v", ErrParquetRead, r)
		}
	}()

	pr, err := reader.NewParquetColumnReader(fh, 4)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("cannot create parquet reader")
		return nil, err
	}
	defer pr.ReadStop()

	leaves, err := datasetLeaves(pr.SchemaHandler)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("unexpected parquet schema")
		return nil, err
	}

	numRows := pr.GetNumRows()
	records = make([]*data.CompanyYear, numRows)
	for idx := range records {
		records[idx] = &data.CompanyYear{}
	}

	if numRows == 0 {
		return records, nil
	}

	for _, column := range parquetColumns {
		values, _, _, err := pr.ReadColumnByPath(leaves[column.name].path, numRows)
		if err != nil {
			log.Error().Err(err).Str("FileName", fn).Str("Column", column.name).Msg("cannot read parquet column")
			return nil, fmt.Errorf("%w: column %s: %w", ErrParquetRead, column.name, err)
		}

		if int64(len(values)) != numRows {
			return nil, fmt.Errorf("%w: column %s has %d values for %d rows", ErrParquetRead, column.name, len(values), numRows)
		}

		for idx, value := range values {
			if err := column.set(records[idx], value); err != nil {
				return nil, fmt.Errorf("%w: column %s row %d: %w", ErrParquetRead, column.name, idx, err)
			}
		}
	}

	for _, record := range records {
		record.Normalize()
	}

	log.Debug().Str("FileName", fn).Int("NumRecords", len(records)).Msg("read dataset parquet")

	return records, nil
}

// datasetLeaves finds every dataset column among the file's top-level leaves
// and checks its physical type and repetition
func datasetLeaves(sh *schema.SchemaHandler) (map[string]parquetLeaf, error) {
	available := make(map[string]parquetLeaf)
	for idx, element := range sh.SchemaElements {
		if idx == 0 || element.GetNumChildren() != 0 {
			continue
		}

		path := sh.IndexMap[int32(idx)]
		if len(common.StrToPath(path)) != 2 {
			// nested fields are not dataset columns
			continue
		}

		available[sh.Infos[idx].ExName] = parquetLeaf{path: path, element: element}
	}

	leaves := make(map[string]parquetLeaf, len(parquetColumns))
	var missing, mistyped []string
	for _, column := range parquetColumns {
		leaf, ok := available[column.name]
		if !ok {
			missing = append(missing, column.name)
			continue
		}

		if leaf.element.GetRepetitionType() == parquet.FieldRepetitionType_REPEATED || !column.kind.accepts(leaf.element.GetType()) {
			mistyped = append(mistyped, fmt.Sprintf("%s (%s %s)", column.name, leaf.element.GetRepetitionType(), leaf.element.GetType()))
			continue
		}

		leaves[column.name] = leaf
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrParquetSchema, strings.Join(missing, ", "))
	}

	if len(mistyped) > 0 {
		return nil, fmt.Errorf("%w: unsupported column types %s", ErrParquetSchema, strings.Join(mistyped, ", "))
	}

	return leaves, nil
}

func (kind parquetKind) accepts(physical parquet.Type) bool {
	switch kind {
	case parquetText:
		return physical == parquet.Type_BYTE_ARRAY
	case parquetInteger, parquetNumber:
		switch physical {
		case parquet.Type_INT32, parquet.Type_INT64, parquet.Type_FLOAT, parquet.Type_DOUBLE:
			return true
		}
	}

	return false
}

func parquetString(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("unexpected value type %T", value)
	}
}

func parquetFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("unexpected value type %T", value)
	}
}

// parquetInt accepts integral floats since pandas stores integer columns that
// contain nulls as doubles
func parquetInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	}

	f, err := parquetFloat(value)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(f) {
		return 0, nil
	}

	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}

	return int(f), nil
}
