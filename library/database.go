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
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/penny-vault/pvdash/data"
	"github.com/rs/zerolog/log"
)

// datasetQuery builds the read-only select for tbl. NULL values are mapped to
// the same defaults an empty CSV cell decodes to.
func datasetQuery(tbl string) string {
	return fmt.Sprintf(`SELECT
		company,
		year,
		coalesce(revenue, 0) AS revenue,
		coalesce(n_income, 0) AS n_income,
		coalesce(net_operate_cash_flow, 0) AS net_operate_cash_flow,
		coalesce(total_liab, 0) AS total_liab,
		coalesce(total_assets, 0) AS total_assets,
		coalesce(multi_state, '') AS multi_state
	FROM %s
	WHERE company IS NOT NULL AND year IS NOT NULL
	ORDER BY company, year`, pgx.Identifier{tbl}.Sanitize())
}

// LoadDatasetFromDB reads the dataset from a PostgreSQL table. The connection
// is only used for the duration of the load.
func LoadDatasetFromDB(ctx context.Context, dbURL string, tbl string) ([]*data.CompanyYear, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cannot acquire database connection")
		return nil, err
	}
	defer conn.Release()

	sql := datasetQuery(tbl)

	var records []*data.CompanyYear
	if err := pgxscan.Select(ctx, conn, &records, sql); err != nil {
		log.Error().Err(err).Str("SQL", sql).Msg("select dataset from DB failed")
		return nil, err
	}

	for _, record := range records {
		record.Normalize()
	}

	log.Debug().Str("TableName", tbl).Int("NumRecords", len(records)).Msg("read dataset table")

	return records, nil
}
