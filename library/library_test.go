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
package library_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/penny-vault/pvdash/data"
	"github.com/penny-vault/pvdash/library"
	"github.com/penny-vault/pvdash/report"
)

type parquetFixture struct {
	Company           string  `parquet:"name=company, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Year              int32   `parquet:"name=year, type=INT32"`
	Revenue           float64 `parquet:"name=revenue, type=DOUBLE"`
	NetIncome         float64 `parquet:"name=n_income, type=DOUBLE"`
	OperatingCashFlow float64 `parquet:"name=net_operate_cash_flow, type=DOUBLE"`
	TotalLiabilities  float64 `parquet:"name=total_liab, type=DOUBLE"`
	TotalAssets       float64 `parquet:"name=total_assets, type=DOUBLE"`
	MultiState        string  `parquet:"name=multi_state, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

// pandasFixture mirrors the layout pyarrow writes for a DataFrame: every
// column is OPTIONAL and integers are INT64
type pandasFixture struct {
	Company           *string  `parquet:"name=company, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Year              *int64   `parquet:"name=year, type=INT64, repetitiontype=OPTIONAL"`
	Revenue           *float64 `parquet:"name=revenue, type=DOUBLE, repetitiontype=OPTIONAL"`
	NetIncome         *float64 `parquet:"name=n_income, type=DOUBLE, repetitiontype=OPTIONAL"`
	OperatingCashFlow *float64 `parquet:"name=net_operate_cash_flow, type=DOUBLE, repetitiontype=OPTIONAL"`
	TotalLiabilities  *float64 `parquet:"name=total_liab, type=DOUBLE, repetitiontype=OPTIONAL"`
	TotalAssets       *int64   `parquet:"name=total_assets, type=INT64, repetitiontype=OPTIONAL"`
	MultiState        *string  `parquet:"name=multi_state, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Sector            *string  `parquet:"name=sector, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

// partialFixture lacks most dataset columns
type partialFixture struct {
	Company *string  `parquet:"name=company, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Year    *int64   `parquet:"name=year, type=INT64, repetitiontype=OPTIONAL"`
	Revenue *float64 `parquet:"name=revenue, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// textYearFixture stores the year as a string
type textYearFixture struct {
	Company           string  `parquet:"name=company, type=BYTE_ARRAY, convertedtype=UTF8"`
	Year              string  `parquet:"name=year, type=BYTE_ARRAY, convertedtype=UTF8"`
	Revenue           float64 `parquet:"name=revenue, type=DOUBLE"`
	NetIncome         float64 `parquet:"name=n_income, type=DOUBLE"`
	OperatingCashFlow float64 `parquet:"name=net_operate_cash_flow, type=DOUBLE"`
	TotalLiabilities  float64 `parquet:"name=total_liab, type=DOUBLE"`
	TotalAssets       float64 `parquet:"name=total_assets, type=DOUBLE"`
	MultiState        string  `parquet:"name=multi_state, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func ptr[T any](v T) *T {
	return &v
}

func writeParquetFixture[T any](fn string, records []*T) {
	fh, err := local.NewLocalFileWriter(fn)
	Expect(err).NotTo(HaveOccurred())
	defer fh.Close()

	pw, err := writer.NewParquetWriter(fh, new(T), 1)
	Expect(err).NotTo(HaveOccurred())
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, r := range records {
		Expect(pw.Write(r)).To(Succeed())
	}

	Expect(pw.WriteStop()).To(Succeed())
}

var _ = Describe("Load", func() {
	var (
		ctx  context.Context
		dir  string
		conf library.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
		conf = library.Config{
			Dataset: writeFixture(dir, "finance.csv", datasetCSV),
			Quotes: library.QuotePaths{
				Buffett:   writeFixture(dir, "buffett.txt", "  Price is what you pay.  \n\nBe fearful when others are greedy.\n   \nRule No. 1: never lose money.\n"),
				MultiDisc: writeFixture(dir, "multi.json", `{"psychology": ["Markets are moody."], "physics": ["Momentum persists.", "Friction wins."]}`),
				LLM:       writeFixture(dir, "llm.json", `{"Alpha": "Alpha converts sales into cash reliably."}`),
			},
		}
	})

	Context("with well formed inputs", func() {
		It("loads the dataset", func() {
			myLibrary, err := library.Load(ctx, conf)
			Expect(err).NotTo(HaveOccurred())
			Expect(myLibrary.Dataset.Len()).To(Equal(4))
			Expect(myLibrary.Dataset.Companies()).To(Equal([]string{"Alpha", "Beta", "Gamma"}))

			alpha := myLibrary.Dataset.Company("Alpha")
			Expect(alpha[0].Year).To(Equal(2020))
			Expect(alpha[1].Revenue).To(Equal(1000000.0))
			Expect(alpha[1].MultiState).To(Equal("stable"))
			Expect(myLibrary.LastModified.IsZero()).To(BeFalse())
		})

		It("decodes empty cells as zero values", func() {
			myLibrary, err := library.Load(ctx, conf)
			Expect(err).NotTo(HaveOccurred())
			gamma := myLibrary.Dataset.Company("Gamma")
			Expect(gamma).To(HaveLen(1))
			Expect(gamma[0].NetIncome).To(Equal(0.0))
			Expect(gamma[0].MultiState).To(BeEmpty())
		})

		It("loads quote collections matching the files", func() {
			myLibrary, err := library.Load(ctx, conf)
			Expect(err).NotTo(HaveOccurred())
			Expect(myLibrary.Warnings).To(BeEmpty())
			Expect(myLibrary.Quotes.Buffett).To(Equal([]string{
				"Price is what you pay.",
				"Be fearful when others are greedy.",
				"Rule No. 1: never lose money.",
			}))
			Expect(myLibrary.Quotes.MultiDisc).To(HaveLen(2))
			Expect(myLibrary.Quotes.MultiDisc["physics"]).To(HaveLen(2))
			Expect(myLibrary.Quotes.LLM).To(HaveLen(1))
		})

		It("summarizes the library", func() {
			myLibrary, err := library.Load(ctx, conf)
			Expect(err).NotTo(HaveOccurred())
			summary := myLibrary.Summary()
			Expect(summary).To(ContainSubstring("Companies: 3"))
			Expect(summary).To(ContainSubstring("Records: 4"))
			Expect(summary).To(ContainSubstring("Years: 2020 - 2022"))
			Expect(summary).To(ContainSubstring("Buffett: 3"))
			Expect(summary).To(ContainSubstring("Disciplines: 2 topics, 3 quotes"))
			Expect(summary).NotTo(ContainSubstring("## Warnings"))
		})
	})

	Context("when quote sources are missing", func() {
		BeforeEach(func() {
			conf.Quotes = library.QuotePaths{
				Buffett:   filepath.Join(dir, "missing.txt"),
				MultiDisc: filepath.Join(dir, "missing.json"),
				LLM:       "",
			}
		})

		It("still loads the dataset and records a warning per source", func() {
			myLibrary, err := library.Load(ctx, conf)
			Expect(err).NotTo(HaveOccurred())
			Expect(myLibrary.Dataset.Len()).To(Equal(4))
			Expect(myLibrary.Quotes.Empty()).To(BeTrue())
			Expect(myLibrary.Warnings).To(HaveLen(3))

			var sourceErr *library.QuoteSourceError
			Expect(errors.As(myLibrary.Warnings[2], &sourceErr)).To(BeTrue())
			Expect(sourceErr.Source).To(Equal(data.LLMQuotes))
			Expect(errors.Is(sourceErr, library.ErrNotConfigured)).To(BeTrue())

			Expect(myLibrary.Summary()).To(ContainSubstring("## Warnings"))
		})
	})

	Context("when one JSON source is malformed", func() {
		BeforeEach(func() {
			conf.Quotes.MultiDisc = writeFixture(dir, "broken.json", `{"psychology": ["unterminated"`)
		})

		It("only degrades that source", func() {
			myLibrary, err := library.Load(ctx, conf)
			Expect(err).NotTo(HaveOccurred())
			Expect(myLibrary.Warnings).To(HaveLen(1))
			Expect(myLibrary.Quotes.MultiDisc).To(BeEmpty())
			Expect(myLibrary.Quotes.Buffett).To(HaveLen(3))
			Expect(myLibrary.Quotes.LLM).To(HaveKey("Alpha"))
		})
	})

	Context("when a JSON source has the wrong shape", func() {
		BeforeEach(func() {
			conf.Quotes.LLM = writeFixture(dir, "llm-list.json", `["not", "a", "map"]`)
		})

		It("treats it as malformed", func() {
			myLibrary, err := library.Load(ctx, conf)
			Expect(err).NotTo(HaveOccurred())
			Expect(myLibrary.Warnings).To(HaveLen(1))
			Expect(myLibrary.Quotes.LLM).To(BeEmpty())
		})
	})

	Context("when the dataset cannot be loaded", func() {
		It("fails for a missing file", func() {
			conf.Dataset = filepath.Join(dir, "missing.csv")
			_, err := library.Load(ctx, conf)
			Expect(err).To(MatchError(library.ErrDatasetLoad))
		})

		It("fails when no dataset is configured", func() {
			conf.Dataset = ""
			_, err := library.Load(ctx, conf)
			Expect(err).To(MatchError(library.ErrDatasetLoad))
		})

		It("fails for an unparseable file", func() {
			conf.Dataset = writeFixture(dir, "bad.csv", "company,year\nAlpha,not-a-year\n")
			_, err := library.Load(ctx, conf)
			Expect(err).To(MatchError(library.ErrDatasetLoad))
		})

		It("fails when there are no rows", func() {
			conf.Dataset = writeFixture(dir, "empty.csv", "company,year,revenue\n")
			_, err := library.Load(ctx, conf)
			Expect(err).To(MatchError(library.ErrEmptyDataset))
		})

		It("fails when every row is invalid", func() {
			conf.Dataset = writeFixture(dir, "invalid.csv", "company,year,revenue\n,2020,10\n")
			_, err := library.Load(ctx, conf)
			Expect(err).To(MatchError(library.ErrEmptyDataset))
		})
	})

	It("drops invalid rows and keeps the rest", func() {
		conf.Dataset = writeFixture(dir, "partial.csv", "company,year,revenue\n,2020,10\nAlpha,2020,20\n")
		myLibrary, err := library.Load(ctx, conf)
		Expect(err).NotTo(HaveOccurred())
		Expect(myLibrary.Dataset.Len()).To(Equal(1))
		Expect(myLibrary.NumDropped).To(Equal(1))
	})

	It("reads parquet datasets", func() {
		fn := filepath.Join(dir, "finance.parquet")
		writeParquetFixture(fn, []*parquetFixture{
			{Company: "Alpha", Year: 2021, Revenue: 1000, TotalAssets: 10, MultiState: "stable"},
			{Company: "Alpha", Year: 2020, Revenue: 900, TotalAssets: 9},
		})

		conf.Dataset = fn
		myLibrary, err := library.Load(ctx, conf)
		Expect(err).NotTo(HaveOccurred())
		rows := myLibrary.Dataset.Company("Alpha")
		Expect(rows).To(HaveLen(2))
		Expect(rows[1].Year).To(Equal(2021))
		Expect(rows[1].Revenue).To(Equal(1000.0))
		Expect(rows[1].MultiState).To(Equal("stable"))
	})

	Context("with parquet files written by pandas", func() {
		It("reads OPTIONAL columns and INT64 integers", func() {
			fn := filepath.Join(dir, "pandas.parquet")
			writeParquetFixture(fn, []*pandasFixture{
				{
					Company: ptr("Alpha"), Year: ptr(int64(2021)), Revenue: ptr(1000.0), NetIncome: ptr(80.0),
					OperatingCashFlow: ptr(120.0), TotalLiabilities: ptr(400.0), TotalAssets: ptr(int64(1000)),
					MultiState: ptr("stable"), Sector: ptr("tech"),
				},
				{Company: ptr("Alpha"), Year: ptr(int64(2020)), Revenue: ptr(math.NaN()), TotalAssets: ptr(int64(900))},
				{Year: ptr(int64(2020)), Revenue: ptr(5.0)},
			})

			conf.Dataset = fn
			myLibrary, err := library.Load(ctx, conf)
			Expect(err).NotTo(HaveOccurred())
			Expect(myLibrary.NumDropped).To(Equal(1))

			rows := myLibrary.Dataset.Company("Alpha")
			Expect(rows).To(HaveLen(2))

			Expect(rows[0].Year).To(Equal(2020))
			Expect(rows[0].Revenue).To(Equal(0.0))
			Expect(rows[0].NetIncome).To(Equal(0.0))
			Expect(rows[0].TotalAssets).To(Equal(900.0))
			Expect(rows[0].MultiState).To(BeEmpty())

			Expect(*rows[1]).To(Equal(data.CompanyYear{
				Company: "Alpha", Year: 2021, Revenue: 1000, NetIncome: 80, OperatingCashFlow: 120,
				TotalLiabilities: 400, TotalAssets: 1000, MultiState: "stable",
			}))
		})

		It("fails when dataset columns are missing", func() {
			fn := filepath.Join(dir, "partial.parquet")
			writeParquetFixture(fn, []*partialFixture{
				{Company: ptr("Alpha"), Year: ptr(int64(2020)), Revenue: ptr(5.0)},
			})

			conf.Dataset = fn
			_, err := library.Load(ctx, conf)
			Expect(err).To(MatchError(library.ErrDatasetLoad))
			Expect(err).To(MatchError(library.ErrParquetSchema))
			Expect(err.Error()).To(ContainSubstring("n_income"))
			Expect(err.Error()).To(ContainSubstring("multi_state"))
		})

		It("fails when a column has an unusable type", func() {
			fn := filepath.Join(dir, "text-year.parquet")
			writeParquetFixture(fn, []*textYearFixture{
				{Company: "Alpha", Year: "2020", Revenue: 5},
			})

			conf.Dataset = fn
			_, err := library.Load(ctx, conf)
			Expect(err).To(MatchError(library.ErrDatasetLoad))
			Expect(err).To(MatchError(library.ErrParquetSchema))
			Expect(err.Error()).To(ContainSubstring("year"))
		})

		It("fails for a file that is not parquet", func() {
			conf.Dataset = writeFixture(dir, "fake.parquet", "company,year\nAlpha,2020\n")
			_, err := library.Load(ctx, conf)
			Expect(err).To(MatchError(library.ErrDatasetLoad))
		})
	})

	It("loads NaN cells as zero so reports can be encoded", func() {
		conf.Dataset = writeFixture(dir, "nan.csv", "company,year,revenue,n_income\nAlpha,2020.0,NaN,1\n")
		myLibrary, err := library.Load(ctx, conf)
		Expect(err).NotTo(HaveOccurred())

		rows := myLibrary.Dataset.Company("Alpha")
		Expect(rows).To(HaveLen(1))
		Expect(rows[0].Revenue).To(Equal(0.0))

		result := report.Build(myLibrary.Dataset, "Alpha", myLibrary.Quotes, 10)
		Expect(result.Quick.Revenue).To(Equal(0.0))
		out, err := json.MarshalIndent(result, "", "  ")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(ContainSubstring(`"company": "Alpha"`))
	})
})

var _ = Describe("LoadLineQuotes", func() {
	It("requires a path", func() {
		_, err := library.LoadLineQuotes("")
		Expect(err).To(MatchError(library.ErrNotConfigured))
	})

	It("handles windows line endings", func() {
		fn := writeFixture(GinkgoT().TempDir(), "crlf.txt", "one\r\ntwo\r\n\r\n")
		quotes, err := library.LoadLineQuotes(fn)
		Expect(err).NotTo(HaveOccurred())
		Expect(quotes).To(Equal([]string{"one", "two"}))
	})
})
