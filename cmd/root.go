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
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/penny-vault/pvdash/library"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pvdash",
	Short: "pvdash is a terminal dashboard for company financials and their predicted state",
	Long: `pvdash loads a pre-computed financial dataset (one row per company and
year with revenue, income, cash flow, balance sheet totals and a predicted
state) together with three collections of investment quotes, and presents a
report for a single company at three levels of detail:

	* Quick (3s): the predicted state, latest revenue and a quote
	* Intermediate (5min): the revenue, income and cash flow trend plus a
	  revenue growth scenario
	* Deep (30min): the full table, debt ratio, net margin, cash flow ratio and
	  company specific commentary

The dataset may be a CSV file, a parquet file or a PostgreSQL table. Quote
files that are missing or malformed are skipped with a warning.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := zerolog.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			log.Warn().Err(err).Str("Level", viper.GetString("log_level")).Msg("unknown log level, using info")
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	defaults := library.DefaultConfig()
	viper.SetDefault("dataset", defaults.Dataset)
	viper.SetDefault("dataset_table", defaults.DatasetTable)
	viper.SetDefault("currency", defaults.Currency)
	viper.SetDefault("quotes.buffett", defaults.Quotes.Buffett)
	viper.SetDefault("quotes.multi_disc", defaults.Quotes.MultiDisc)
	viper.SetDefault("quotes.llm", defaults.Quotes.LLM)
	viper.SetDefault("log_level", "info")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pvdash.toml)")
	rootCmd.PersistentFlags().String("dataset", "", "dataset file (csv or parquet) or postgres:// connection string")
	rootCmd.PersistentFlags().String("buffett-quotes", "", "file with one Buffett quote per line")
	rootCmd.PersistentFlags().String("multi-disc-quotes", "", "JSON file mapping a discipline to its quotes")
	rootCmd.PersistentFlags().String("llm-quotes", "", "JSON file mapping a company to generated commentary")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")

	flagKeys := map[string]string{
		"dataset":           "dataset",
		"buffett-quotes":    "quotes.buffett",
		"multi-disc-quotes": "quotes.multi_disc",
		"llm-quotes":        "quotes.llm",
		"log-level":         "log_level",
	}

	for flag, key := range flagKeys {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			log.Panic().Err(err).Str("Flag", flag).Msg("BindPFlag failed")
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// a .env file in the working directory is optional
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded environment from .env")
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pvdash" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".pvdash")
	}

	viper.SetEnvPrefix("pvdash")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}
}
