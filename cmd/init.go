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
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/pelletier/go-toml/v2"
	"github.com/penny-vault/pvdash/library"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather dataset and quote locations and save them to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		conf := loadConfig()

		form := huh.NewForm(
			// Where does the dataset live
			huh.NewGroup(
				huh.NewInput().
					Title("Dataset file (csv or parquet) or postgres:// connection string:").
					Value(&conf.Dataset),
				huh.NewInput().
					Title("Database table (only used for postgres datasets):").
					Value(&conf.DatasetTable),
				huh.NewInput().
					Title("Currency symbol:").
					Value(&conf.Currency),
			),

			// Quote collections
			huh.NewGroup(
				huh.NewInput().
					Title("Buffett quotes (one per line):").
					Value(&conf.Quotes.Buffett),
				huh.NewInput().
					Title("Discipline quotes (JSON):").
					Value(&conf.Quotes.MultiDisc),
				huh.NewInput().
					Title("Company commentary (JSON):").
					Value(&conf.Quotes.LLM),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering dataset settings")
		}

		// save settings to config file
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not determine user home directory")
		}

		configFN := filepath.Join(home, ".pvdash.toml")
		log.Info().Str("ConfigFile", configFN).Msg("Saving dataset settings to config file")
		configData, err := toml.Marshal(conf)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0600)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		// make sure the settings actually load
		if _, err := library.Load(context.Background(), conf); err != nil {
			log.Warn().Err(err).Msg("configuration saved but the dataset could not be loaded")
			return
		}

		log.Info().Msg("pvdash has been configured")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
