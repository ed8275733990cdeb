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
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/gosimple/slug"
	"github.com/penny-vault/pvdash/data"
	"github.com/penny-vault/pvdash/library"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// loadConfig merges defaults, config file, environment and flags
func loadConfig() library.Config {
	conf := library.DefaultConfig()
	if err := viper.Unmarshal(&conf); err != nil {
		log.Fatal().Err(err).Msg("could not parse configuration")
	}

	return conf
}

// loadLibrary loads the dataset and quotes or exits; quote warnings have
// already been logged by the loader
func loadLibrary(ctx context.Context) (*library.Library, library.Config) {
	conf := loadConfig()

	myLibrary, err := library.Load(ctx, conf)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load dataset; check the dataset setting")
	}

	return myLibrary, conf
}

// resolveCompany matches name against the dataset's companies, first exactly
// and then by slug so "alpha-corp" selects "Alpha Corp". Unmatched names are
// returned unchanged.
func resolveCompany(dataset *data.Dataset, name string) string {
	if dataset.Company(name) != nil {
		return name
	}

	nameSlug := slug.Make(name)
	for _, company := range dataset.Companies() {
		if slug.Make(company) == nameSlug {
			return company
		}
	}

	return name
}

func renderMarkdown(md string) {
	r, _ := glamour.NewTermRenderer(
		// detect background color and pick either the default dark or light theme
		glamour.WithAutoStyle(),
		// wrap output at specific width (default is 80)
		glamour.WithWordWrap(100),
	)

	out, err := r.Render(md)
	if err != nil {
		log.Fatal().Err(err).Msg("could not render document")
	}

	fmt.Print(out)
}
