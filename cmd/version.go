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
	"fmt"

	"github.com/goccy/go-json"
	"github.com/penny-vault/pvdash/pkginfo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	deps      bool
	depPrefix string
	short     bool
	asJSON    bool
)

// versionCmd prints build information embedded at link time
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Run: func(cmd *cobra.Command, args []string) {
		if asJSON {
			out := struct {
				pkginfo.BuildInfo
				Dependencies []pkginfo.Dependency `json:"dependencies,omitempty"`
			}{BuildInfo: pkginfo.Info()}
			if deps {
				out.Dependencies = pkginfo.Dependencies(depPrefix)
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				log.Fatal().Err(err).Msg("could not marshal version info")
			}
			fmt.Println(string(data))
			return
		}

		if short {
			fmt.Println(pkginfo.Info().Version)
		} else {
			fmt.Println(pkginfo.BuildVersionString())
		}

		if deps {
			fmt.Printf("\n\n")
			for _, dep := range pkginfo.Dependencies(depPrefix) {
				fmt.Println(dep)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&deps, "deps", "d", false, "print dependencies")
	versionCmd.Flags().StringVar(&depPrefix, "deps-prefix", "", "only print dependencies whose module path starts with prefix")
	versionCmd.Flags().BoolVarP(&short, "short", "s", false, "only print version number")
	versionCmd.Flags().BoolVar(&asJSON, "json", false, "print version info as JSON")
}
