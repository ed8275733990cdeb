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
package pkginfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

const Name = "pvdash"

// Set at link time with -ldflags "-X github.com/penny-vault/pvdash/pkginfo.Version=..."
var (
	BuildDate  string
	CommitHash string
	Version    string
)

// Dependency is a module linked into the binary
type Dependency struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

func (dep Dependency) String() string {
	return fmt.Sprintf("%s=%q", dep.Path, dep.Version)
}

// BuildInfo describes the running binary
type BuildInfo struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	BuildDate  string `json:"build_date"`
	CommitHash string `json:"commit"`
	OSArch     string `json:"os_arch"`
	GoVersion  string `json:"go_version"`
}

// Info collects the link-time variables and runtime details
func Info() BuildInfo {
	version := Version
	if version == "" {
		version = "dev"
	}

	return BuildInfo{
		Name:       Name,
		Version:    version,
		BuildDate:  BuildDate,
		CommitHash: CommitHash,
		OSArch:     runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion:  runtime.Version(),
	}
}

// BuildVersionString returns a version info string suitable for printing on the command line
func BuildVersionString() string {
	info := Info()
	return fmt.Sprintf(`%s %s %s

Build Date: %s
Commit: %s
Built with: %s`, info.Name, info.Version, info.OSArch, info.BuildDate, info.CommitHash, info.GoVersion)
}

// Dependencies returns every module linked into the binary sorted by path.
// When prefix is non-empty only modules whose path starts with it are returned.
func Dependencies(prefix string) []Dependency {
	var deps []Dependency

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		log.Error().Msg("could not get package build info")
		return deps
	}

	for _, dep := range buildInfo.Deps {
		if prefix != "" && !strings.HasPrefix(dep.Path, prefix) {
			continue
		}
		deps = append(deps, Dependency{Path: dep.Path, Version: dep.Version})
	}

	sort.Slice(deps, func(i, j int) bool {
		return deps[i].Path < deps[j].Path
	})

	return deps
}
