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
package pkginfo_test

import (
	"runtime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvdash/pkginfo"
)

var _ = Describe("Pkginfo", func() {
	AfterEach(func() {
		pkginfo.Version = ""
		pkginfo.CommitHash = ""
	})

	It("falls back to a dev version when none was linked", func() {
		Expect(pkginfo.Info().Version).To(Equal("dev"))
	})

	It("includes the link-time values in the version string", func() {
		pkginfo.Version = "1.2.3"
		pkginfo.CommitHash = "abc123"

		str := pkginfo.BuildVersionString()
		Expect(str).To(HavePrefix("pvdash 1.2.3 " + runtime.GOOS + "/" + runtime.GOARCH))
		Expect(str).To(ContainSubstring("Commit: abc123"))
		Expect(str).To(ContainSubstring("Built with: " + runtime.Version()))
	})

	It("formats dependencies as path=\"version\"", func() {
		dep := pkginfo.Dependency{Path: "github.com/rs/zerolog", Version: "v1.33.0"}
		Expect(dep.String()).To(Equal(`github.com/rs/zerolog="v1.33.0"`))
	})

	It("filters dependencies by prefix", func() {
		for _, dep := range pkginfo.Dependencies("github.com/onsi/") {
			Expect(dep.Path).To(HavePrefix("github.com/onsi/"))
		}
	})
})
