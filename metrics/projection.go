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
package metrics

import "math"

// Projection is the revenue expected after applying a growth scenario to the
// latest revenue
type Projection struct {
	GrowthPercent float64 `json:"growth_percent"`
	LatestRevenue float64 `json:"latest_revenue"`
	Projected     float64 `json:"projected"`
}

// Project applies growthPercent to revenue. The growth range is owned by the
// caller and is not clamped here; see ValidGrowth.
func Project(revenue, growthPercent float64) float64 {
	return revenue * (1 + growthPercent/100)
}

// NewProjection projects revenue by growthPercent. A NaN revenue counts as 0.
func NewProjection(revenue, growthPercent float64) Projection {
	if math.IsNaN(revenue) {
		revenue = 0
	}

	return Projection{
		GrowthPercent: growthPercent,
		LatestRevenue: revenue,
		Projected:     Project(revenue, growthPercent),
	}
}

// ValidGrowth reports whether growthPercent is inside [MinGrowth, MaxGrowth]
func ValidGrowth(growthPercent float64) bool {
	return growthPercent >= MinGrowth && growthPercent <= MaxGrowth
}
