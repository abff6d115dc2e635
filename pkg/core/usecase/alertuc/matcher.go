// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package alertuc

import (
	"math"

	"github.com/momeni/job-alerts/pkg/core/model"
)

// EarthRadiusKm is the WGS 84 mean Earth radius which is used for the
// great-circle distance computation.
const EarthRadiusKm = 6371.0

// boundaryToleranceKm absorbs the floating point error of the
// haversine evaluation, so a posting at exactly the radius distance
// matches inclusively.
const boundaryToleranceKm = 1e-6

// Match returns the subset of postings which lie within radiusKm
// kilometers of the origin position, measured along a great circle.
// The boundary is inclusive. Postings without coordinates are skipped
// silently; they can never produce a false match nor an error.
// A non-positive radius yields an empty match set by policy (it is not
// an error). Match is pure and order-preserving: the returned slice
// respects the input postings order and no input is mutated.
func Match(
	origin model.Position, radiusKm float64, postings []model.JobPosting,
) []model.JobPosting {
	if radiusKm <= 0 {
		return nil
	}
	var matched []model.JobPosting
	for _, p := range postings {
		if p.Location == nil {
			continue
		}
		d := DistanceKm(origin.Coordinate, *p.Location)
		if d <= radiusKm+boundaryToleranceKm {
			matched = append(matched, p)
		}
	}
	return matched
}

// DistanceKm computes the great-circle distance between two
// coordinates in kilometers using the haversine formula.
func DistanceKm(a, b model.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}
