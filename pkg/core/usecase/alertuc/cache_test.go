// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package alertuc_test

import (
	"testing"

	"github.com/momeni/job-alerts/pkg/core/model"
	"github.com/momeni/job-alerts/pkg/core/usecase/alertuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheReplaceCarriesNotifiedMarkerOver(t *testing.T) {
	c := alertuc.NewCache()
	c.Replace([]model.JobPosting{
		posting("a", coord(43.70, -79.40)),
		posting("b", coord(43.71, -79.41)),
	})
	c.MarkNotified("a")

	c.Replace([]model.JobPosting{
		posting("a", coord(43.70, -79.40)), // unmoved
		posting("b", coord(43.71, -79.41)),
	})
	un := c.UnnotifiedWithin([]string{"a", "b"})
	require.Len(t, un, 1, "a stays notified across the refresh")
	assert.Equal(t, "b", un[0].ID)
}

func TestCacheReplaceReArmsRelocatedPosting(t *testing.T) {
	c := alertuc.NewCache()
	c.Replace([]model.JobPosting{posting("a", coord(43.70, -79.40))})
	c.MarkNotified("a")

	c.Replace([]model.JobPosting{posting("a", coord(43.75, -79.40))})
	un := c.UnnotifiedWithin([]string{"a"})
	assert.Len(t, un, 1, "a moved, so its alert must be re-armed")
}

func TestCacheReplaceReArmsOnCoordinatePresenceChange(t *testing.T) {
	for name, locs := range map[string][2]*model.Coordinate{
		"gained coordinates": {nil, coord(43.70, -79.40)},
		"lost coordinates":   {coord(43.70, -79.40), nil},
	} {
		t.Run(name, func(t *testing.T) {
			c := alertuc.NewCache()
			c.Replace([]model.JobPosting{posting("a", locs[0])})
			c.MarkNotified("a")
			c.Replace([]model.JobPosting{posting("a", locs[1])})
			assert.Len(t, c.UnnotifiedWithin([]string{"a"}), 1)
		})
	}
}

func TestCacheReplaceKeepsTwoNilLocationsEqual(t *testing.T) {
	c := alertuc.NewCache()
	c.Replace([]model.JobPosting{posting("a", nil)})
	c.MarkNotified("a")
	c.Replace([]model.JobPosting{posting("a", nil)})
	assert.Empty(
		t, c.UnnotifiedWithin([]string{"a"}),
		"a posting without coordinates did not move",
	)
}

func TestCacheReplaceDropsAbsentPostings(t *testing.T) {
	c := alertuc.NewCache()
	c.Replace([]model.JobPosting{posting("a", coord(43.70, -79.40))})
	c.MarkNotified("a")

	c.Replace(nil)
	assert.Zero(t, c.Len())

	// reappearing later is a fresh entry with a cleared marker
	c.Replace([]model.JobPosting{posting("a", coord(43.70, -79.40))})
	assert.Len(t, c.UnnotifiedWithin([]string{"a"}), 1)
}

func TestCacheReplaceFirstDuplicateIDWins(t *testing.T) {
	c := alertuc.NewCache()
	first := posting("a", coord(43.70, -79.40))
	first.Title = "first"
	second := posting("a", coord(43.75, -79.45))
	second.Title = "second"
	c.Replace([]model.JobPosting{first, second})

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "first", c.Postings()[0].Title)
}

func TestCacheMarkNotifiedAbsentIsNoOp(t *testing.T) {
	c := alertuc.NewCache()
	c.Replace([]model.JobPosting{posting("a", nil)})
	c.MarkNotified("missing")
	assert.Len(t, c.UnnotifiedWithin([]string{"a"}), 1)
}

func TestCacheUnnotifiedWithinPreservesIDOrder(t *testing.T) {
	c := alertuc.NewCache()
	c.Replace([]model.JobPosting{
		posting("a", nil), posting("b", nil), posting("c", nil),
	})
	un := c.UnnotifiedWithin([]string{"c", "missing", "a"})
	require.Len(t, un, 2)
	assert.Equal(t, "c", un[0].ID)
	assert.Equal(t, "a", un[1].ID)
}

func TestCachePostingsKeepFetchOrder(t *testing.T) {
	c := alertuc.NewCache()
	c.Replace([]model.JobPosting{
		posting("z", nil), posting("m", nil), posting("a", nil),
	})
	ids := make([]string, 0, c.Len())
	for _, p := range c.Postings() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"z", "m", "a"}, ids)
}
