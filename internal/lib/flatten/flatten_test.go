package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eac-lab/film-archive/internal/models"
)

func TestFindByRole(t *testing.T) {
	testCases := []struct {
		desc    string
		authors []models.Author
		role    string
		expect  models.Author
	}{
		{
			desc: "single match",
			authors: []models.Author{
				{Role: "Filmmaker", Name: "Agnès Varda", Comment: "confirmed"},
			},
			role:   "Filmmaker",
			expect: models.Author{Role: "Filmmaker", Name: "Agnès Varda", Comment: "confirmed"},
		},
		{
			desc: "first of several matches wins",
			authors: []models.Author{
				{Role: "Screenwriter", Name: "First"},
				{Role: "Screenwriter", Name: "Second"},
			},
			role:   "Screenwriter",
			expect: models.Author{Role: "Screenwriter", Name: "First"},
		},
		{
			desc: "no match returns zero value",
			authors: []models.Author{
				{Role: "Filmmaker", Name: "Someone"},
			},
			role:   "Screenwriter",
			expect: models.Author{},
		},
		{
			desc:    "empty list returns zero value",
			authors: []models.Author{},
			role:    "Filmmaker",
			expect:  models.Author{},
		},
		{
			desc: "match is case-sensitive",
			authors: []models.Author{
				{Role: "filmmaker", Name: "Lowercase"},
			},
			role:   "Filmmaker",
			expect: models.Author{},
		},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert.Equal(t, tC.expect, FindByRole(tC.authors, tC.role))
		})
	}
}

func TestFirstOr(t *testing.T) {
	fallback := models.Equipment{EquipmentName: ""}

	assert.Equal(t, fallback, FirstOr(nil, fallback))
	assert.Equal(t,
		models.Equipment{EquipmentName: "Bolex H16"},
		FirstOr([]models.Equipment{
			{EquipmentName: "Bolex H16"},
			{EquipmentName: "Nagra III"},
		}, fallback),
	)
}

func TestGroupByOrder(t *testing.T) {
	team := []models.TeamMember{
		{Department: "Image Technicians", Name: "A"},
		{Department: "Sound Technicians", Name: "B"},
		{Department: "Image Technicians", Name: "C"},
		{Department: "Film Editor", Name: "D"},
		{Department: "Sound Technicians", Name: "E"},
	}

	groups := GroupBy(team, func(m models.TeamMember) string { return m.Department })

	// Key order equals first-occurrence order.
	require.Equal(t,
		[]string{"Image Technicians", "Sound Technicians", "Film Editor"},
		groups.Keys(),
	)

	// Flattening back in (key, member) order reproduces input order per bucket.
	var flat []models.TeamMember
	for _, key := range groups.Keys() {
		flat = append(flat, groups.Get(key)...)
	}
	assert.Equal(t, []models.TeamMember{
		{Department: "Image Technicians", Name: "A"},
		{Department: "Image Technicians", Name: "C"},
		{Department: "Sound Technicians", Name: "B"},
		{Department: "Sound Technicians", Name: "E"},
		{Department: "Film Editor", Name: "D"},
	}, flat)
}

func TestGroupByEmpty(t *testing.T) {
	groups := GroupBy(nil, func(m models.TeamMember) string { return m.Department })

	assert.Equal(t, 0, groups.Len())
	assert.Empty(t, groups.Keys())
}

func TestColumnKey(t *testing.T) {
	testCases := []struct {
		label  string
		expect string
	}{
		{"Image Technicians", "image_technicians"},
		{"Sound/Image", "sound/image"},
		{"Executive Producer", "executive_producer"},
		{"Music & Sound Designers", "music_&_sound_designers"},
		{"  padded  label ", "_padded_label_"},
		{"already_flat", "already_flat"},
		{"", ""},
	}

	for _, tC := range testCases {
		t.Run(tC.label, func(t *testing.T) {
			assert.Equal(t, tC.expect, ColumnKey(tC.label))
		})
	}
}
