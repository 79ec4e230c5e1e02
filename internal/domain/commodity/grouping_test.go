package commodity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
)

func TestGroup_ByCategory(t *testing.T) {
	grouped := commodity.Group([]string{"steel", "water", "titanium"}, commodity.SortByCategory)

	assert.Equal(t, map[string][]string{
		"Metals":    {"steel", "titanium"},
		"Chemicals": {"water"},
	}, grouped.Groups)
	assert.Equal(t, []string{"Chemicals", "Metals"}, grouped.Labels())
}

func TestGroup_Alpha(t *testing.T) {
	grouped := commodity.Group([]string{"water", "steel", "aluminium"}, commodity.SortAlpha)

	assert.Equal(t, map[string][]string{
		commodity.AlphaGroup: {"aluminium", "steel", "water"},
	}, grouped.Groups)
}

func TestGroup_UnsetOrUnrecognizedModeIsAlpha(t *testing.T) {
	for _, mode := range []commodity.SortMode{"", "sideways"} {
		grouped := commodity.Group([]string{"water", "steel"}, mode)

		assert.Equal(t, commodity.SortAlpha, grouped.Mode, "mode %q", mode)
		assert.Equal(t, []commodity.Entry{
			{Label: commodity.AlphaGroup, ID: "steel"},
			{Label: commodity.AlphaGroup, ID: "water"},
		}, commodity.Flatten(grouped), "mode %q", mode)
	}
}

func TestGroup_ByEconomyUsesCompositeKey(t *testing.T) {
	grouped := commodity.Group([]string{"water", "steel", "usscargoblackbox", "pesticides"}, commodity.SortByEconomy)

	assert.Equal(t, []string{"pesticides", "water"}, grouped.Groups["Refinery / Terraforming"])
	assert.Equal(t, []string{"steel"}, grouped.Groups["Refinery"])
	assert.Equal(t, []string{"usscargoblackbox"}, grouped.Groups["Unknown"])
}

func TestGroup_UnknownCommodityGetsUnknownBucket(t *testing.T) {
	grouped := commodity.Group([]string{"steel", "zzzqqq"}, commodity.SortByCategory)

	assert.Equal(t, []string{"zzzqqq"}, grouped.Groups["Unknown"])
}

func TestGroup_DeterministicAndDeduplicated(t *testing.T) {
	a := commodity.Group([]string{"steel", "water", "gold", "steel"}, commodity.SortByCategory)
	b := commodity.Group([]string{"gold", "water", "steel"}, commodity.SortByCategory)

	assert.Equal(t, a, b)
	assert.Equal(t, 3, a.Len())
}

func TestFlatten_Completeness(t *testing.T) {
	ids := []string{"steel", "water", "titanium", "robotics", "grain", "mysterygoo"}

	for _, mode := range []commodity.SortMode{commodity.SortAlpha, commodity.SortByCategory, commodity.SortByEconomy} {
		t.Run(string(mode), func(t *testing.T) {
			grouped := commodity.Group(ids, mode)
			entries := commodity.Flatten(grouped)

			seen := map[string]int{}
			headers := 0
			for _, e := range entries {
				if e.IsHeader() {
					headers++
					continue
				}
				seen[e.ID]++
			}
			require.Len(t, seen, len(ids))
			for _, id := range ids {
				assert.Equal(t, 1, seen[id], id)
			}
			if mode == commodity.SortAlpha {
				assert.Zero(t, headers)
			} else {
				assert.Equal(t, len(grouped.Groups), headers)
			}
		})
	}
}

func TestFlatten_RenderOrder(t *testing.T) {
	entries := commodity.Flatten(commodity.Group([]string{"titanium", "water", "steel"}, commodity.SortByCategory))

	assert.Equal(t, []commodity.Entry{
		{Label: "Chemicals"},
		{Label: "Chemicals", ID: "water"},
		{Label: "Metals"},
		{Label: "Metals", ID: "steel"},
		{Label: "Metals", ID: "titanium"},
	}, entries)
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in   string
		want commodity.SortMode
		ok   bool
	}{
		{"alpha", commodity.SortAlpha, true},
		{"", commodity.SortAlpha, true},
		{"Category", commodity.SortByCategory, true},
		{"econ", commodity.SortByEconomy, true},
		{"price", commodity.SortAlpha, false},
	}
	for _, tt := range tests {
		got, ok := commodity.ParseSortMode(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}
