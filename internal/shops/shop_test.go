package shops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kromer-flow-plugin/internal/shopapi"
)

func TestShopKey(t *testing.T) {
	s := NewShop(shopapi.ShopRecord{ID: 12, UID: "abc:1", Name: "Shop"})
	assert.Equal(t, "12", s.Key())
	assert.Equal(t, "abc:1", s.UID())
}

func TestShopLocation(t *testing.T) {
	tests := []struct {
		name   string
		record shopapi.ShopRecord
		want   Location
	}{
		{
			name: "advertised location preferred",
			record: shopapi.ShopRecord{
				Location:            strPtr("100 64 -200"),
				ActualLocation:      strPtr("1 2 3"),
				LocationDimension:   strPtr("overworld"),
				LocationDescription: strPtr("spawn market"),
			},
			want: Location{
				Coords:      Coords{X: 100, Y: 64, Z: -200},
				Dimension:   "overworld",
				Description: "spawn market",
			},
		},
		{
			name:   "falls back to actual location",
			record: shopapi.ShopRecord{ActualLocation: strPtr("1 2 3")},
			want:   Location{Coords: Coords{X: 1, Y: 2, Z: 3}},
		},
		{
			name:   "unparseable axes coerce to zero",
			record: shopapi.ShopRecord{Location: strPtr("abc 64")},
			want:   Location{Coords: Coords{X: 0, Y: 64, Z: 0}},
		},
		{
			name:   "no location at all",
			record: shopapi.ShopRecord{},
			want:   Location{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewShop(tt.record).Location())
		})
	}
}

func TestShopTimestamps(t *testing.T) {
	s := NewShop(shopapi.ShopRecord{
		FirstSeen:  "2024-03-01T12:00:00Z",
		LastUpdate: "not a timestamp",
	})

	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), s.FirstSeen())
	assert.True(t, s.LastUpdate().IsZero())
}

func TestShopOptionalFields(t *testing.T) {
	bare := NewShop(shopapi.ShopRecord{ID: 1, UID: "a:1", Name: "Bare"})
	assert.Equal(t, "", bare.Owner())
	assert.Equal(t, "", bare.Description())

	full := NewShop(shopapi.ShopRecord{
		ID: 2, UID: "b:1", Name: "Full",
		Owner:       strPtr("steve"),
		Description: strPtr("sells rocks"),
	})
	assert.Equal(t, "steve", full.Owner())
	assert.Equal(t, "sells rocks", full.Description())
}
