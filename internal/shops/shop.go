package shops

import (
	"strconv"
	"strings"
	"time"

	"kromer-flow-plugin/internal/shopapi"
)

// Coords is a parsed in-world location.
type Coords struct {
	X, Y, Z float64
}

// Location bundles a shop's parsed coordinates with its dimension and
// human-readable description.
type Location struct {
	Coords      Coords
	Dimension   string
	Description string
}

// Shop is a named remote storefront. Immutable after construction; a re-fetch
// replaces the cache entry rather than mutating it. The listing collection is
// not stored on the shop, it is derived through the registry's listing index.
type Shop struct {
	raw shopapi.ShopRecord
}

// NewShop builds a shop from a validated record. Pure: cache registration is
// done by the fetch paths.
func NewShop(record shopapi.ShopRecord) *Shop {
	return &Shop{raw: record}
}

// Raw returns the backing record.
func (s *Shop) Raw() shopapi.ShopRecord { return s.raw }

func (s *Shop) ID() int64   { return s.raw.ID }
func (s *Shop) UID() string { return s.raw.UID }
func (s *Shop) Name() string {
	return s.raw.Name
}

// Key returns the canonical cache key shared with the listing index, derived
// from the numeric shop id carried on every listing.
func (s *Shop) Key() string {
	return strconv.FormatInt(s.raw.ID, 10)
}

// Description returns the description or "" when absent.
func (s *Shop) Description() string {
	if s.raw.Description == nil {
		return ""
	}
	return *s.raw.Description
}

// Owner returns the owner name or "" when absent.
func (s *Shop) Owner() string {
	if s.raw.Owner == nil {
		return ""
	}
	return *s.raw.Owner
}

// FirstSeen parses the backend's first-seen timestamp, zero on failure.
func (s *Shop) FirstSeen() time.Time {
	return parseTimestamp(s.raw.FirstSeen)
}

// LastUpdate parses the backend's last-update timestamp, zero on failure.
func (s *Shop) LastUpdate() time.Time {
	return parseTimestamp(s.raw.LastUpdate)
}

// Location parses the shop's raw location string. The advertised location is
// preferred over the actual one; unparseable coordinates coerce to 0.
func (s *Shop) Location() Location {
	rawLocation := ""
	if s.raw.Location != nil {
		rawLocation = *s.raw.Location
	} else if s.raw.ActualLocation != nil {
		rawLocation = *s.raw.ActualLocation
	}

	var coords Coords
	fields := strings.Fields(rawLocation)
	axes := []*float64{&coords.X, &coords.Y, &coords.Z}
	for i, axis := range axes {
		if i < len(fields) {
			if v, err := strconv.ParseFloat(fields[i], 64); err == nil {
				*axis = v
			}
		}
	}

	loc := Location{Coords: coords}
	if s.raw.LocationDimension != nil {
		loc.Dimension = *s.raw.LocationDimension
	}
	if s.raw.LocationDescription != nil {
		loc.Description = *s.raw.LocationDescription
	}
	return loc
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
