package shops

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"kromer-flow-plugin/internal/shopapi"
)

// Price is one parsed entry of a listing's price list.
type Price struct {
	ID           string
	Value        float64
	Currency     string
	Address      string
	RequiredMeta string
}

// Listing is one sellable item entry belonging to a shop. Construction is
// pure: parsing happens here, cache registration is done by the fetch paths.
type Listing struct {
	raw shopapi.ListingRecord

	// Prices is the parsed price list, sorted ascending by value.
	Prices []Price
}

// NewListing builds a listing from a validated record and parses its price
// string.
func NewListing(record shopapi.ListingRecord) *Listing {
	prices := parsePriceString(record.PricesString)
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Value < prices[j].Value
	})
	return &Listing{raw: record, Prices: prices}
}

// Raw returns the backing record.
func (l *Listing) Raw() shopapi.ListingRecord { return l.raw }

func (l *Listing) ID() int64     { return l.raw.ID }
func (l *Listing) ShopID() int64 { return l.raw.ShopID }
func (l *Listing) Name() string  { return l.raw.Name }
func (l *Listing) Item() string  { return l.raw.Item }
func (l *Listing) Hash() string  { return l.raw.Hash }
func (l *Listing) Stock() int    { return l.raw.Stock }

// Description returns the description or "" when absent.
func (l *Listing) Description() string {
	if l.raw.Description == nil {
		return ""
	}
	return *l.raw.Description
}

// NBT returns the listing's NBT hash, falling back to the known-enchantment
// table for enchanted books.
func (l *Listing) NBT() string {
	if l.raw.NBT != nil && *l.raw.NBT != "" {
		return *l.raw.NBT
	}
	if nbt, ok := enchantNBT(l.raw.Item, l.raw.Name); ok {
		return nbt
	}
	return ""
}

// ShopKey returns the canonical cache key of the owning shop.
func (l *Listing) ShopKey() string {
	return strconv.FormatInt(l.raw.ShopID, 10)
}

// Key returns the composite cache key identifying this listing system-wide.
// A listing id alone is only unique within its shop.
func (l *Listing) Key() string {
	return listingKey(l.ShopKey(), l.raw.ID)
}

// LowestPrice returns the cheapest price value, or +Inf for an empty price
// list so unpriced listings sort last.
func (l *Listing) LowestPrice() float64 {
	if len(l.Prices) == 0 {
		return math.Inf(1)
	}
	return l.Prices[0].Value
}

// FormatPrices renders the price list as "5.5 DOGE, 10 KRO".
func (l *Listing) FormatPrices() string {
	parts := make([]string, 0, len(l.Prices))
	for _, p := range l.Prices {
		parts = append(parts, fmt.Sprintf("%g %s", p.Value, p.Currency))
	}
	return strings.Join(parts, ", ")
}

func listingKey(shopKey string, id int64) string {
	return fmt.Sprintf("%s:%d", shopKey, id)
}

// parsePriceString parses a ";"-delimited list of "<amount> <currency>"
// tokens. Unparseable amounts coerce to 0, a missing currency becomes
// "UNKNOWN", blank tokens are dropped.
func parsePriceString(priceString string) []Price {
	if priceString == "" {
		return []Price{}
	}

	var prices []Price
	for _, token := range strings.Split(priceString, ";") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		fields := strings.Fields(token)
		value, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			value = 0
		}
		currency := "UNKNOWN"
		if len(fields) > 1 {
			currency = fields[1]
		}

		prices = append(prices, Price{
			ID:       uuid.NewString(),
			Value:    value,
			Currency: currency,
		})
	}
	if prices == nil {
		return []Price{}
	}
	return prices
}

// SortKey selects the comparator applied to a listing sequence at read time.
type SortKey string

const (
	SortPrice SortKey = "price"
	SortStock SortKey = "stock"
	SortName  SortKey = "name"
)

// ParseSortKey maps user input onto a sort key, defaulting to price.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(s)) {
	case SortStock:
		return SortStock
	case SortName:
		return SortName
	default:
		return SortPrice
	}
}

// SortListings returns a sorted copy of the given listings. Price compares
// each listing's lowest price ascending, stock sorts descending, name sorts
// lexicographically ascending. Callers never observe mutation of a cached
// sequence.
func SortListings(listings []*Listing, key SortKey) []*Listing {
	out := make([]*Listing, len(listings))
	copy(out, listings)

	switch key {
	case SortStock:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Stock() > out[j].Stock()
		})
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Name() < out[j].Name()
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].LowestPrice() < out[j].LowestPrice()
		})
	}
	return out
}
