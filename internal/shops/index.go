package shops

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"kromer-flow-plugin/internal/cache"
	"kromer-flow-plugin/internal/shopapi"
)

const allKey = "all"

// ListingIndex holds every known listing across three internally consistent
// caches sharing one TTL policy: a per-shop bucket cache, a composite-key
// cache, and a merged "all listings" cache. A full fetch rebuilds all three
// together; a per-shop fetch updates its own bucket and merges into "all".
type ListingIndex struct {
	client shopapi.Client
	byShop *cache.Cache[[]*Listing]
	byID   *cache.Cache[*Listing]
	all    *cache.Cache[[]*Listing]
	log    *logrus.Entry
}

// NewListingIndex creates an index with the given TTL for all three caches.
func NewListingIndex(client shopapi.Client, ttl time.Duration) *ListingIndex {
	return &ListingIndex{
		client: client,
		byShop: cache.New[[]*Listing](ttl),
		byID:   cache.New[*Listing](ttl),
		all:    cache.New[[]*Listing](ttl),
		log:    logrus.WithField("component", "listing-index"),
	}
}

// FetchAll returns every listing across all shops, sorted by key. A cached
// "all" bucket is reused unless forced; a remote fetch rebuilds all three
// caches together.
func (x *ListingIndex) FetchAll(ctx context.Context, key SortKey, force bool) ([]*Listing, error) {
	if !force {
		if cached, ok := x.all.Get(allKey); ok {
			return SortListings(cached, key), nil
		}
	}

	records, err := x.client.AllListings(ctx, force)
	if err != nil {
		return nil, err
	}

	listings := make([]*Listing, 0, len(records))
	for _, r := range records {
		listings = append(listings, NewListing(r))
	}

	x.reindex(listings, key)
	x.log.WithField("listings", len(listings)).Debug("rebuilt listing index")
	return SortListings(listings, key), nil
}

// FetchShopListings returns one shop's listings sorted by key. routeUID
// addresses the backend route; shopKey is the canonical bucket key. On a
// remote fetch the results are merged into the "all" bucket without
// deduplication: a forced refresh of one shop leaves that shop's previous
// rows in place until the next full rebuild.
func (x *ListingIndex) FetchShopListings(ctx context.Context, routeUID, shopKey string, key SortKey, force bool) ([]*Listing, error) {
	if !force {
		if cached, ok := x.byShop.Get(shopKey); ok {
			return SortListings(cached, key), nil
		}
	}

	records, err := x.client.ShopListings(ctx, routeUID, force)
	if err != nil {
		return nil, err
	}

	listings := make([]*Listing, 0, len(records))
	for _, r := range records {
		listings = append(listings, NewListing(r))
	}

	sorted := SortListings(listings, key)
	x.byShop.Set(shopKey, sorted)
	for _, l := range listings {
		x.byID.Set(listingKey(shopKey, l.ID()), l)
	}

	// keep the "all" bucket up to date
	merged, _ := x.all.Get(allKey)
	merged = append(append([]*Listing{}, merged...), listings...)
	x.all.Set(allKey, SortListings(merged, key))

	return sorted, nil
}

// FetchListing returns a single listing, cache-checked by composite key
// first.
func (x *ListingIndex) FetchListing(ctx context.Context, routeUID, shopKey string, itemID int64, force bool) (*Listing, error) {
	ck := listingKey(shopKey, itemID)
	if !force {
		if cached, ok := x.byID.Get(ck); ok {
			return cached, nil
		}
	}

	record, err := x.client.ShopListing(ctx, routeUID, itemID, force)
	if err != nil {
		return nil, err
	}

	listing := NewListing(*record)
	x.byID.Set(ck, listing)
	return listing, nil
}

// CachedByShop returns the cached bucket for a shop, sorted by key. The
// second return is false when the bucket is absent or expired.
func (x *ListingIndex) CachedByShop(shopKey string, key SortKey) ([]*Listing, bool) {
	cached, ok := x.byShop.Get(shopKey)
	if !ok {
		return nil, false
	}
	return SortListings(cached, key), true
}

// CachedByID returns a cached listing by composite key.
func (x *ListingIndex) CachedByID(shopKey string, itemID int64) (*Listing, bool) {
	return x.byID.Get(listingKey(shopKey, itemID))
}

// reindex clears the by-shop and by-id caches and repopulates all three from
// a full listing set.
func (x *ListingIndex) reindex(listings []*Listing, key SortKey) {
	x.byShop.Clear()
	x.byID.Clear()

	buckets := make(map[string][]*Listing)
	for _, l := range listings {
		buckets[l.ShopKey()] = append(buckets[l.ShopKey()], l)
		x.byID.Set(l.Key(), l)
	}
	for shopKey, bucket := range buckets {
		x.byShop.Set(shopKey, SortListings(bucket, key))
	}

	x.all.Set(allKey, SortListings(listings, key))
}
