package shops

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"kromer-flow-plugin/internal/cache"
	"kromer-flow-plugin/internal/shopapi"
)

// Registry holds shop records keyed by uid and composes with a ListingIndex
// to expose shop listings. It is an explicitly constructed object rather than
// process-wide state, so isolated instances can be built in tests.
type Registry struct {
	client   shopapi.Client
	shops    *cache.Cache[*Shop]
	listings *ListingIndex
	log      *logrus.Entry
}

// NewRegistry creates a registry and its listing index sharing one TTL.
func NewRegistry(client shopapi.Client, ttl time.Duration) *Registry {
	return &Registry{
		client:   client,
		shops:    cache.New[*Shop](ttl),
		listings: NewListingIndex(client, ttl),
		log:      logrus.WithField("component", "shop-registry"),
	}
}

// Index exposes the listing index.
func (r *Registry) Index() *ListingIndex { return r.listings }

// FetchAll returns all shops, from cache when populated and not forced. A
// remote fetch upserts every shop and warms the listing index with a full
// listings fetch.
func (r *Registry) FetchAll(ctx context.Context, force bool) ([]*Shop, error) {
	if !force {
		if cached := r.shops.Entries(); len(cached) > 0 {
			return cached, nil
		}
	}

	records, err := r.client.Shops(ctx, force)
	if err != nil {
		return nil, err
	}

	shops := make([]*Shop, 0, len(records))
	for _, rec := range records {
		shop := NewShop(rec)
		r.shops.Set(shop.UID(), shop)
		shops = append(shops, shop)
	}

	// warm listings
	if _, err := r.listings.FetchAll(ctx, SortPrice, false); err != nil {
		return nil, err
	}

	r.log.WithField("shops", len(shops)).Debug("refreshed shop cache")
	return shops, nil
}

// FetchByUID returns one shop, cache-checked by uid. A remote fetch also
// warms the listing index for that shop.
func (r *Registry) FetchByUID(ctx context.Context, uid string, force bool) (*Shop, error) {
	if !force {
		if cached, ok := r.shops.Get(uid); ok {
			return cached, nil
		}
	}

	record, err := r.client.Shop(ctx, uid, force)
	if err != nil {
		return nil, err
	}

	shop := NewShop(*record)
	r.shops.Set(shop.UID(), shop)

	if _, err := r.listings.FetchShopListings(ctx, uid, shop.Key(), SortPrice, false); err != nil {
		return nil, err
	}
	return shop, nil
}

// ByUID returns a cached shop without touching the network.
func (r *Registry) ByUID(uid string) (*Shop, bool) {
	return r.shops.Get(uid)
}

// ByID returns a cached shop by numeric id without touching the network.
func (r *Registry) ByID(id int64) (*Shop, bool) {
	for _, s := range r.shops.Entries() {
		if s.ID() == id {
			return s, true
		}
	}
	return nil, false
}

// EnsureCache fetches everything if the shop cache is currently empty. Cheap
// and idempotent; call before read paths that assume cache presence.
func (r *Registry) EnsureCache(ctx context.Context) error {
	if r.shops.Size() > 0 {
		return nil
	}
	_, err := r.FetchAll(ctx, false)
	return err
}

// Listings returns the cached listings for a shop, empty when none cached.
func (r *Registry) Listings(shop *Shop) []*Listing {
	cached, ok := r.listings.CachedByShop(shop.Key(), SortPrice)
	if !ok {
		return []*Listing{}
	}
	return cached
}

// TotalListings returns the number of cached listings for a shop.
func (r *Registry) TotalListings(shop *Shop) int {
	return len(r.Listings(shop))
}

// TotalStock sums the stock over a shop's cached listings.
func (r *Registry) TotalStock(shop *Shop) int {
	total := 0
	for _, l := range r.Listings(shop) {
		total += l.Stock()
	}
	return total
}

// FetchListings returns a shop's listings, deferring to the listing index
// scoped to this shop.
func (r *Registry) FetchListings(ctx context.Context, shop *Shop, key SortKey, force bool) ([]*Listing, error) {
	if !force {
		if cached, ok := r.listings.CachedByShop(shop.Key(), key); ok {
			return cached, nil
		}
	}
	return r.listings.FetchShopListings(ctx, shop.UID(), shop.Key(), key, force)
}

// FetchListingByID returns a single listing of a shop by item id.
func (r *Registry) FetchListingByID(ctx context.Context, shop *Shop, itemID int64, force bool) (*Listing, error) {
	return r.listings.FetchListing(ctx, shop.UID(), shop.Key(), itemID, force)
}
