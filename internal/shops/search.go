package shops

import (
	"context"
	"sort"
	"strings"

	"github.com/xrash/smetrics"
	"golang.org/x/sync/errgroup"
)

// matchThreshold gates fuzzy matches. Jaro-Winkler similarity runs 0..1;
// anything below this is not considered a match.
const matchThreshold = 0.7

// fuzzyScore scores a search term against a set of fields, taking the best
// similarity across whole fields and individual field tokens. An exact
// substring hit counts as a perfect match.
func fuzzyScore(term string, fields ...string) float64 {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return 0
	}

	best := 0.0
	for _, field := range fields {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" {
			continue
		}
		if strings.Contains(field, term) {
			return 1
		}
		if s := smetrics.JaroWinkler(term, field, 0.7, 4); s > best {
			best = s
		}
		for _, token := range strings.Fields(field) {
			if s := smetrics.JaroWinkler(term, token, 0.7, 4); s > best {
				best = s
			}
		}
	}
	return best
}

func shopScore(shop *Shop, term string) float64 {
	return fuzzyScore(term, shop.Name(), shop.Description(), shop.Owner(), shop.Location().Description)
}

func listingScore(listing *Listing, term string) float64 {
	return fuzzyScore(term, listing.Name(), listing.Description(), listing.Item())
}

// SearchShops fuzzy-matches shops by name, description, owner and location
// description, ranked best first.
func (r *Registry) SearchShops(ctx context.Context, term string, force bool) ([]*Shop, error) {
	shops, err := r.FetchAll(ctx, force)
	if err != nil {
		return nil, err
	}

	type match struct {
		shop  *Shop
		score float64
	}
	var matches []match
	for _, s := range shops {
		if score := shopScore(s, term); score >= matchThreshold {
			matches = append(matches, match{shop: s, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]*Shop, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.shop)
	}
	return out, nil
}

// SearchListings fuzzy-matches across all cached listings, then re-sorts the
// matches by the domain sort key. Relevance order is discarded on purpose in
// favor of the requested sort.
func (r *Registry) SearchListings(ctx context.Context, term string, key SortKey) ([]*Listing, error) {
	all, err := r.listings.FetchAll(ctx, key, false)
	if err != nil {
		return nil, err
	}

	var matched []*Listing
	for _, l := range all {
		if listingScore(l, term) >= matchThreshold {
			matched = append(matched, l)
		}
	}
	return SortListings(matched, key), nil
}

// SearchShopsByItem finds the distinct shops selling listings that match the
// term. Result order follows the shop list's fetch order, filtered to shops
// owning a matched listing.
func (r *Registry) SearchShopsByItem(ctx context.Context, term string) ([]*Shop, error) {
	var (
		shops    []*Shop
		listings []*Listing
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shops, err = r.FetchAll(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		listings, err = r.listings.FetchAll(gctx, SortPrice, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matchedShopIDs := make(map[int64]struct{})
	for _, l := range listings {
		if listingScore(l, term) >= matchThreshold {
			matchedShopIDs[l.ShopID()] = struct{}{}
		}
	}

	var out []*Shop
	for _, s := range shops {
		if _, ok := matchedShopIDs[s.ID()]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// MatchItems fuzzy-matches within a given listing slice rather than the
// global cache, ranked best first. Used to show which items in an
// already-known shop matched a term.
func MatchItems(listings []*Listing, term string) []*Listing {
	type match struct {
		listing *Listing
		score   float64
	}
	var matches []match
	for _, l := range listings {
		if score := listingScore(l, term); score >= matchThreshold {
			matches = append(matches, match{listing: l, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]*Listing, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.listing)
	}
	return out
}
