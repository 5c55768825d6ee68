package shops

import (
	"fmt"
	"strings"
)

// zoomFactor is the fixed map zoom applied to shop location links.
const zoomFactor = 24

// Links derives browser URLs from shops and listings. Pure functions over a
// set of configured base URLs, no network calls.
type Links struct {
	Bluemap string
	Krawlet string
	Heads   string
	// Assets is the shop backend base serving item icons.
	Assets string
}

// NewLinks creates a link builder from the configured base URLs.
func NewLinks(bluemap, krawlet, heads, assets string) Links {
	return Links{Bluemap: bluemap, Krawlet: krawlet, Heads: heads, Assets: assets}
}

// ShopMap returns the map-viewer URL for a shop's parsed location.
func (k Links) ShopMap(shop *Shop) string {
	c := shop.Location().Coords
	return fmt.Sprintf("%s/#world:%g:%g:%g:%d:0:0:0:1:flat", k.Bluemap, c.X, c.Y, c.Z, zoomFactor)
}

// ShopPage returns the block-explorer URL for a shop. The explorer keys shops
// by the uid's prefix before the first colon.
func (k Links) ShopPage(shop *Shop) string {
	id, _, _ := strings.Cut(shop.UID(), ":")
	return fmt.Sprintf("%s/shops/%s", k.Krawlet, id)
}

// ListingPage returns the block-explorer URL for a listing's item, carrying
// the enchantment NBT hash for known enchanted-book variants.
func (k Links) ListingPage(listing *Listing) string {
	modID, itemName, _ := strings.Cut(listing.Item(), ":")
	url := fmt.Sprintf("%s/shops/items/%s/%s", k.Krawlet, modID, itemName)

	if nbt, ok := enchantNBT(listing.Item(), listing.Name()); ok {
		return url + "?nbt=" + nbt
	}
	return url
}

// ListingIcon returns the item icon URL served by the shop backend.
func (k Links) ListingIcon(listing *Listing) string {
	modID, itemName, _ := strings.Cut(listing.Item(), ":")
	return fmt.Sprintf("%s/assets/items/%s/%s.png", k.Assets, modID, itemName)
}

// OwnerHead returns the avatar URL for a shop owner, "" when unowned.
func (k Links) OwnerHead(shop *Shop) string {
	if shop.Owner() == "" {
		return ""
	}
	return fmt.Sprintf("%s/head/%s", k.Heads, shop.Owner())
}

// Transaction returns the block-explorer URL for a transaction id.
func (k Links) Transaction(id int64) string {
	return fmt.Sprintf("%s/transactions/%d", k.Krawlet, id)
}

// Address returns the block-explorer URL for a wallet address.
func (k Links) Address(address string) string {
	return fmt.Sprintf("%s/addresses/%s", k.Krawlet, address)
}
