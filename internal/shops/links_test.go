package shops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kromer-flow-plugin/internal/shopapi"
)

func testLinks() Links {
	return NewLinks(
		"https://map.example.com",
		"https://explorer.example.com",
		"https://heads.example.com",
		"https://shops.example.com",
	)
}

func TestLinksShopMap(t *testing.T) {
	shop := NewShop(shopapi.ShopRecord{
		ID: 1, UID: "abc:1", Name: "Shop",
		Location: strPtr("100 64 -200"),
	})

	assert.Equal(t,
		"https://map.example.com/#world:100:64:-200:24:0:0:0:1:flat",
		testLinks().ShopMap(shop),
	)
}

func TestLinksShopPage(t *testing.T) {
	shop := NewShop(shopapi.ShopRecord{ID: 1, UID: "abc:1", Name: "Shop"})
	assert.Equal(t, "https://explorer.example.com/shops/abc", testLinks().ShopPage(shop))

	noColon := NewShop(shopapi.ShopRecord{ID: 2, UID: "xyz", Name: "Shop"})
	assert.Equal(t, "https://explorer.example.com/shops/xyz", testLinks().ShopPage(noColon))
}

func TestLinksListingPage(t *testing.T) {
	plain := listingFixture(1, 1, "Diamond", "minecraft:diamond", "", 0)
	assert.Equal(t,
		"https://explorer.example.com/shops/items/minecraft/diamond",
		testLinks().ListingPage(plain),
	)

	// known enchanted-book variants carry their NBT hash
	book := listingFixture(2, 1, "Silk Touch", enchantedBookItem, "", 0)
	assert.Equal(t,
		"https://explorer.example.com/shops/items/minecraft/enchanted_book?nbt=021f1ac06ec4e4c75d0e0bf67c0712dc",
		testLinks().ListingPage(book),
	)

	// unknown book names get no hash
	unknown := listingFixture(3, 1, "Sharpness C", enchantedBookItem, "", 0)
	assert.Equal(t,
		"https://explorer.example.com/shops/items/minecraft/enchanted_book",
		testLinks().ListingPage(unknown),
	)
}

func TestLinksListingIcon(t *testing.T) {
	l := listingFixture(1, 1, "Diamond", "minecraft:diamond", "", 0)
	assert.Equal(t,
		"https://shops.example.com/assets/items/minecraft/diamond.png",
		testLinks().ListingIcon(l),
	)
}

func TestLinksOwnerHead(t *testing.T) {
	owned := NewShop(shopapi.ShopRecord{ID: 1, UID: "a:1", Name: "S", Owner: strPtr("steve")})
	assert.Equal(t, "https://heads.example.com/head/steve", testLinks().OwnerHead(owned))

	unowned := NewShop(shopapi.ShopRecord{ID: 2, UID: "b:1", Name: "S"})
	assert.Equal(t, "", testLinks().OwnerHead(unowned))
}

func TestLinksExplorer(t *testing.T) {
	assert.Equal(t, "https://explorer.example.com/transactions/42", testLinks().Transaction(42))
	assert.Equal(t, "https://explorer.example.com/addresses/kabc123456", testLinks().Address("kabc123456"))
}

func TestEnchantNBT(t *testing.T) {
	nbt, ok := enchantNBT(enchantedBookItem, "Mending")
	assert.True(t, ok)
	assert.Equal(t, "704a1bcdf9953c791651a77b1fe78891", nbt)

	// case-insensitive on the name
	nbt, ok = enchantNBT(enchantedBookItem, "FORTUNE III")
	assert.True(t, ok)
	assert.Equal(t, "bca3a3664a43421d0cfd80de9214d2e5", nbt)

	_, ok = enchantNBT(enchantedBookItem, "Sharpness C")
	assert.False(t, ok)

	_, ok = enchantNBT("minecraft:diamond_pickaxe", "Mending")
	assert.False(t, ok)
}
