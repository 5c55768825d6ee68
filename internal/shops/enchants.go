package shops

import "strings"

const enchantedBookItem = "minecraft:enchanted_book"

// Known enchanted-book variants, keyed by display name. The hash is the NBT
// fingerprint the block explorer expects as a query parameter.
var enchantNBTByName = map[string]string{
	"mending":           "704a1bcdf9953c791651a77b1fe78891",
	"silk touch":        "021f1ac06ec4e4c75d0e0bf67c0712dc",
	"fortune iii":       "bca3a3664a43421d0cfd80de9214d2e5",
	"fire aspect 2":     "09ea44e9fa4d954a9c8dcab1e21ca0e6",
	"frost walker ii":   "9a34ef49ed55d1fc62fbe00f24e2e643",
	"unbreaking iii":    "c752841147c814133f9ba7bca4ebe2de",
	"depth strider iii": "cd79cf06631287de78001c53694bc59e",
	"efficiency v":      "d98a7de081a6256251621aa32fff865a",
	"knockback ii":      "b1d9ad8427e6f9a3c18c485a08f04a8c",
	"infinity":          "a18fcaf16f4f364615ef05b183fe85c8",
	"protection iv":     "574661995e9d45223026a14807eedc0c",
	"respiration iii":   "63b43db087e0c7adcc723e67a77c02bc",
	"aqua affinity":     "95ff16fd3fd48e66fdb33783a80a08c1",
}

// enchantNBT resolves an enchanted book's NBT hash by exact case-insensitive
// name match. Non-book items never resolve.
func enchantNBT(item, name string) (string, bool) {
	if item != enchantedBookItem {
		return "", false
	}
	nbt, ok := enchantNBTByName[strings.ToLower(name)]
	return nbt, ok
}
