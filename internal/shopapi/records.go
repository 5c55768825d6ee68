package shopapi

// ShopRecord is the raw shop payload returned by the shop backend.
type ShopRecord struct {
	ID                  int64   `json:"id"`
	ComputerID          int64   `json:"computerId"`
	UID                 string  `json:"uid"`
	Name                string  `json:"name"`
	Description         *string `json:"description"`
	Owner               *string `json:"owner"`
	FirstSeen           string  `json:"firstSeen"`
	LastUpdate          string  `json:"lastUpdate"`
	Software            *string `json:"software"`
	ActualLocation      *string `json:"actualLocation"`
	ActualDimension     *int    `json:"actualDimension"`
	Location            *string `json:"location"`
	LocationDimension   *string `json:"locationDimension"`
	LocationDescription *string `json:"locationDescription"`
}

// Validate rejects records missing the fields the plugin cannot work without.
func (r *ShopRecord) Validate() error {
	if r.UID == "" {
		return errMissingField("shop", "uid")
	}
	if r.Name == "" {
		return errMissingField("shop", "name")
	}
	return nil
}

// ListingRecord is the raw listing payload returned by the shop backend.
type ListingRecord struct {
	ID            int64   `json:"id"`
	ShopID        int64   `json:"shopId"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Item          string  `json:"item"`
	NBT           *string `json:"nbt"`
	Hash          string  `json:"hash"`
	Stock         int     `json:"stock"`
	PricesString  string  `json:"pricesString"`
	DynamicPrices bool    `json:"dynamicPrices"`
	MadeOnDemand  bool    `json:"madeOnDemand"`
	ShopBuysItem  bool    `json:"shopBuysItem"`
}

// Validate rejects records missing the fields the plugin cannot work without.
func (r *ListingRecord) Validate() error {
	if r.ShopID <= 0 {
		return errMissingField("listing", "shopId")
	}
	if r.Item == "" {
		return errMissingField("listing", "item")
	}
	return nil
}
