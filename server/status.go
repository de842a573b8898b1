package server

const (
	ListingTypeSale = "sale"
	ListingTypeRent = "rent"
)

const (
	ListingStatusActive    = "active"
	ListingStatusPending   = "pending"
	ListingStatusSold      = "sold"
	ListingStatusOffMarket = "off_market"
)

func getValidListingTypes() []string {
	return []string{ListingTypeSale, ListingTypeRent}
}

func getValidStatuses() []string {
	return []string{
		ListingStatusActive,
		ListingStatusPending,
		ListingStatusSold,
		ListingStatusOffMarket,
	}
}

func isOneOf(v string, opts []string) bool {
	for _, s := range opts {
		if v == s {
			return true
		}
	}
	return false
}

func isValidListingType(v string) bool {
	return isOneOf(v, getValidListingTypes())
}

func isValidStatus(v string) bool {
	return isOneOf(v, getValidStatuses())
}
