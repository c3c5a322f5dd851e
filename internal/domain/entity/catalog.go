package entity

// CatalogLimit caps every catalog search.
const CatalogLimit = 60

// CatalogFilter holds the optional catalog search parameters. Empty strings
// and nil bounds mean "not supplied".
type CatalogFilter struct {
	Query    string
	Category string
	Size     string
	Color    string
	MinPrice *float64
	MaxPrice *float64
}
