package mongo

import (
	"regexp"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
)

// BuildCatalogQuery ANDs the supplied filters together with the active-only
// clause, which is always first. Unsupplied filters contribute nothing.
//
// size and color are matched through dotted paths, so a product matches when
// any of its variants has the size and any (possibly different) variant has
// the color.
func BuildCatalogQuery(f entity.CatalogFilter) bson.D {
	query := bson.D{{Key: "is_active", Value: true}}

	if f.Query != "" {
		query = append(query, bson.E{Key: "title", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(f.Query)},
			{Key: "$options", Value: "i"},
		}})
	}
	if f.Category != "" {
		query = append(query, bson.E{Key: "category", Value: f.Category})
	}
	if priceRange := buildPriceRange(f.MinPrice, f.MaxPrice); priceRange != nil {
		query = append(query, bson.E{Key: "price", Value: priceRange})
	}
	if f.Size != "" {
		query = append(query, bson.E{Key: "variants.size", Value: f.Size})
	}
	if f.Color != "" {
		query = append(query, bson.E{Key: "variants.color", Value: f.Color})
	}

	return query
}

func buildPriceRange(minPrice, maxPrice *float64) bson.D {
	var priceRange bson.D
	if minPrice != nil {
		priceRange = append(priceRange, bson.E{Key: "$gte", Value: *minPrice})
	}
	if maxPrice != nil {
		priceRange = append(priceRange, bson.E{Key: "$lte", Value: *maxPrice})
	}
	return priceRange
}
