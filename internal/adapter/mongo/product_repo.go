package mongo

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/identifier"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *Database) repository.ProductRepository {
	return &productRepository{collection: db.Handle().Collection(productsCollection)}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) (string, error) {
	res, err := r.collection.InsertOne(ctx, toProductDocument(product))
	if err != nil {
		return "", storeError("insert product", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert product: unexpected id type %T", res.InsertedID)
	}
	return identifier.ToPublic(oid), nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	var doc productDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, storeError("find product "+id.Hex(), err)
	}
	return toDomainProduct(&doc), nil
}

func (r *productRepository) Search(ctx context.Context, filter entity.CatalogFilter) ([]*entity.Product, error) {
	opts := options.Find().SetLimit(entity.CatalogLimit)

	cursor, err := r.collection.Find(ctx, BuildCatalogQuery(filter), opts)
	if err != nil {
		return nil, storeError("search products", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeError("decode products", err)
	}

	products := make([]*entity.Product, 0, len(docs))
	for i := range docs {
		products = append(products, toDomainProduct(&docs[i]))
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, product *entity.Product) error {
	doc := toProductDocument(product)
	update := bson.M{"$set": bson.M{
		"title":        doc.Title,
		"description":  doc.Description,
		"price":        doc.Price,
		"category":     doc.Category,
		"images":       doc.Images,
		"variants":     doc.Variants,
		"tags":         doc.Tags,
		"rating":       doc.Rating,
		"rating_count": doc.RatingCount,
		"is_active":    doc.IsActive,
		"updated_at":   doc.UpdatedAt,
	}}

	res, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return storeError("update product "+id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update product %s: %w", id.Hex(), repository.ErrNotFound)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError("delete product "+id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete product %s: %w", id.Hex(), repository.ErrNotFound)
	}
	return nil
}
