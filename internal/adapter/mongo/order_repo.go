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
)

const ordersCollection = "orders"

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *Database) repository.OrderRepository {
	return &orderRepository{collection: db.Handle().Collection(ordersCollection)}
}

// Create writes the order as a single document.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) (string, error) {
	res, err := r.collection.InsertOne(ctx, toOrderDocument(order))
	if err != nil {
		return "", storeError("insert order", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert order: unexpected id type %T", res.InsertedID)
	}
	return identifier.ToPublic(oid), nil
}

func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error) {
	var doc orderDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, storeError("find order "+id.Hex(), err)
	}
	return toDomainOrder(&doc), nil
}
