package repository

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (string, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	Search(ctx context.Context, filter entity.CatalogFilter) ([]*entity.Product, error)
	// Update overwrites the mutable fields of an existing product.
	Update(ctx context.Context, id primitive.ObjectID, product *entity.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (string, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) (string, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)
}

type ProductCache interface {
	Get(ctx context.Context, productID string) (*entity.Product, error)
	Set(ctx context.Context, product *entity.Product, ttl time.Duration) error
	Delete(ctx context.Context, productID string) error
}

type SessionStore interface {
	Save(ctx context.Context, session *entity.Session) error
	Get(ctx context.Context, tokenID string) (*entity.Session, error)
	Delete(ctx context.Context, tokenID string) error
}

// StoreStatus reports document store connectivity.
type StoreStatus interface {
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
	DatabaseName() string
}
