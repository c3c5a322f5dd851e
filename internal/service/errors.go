package service

import (
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/identifier"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrConflict            = errors.New("conflict")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrUploadsDisabled     = errors.New("image uploads are not configured")
)

// storeFailure lifts a repository error into the service error space while
// keeping the original in the chain.
func storeFailure(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case errors.Is(err, repository.ErrAlreadyExists):
		return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := identifier.ToInternal(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %w", ErrMalformedIdentifier, err)
	}
	return oid, nil
}
