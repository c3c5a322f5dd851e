package mongo

import (
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
)

// storeError maps driver errors onto repository sentinels. Anything that is
// neither a missing document nor a duplicate key means the store could not
// serve the request.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, repository.ErrAlreadyExists)
	default:
		return fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}
}
