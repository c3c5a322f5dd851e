// Package identifier converts between store-native document ids and the hex
// strings exposed to clients.
package identifier

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMalformed is returned for public ids that cannot name any document.
var ErrMalformed = errors.New("malformed identifier")

// ToPublic never fails: every ObjectID has a 24 character hex form.
func ToPublic(id primitive.ObjectID) string {
	return id.Hex()
}

// ToInternal rejects anything that is not 24 hex characters, and the all-zero
// id, without touching the store.
func ToInternal(publicID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(publicID)
	if err != nil || id.IsZero() {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrMalformed, publicID)
	}
	return id, nil
}

func IsValid(publicID string) bool {
	_, err := ToInternal(publicID)
	return err == nil
}
