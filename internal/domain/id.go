package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is a backend document id. The backend normally sends ObjectID hex
// strings, but any string, an extended JSON {"$oid": ...} object or a bare
// number is kept so one odd id cannot fail a whole collection.
type ID string

func NewID() ID {
	return ID(primitive.NewObjectID().Hex())
}

func (id ID) Hex() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}

	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var oid primitive.ObjectID
		if err := oid.UnmarshalJSON(b); err != nil {
			return fmt.Errorf("invalid id %s: %w", b, err)
		}
		*id = ID(oid.Hex())
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}
