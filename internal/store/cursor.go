package store

import (
	"encoding/base64"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Cursor marks a position in an ordered query: the order-field value and
// the _id of the document at that position.
type Cursor struct {
	ID    string
	Value any
}

func CursorFrom(s Snapshot, orderBy string) *Cursor {
	c := &Cursor{ID: s.ID}
	if orderBy != "" && orderBy != IDField {
		c.Value = s.Value(orderBy)
	}
	return c
}

// ErrInvalidCursor rejects a token that EncodeCursor did not produce.
var ErrInvalidCursor = errors.New("invalid cursor")

type cursorToken struct {
	ID    string `bson:"id"`
	Value any    `bson:"v"`
}

// EncodeCursor serialises a cursor into an opaque URL-safe token. BSON keeps
// timestamps typed across the round trip.
func EncodeCursor(c *Cursor) (string, error) {
	if c == nil {
		return "", nil
	}
	data, err := bson.Marshal(cursorToken{ID: c.ID, Value: c.Value})
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var decoded bson.M
	if err := bson.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	id, ok := decoded["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidCursor)
	}
	return &Cursor{ID: id, Value: decoded["v"]}, nil
}
