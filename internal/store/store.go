// Package store is the document client the console talks to. Collections hold
// loosely typed documents addressed by an opaque string id; queries support
// equality filters, a single ordered field with an _id tie-break, limits and
// start-after / end-before cursors.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	Admins     = "admins"
	Artisans   = "artisans"
	Products   = "products"
	Categories = "categories"
	Genres     = "genres"
	Banners    = "banners"
	Sales      = "sales"
	Delivery   = "delivery"
	Orders     = "orders"
)

// IDField is the key every document is addressed by.
const IDField = "_id"

var (
	ErrNotFound = errors.New("document not found")
	ErrConflict = errors.New("document conflict")
)

type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

type Filter struct {
	Field string
	Value any
}

type Query struct {
	Where      []Filter
	OrderBy    string
	Direction  Direction
	Limit      int64
	StartAfter *Cursor
	// EndBefore returns the last Limit documents that precede the cursor,
	// still in query order.
	EndBefore *Cursor
}

// Dir returns the query direction, defaulting to ascending.
func (q Query) Dir() Direction {
	if q.Direction == Desc {
		return Desc
	}
	return Asc
}

type Client interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type Collection interface {
	Add(ctx context.Context, doc any) (string, error)
	Get(ctx context.Context, id string, out any) error
	Set(ctx context.Context, id string, doc any) error
	Merge(ctx context.Context, id string, fields bson.M) error
	Upsert(ctx context.Context, id string, set bson.M, setOnInsert bson.M) (bool, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q Query) ([]Snapshot, error)
	Count(ctx context.Context, filters ...Filter) (int64, error)
}

// Snapshot is one document as read from a collection.
type Snapshot struct {
	ID  string
	Raw bson.Raw
}

func (s Snapshot) DataTo(out any) error {
	return bson.Unmarshal(s.Raw, out)
}

// Value returns the decoded value of a top-level field, or nil when absent.
func (s Snapshot) Value(field string) any {
	rv, err := s.Raw.LookupErr(field)
	if err != nil {
		return nil
	}
	var out any
	if err := rv.Unmarshal(&out); err != nil {
		return nil
	}
	return out
}

// String returns a string field, or "" when absent or not a string.
func (s Snapshot) String(field string) string {
	rv, err := s.Raw.LookupErr(field)
	if err != nil {
		return ""
	}
	str, ok := rv.StringValueOK()
	if !ok {
		return ""
	}
	return str
}

// NewID generates an opaque document id.
func NewID() string {
	return uuid.NewString()
}

// ToDocument flattens a struct or map into a bson.M via its bson tags.
func ToDocument(doc any) (bson.M, error) {
	if m, ok := doc.(bson.M); ok {
		out := make(bson.M, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	}
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out bson.M
	if err := bson.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
