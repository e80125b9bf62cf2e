// Package memstore is an in-process store.Client. It backs STORE_DRIVER=memory
// for local runs and the handler tests. Documents are kept as BSON so reads
// decode exactly as they do from MongoDB.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"catalog-admin/internal/store"
)

type Client struct {
	mu          sync.RWMutex
	collections map[string]map[string]bson.Raw
}

func New() *Client {
	return &Client{collections: make(map[string]map[string]bson.Raw)}
}

func (c *Client) Collection(name string) store.Collection {
	return &collection{client: c, name: name}
}

func (c *Client) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (c *Client) Close(context.Context) error {
	return nil
}

type collection struct {
	client *Client
	name   string
}

func (c *collection) docs() map[string]bson.Raw {
	docs, ok := c.client.collections[c.name]
	if !ok {
		docs = make(map[string]bson.Raw)
		c.client.collections[c.name] = docs
	}
	return docs
}

func (c *collection) write(id string, m bson.M) error {
	m[store.IDField] = id
	raw, err := bson.Marshal(m)
	if err != nil {
		return err
	}
	c.docs()[id] = raw
	return nil
}

func (c *collection) Add(ctx context.Context, doc any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m, err := store.ToDocument(doc)
	if err != nil {
		return "", err
	}

	c.client.mu.Lock()
	defer c.client.mu.Unlock()

	id := store.NewID()
	if err := c.write(id, m); err != nil {
		return "", err
	}
	return id, nil
}

func (c *collection) Get(ctx context.Context, id string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.client.mu.RLock()
	raw, ok := c.client.collections[c.name][id]
	c.client.mu.RUnlock()
	if !ok {
		return store.ErrNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (c *collection) Set(ctx context.Context, id string, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := store.ToDocument(doc)
	if err != nil {
		return err
	}

	c.client.mu.Lock()
	defer c.client.mu.Unlock()
	return c.write(id, m)
}

func (c *collection) Merge(ctx context.Context, id string, fields bson.M) error {
	_, err := c.Upsert(ctx, id, fields, nil)
	return err
}

func (c *collection) Upsert(ctx context.Context, id string, set bson.M, setOnInsert bson.M) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.client.mu.Lock()
	defer c.client.mu.Unlock()

	current := bson.M{}
	raw, exists := c.docs()[id]
	if exists {
		if err := bson.Unmarshal(raw, &current); err != nil {
			return false, err
		}
	}
	for k, v := range set {
		current[k] = v
	}
	if !exists {
		for k, v := range setOnInsert {
			current[k] = v
		}
	}
	return !exists, c.write(id, current)
}

func (c *collection) Update(ctx context.Context, id string, fields bson.M) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.client.mu.Lock()
	defer c.client.mu.Unlock()

	raw, exists := c.docs()[id]
	if !exists {
		return store.ErrNotFound
	}
	current := bson.M{}
	if err := bson.Unmarshal(raw, &current); err != nil {
		return err
	}
	for k, v := range fields {
		current[k] = v
	}
	return c.write(id, current)
}

func (c *collection) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.client.mu.Lock()
	defer c.client.mu.Unlock()

	docs := c.docs()
	if _, ok := docs[id]; !ok {
		return store.ErrNotFound
	}
	delete(docs, id)
	return nil
}

func (c *collection) Find(ctx context.Context, q store.Query) ([]store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.client.mu.RLock()
	snaps := make([]store.Snapshot, 0, len(c.client.collections[c.name]))
	for id, raw := range c.client.collections[c.name] {
		s := store.Snapshot{ID: id, Raw: raw}
		if matches(s, q.Where) {
			snaps = append(snaps, s)
		}
	}
	c.client.mu.RUnlock()

	dir := q.Dir()
	sort.Slice(snaps, func(i, j int) bool {
		return comparePositions(snaps[i], snaps[j], q.OrderBy, dir) < 0
	})

	filtered := snaps[:0]
	for _, s := range snaps {
		if q.StartAfter != nil && compareToCursor(s, q.StartAfter, q.OrderBy, dir) <= 0 {
			continue
		}
		if q.EndBefore != nil && compareToCursor(s, q.EndBefore, q.OrderBy, dir) >= 0 {
			continue
		}
		filtered = append(filtered, s)
	}

	if q.Limit > 0 && int64(len(filtered)) > q.Limit {
		if q.EndBefore != nil {
			filtered = filtered[int64(len(filtered))-q.Limit:]
		} else {
			filtered = filtered[:q.Limit]
		}
	}
	return filtered, nil
}

func (c *collection) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.client.mu.RLock()
	defer c.client.mu.RUnlock()

	var n int64
	for id, raw := range c.client.collections[c.name] {
		if matches(store.Snapshot{ID: id, Raw: raw}, filters) {
			n++
		}
	}
	return n, nil
}

func matches(s store.Snapshot, filters []store.Filter) bool {
	for _, f := range filters {
		if compareValues(s.Value(f.Field), normalize(f.Value)) != 0 {
			return false
		}
	}
	return true
}

// comparePositions orders two documents the way the query scans them.
func comparePositions(a, b store.Snapshot, orderBy string, dir store.Direction) int {
	cmp := 0
	if orderBy != "" && orderBy != store.IDField {
		cmp = compareValues(a.Value(orderBy), b.Value(orderBy))
	}
	if cmp == 0 {
		cmp = strings.Compare(a.ID, b.ID)
	}
	return cmp * int(dir)
}

func compareToCursor(s store.Snapshot, c *store.Cursor, orderBy string, dir store.Direction) int {
	cmp := 0
	if orderBy != "" && orderBy != store.IDField {
		cmp = compareValues(s.Value(orderBy), normalize(c.Value))
	}
	if cmp == 0 {
		cmp = strings.Compare(s.ID, c.ID)
	}
	return cmp * int(dir)
}

// normalize maps Go values onto the types BSON decoding produces.
func normalize(v any) any {
	switch t := v.(type) {
	case time.Time:
		return primitive.NewDateTimeFromTime(t)
	case int:
		return int64(t)
	default:
		return v
	}
}

// compareValues follows MongoDB's cross-type ordering for the types the
// console stores: missing/null < numbers < strings < booleans < dates.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch av := a.(type) {
	case nil:
		return 0
	case string:
		return strings.Compare(av, b.(string))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case primitive.DateTime:
		return compareFloat(float64(av), float64(b.(primitive.DateTime)))
	default:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return compareFloat(fa, fb)
	}
}

func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case int32, int64, float64, int:
		return 1
	case string:
		return 2
	case bool:
		return 4
	case primitive.DateTime:
		return 5
	default:
		return 3
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
