// Package mongostore backs store.Client with a MongoDB database.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"catalog-admin/internal/store"
)

type Client struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Client {
	return &Client{db: db}
}

func (c *Client) Collection(name string) store.Collection {
	return &collection{coll: c.db.Collection(name)}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.db.Client().Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Client().Disconnect(ctx)
}

type collection struct {
	coll *mongo.Collection
}

func (c *collection) Add(ctx context.Context, doc any) (string, error) {
	m, err := store.ToDocument(doc)
	if err != nil {
		return "", err
	}
	id := store.NewID()
	m[store.IDField] = id

	if _, err := c.coll.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: %v", store.ErrConflict, err)
		}
		return "", err
	}
	return id, nil
}

func (c *collection) Get(ctx context.Context, id string, out any) error {
	err := c.coll.FindOne(ctx, bson.M{store.IDField: id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func (c *collection) Set(ctx context.Context, id string, doc any) error {
	m, err := store.ToDocument(doc)
	if err != nil {
		return err
	}
	m[store.IDField] = id

	_, err = c.coll.ReplaceOne(ctx, bson.M{store.IDField: id}, m, options.Replace().SetUpsert(true))
	return wrapWriteErr(err)
}

func (c *collection) Merge(ctx context.Context, id string, fields bson.M) error {
	_, err := c.coll.UpdateOne(
		ctx,
		bson.M{store.IDField: id},
		bson.M{"$set": withoutID(fields)},
		options.Update().SetUpsert(true),
	)
	return wrapWriteErr(err)
}

func (c *collection) Upsert(ctx context.Context, id string, set bson.M, setOnInsert bson.M) (bool, error) {
	update := bson.M{"$set": withoutID(set)}
	if len(setOnInsert) > 0 {
		update["$setOnInsert"] = withoutID(setOnInsert)
	}

	res, err := c.coll.UpdateOne(ctx, bson.M{store.IDField: id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, wrapWriteErr(err)
	}
	return res.UpsertedCount > 0, nil
}

func (c *collection) Update(ctx context.Context, id string, fields bson.M) error {
	res, err := c.coll.UpdateOne(ctx, bson.M{store.IDField: id}, bson.M{"$set": withoutID(fields)})
	if err != nil {
		return wrapWriteErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{store.IDField: id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *collection) Find(ctx context.Context, q store.Query) ([]store.Snapshot, error) {
	filter, sort, reverse := buildFind(q)

	opts := options.Find().SetSort(sort)
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	snaps := make([]store.Snapshot, 0)
	for cursor.Next(ctx) {
		raw := make([]byte, len(cursor.Current))
		copy(raw, cursor.Current)
		doc := bson.Raw(raw)

		id, ok := doc.Lookup(store.IDField).StringValueOK()
		if !ok {
			return nil, fmt.Errorf("document without string id in %s", c.coll.Name())
		}
		snaps = append(snaps, store.Snapshot{ID: id, Raw: doc})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if reverse {
		for i, j := 0, len(snaps)-1; i < j; i, j = i+1, j-1 {
			snaps[i], snaps[j] = snaps[j], snaps[i]
		}
	}
	return snaps, nil
}

func (c *collection) Count(ctx context.Context, filters ...store.Filter) (int64, error) {
	return c.coll.CountDocuments(ctx, whereClause(filters))
}

// buildFind translates a store.Query. End-before queries run in the reverse
// direction and are flipped back by the caller.
func buildFind(q store.Query) (bson.M, bson.D, bool) {
	dir := q.Dir()
	reverse := q.EndBefore != nil

	clauses := make([]bson.M, 0, 3)
	if where := whereClause(q.Where); len(where) > 0 {
		clauses = append(clauses, where)
	}
	if q.StartAfter != nil {
		clauses = append(clauses, afterClause(q.OrderBy, q.StartAfter, dir))
	}
	if q.EndBefore != nil {
		clauses = append(clauses, afterClause(q.OrderBy, q.EndBefore, -dir))
	}

	scanDir := dir
	if reverse {
		scanDir = -dir
	}

	sort := bson.D{}
	if q.OrderBy != "" && q.OrderBy != store.IDField {
		sort = append(sort, bson.E{Key: q.OrderBy, Value: int(scanDir)})
	}
	sort = append(sort, bson.E{Key: store.IDField, Value: int(scanDir)})

	switch len(clauses) {
	case 0:
		return bson.M{}, sort, reverse
	case 1:
		return clauses[0], sort, reverse
	default:
		return bson.M{"$and": clauses}, sort, reverse
	}
}

func whereClause(filters []store.Filter) bson.M {
	out := bson.M{}
	for _, f := range filters {
		out[f.Field] = f.Value
	}
	return out
}

// afterClause selects documents strictly after c when scanning in dir.
func afterClause(orderBy string, c *store.Cursor, dir store.Direction) bson.M {
	op := "$gt"
	if dir == store.Desc {
		op = "$lt"
	}
	if orderBy == "" || orderBy == store.IDField {
		return bson.M{store.IDField: bson.M{op: c.ID}}
	}
	return bson.M{"$or": []bson.M{
		{orderBy: bson.M{op: c.Value}},
		{orderBy: c.Value, store.IDField: bson.M{op: c.ID}},
	}}
}

func withoutID(fields bson.M) bson.M {
	out := make(bson.M, len(fields))
	for k, v := range fields {
		if k == store.IDField {
			continue
		}
		out[k] = v
	}
	return out
}

func wrapWriteErr(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", store.ErrConflict, err)
	}
	return err
}
