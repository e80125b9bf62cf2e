package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"catalog-admin/internal/store"
)

func TestBuildFindStartAfterDescending(t *testing.T) {
	filter, sort, reverse := buildFind(store.Query{
		OrderBy:    "created_at",
		Direction:  store.Desc,
		Limit:      10,
		StartAfter: &store.Cursor{ID: "b", Value: "v"},
	})

	assert.False(t, reverse)
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}, sort)
	assert.Equal(t, bson.M{"$or": []bson.M{
		{"created_at": bson.M{"$lt": "v"}},
		{"created_at": "v", "_id": bson.M{"$lt": "b"}},
	}}, filter)
}

func TestBuildFindEndBeforeScansBackwards(t *testing.T) {
	filter, sort, reverse := buildFind(store.Query{
		OrderBy:   "name",
		Direction: store.Asc,
		EndBefore: &store.Cursor{ID: "k", Value: "Kashmir"},
		Where:     []store.Filter{{Field: "enabled", Value: true}},
	})

	assert.True(t, reverse)
	assert.Equal(t, bson.D{{Key: "name", Value: -1}, {Key: "_id", Value: -1}}, sort)
	assert.Equal(t, bson.M{"$and": []bson.M{
		{"enabled": true},
		{"$or": []bson.M{
			{"name": bson.M{"$lt": "Kashmir"}},
			{"name": "Kashmir", "_id": bson.M{"$lt": "k"}},
		}},
	}}, filter)
}

func TestBuildFindWithoutOrderUsesID(t *testing.T) {
	filter, sort, _ := buildFind(store.Query{StartAfter: &store.Cursor{ID: "m"}})
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, sort)
	assert.Equal(t, bson.M{"_id": bson.M{"$gt": "m"}}, filter)
}

func TestWithoutIDStripsKey(t *testing.T) {
	out := withoutID(bson.M{"_id": "x", "name": "y"})
	assert.Equal(t, bson.M{"name": "y"}, out)
}
