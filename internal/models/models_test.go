package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStringListDecodesLegacyString(t *testing.T) {
	data, err := bson.Marshal(bson.M{"product_ids": " p1 "})
	require.NoError(t, err)

	var g Genre
	require.NoError(t, bson.Unmarshal(data, &g))
	assert.Equal(t, StringList{"p1"}, g.ProductIDs)
}

func TestStringListWritesEmptyArray(t *testing.T) {
	data, err := bson.Marshal(Genre{Name: "Festive"})
	require.NoError(t, err)

	raw := bson.Raw(data)
	arr, ok := raw.Lookup("product_ids").ArrayOK()
	require.True(t, ok)
	values, err := arr.Values()
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestCompactAndUnique(t *testing.T) {
	list := StringList{" a ", "", "b", "a", "  "}
	assert.Equal(t, StringList{"a", "b", "a"}, list.Compact())
	assert.Equal(t, StringList{"a", "b"}, list.Compact().Unique())
}

func TestCombinationDecodesStringNumbers(t *testing.T) {
	data, err := bson.Marshal(bson.M{"combinations": bson.A{
		bson.M{"color": "Red", "size": "M", "price": "499.50", "quantity": "3"},
		bson.M{"color": "Blue", "size": "L", "price": 250, "quantity": int64(7)},
	}})
	require.NoError(t, err)

	var p Product
	require.NoError(t, bson.Unmarshal(data, &p))
	require.Len(t, p.Combinations, 2)
	assert.Equal(t, Combination{Color: "Red", Size: "M", Price: 499.5, Quantity: 3}, p.Combinations[0])
	assert.Equal(t, Combination{Color: "Blue", Size: "L", Price: 250, Quantity: 7}, p.Combinations[1])
}

func TestCombinationRejectsGarbagePrice(t *testing.T) {
	data, err := bson.Marshal(bson.M{"color": "Red", "size": "M", "price": "cheap"})
	require.NoError(t, err)

	var c Combination
	assert.Error(t, bson.Unmarshal(data, &c))
}
