package models

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// UnmarshalBSON accepts price and quantity stored either as numbers or as
// the strings older form submissions wrote.
func (c *Combination) UnmarshalBSON(data []byte) error {
	var raw struct {
		Color    string        `bson:"color"`
		Size     string        `bson:"size"`
		Price    bson.RawValue `bson:"price"`
		Quantity bson.RawValue `bson:"quantity"`
	}
	if err := bson.Unmarshal(data, &raw); err != nil {
		return err
	}

	price, err := legacyNumber(raw.Price)
	if err != nil {
		return fmt.Errorf("combination price: %w", err)
	}
	quantity, err := legacyNumber(raw.Quantity)
	if err != nil {
		return fmt.Errorf("combination quantity: %w", err)
	}

	c.Color = raw.Color
	c.Size = raw.Size
	c.Price = price
	c.Quantity = int64(quantity)
	return nil
}

func legacyNumber(v bson.RawValue) (float64, error) {
	switch v.Type {
	case 0, bsontype.Null, bsontype.Undefined:
		return 0, nil
	case bsontype.Double:
		return v.Double(), nil
	case bsontype.Int32:
		return float64(v.Int32()), nil
	case bsontype.Int64:
		return float64(v.Int64()), nil
	case bsontype.String:
		s := strings.TrimSpace(v.StringValue())
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	default:
		return 0, fmt.Errorf("unsupported type %s", v.Type)
	}
}
