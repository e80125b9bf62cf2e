package listing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"catalog-admin/internal/cache"
	"catalog-admin/internal/store"
	"catalog-admin/internal/store/memstore"
)

var productsSpec = Spec{
	Collection: store.Products,
	OrderBy:    "created_at",
	Direction:  store.Desc,
	NameField:  "name",
}

func newLister(t *testing.T, n int) (*Lister, store.Client) {
	t.Helper()
	client := memstore.New()
	coll := client.Collection(store.Products)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		_, err := coll.Add(context.Background(), bson.M{
			"name":       fmt.Sprintf("Product %02d", i),
			"created_at": base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	trails := cache.New(time.Minute, 0)
	t.Cleanup(trails.Close)
	return New(client, trails, 10, 100), client
}

func names(res *Result) []string {
	out := make([]string, len(res.Items))
	for i, s := range res.Items {
		out[i] = s.String("name")
	}
	return out
}

func TestPageOneIsNewestFirst(t *testing.T) {
	l, _ := newLister(t, 23)

	res, err := l.Page(context.Background(), productsSpec, Request{Owner: "a@example.com", Page: 1})
	require.NoError(t, err)
	assert.Len(t, res.Items, 10)
	assert.Equal(t, "Product 22", res.Items[0].String("name"))
	assert.Equal(t, int64(23), res.Total)
	assert.Equal(t, int64(3), res.TotalPages)
	assert.NotEmpty(t, res.Next)
	assert.Empty(t, res.Prev)
}

func TestJumpingAheadWalksTheTrail(t *testing.T) {
	l, _ := newLister(t, 23)
	ctx := context.Background()

	res, err := l.Page(ctx, productsSpec, Request{Owner: "a", Page: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"Product 02", "Product 01", "Product 00"}, names(res))
	assert.Empty(t, res.Next)

	back, err := l.Page(ctx, productsSpec, Request{Owner: "a", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, "Product 12", back.Items[0].String("name"))
	assert.Equal(t, "Product 03", back.Items[9].String("name"))
}

func TestPagesDoNotOverlap(t *testing.T) {
	l, _ := newLister(t, 23)
	ctx := context.Background()

	seen := map[string]bool{}
	for page := int64(1); page <= 3; page++ {
		res, err := l.Page(ctx, productsSpec, Request{Owner: "a", Page: page})
		require.NoError(t, err)
		for _, s := range res.Items {
			assert.False(t, seen[s.ID], "duplicate %s on page %d", s.ID, page)
			seen[s.ID] = true
		}
	}
	assert.Len(t, seen, 23)
}

func TestPageBeyondEndClamps(t *testing.T) {
	l, _ := newLister(t, 12)

	res, err := l.Page(context.Background(), productsSpec, Request{Owner: "a", Page: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Page)
	assert.Len(t, res.Items, 2)
}

func TestEmptyCollectionHasOnePage(t *testing.T) {
	l, _ := newLister(t, 0)

	res, err := l.Page(context.Background(), productsSpec, Request{Owner: "a", Page: 1})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(1), res.TotalPages)
}

func TestTokensRoundTrip(t *testing.T) {
	l, _ := newLister(t, 23)
	ctx := context.Background()

	first, err := l.Page(ctx, productsSpec, Request{Page: 1})
	require.NoError(t, err)

	second, err := l.Page(ctx, productsSpec, Request{Page: 2, After: first.Next})
	require.NoError(t, err)
	assert.Equal(t, "Product 12", second.Items[0].String("name"))
	require.NotEmpty(t, second.Prev)

	again, err := l.Page(ctx, productsSpec, Request{Page: 1, Before: second.Prev})
	require.NoError(t, err)
	assert.Equal(t, names(first), names(again))
}

func TestSearchFiltersAndResetsTrail(t *testing.T) {
	l, _ := newLister(t, 23)
	ctx := context.Background()

	_, err := l.Page(ctx, productsSpec, Request{Owner: "a", Page: 2})
	require.NoError(t, err)

	res, err := l.Page(ctx, productsSpec, Request{Owner: "a", Page: 1, Search: "product 1"})
	require.NoError(t, err)
	assert.True(t, res.Searching)
	assert.Equal(t, int64(10), res.Total)
	assert.Equal(t, int64(1), res.TotalPages)
	assert.Equal(t, "Product 19", res.Items[0].String("name"))

	// Clearing the search lands on page 1 whatever page was asked for.
	cleared, err := l.Page(ctx, productsSpec, Request{Owner: "a", Page: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared.Page)
	assert.Equal(t, "Product 22", cleared.Items[0].String("name"))
}

func TestSearchIsBoundedByWindow(t *testing.T) {
	l, _ := newLister(t, 23)
	l.searchWindow = 5

	res, err := l.Page(context.Background(), productsSpec, Request{Search: "product"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Total)
}

func TestForgetAfterDeleteRecomputesPages(t *testing.T) {
	l, client := newLister(t, 11)
	ctx := context.Background()

	res, err := l.Page(ctx, productsSpec, Request{Owner: "a", Page: 2})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	require.NoError(t, client.Collection(store.Products).Delete(ctx, res.Items[0].ID))
	l.ForgetCollection(store.Products)

	res, err = l.Page(ctx, productsSpec, Request{Owner: "a", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.TotalPages)
	assert.Equal(t, int64(1), res.Page)
	assert.Len(t, res.Items, 10)
}

func TestDecode(t *testing.T) {
	l, _ := newLister(t, 3)

	res, err := l.Page(context.Background(), productsSpec, Request{})
	require.NoError(t, err)

	type row struct {
		ID   string `bson:"_id"`
		Name string `bson:"name"`
	}
	rows, err := Decode[row](res.Items)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Product 02", rows[0].Name)
	assert.NotEmpty(t, rows[0].ID)
}

func TestForgetDropsOnlyThatOwnersTrail(t *testing.T) {
	l, _ := newLister(t, 23)
	ctx := context.Background()

	for _, owner := range []string{"a@example.com", "b@example.com"} {
		_, err := l.Page(ctx, productsSpec, Request{Owner: owner, Page: 2})
		require.NoError(t, err)
	}

	l.Forget("a@example.com", productsSpec)
	assert.Empty(t, l.loadTrail("a@example.com", productsSpec))
	assert.NotEmpty(t, l.loadTrail("b@example.com", productsSpec))
}

func TestTokensWithoutPageNumbers(t *testing.T) {
	l, _ := newLister(t, 23)
	ctx := context.Background()

	first, err := l.Page(ctx, productsSpec, Request{Page: 1})
	require.NoError(t, err)

	second, err := l.Page(ctx, productsSpec, Request{After: first.Next})
	require.NoError(t, err)
	assert.Equal(t, "Product 12", second.Items[0].String("name"))
	assert.Equal(t, int64(2), second.Page)
	assert.NotEmpty(t, second.Prev)
	assert.NotEmpty(t, second.Next)

	third, err := l.Page(ctx, productsSpec, Request{After: second.Next})
	require.NoError(t, err)
	assert.Equal(t, []string{"Product 02", "Product 01", "Product 00"}, names(third))
	assert.Equal(t, int64(3), third.Page)
	assert.NotEmpty(t, third.Prev)
	assert.Empty(t, third.Next)

	back, err := l.Page(ctx, productsSpec, Request{Before: third.Prev})
	require.NoError(t, err)
	assert.Equal(t, names(second), names(back))
	assert.Equal(t, int64(2), back.Page)
	assert.NotEmpty(t, back.Prev)
	assert.NotEmpty(t, back.Next)

	start, err := l.Page(ctx, productsSpec, Request{Before: back.Prev})
	require.NoError(t, err)
	assert.Equal(t, names(first), names(start))
	assert.Equal(t, int64(1), start.Page)
	assert.Empty(t, start.Prev)
	assert.Equal(t, first.Next, start.Next)
}
