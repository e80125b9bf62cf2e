// Package listing pages through a collection the way the console's list
// views do: a remembered cursor trail per viewer for page-number navigation,
// opaque after/before tokens for stateless clients, and a bounded in-memory
// window for name search.
package listing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"catalog-admin/internal/cache"
	"catalog-admin/internal/store"
)

type Spec struct {
	Collection string
	OrderBy    string
	Direction  store.Direction
	NameField  string
	// PageSize overrides the lister default when positive.
	PageSize int64
}

type Request struct {
	Owner  string
	Page   int64
	Search string
	After  string
	Before string
}

type Result struct {
	Items      []store.Snapshot
	Page       int64
	PageSize   int64
	Total      int64
	TotalPages int64
	Next       string
	Prev       string
	Searching  bool
}

// trail holds the last cursor of every visited page: cursors[k-1] ends page k.
type trail struct {
	cursors  []*store.Cursor
	searched bool
}

type Lister struct {
	client       store.Client
	trails       *cache.Cache
	pageSize     int64
	searchWindow int64
}

func New(client store.Client, trails *cache.Cache, pageSize, searchWindow int64) *Lister {
	if pageSize <= 0 {
		pageSize = 10
	}
	if searchWindow <= 0 {
		searchWindow = 100
	}
	return &Lister{client: client, trails: trails, pageSize: pageSize, searchWindow: searchWindow}
}

func trailPrefix(collection string) string {
	return "trail:" + collection + ":"
}

// Views of one collection with different orderings keep separate trails.
func trailKey(owner string, spec Spec) string {
	return fmt.Sprintf("%s%s:%d:%d|%s", trailPrefix(spec.Collection), spec.OrderBy, spec.Direction, spec.PageSize, owner)
}

// Forget drops the owner's trail for one view.
func (l *Lister) Forget(owner string, spec Spec) {
	l.trails.Delete(trailKey(owner, spec))
}

// ForgetCollection drops every trail over a collection. Writes call it so
// page boundaries are recomputed on the next read.
func (l *Lister) ForgetCollection(collection string) {
	l.trails.DeleteByPrefix(trailPrefix(collection))
}

func (l *Lister) loadTrail(owner string, spec Spec) trail {
	v, ok := l.trails.GetValue(trailKey(owner, spec))
	if !ok {
		return trail{}
	}
	t, _ := v.(trail)
	return t
}

func (l *Lister) saveTrail(owner string, spec Spec, t trail) {
	l.trails.Set(trailKey(owner, spec), t)
}

func (l *Lister) size(spec Spec) int64 {
	if spec.PageSize > 0 {
		return spec.PageSize
	}
	return l.pageSize
}

// TotalPages recounts the collection. Deletes report it so the console can
// step back when its current page disappears.
func (l *Lister) TotalPages(ctx context.Context, spec Spec) (int64, error) {
	n, err := l.client.Collection(spec.Collection).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", spec.Collection, err)
	}
	return TotalPages(n, l.size(spec)), nil
}

func (l *Lister) Page(ctx context.Context, spec Spec, req Request) (*Result, error) {
	if req.Search != "" {
		return l.search(ctx, spec, req)
	}
	if req.After != "" || req.Before != "" {
		return l.byToken(ctx, spec, req)
	}
	return l.byTrail(ctx, spec, req)
}

func (l *Lister) baseQuery(spec Spec, limit int64) store.Query {
	return store.Query{OrderBy: spec.OrderBy, Direction: spec.Direction, Limit: limit}
}

func (l *Lister) byTrail(ctx context.Context, spec Spec, req Request) (*Result, error) {
	size := l.size(spec)
	coll := l.client.Collection(spec.Collection)

	page := req.Page
	if page < 1 {
		page = 1
	}
	t := l.loadTrail(req.Owner, spec)
	if t.searched {
		page = 1
		t = trail{}
	}

	var total int64
	var items []store.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := coll.Count(gctx)
		if err != nil {
			return fmt.Errorf("count %s: %w", spec.Collection, err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		var err error
		items, t, err = l.fetchPage(gctx, coll, spec, size, page, t)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalPages := TotalPages(total, size)
	if len(items) == 0 && page > totalPages {
		page = totalPages
		var err error
		items, t, err = l.fetchPage(ctx, coll, spec, size, page, t)
		if err != nil {
			return nil, err
		}
	}
	l.saveTrail(req.Owner, spec, t)

	res := &Result{
		Items:      items,
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
	return res, l.setTokens(res, spec, page < totalPages, page > 1)
}

// fetchPage returns page (1-based), walking forward from the furthest known
// trail entry when the trail does not reach page-1 yet.
func (l *Lister) fetchPage(ctx context.Context, coll store.Collection, spec Spec, size, page int64, t trail) ([]store.Snapshot, trail, error) {
	cursors := append([]*store.Cursor(nil), t.cursors...)

	for int64(len(cursors)) < page-1 {
		q := l.baseQuery(spec, size)
		if n := len(cursors); n > 0 {
			q.StartAfter = cursors[n-1]
		}
		snaps, err := coll.Find(ctx, q)
		if err != nil {
			return nil, t, fmt.Errorf("walk %s: %w", spec.Collection, err)
		}
		if len(snaps) == 0 {
			// Past the end; nothing more to record.
			return nil, trail{cursors: cursors}, nil
		}
		cursors = append(cursors, store.CursorFrom(snaps[len(snaps)-1], spec.OrderBy))
	}

	q := l.baseQuery(spec, size)
	if page > 1 {
		q.StartAfter = cursors[page-2]
	}
	snaps, err := coll.Find(ctx, q)
	if err != nil {
		return nil, t, fmt.Errorf("find %s: %w", spec.Collection, err)
	}
	if len(snaps) > 0 {
		last := store.CursorFrom(snaps[len(snaps)-1], spec.OrderBy)
		if int64(len(cursors)) >= page {
			cursors[page-1] = last
		} else {
			cursors = append(cursors, last)
		}
	}
	return snaps, trail{cursors: cursors}, nil
}

// byToken serves the stateless variant. One extra document is fetched past
// the page edge so next and prev reflect what actually exists.
func (l *Lister) byToken(ctx context.Context, spec Spec, req Request) (*Result, error) {
	size := l.size(spec)
	coll := l.client.Collection(spec.Collection)

	q := l.baseQuery(spec, size+1)
	var err error
	if req.After != "" {
		if q.StartAfter, err = store.DecodeCursor(req.After); err != nil {
			return nil, err
		}
	} else {
		if q.EndBefore, err = store.DecodeCursor(req.Before); err != nil {
			return nil, err
		}
	}

	var total int64
	var items []store.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := coll.Count(gctx)
		total = n
		return err
	})
	g.Go(func() error {
		snaps, err := coll.Find(gctx, q)
		items = snaps
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("page %s: %w", spec.Collection, err)
	}

	var hasNext, hasPrev bool
	if q.StartAfter != nil {
		hasPrev = true
		if int64(len(items)) > size {
			hasNext = true
			items = items[:size]
		}
	} else {
		hasNext = true
		if int64(len(items)) > size {
			hasPrev = true
			items = items[int64(len(items))-size:]
		}
	}
	if len(items) == 0 {
		hasNext, hasPrev = false, false
	}

	totalPages := TotalPages(total, size)
	res := &Result{
		Items:      items,
		Page:       tokenPage(req.Page, totalPages, hasPrev, hasNext),
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
	}
	return res, l.setTokens(res, spec, hasNext, hasPrev)
}

// tokenPage labels a token page. The client's page number is a hint; the
// edges of the collection override it.
func tokenPage(hint, totalPages int64, hasPrev, hasNext bool) int64 {
	switch {
	case !hasPrev:
		return 1
	case !hasNext:
		return totalPages
	}
	page := ClampPage(hint, totalPages)
	if page < 2 {
		page = 2
	}
	if page >= totalPages && totalPages > 2 {
		page = totalPages - 1
	}
	return page
}

func (l *Lister) setTokens(res *Result, spec Spec, hasNext, hasPrev bool) error {
	if len(res.Items) == 0 {
		return nil
	}
	var err error
	if hasNext {
		if res.Next, err = store.EncodeCursor(store.CursorFrom(res.Items[len(res.Items)-1], spec.OrderBy)); err != nil {
			return err
		}
	}
	if hasPrev {
		if res.Prev, err = store.EncodeCursor(store.CursorFrom(res.Items[0], spec.OrderBy)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lister) search(ctx context.Context, spec Spec, req Request) (*Result, error) {
	size := l.size(spec)
	l.saveTrail(req.Owner, spec, trail{searched: true})

	snaps, err := l.client.Collection(spec.Collection).Find(ctx, l.baseQuery(spec, l.searchWindow))
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", spec.Collection, err)
	}
	matched := FilterByName(snaps, req.Search, func(s store.Snapshot) string {
		return s.String(spec.NameField)
	})

	total := int64(len(matched))
	totalPages := TotalPages(total, size)
	page := ClampPage(req.Page, totalPages)

	return &Result{
		Items:      PageSlice(matched, page, size),
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: totalPages,
		Searching:  true,
	}, nil
}

// Decode unmarshals every snapshot into T.
func Decode[T any](snaps []store.Snapshot) ([]T, error) {
	out := make([]T, 0, len(snaps))
	for _, s := range snaps {
		var v T
		if err := s.DataTo(&v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}
