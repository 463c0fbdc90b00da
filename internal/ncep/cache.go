package ncep

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"gribdefs/internal"
)

type Fetcher interface {
	FetchTable(ctx context.Context, discipline, category int) ([]internal.TableRow, error)
}

// RunCache memoizes tables for the lifetime of a single build so each
// (discipline, category) page is downloaded at most once. Size it to the
// number of distinct pairs in the run; nothing is persisted.
type RunCache struct {
	fetcher Fetcher
	tables  *lru.Cache[internal.TablePair, []internal.TableRow]
	fetches int
}

func NewRunCache(fetcher Fetcher, size int) (*RunCache, error) {
	if size < 1 {
		size = 1
	}
	tables, err := lru.New[internal.TablePair, []internal.TableRow](size)
	if err != nil {
		return nil, err
	}
	return &RunCache{fetcher: fetcher, tables: tables}, nil
}

func (c *RunCache) FetchTable(ctx context.Context, discipline, category int) ([]internal.TableRow, error) {
	pair := internal.TablePair{Discipline: discipline, Category: category}
	if rows, ok := c.tables.Get(pair); ok {
		return rows, nil
	}
	rows, err := c.fetcher.FetchTable(ctx, discipline, category)
	if err != nil {
		return nil, err
	}
	c.fetches++
	c.tables.Add(pair, rows)
	return rows, nil
}

// Fetches reports how many tables were downloaded through the cache.
func (c *RunCache) Fetches() int {
	return c.fetches
}
