package coronastats

import (
	"context"
	"time"
)

// Store keeps the last fetched response body of every country.
type Store interface {
	IsFresh(ctx context.Context, country string, now time.Time) (bool, error)
	Write(ctx context.Context, country, body string) error
	Read(ctx context.Context, country string) (string, error)
}

func sameDay(a, b time.Time) bool {
	a = a.Local()
	b = b.Local()
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
