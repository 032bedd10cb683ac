package synclog

import "context"

type Repository interface {
	Append(ctx context.Context, item *Entry) error
	Latest(ctx context.Context) (Entry, bool, error)
}
