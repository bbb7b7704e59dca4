package port

import "context"

// DocumentStore abstracts the external document database. Insert writes
// one record into the named collection and returns its assigned document
// ID. The creation timestamp is assigned by the store, not the caller.
type DocumentStore interface {
	Insert(ctx context.Context, collection string, record any) (string, error)
}
