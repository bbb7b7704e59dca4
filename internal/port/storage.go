package port

import (
	"context"
	"io"
)

// PutInput encapsulates the parameters needed to store an object. The
// bucket is owned by the implementation, not the caller.
type PutInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ObjectRef identifies a stored object.
type ObjectRef struct {
	Bucket string
	Key    string
}

// ObjectStorage abstracts the external binary-object store.
type ObjectStorage interface {
	Put(ctx context.Context, input PutInput) (*ObjectRef, error)
	URLFor(ctx context.Context, ref ObjectRef) (string, error)
}
