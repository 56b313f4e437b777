//go:build !linux

package aio

// Uring is only available on Linux.
type Uring struct{}

// NewUring always fails outside Linux.
func NewUring(capacity int) (*Uring, error) {
	return nil, ErrUnsupported
}

func (u *Uring) Capacity() int                  { return 0 }
func (u *Uring) Submit(reqs []Request) error    { return ErrUnsupported }
func (u *Uring) Wait(fn func(Completion)) error { return ErrUnsupported }
func (u *Uring) Close() error                   { return nil }
