//go:build !unix

package aio

// Threads is only available on unix platforms.
type Threads struct{}

// NewThreads always fails outside unix.
func NewThreads(capacity int) (*Threads, error) {
	return nil, ErrUnsupported
}

func (t *Threads) Capacity() int                  { return 0 }
func (t *Threads) Submit(reqs []Request) error    { return ErrUnsupported }
func (t *Threads) Wait(fn func(Completion)) error { return ErrUnsupported }
func (t *Threads) Close() error                   { return nil }
