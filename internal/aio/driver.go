// Package aio submits batches of directory opens and drains their
// completions.
//
// A Driver accepts up to Capacity requests, then Wait blocks until all of
// them completed. Completion handlers run on the goroutine that called Wait,
// in the order the completions arrived, and the descriptor they receive is
// closed by the driver as soon as the handler returns.
package aio

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by constructors of drivers the platform
// cannot provide.
var ErrUnsupported = errors.New("aio: driver not supported on this platform")

// ErrCapacity is returned by Submit when a batch does not fit in the free
// request contexts.
var ErrCapacity = errors.New("aio: submission exceeds driver capacity")

// DefaultCapacity is the default number of requests in flight.
const DefaultCapacity = 256

// Request asks for one directory to be opened.
type Request struct {
	Path  string
	Depth int
	Index int // position in the caller's batch, echoed in the completion
}

// Completion is the outcome of one Request. FD is only valid when Err is
// nil, and only until the handler returns.
type Completion struct {
	Request
	FD  int
	Err error
}

// Driver is a submission/completion facility for directory opens.
type Driver interface {
	// Capacity is the maximum number of requests in flight.
	Capacity() int
	// Submit starts opening every request in reqs.
	Submit(reqs []Request) error
	// Wait blocks until every submitted request completed, calling fn once
	// per completion.
	Wait(fn func(Completion)) error
	Close() error
}

// OpenAll opens every request through d, never exceeding its capacity: a
// chunk is submitted and fully drained before the next one is submitted.
func OpenAll(d Driver, reqs []Request, fn func(Completion)) error {
	size := d.Capacity()
	if size < 1 {
		return fmt.Errorf("aio: invalid capacity %d", size)
	}

	for len(reqs) > 0 {
		chunk := reqs[:min(size, len(reqs))]
		reqs = reqs[len(chunk):]

		if err := d.Submit(chunk); err != nil {
			return fmt.Errorf("submit %d opens: %w", len(chunk), err)
		}
		if err := d.Wait(fn); err != nil {
			return fmt.Errorf("wait for %d opens: %w", len(chunk), err)
		}
	}
	return nil
}
