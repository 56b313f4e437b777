//go:build unix

package aio

import (
	"fmt"
	"io/fs"

	"golang.org/x/sys/unix"
)

type openResult struct {
	slot int
	fd   int
	err  error
}

// Threads is a Driver that runs each open on its own goroutine and hands
// the results back through a channel. Completions are consumed only by the
// goroutine calling Wait.
type Threads struct {
	pool     *contextPool
	done     chan openResult
	inflight int
}

// NewThreads returns a goroutine backed driver with the given capacity.
func NewThreads(capacity int) (*Threads, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("aio: invalid capacity %d", capacity)
	}
	return &Threads{
		pool: newContextPool(capacity),
		done: make(chan openResult, capacity),
	}, nil
}

// Capacity implements Driver.
func (t *Threads) Capacity() int {
	return len(t.pool.slots)
}

// Submit implements Driver.
func (t *Threads) Submit(reqs []Request) error {
	if len(reqs) > t.pool.available() {
		return ErrCapacity
	}

	for _, req := range reqs {
		slot, _ := t.pool.get(req)
		t.inflight++
		go func(slot int, path string) {
			fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
			t.done <- openResult{slot: slot, fd: fd, err: err}
		}(slot, req.Path)
	}
	return nil
}

// Wait implements Driver.
func (t *Threads) Wait(fn func(Completion)) error {
	for ; t.inflight > 0; t.inflight-- {
		res := <-t.done

		comp := Completion{Request: t.pool.at(res.slot).req, FD: -1}
		if res.err != nil {
			comp.Err = &fs.PathError{Op: "open", Path: comp.Path, Err: res.err}
		} else {
			comp.FD = res.fd
		}
		t.pool.put(res.slot)

		fn(comp)
		if comp.FD >= 0 {
			unix.Close(comp.FD)
		}
	}
	return nil
}

// Close drains outstanding requests so no descriptor leaks.
func (t *Threads) Close() error {
	return t.Wait(func(Completion) {})
}
