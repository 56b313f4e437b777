//go:build linux

package aio

import (
	"fmt"
	"io/fs"
	"runtime"

	"golang.org/x/sys/unix"
)

const openDirFlags = unix.O_RDONLY | unix.O_DIRECTORY | unix.O_CLOEXEC

// Uring is a Driver backed by an io_uring instance. It is not safe for
// concurrent use.
type Uring struct {
	ring     *ring
	pool     *contextPool
	inflight int
}

// NewUring sets up an io_uring with room for capacity submissions.
func NewUring(capacity int) (*Uring, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("aio: invalid capacity %d", capacity)
	}

	r, err := newRing(uint32(capacity))
	if err != nil {
		return nil, fmt.Errorf("aio: %w", err)
	}
	// the kernel rounds entries up to a power of two
	return &Uring{
		ring: r,
		pool: newContextPool(capacity),
	}, nil
}

// Capacity implements Driver.
func (u *Uring) Capacity() int {
	return len(u.pool.slots)
}

// Submit implements Driver.
func (u *Uring) Submit(reqs []Request) error {
	if len(reqs) > u.pool.available() {
		return ErrCapacity
	}

	for _, req := range reqs {
		slot, _ := u.pool.get(req)
		e := u.ring.getSQE()
		if e == nil {
			u.pool.put(slot)
			return ErrCapacity
		}
		prepOpenat(e, u.pool.at(slot).pathz, openDirFlags, uint64(slot))
		u.inflight++
	}

	return u.ring.submitAndWait(0)
}

// Wait implements Driver.
func (u *Uring) Wait(fn func(Completion)) error {
	for u.inflight > 0 {
		c := u.ring.peekCQE()
		if c == nil {
			if err := u.ring.submitAndWait(uint32(u.inflight)); err != nil {
				return err
			}
			continue
		}

		slot, res := int(c.userData), c.res
		u.ring.cqeSeen()
		u.inflight--
		u.complete(slot, res, fn)
	}
	return nil
}

func (u *Uring) complete(slot int, res int32, fn func(Completion)) {
	ctx := u.pool.at(slot)
	comp := Completion{Request: ctx.req, FD: -1}
	if res < 0 {
		comp.Err = &fs.PathError{Op: "openat", Path: ctx.req.Path, Err: unix.Errno(-res)}
	} else {
		comp.FD = int(res)
	}
	runtime.KeepAlive(ctx.pathz)
	u.pool.put(slot)

	fn(comp)
	if comp.FD >= 0 {
		unix.Close(comp.FD)
	}
}

// Close waits out any requests still in flight and tears the ring down.
func (u *Uring) Close() error {
	if u.ring == nil {
		return nil
	}
	err := u.Wait(func(Completion) {})
	if cerr := u.ring.close(); err == nil {
		err = cerr
	}
	u.ring = nil
	return err
}
