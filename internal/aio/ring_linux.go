//go:build linux

package aio

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	opOpenat = 18 // IORING_OP_OPENAT

	enterGetEvents = 1 << 0 // IORING_ENTER_GETEVENTS

	offSQRing = 0
	offCQRing = 0x8000000
	offSQEs   = 0x10000000
)

// sqringOffsets mirrors struct io_sqring_offsets.
type sqringOffsets struct {
	head, tail, ringMask, ringEntries, flags, dropped, array, resv1 uint32
	userAddr                                                        uint64
}

// cqringOffsets mirrors struct io_cqring_offsets.
type cqringOffsets struct {
	head, tail, ringMask, ringEntries, overflow, cqes, flags, resv1 uint32
	userAddr                                                        uint64
}

// ringParams mirrors struct io_uring_params.
type ringParams struct {
	sqEntries    uint32
	cqEntries    uint32
	flags        uint32
	sqThreadCPU  uint32
	sqThreadIdle uint32
	features     uint32
	wqFD         uint32
	resv         [3]uint32
	sqOff        sqringOffsets
	cqOff        cqringOffsets
}

// sqe mirrors the 64 byte struct io_uring_sqe.
type sqe struct {
	opcode      uint8
	flags       uint8
	ioprio      uint16
	fd          int32
	off         uint64
	addr        uint64
	len         uint32
	opFlags     uint32
	userData    uint64
	bufIndex    uint16
	personality uint16
	spliceFDIn  int32
	addr3       uint64
	_           uint64
}

// cqe mirrors struct io_uring_cqe.
type cqe struct {
	userData uint64
	res      int32
	flags    uint32
}

// ring is a minimal io_uring instance driven from a single goroutine.
type ring struct {
	fd     int
	params ringParams

	sqMem  []byte
	cqMem  []byte
	sqeMem []byte

	sqHead  *uint32
	sqTail  *uint32
	sqMask  uint32
	sqArray []uint32
	sqes    []sqe
	// sqes handed out but not yet published to the kernel
	sqeHead, sqeTail uint32

	cqHead *uint32
	cqTail *uint32
	cqMask uint32
	cqes   []cqe
}

func newRing(entries uint32) (*ring, error) {
	r := &ring{fd: -1}
	fd, _, errno := unix.Syscall(unix.SYS_IO_URING_SETUP, uintptr(entries), uintptr(unsafe.Pointer(&r.params)), 0)
	if errno != 0 {
		return nil, os.NewSyscallError("io_uring_setup", errno)
	}
	r.fd = int(fd)

	if err := r.mmap(); err != nil {
		r.close()
		return nil, err
	}
	return r, nil
}

func (r *ring) mmap() error {
	p := &r.params
	var err error

	sqSize := int(p.sqOff.array + p.sqEntries*4)
	r.sqMem, err = unix.Mmap(r.fd, offSQRing, sqSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_POPULATE)
	if err != nil {
		return fmt.Errorf("mmap sq ring: %w", err)
	}

	cqSize := int(p.cqOff.cqes + p.cqEntries*uint32(unsafe.Sizeof(cqe{})))
	r.cqMem, err = unix.Mmap(r.fd, offCQRing, cqSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_POPULATE)
	if err != nil {
		return fmt.Errorf("mmap cq ring: %w", err)
	}

	sqeSize := int(p.sqEntries * uint32(unsafe.Sizeof(sqe{})))
	r.sqeMem, err = unix.Mmap(r.fd, offSQEs, sqeSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_POPULATE)
	if err != nil {
		return fmt.Errorf("mmap sqes: %w", err)
	}

	r.sqHead = (*uint32)(unsafe.Pointer(&r.sqMem[p.sqOff.head]))
	r.sqTail = (*uint32)(unsafe.Pointer(&r.sqMem[p.sqOff.tail]))
	r.sqMask = *(*uint32)(unsafe.Pointer(&r.sqMem[p.sqOff.ringMask]))
	r.sqArray = unsafe.Slice((*uint32)(unsafe.Pointer(&r.sqMem[p.sqOff.array])), p.sqEntries)
	r.sqes = unsafe.Slice((*sqe)(unsafe.Pointer(&r.sqeMem[0])), p.sqEntries)

	r.cqHead = (*uint32)(unsafe.Pointer(&r.cqMem[p.cqOff.head]))
	r.cqTail = (*uint32)(unsafe.Pointer(&r.cqMem[p.cqOff.tail]))
	r.cqMask = *(*uint32)(unsafe.Pointer(&r.cqMem[p.cqOff.ringMask]))
	r.cqes = unsafe.Slice((*cqe)(unsafe.Pointer(&r.cqMem[p.cqOff.cqes])), p.cqEntries)
	return nil
}

// getSQE returns a zeroed submission entry, or nil when the queue is full.
func (r *ring) getSQE() *sqe {
	head := atomic.LoadUint32(r.sqHead)
	if r.sqeTail-head >= r.params.sqEntries {
		return nil
	}
	e := &r.sqes[r.sqeTail&r.sqMask]
	r.sqeTail++
	*e = sqe{}
	return e
}

// prepOpenat fills e with an openat relative to the working directory.
// pathz must be NUL-terminated and stay alive until the completion arrives.
func prepOpenat(e *sqe, pathz []byte, flags uint32, userData uint64) {
	e.opcode = opOpenat
	e.fd = unix.AT_FDCWD
	e.addr = uint64(uintptr(unsafe.Pointer(&pathz[0])))
	e.opFlags = flags
	e.userData = userData
}

// flush publishes prepared entries to the kernel and returns how many are
// waiting to be consumed.
func (r *ring) flush() uint32 {
	tail := *r.sqTail
	for ; r.sqeHead != r.sqeTail; r.sqeHead++ {
		r.sqArray[tail&r.sqMask] = r.sqeHead & r.sqMask
		tail++
	}
	atomic.StoreUint32(r.sqTail, tail)
	return tail - atomic.LoadUint32(r.sqHead)
}

// submitAndWait submits every prepared entry and blocks until at least
// waitNr completions are available.
func (r *ring) submitAndWait(waitNr uint32) error {
	var flags uintptr
	if waitNr > 0 {
		flags |= enterGetEvents
	}

	for {
		pending := r.flush()
		_, _, errno := unix.Syscall6(unix.SYS_IO_URING_ENTER, uintptr(r.fd), uintptr(pending), uintptr(waitNr), flags, 0, 0)
		switch errno {
		case 0:
			return nil
		case unix.EINTR:
			continue
		default:
			return os.NewSyscallError("io_uring_enter", errno)
		}
	}
}

// peekCQE returns the oldest unconsumed completion, or nil.
func (r *ring) peekCQE() *cqe {
	head := *r.cqHead
	if head == atomic.LoadUint32(r.cqTail) {
		return nil
	}
	return &r.cqes[head&r.cqMask]
}

// cqeSeen marks the completion returned by peekCQE as consumed.
func (r *ring) cqeSeen() {
	atomic.StoreUint32(r.cqHead, *r.cqHead+1)
}

func (r *ring) close() error {
	for _, mem := range [][]byte{r.sqeMem, r.cqMem, r.sqMem} {
		if mem != nil {
			unix.Munmap(mem)
		}
	}
	r.sqeMem, r.cqMem, r.sqMem = nil, nil, nil

	if r.fd < 0 {
		return nil
	}
	fd := r.fd
	r.fd = -1
	return unix.Close(fd)
}
