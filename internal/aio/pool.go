package aio

// requestContext correlates an in-flight open with its request. pathz holds
// the NUL-terminated path handed to the kernel and must stay reachable until
// the completion is consumed.
type requestContext struct {
	req   Request
	pathz []byte
}

// contextPool is a fixed set of request contexts, recycled across batches.
// Slot indexes double as the completion tag.
type contextPool struct {
	slots []requestContext
	free  []int
}

func newContextPool(size int) *contextPool {
	p := &contextPool{
		slots: make([]requestContext, size),
		free:  make([]int, size),
	}
	for i := range p.free {
		// pop from the end hands out slot 0 first
		p.free[i] = size - 1 - i
	}
	return p
}

// inUse is the number of slots currently held.
func (p *contextPool) inUse() int {
	return len(p.slots) - len(p.free)
}

// available is the number of free slots.
func (p *contextPool) available() int {
	return len(p.free)
}

// get claims a slot for req. ok is false when the pool is exhausted.
func (p *contextPool) get(req Request) (slot int, ok bool) {
	if len(p.free) == 0 {
		return 0, false
	}
	slot = p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	c := &p.slots[slot]
	c.req = req
	c.pathz = append(append(c.pathz[:0], req.Path...), 0)
	return slot, true
}

// at returns the context of a claimed slot.
func (p *contextPool) at(slot int) *requestContext {
	return &p.slots[slot]
}

// put releases a slot. The path buffer is kept for reuse.
func (p *contextPool) put(slot int) {
	p.slots[slot].req = Request{}
	p.free = append(p.free, slot)
}
