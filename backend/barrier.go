package backend

import "sync"

// barrier is a reusable rendezvous for the fixed thread count of one work
// group. wait blocks until every thread of the group has arrived, then
// releases them all; the mutex handoff gives the same happens-before edge a
// device barrier provides for shared local memory.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	size    int
	arrived int
	phase   int
}

func newBarrier(size int) *barrier {
	b := &barrier{size: size}
	b.cond = sync.NewCond(&b.mu)

	return b
}

func (b *barrier) wait() {
	b.mu.Lock()
	phase := b.phase
	b.arrived++
	if b.arrived == b.size {
		b.arrived = 0
		b.phase++
		b.cond.Broadcast()
	} else {
		for b.phase == phase {
			b.cond.Wait()
		}
	}
	b.mu.Unlock()
}
