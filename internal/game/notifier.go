package game

import (
	"sync"

	"github.com/vytor/colorflash/internal/models"
)

// notifier fans snapshots out to subscribers. Each subscriber owns an
// unbounded queue and a delivery goroutine, so publish never blocks.
type notifier struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*subscriber
	closed bool
}

type subscriber struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []models.Snapshot
	closed bool
	fn     func(models.Snapshot)
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[uint64]*subscriber)}
}

// add registers fn and queues first as its initial delivery.
func (n *notifier) add(fn func(models.Snapshot), first models.Snapshot) func() {
	sub := &subscriber{fn: fn, queue: []models.Snapshot{first}}
	sub.cond = sync.NewCond(&sub.mu)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return func() {}
	}
	n.nextID++
	id := n.nextID
	n.subs[id] = sub
	n.mu.Unlock()

	go sub.run()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
		sub.close()
	}
}

func (n *notifier) publish(s models.Snapshot) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, sub := range n.subs {
		sub.push(s)
	}
}

func (n *notifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

func (n *notifier) close() {
	n.mu.Lock()
	subs := n.subs
	n.subs = make(map[uint64]*subscriber)
	n.closed = true
	n.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
}

func (s *subscriber) push(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, snap)
	s.cond.Signal()
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.queue = nil
	s.cond.Signal()
}

func (s *subscriber) run() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		snap := s.queue[0]
		s.queue[0] = models.Snapshot{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.fn(snap)
	}
}
