package host

import "log"

const defaultQueueSize = 256

// Queue is an in-memory Source backed by a buffered channel. Emit may be
// called from any goroutine; Drain belongs to the render thread.
type Queue struct {
	events chan Event
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue{events: make(chan Event, size)}
}

// Emit enqueues ev. It never blocks: when the queue is full the event is
// dropped and false is returned.
func (q *Queue) Emit(ev Event) bool {
	if q == nil {
		return false
	}
	select {
	case q.events <- ev:
		return true
	default:
		log.Printf("host queue full, dropping %s", ev.Kind)
		return false
	}
}

func (q *Queue) Len() int {
	return len(q.events)
}

func (q *Queue) Drain(handle func(Event) bool) int {
	count := 0
	for {
		select {
		case ev := <-q.events:
			count++
			if !handle(ev) {
				return count
			}
		default:
			return count
		}
	}
}
