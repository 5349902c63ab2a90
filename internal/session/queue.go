package session

import "github.com/MrSnakeDoc/logincmd/internal/domain"

// queue is the pending subsequence of the plan, ascending ScheduledAt.
// Entries share pointers with the plan so status changes are visible from both.
type queue []*domain.ExecutionEntry

func (q queue) peek() *domain.ExecutionEntry {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

func (q *queue) pop() *domain.ExecutionEntry {
	head := q.peek()
	if head != nil {
		(*q)[0] = nil
		*q = (*q)[1:]
	}
	return head
}

// remove drops the entry with the given sequence, wherever it sits.
func (q *queue) remove(seq int) bool {
	for i, e := range *q {
		if e.Sequence == seq {
			*q = append((*q)[:i], (*q)[i+1:]...)
			return true
		}
	}
	return false
}

// drain empties the queue and returns what it held, in order.
func (q *queue) drain() []*domain.ExecutionEntry {
	out := *q
	*q = nil
	return out
}
