package repository

import (
	"sync"

	"complainhub/internal/domain/entity"
)

// Subscription is a live complaint-list feed. Each value on C is the full
// current result set. The scope that created the subscription owns it and
// must call Close exactly when done; C is closed afterwards.
type Subscription struct {
	C <-chan []*entity.Complaint

	stop     func()
	stopOnce sync.Once
}

func NewSubscription(c <-chan []*entity.Complaint, stop func()) *Subscription {
	return &Subscription{C: c, stop: stop}
}

func (s *Subscription) Close() {
	s.stopOnce.Do(func() {
		if s.stop != nil {
			s.stop()
		}
	})
}
