package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderLocks_SerializesSameOrder(t *testing.T) {
	locks := newOrderLocks()
	id := uuid.New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(id)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestOrderLocks_EntryReleasedWhenIdle(t *testing.T) {
	locks := newOrderLocks()
	id := uuid.New()

	unlock := locks.Lock(id)
	unlock()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "idle orders must not leak lock entries")
}

func TestOrderLocks_IndependentOrdersDoNotBlock(t *testing.T) {
	locks := newOrderLocks()

	unlockA := locks.Lock(uuid.New())
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock(uuid.New())
		unlockB()
		close(done)
	}()

	<-done
}
