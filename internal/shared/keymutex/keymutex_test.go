package keymutex_test

import (
	"sync"
	"testing"

	"github.com/skylift/workforce/internal/shared/keymutex"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := keymutex.New()

	const goroutines = 50
	counter := 0
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			km.Lock("employee-1")
			defer km.Unlock("employee-1")
			counter++
		}()
	}

	wg.Wait()
	assert.Equal(t, goroutines, counter)
}

func TestKeyMutex_DistinctKeysDoNotBlock(t *testing.T) {
	km := keymutex.New()

	km.Lock("employee-1")
	defer km.Unlock("employee-1")

	done := make(chan struct{})
	go func() {
		km.Lock("employee-2")
		km.Unlock("employee-2")
		close(done)
	}()

	<-done
}

func TestKeyMutex_ReusableAfterUnlock(t *testing.T) {
	km := keymutex.New()

	km.Lock("k")
	km.Unlock("k")
	km.Lock("k")
	km.Unlock("k")
}
