package impl

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocker(t *testing.T) {
	l := newLocker()

	var (
		wg      sync.WaitGroup
		counter int
	)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := l.Lock("a")
			defer unlock()

			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	require.Equal(t, 100, counter)
	require.Zero(t, l.len())
}

func TestLocker_DifferentKeys(t *testing.T) {
	l := newLocker()

	unlockA := l.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		l.Lock("b")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock of another key should not wait")
	}

	require.Equal(t, 1, l.len())
}
