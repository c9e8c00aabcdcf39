package utils

import (
	"errors"
	"sync"
	"testing"
)

func TestSpreaderSerializesSameKey(t *testing.T) {
	s := NewSpreader()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do("wallet-a", func() error {
				// Unsynchronized on purpose; the spreader is the only guard.
				v := counter
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("counter = %d, want %d", counter, workers)
	}
}

func TestSpreaderDistinctKeysDoNotBlock(t *testing.T) {
	s := NewSpreader()

	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = s.Do("wallet-a", func() error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding

	go func() {
		_ = s.Do("wallet-b", func() error {
			return nil
		})
		close(done)
	}()

	// wallet-b proceeds while wallet-a is held.
	<-done
	close(release)
}

func TestSpreaderReturnsFnError(t *testing.T) {
	s := NewSpreader()

	want := errors.New("boom")
	if err := s.Do("wallet-a", func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("got %v, want %v", err, want)
	}
}

func TestSpreaderReleasesLocks(t *testing.T) {
	s := NewSpreader()

	for i := 0; i < 10; i++ {
		_ = s.Do("wallet-a", func() error { return nil })
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.locks) != 0 {
		t.Fatalf("locks map holds %d entries after idle", len(s.locks))
	}
}
