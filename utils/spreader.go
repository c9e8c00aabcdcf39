package utils

import "sync"

// Spreader serializes work per key while letting distinct keys run in
// parallel. Every engine mutation for a wallet goes through Do with that
// wallet as the key.
type Spreader struct {
	mu    sync.Mutex
	locks map[string]*walletLock
}

type walletLock struct {
	mu   sync.Mutex
	refs int
}

func NewSpreader() *Spreader {
	return &Spreader{
		locks: make(map[string]*walletLock),
	}
}

func (s *Spreader) Do(key string, fn func() error) error {
	l := s.acquire(key)
	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		s.release(key, l)
	}()

	return fn()
}

func (s *Spreader) acquire(key string) *walletLock {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[key]
	if !ok {
		l = &walletLock{}
		s.locks[key] = l
	}
	l.refs++
	return l
}

func (s *Spreader) release(key string, l *walletLock) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(s.locks, key)
	}
}
