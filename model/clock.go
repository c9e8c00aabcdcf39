package model

import "time"

// Clock is read exactly once per engine operation so a transition never
// sees two different nows.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func NewClock() Clock {
	return realClock{}
}
