package service

import "time"

type systemClock struct{}

// NewSystemClock returns a Clock reading the wall clock in UTC.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
