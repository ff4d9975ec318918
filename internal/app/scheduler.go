package app

import "time"

// Timer is the cancellation handle of a scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler arms deferred callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
