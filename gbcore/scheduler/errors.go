package scheduler

import "errors"

// ErrSchedulerFull is returned by Add when all MaxEvents slots are in use.
var ErrSchedulerFull = errors.New("scheduler: no free event slots")
