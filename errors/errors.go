package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrEmptyCorpus         = fmt.Errorf("rule corpus holds no patterns")
	ErrInvalidWeight       = fmt.Errorf("pattern weight out of range")
	ErrUpstreamUnavailable = fmt.Errorf("upstream analyzer unavailable")
	ErrRateExhausted       = fmt.Errorf("rate budget exhausted")
	ErrInvalidRateConfig   = fmt.Errorf("invalid rate governor configuration")
	ErrInvalidQuery        = fmt.Errorf("invalid feed query")
	ErrInvalidConfig       = fmt.Errorf("invalid configuration")
)
