package utils

import "time"

// Clock abstracts time.Now so lifecycle and sweep logic can be tested at fixed instants.
type Clock interface {
	Now() time.Time
}

type RealTime struct{}

func (RealTime) Now() time.Time {
	return time.Now()
}

type FixedTime struct {
	Fixed time.Time
}

func (ft FixedTime) Now() time.Time {
	return ft.Fixed
}
