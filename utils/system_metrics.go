package utils

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// GetCPUUsage samples overall CPU usage as a percentage over the interval.
func GetCPUUsage(ctx context.Context, interval time.Duration) (float64, error) {
	percentage, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(percentage) > 0 {
		return percentage[0], nil
	}
	return 0, nil
}
