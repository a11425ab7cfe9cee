//go:build windows

package handler

// getDiskStats is not implemented on Windows.
func getDiskStats(path string) (total, free int64, usedPct float64) {
	return 0, 0, 0
}

// getCPUUsage is not implemented on Windows.
func getCPUUsage() float64 {
	return 0
}
