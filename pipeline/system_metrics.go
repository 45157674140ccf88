package pipeline

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/strive-code/strive/errors"
)

// getMemoryStats returns current memory usage in bytes
func getMemoryStats() (total uint64, available uint64, err error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to get memory stats")
	}

	return v.Total, v.Available, nil
}

// calculateSafeWorkerCount recommends worker count based on available memory.
// Each worker holds at most one source file plus its transpiled form in
// memory, so the per-worker estimate is generous rather than tight.
func calculateSafeWorkerCount(availableGB float64) int {
	const memoryPerWorker = 0.25 // GB per concurrent file transpilation
	const memoryBuffer = 1.0     // GB reserved for the rest of the process

	if availableGB < memoryBuffer {
		return 1 // Always allow at least 1 worker
	}

	usableMemory := availableGB - memoryBuffer
	recommended := int(usableMemory / memoryPerWorker)

	if recommended < 1 {
		return 1
	}
	if recommended > 32 {
		return 32 // Cap at reasonable maximum
	}

	return recommended
}

// effectiveWorkerCount caps the configured worker count against available
// memory. Returns the count to use and a warning message when the
// configuration was reduced, empty string if it was honored as-is.
func effectiveWorkerCount(configured int) (int, string) {
	if configured < 1 {
		configured = 1
	}

	total, available, err := getMemoryStats()
	if err != nil {
		return configured, "" // Can't check, assume OK
	}

	availableGB := float64(available) / 1024 / 1024 / 1024
	totalGB := float64(total) / 1024 / 1024 / 1024
	recommended := calculateSafeWorkerCount(availableGB)

	if configured > recommended {
		return recommended, fmt.Sprintf(
			"Worker count (%d) exceeds recommended (%d) for available memory (%.1f/%.1fGB). "+
				"Running with %d workers to prevent memory pressure.",
			configured, recommended, totalGB-availableGB, totalGB, recommended)
	}

	return configured, ""
}
