package pipeline

import (
	"testing"
)

func TestGetMemoryStats(t *testing.T) {
	total, available, err := getMemoryStats()
	if err != nil {
		t.Fatalf("Failed to get memory stats: %v", err)
	}

	if total == 0 {
		t.Error("Expected total memory > 0")
	}
	if available > total {
		t.Errorf("Available memory (%d) cannot exceed total memory (%d)", available, total)
	}
}

func TestCalculateSafeWorkerCount(t *testing.T) {
	tests := []struct {
		name        string
		availableGB float64
		want        int
	}{
		{"almost no memory", 0.5, 1},
		{"just the buffer", 1.0, 1},
		{"small headroom", 1.3, 1},
		{"two workers", 1.6, 2},
		{"typical laptop", 9.0, 32},
		{"large machine", 64.0, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateSafeWorkerCount(tt.availableGB)
			if got != tt.want {
				t.Errorf("calculateSafeWorkerCount(%v) = %d, want %d", tt.availableGB, got, tt.want)
			}
		})
	}
}

func TestEffectiveWorkerCountFloorsAtOne(t *testing.T) {
	workers, _ := effectiveWorkerCount(0)
	if workers < 1 {
		t.Errorf("effectiveWorkerCount(0) = %d, want at least 1", workers)
	}

	workers, _ = effectiveWorkerCount(-3)
	if workers < 1 {
		t.Errorf("effectiveWorkerCount(-3) = %d, want at least 1", workers)
	}
}
