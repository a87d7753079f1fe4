package models

import "testing"

func TestWorkerValid(t *testing.T) {
	for _, w := range Workers {
		if !w.Valid() {
			t.Errorf("Worker %v should be valid", w)
		}
	}
	if Worker(-1).Valid() {
		t.Error("Worker(-1) should not be valid")
	}
	if Worker(NumWorkers).Valid() {
		t.Error("Worker(NumWorkers) should not be valid")
	}
}

func TestWorkerString(t *testing.T) {
	tests := []struct {
		worker Worker
		want   string
	}{
		{WorkerPlanning, "planning"},
		{WorkerExecution, "execution"},
		{WorkerVerification, "verification"},
		{Worker(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.worker.String(); got != tt.want {
			t.Errorf("Worker(%d).String() = %q, want %q", tt.worker, got, tt.want)
		}
	}
}

func TestDimensionValid(t *testing.T) {
	for d := DimensionPlanning; d <= DimensionVerification; d++ {
		if !d.Valid() {
			t.Errorf("Dimension %v should be valid", d)
		}
	}
	if Dimension(NumDimensions).Valid() {
		t.Error("Dimension(NumDimensions) should not be valid")
	}
}
