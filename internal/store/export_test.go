package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExportLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.json")
	in := &BenchReport{
		Backend:   "cpu",
		Particles: 2000,
		Steps:     3,
		MeanMs:    1.5,
		P95Ms:     2.0,
		StepMs:    []float64{1.0, 1.5, 2.0},
		Recorded:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	if err := ExportJSON(path, in); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if out.Backend != "cpu" || out.Particles != 2000 {
		t.Errorf("expected cpu/2000, got %s/%d", out.Backend, out.Particles)
	}
	if len(out.StepMs) != 3 || out.StepMs[2] != 2.0 {
		t.Errorf("step times not preserved: %v", out.StepMs)
	}
	if !out.Recorded.Equal(in.Recorded) {
		t.Errorf("expected %v, got %v", in.Recorded, out.Recorded)
	}
}

func TestWriteJSON_Indented(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, &BenchReport{Backend: "cpu"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  \"backend\": \"cpu\"") {
		t.Errorf("expected indented output, got %q", buf.String())
	}
}

func TestLoadJSON_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadJSON(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJSON(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestExportJSON_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "bench.json")
	if err := ExportJSON(path, &BenchReport{}); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		samples   []float64
		mean, p95 float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{4}, 4, 4},
		{"unsorted", []float64{3, 1, 2}, 2, 2},
		{"twenty", []float64{20, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, 10.5, 19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p95 := Summarize(tt.samples)
			if mean != tt.mean || p95 != tt.p95 {
				t.Errorf("expected %v/%v, got %v/%v", tt.mean, tt.p95, mean, p95)
			}
		})
	}
}

func TestSummarize_DoesNotReorder(t *testing.T) {
	in := []float64{3, 1, 2}
	Summarize(in)
	if in[0] != 3 || in[1] != 1 {
		t.Errorf("input reordered: %v", in)
	}
}
