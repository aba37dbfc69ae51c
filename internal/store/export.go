// Package store writes bench results to disk for comparison across runs.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

type BenchReport struct {
	Backend   string    `json:"backend"`
	Workers   int       `json:"workers,omitempty"`
	ThreeD    bool      `json:"three_d"`
	Particles int       `json:"particles"`
	Steps     int       `json:"steps"`
	MeanMs    float64   `json:"mean_ms"`
	P95Ms     float64   `json:"p95_ms"`
	StepMs    []float64 `json:"step_ms"`
	Recorded  time.Time `json:"recorded"`
}

func WriteJSON(w io.Writer, r *BenchReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ExportJSON writes r to path, replacing any existing file.
func ExportJSON(path string, r *BenchReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := WriteJSON(f, r); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}

func LoadJSON(path string) (*BenchReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r BenchReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &r, nil
}

// Summarize returns the mean and 95th percentile of the samples. Both are
// zero for an empty slice.
func Summarize(samples []float64) (mean, p95 float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	sum := 0.0
	for _, s := range sorted {
		sum += s
	}
	return sum / float64(len(sorted)), sorted[int(float64(len(sorted)-1)*0.95)]
}
