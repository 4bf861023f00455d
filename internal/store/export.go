// Package store writes benchmark reports to disk.
package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/san-kum/tixy/internal/bench"
)

type Report struct {
	Timestamp time.Time       `json:"timestamp"`
	MaxRadius float64         `json:"max_radius"`
	Gap       float64         `json:"gap"`
	Results   []*bench.Result `json:"results"`
}

func NewReport(maxRadius, gap float64, results []*bench.Result) *Report {
	return &Report{
		Timestamp: time.Now(),
		MaxRadius: maxRadius,
		Gap:       gap,
		Results:   results,
	}
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func ExportJSON(path string, r *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(file, r); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteCSV writes one row per recorded frame: pattern, frame number and
// frame time in milliseconds.
func WriteCSV(w io.Writer, r *Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"pattern", "frame", "ms"}); err != nil {
		return err
	}
	for _, res := range r.Results {
		for i, ms := range res.FrameMs {
			row := []string{res.Pattern, strconv.Itoa(i + 1), strconv.FormatFloat(ms, 'f', 4, 64)}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func ExportCSV(path string, r *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(file, r); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
