package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gonum.org/v1/plot"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
	"github.com/Hazboun6/PsrSigSim/render"
)

// readGrid parses a CSV grid of floats. Lines starting with '#' are
// skipped.
func readGrid(r io.Reader) (*grid.Grid, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, len(records))
	for i, rec := range records {
		rows[i] = make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+1, err)
			}
			rows[i][j] = v
		}
	}

	return grid.FromRows(rows)
}

func save(p *plot.Plot, style render.Style, path string, logger *slog.Logger) error {
	if err := render.Save(p, style, path); err != nil {
		return err
	}
	logger.Info("wrote plot", slog.String("path", path))
	return nil
}

// newLogger builds a slog logger writing to w. format is "json" or text;
// level defaults to info.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
