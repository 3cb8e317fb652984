// Command scintinfo estimates scintillation bandwidth and timescale from a
// dynamic spectrum and optionally renders the diagnostic plots.
//
// Usage:
//
//	scintinfo [flags]
//
// Without -in it analyzes a synthetic scintillated spectrum.
//
// Examples:
//
//	scintinfo -in spectrum.csv -freqbin 0.05 -timebin 10
//	scintinfo -nf 256 -nt 512 -fscale 4 -tscale 8 -window full
//	scintinfo -in spectrum.csv -plot dynspec.png -dm 12.5 -bw 0.4
//	scintinfo -pulsar-plots out/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/Hazboun6/PsrSigSim/dsp/grid"
	"github.com/Hazboun6/PsrSigSim/dsp/signal"
	"github.com/Hazboun6/PsrSigSim/measure/scint"
	"github.com/Hazboun6/PsrSigSim/pulsar"
	"github.com/Hazboun6/PsrSigSim/render"
)

type options struct {
	in string

	nFreq, nTime     int
	freqScale        float64
	timeScale        float64
	seed             int64
	freqBin, timeBin float64
	window           string

	f0, dm, inputBW float64

	plot        string
	pulsarPlots string

	logLevel  string
	logFormat string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var o options

	fs := flag.NewFlagSet("scintinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.in, "in", "", "CSV dynamic spectrum, one row per frequency channel (default: synthetic)")
	fs.IntVar(&o.nFreq, "nf", 128, "synthetic spectrum channels")
	fs.IntVar(&o.nTime, "nt", 256, "synthetic spectrum time samples")
	fs.Float64Var(&o.freqScale, "fscale", 3, "synthetic scintillation scale along frequency, in channels")
	fs.Float64Var(&o.timeScale, "tscale", 5, "synthetic scintillation scale along time, in samples")
	fs.Int64Var(&o.seed, "seed", 1, "synthetic noise seed")
	fs.Float64Var(&o.freqBin, "freqbin", 0.1, "channel width in MHz")
	fs.Float64Var(&o.timeBin, "timebin", 1, "time resolution in s")
	fs.StringVar(&o.window, "window", "optimal", "ACF display window: optimal or full")
	fs.Float64Var(&o.f0, "f0", 1400, "center frequency in MHz, for plot axes")
	fs.Float64Var(&o.dm, "dm", 0, "dispersion measure, for the plot title")
	fs.Float64Var(&o.inputBW, "bw", 0, "input scintillation bandwidth in MHz, for the plot title")
	fs.StringVar(&o.plot, "plot", "", "write the dynamic spectrum figure to this file (png, svg, pdf)")
	fs.StringVar(&o.pulsarPlots, "pulsar-plots", "", "write profile, pulse and filter bank plots of a synthetic pulse train into this directory")
	fs.StringVar(&o.logLevel, "log-level", os.Getenv("LOG_LEVEL"), "log level: debug, info, warn, error")
	fs.StringVar(&o.logFormat, "log-format", os.Getenv("LOG_FORMAT"), "log format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: scintinfo [flags]\n\n")
		fmt.Fprintf(stderr, "Estimates scintillation bandwidth and timescale from a dynamic spectrum.\n")
		fmt.Fprintf(stderr, "Without -in, analyzes a synthetic spectrum.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  scintinfo -in spectrum.csv -freqbin 0.05 -timebin 10\n")
		fmt.Fprintf(stderr, "  scintinfo -nf 256 -nt 512 -fscale 4 -tscale 8 -window full\n")
		fmt.Fprintf(stderr, "  scintinfo -in spectrum.csv -plot dynspec.png -dm 12.5 -bw 0.4\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := newLogger(o.logLevel, o.logFormat, stderr)

	if err := analyze(o, stdout, logger); err != nil {
		logger.Error("scintinfo failed", slog.Any("error", err))
		return 1
	}
	return 0
}

func analyze(o options, stdout io.Writer, logger *slog.Logger) error {
	mode, err := scint.ParseWindowMode(o.window)
	if err != nil {
		return err
	}

	screen, err := loadScreen(o, logger)
	if err != nil {
		return err
	}
	spectrum := screen.MidSlice()

	a, err := scint.Analyze(spectrum, o.freqBin, o.timeBin, mode)
	if err != nil {
		return err
	}
	logger.Info("scintillation estimate",
		slog.Float64("bandwidth_mhz", a.Scales.Bandwidth),
		slog.Float64("timescale_s", a.Scales.Timescale),
		slog.String("window", mode.String()),
	)

	if err := printAnalysis(stdout, a); err != nil {
		return err
	}

	if o.plot != "" {
		if err := writeDynamicSpectrum(o, screen, mode); err != nil {
			return fmt.Errorf("plot %s: %w", o.plot, err)
		}
		logger.Info("wrote dynamic spectrum", slog.String("path", o.plot))
	}

	if o.pulsarPlots != "" {
		if err := writePulsarPlots(o, logger); err != nil {
			return fmt.Errorf("pulsar plots: %w", err)
		}
	}

	return nil
}

func loadScreen(o options, logger *slog.Logger) (*pulsar.Screen, error) {
	if o.in == "" {
		g := signal.NewGenerator(signal.WithSeed(o.seed))
		logger.Debug("generating synthetic spectrum",
			slog.Int("channels", o.nFreq),
			slog.Int("samples", o.nTime),
			slog.Float64("freq_scale", o.freqScale),
			slog.Float64("time_scale", o.timeScale),
		)
		return g.Screen(o.nFreq, o.nTime, 1, o.freqScale, o.timeScale)
	}

	f, err := os.Open(o.in)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	spectrum, err := readGrid(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", o.in, err)
	}
	rows, cols := spectrum.Dims()
	logger.Debug("loaded spectrum", slog.String("path", o.in), slog.Int("channels", rows), slog.Int("samples", cols))

	return screenFromSpectrum(spectrum)
}

// screenFromSpectrum wraps a frequency x time spectrum as a one-column screen.
func screenFromSpectrum(spectrum *grid.Grid) (*pulsar.Screen, error) {
	nFreq, nx := spectrum.Dims()
	planes := make([]*grid.Grid, nFreq)
	for f := range planes {
		p, err := grid.FromData(nx, 1, spectrum.Row(f))
		if err != nil {
			return nil, err
		}
		planes[f] = p
	}
	return pulsar.NewScreen(planes)
}

// signalFor describes the spectrum's frequency axis for plotting.
func signalFor(o options, nFreq int) *pulsar.Signal {
	half := float64(nFreq-1) / 2 * o.freqBin
	return &pulsar.Signal{
		Type:        pulsar.Intensity,
		TimeBinSize: o.timeBin,
		FreqBinSize: o.freqBin,
		FirstFreq:   o.f0 - half,
		LastFreq:    o.f0 + half,
		Meta: pulsar.MetaData{
			DM:           o.dm,
			DISSDecorrBW: o.inputBW,
			F0:           o.f0,
		},
	}
}

func writeDynamicSpectrum(o options, screen *pulsar.Screen, mode scint.WindowMode) error {
	nFreq, nx, _ := screen.Dims()
	sig := signalFor(o, nFreq)
	sig.Meta.ScreenNx = nx

	fig, err := render.DynamicSpectrum(screen, sig, render.DefaultStyle(), mode)
	if err != nil {
		return err
	}
	return fig.Save(o.plot)
}

const (
	profileBins = 64
	trainPulses = 4
	trainNoise  = 0.1
)

func writePulsarPlots(o options, logger *slog.Logger) error {
	if err := os.MkdirAll(o.pulsarPlots, 0o755); err != nil {
		return err
	}

	g := signal.NewGenerator(signal.WithSeed(o.seed))
	profile, err := signal.GaussianProfile(profileBins, 0.5, 0.03)
	if err != nil {
		return err
	}
	train, err := g.PulseTrain(profile, o.nFreq, trainPulses, trainNoise)
	if err != nil {
		return err
	}

	sig := signalFor(o, o.nFreq)
	sig.Data = train
	sig.Meta.Profile = profile
	sig.Meta.Period = profileBins * o.timeBin
	if err := sig.Validate(); err != nil {
		return err
	}

	style := render.DefaultStyle()

	p, err := render.Profile(sig, style, true)
	if err != nil {
		return err
	}
	if err := save(p, style, filepath.Join(o.pulsarPlots, "profile.png"), logger); err != nil {
		return err
	}

	p, err = render.Pulse(sig, style, render.PulseOptions{Pulses: trainPulses, FreqBin: o.nFreq / 2})
	if err != nil {
		return err
	}
	if err := save(p, style, filepath.Join(o.pulsarPlots, "pulse.png"), logger); err != nil {
		return err
	}

	p, err = render.FilterBank(sig, style, render.FilterBankOptions{Pulses: trainPulses})
	if err != nil {
		return err
	}
	return save(p, style, filepath.Join(o.pulsarPlots, "filterbank.png"), logger)
}

func printAnalysis(w io.Writer, a *scint.Analysis) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Peak\tHalf-max lag\t1/e lag\tBandwidth [MHz]\tTimescale [s]\tWindow [chan x samp]\n"); err != nil {
		return fmt.Errorf("write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t------------\t-------\t---------------\t-------------\t--------------------\n"); err != nil {
		return fmt.Errorf("write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "%d,%d\t%d\t%d\t%.4f\t%.4f\t%d x %d\n",
		a.Peak.Row, a.Peak.Col,
		a.FreqCrossing,
		a.TimeCrossing,
		a.Scales.Bandwidth,
		a.Scales.Timescale,
		2*a.Frame.Freq, 2*a.Frame.Time,
	); err != nil {
		return fmt.Errorf("write output row: %w", err)
	}
	return tw.Flush()
}
