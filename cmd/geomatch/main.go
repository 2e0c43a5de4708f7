package main

import (
	"context"
	"flag"
	"fmt"
	"geo-match-service/internal/config"
	"geo-match-service/internal/domain"
	"geo-match-service/internal/platform/obs"
	"geo-match-service/internal/prompt"
	"geo-match-service/internal/services"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

type options struct {
	source      string
	target      string
	dir         string
	workers     int
	interactive bool
	verbose     bool
}

func main() {
	config.Load()

	defaultWorkers, err := config.GetInt("MATCH_WORKERS", 4)
	if err != nil {
		log.Fatal(err)
	}

	var opts options
	flag.StringVar(&opts.source, "source", "", "CSV of FIRST array points (path or s3://bucket/key)")
	flag.StringVar(&opts.target, "target", "", "CSV of SECOND array points (path or s3://bucket/key)")
	flag.StringVar(&opts.dir, "dir", "", "directory that relative CSV paths are resolved against")
	flag.IntVar(&opts.workers, "workers", defaultWorkers, "concurrent matching goroutines")
	flag.BoolVar(&opts.interactive, "interactive", false, "enter both arrays at the terminal")
	flag.BoolVar(&opts.verbose, "v", false, "log every match as it is computed")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	var source, target domain.CoordinateSet

	switch {
	case opts.interactive:
		p := prompt.New(in, out)

		var err error
		if source, err = p.ReadSet("FIRST"); err != nil {
			return fmt.Errorf("read FIRST array: %w", err)
		}
		if target, err = p.ReadSet("SECOND"); err != nil {
			return fmt.Errorf("read SECOND array: %w", err)
		}

	case opts.source != "" && opts.target != "":
		rows := &routedSource{Dir: opts.dir, NewS3: s3FromConfig}

		var err error
		if source, err = loadSet(ctx, rows, opts.source, out); err != nil {
			return err
		}
		if target, err = loadSet(ctx, rows, opts.target, out); err != nil {
			return err
		}

	default:
		return fmt.Errorf("either -interactive or both -source and -target are required")
	}

	m := services.Matcher{Workers: opts.workers}
	if opts.verbose {
		m.Observer = obs.LogObserver{}
	}

	results, err := m.Match(ctx, source, target)
	if err != nil {
		return err
	}

	writeResults(out, results)
	return nil
}

// loadSet ingests one input and reports each skipped row without failing the run.
func loadSet(ctx context.Context, src *routedSource, name string, out io.Writer) (domain.CoordinateSet, error) {
	set, issues, err := services.LoadSet(ctx, src, name)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		fmt.Fprintf(out, "skipped %s: %v\n", name, issue)
	}
	return set, nil
}

func writeResults(out io.Writer, results []domain.MatchResult) {
	fmt.Fprintln(out, "\nResults:")
	for i, r := range results {
		fmt.Fprintln(out, formatResult(i+1, r))
	}
}

func formatResult(n int, r domain.MatchResult) string {
	matched, ok := r.Matched()
	if !ok {
		return fmt.Sprintf("  - geo location #%d in FIRST array %v has no match: SECOND array is empty.", n, r.Source())
	}
	dist, _ := r.DistanceKm()
	return fmt.Sprintf("  - geo location #%d in FIRST array %v is closest to %v with a distance of %.2f km.",
		n, r.Source(), matched, dist)
}
