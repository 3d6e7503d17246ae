package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Garsondee/skill-constellation/internal/constellation"
	"github.com/Garsondee/skill-constellation/internal/progress"
)

type reportOptions struct {
	progress map[string]float64
	source   progress.Source
	frames   int
	seed     int64
	width    int
	height   int
}

func main() {
	var mapping string
	var api string
	var user string
	var opts reportOptions

	flag.StringVar(&mapping, "progress", "", `skill mapping, e.g. "Go=70,SQL=30" (default: demo skills)`)
	flag.StringVar(&api, "api", "", "fetch progress from this API base URL instead")
	flag.StringVar(&user, "user", "user123", "user id for -api")
	flag.IntVar(&opts.frames, "frames", 600, "animation frames to step")
	flag.Int64Var(&opts.seed, "seed", 42, "placement RNG seed")
	flag.IntVar(&opts.width, "width", 1000, "canvas width")
	flag.IntVar(&opts.height, "height", 800, "canvas height")
	flag.Parse()

	switch {
	case api != "":
		client := progress.NewClient(progress.NewSession(api, user), 5*time.Second)
		p, err := client.Progress(context.Background())
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		opts.progress, opts.source = p, progress.SourceAPI
	case mapping != "":
		p, err := parseProgress(mapping)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		opts.progress, opts.source = p, progress.SourceStatic
	default:
		opts.progress, opts.source = progress.DemoProgress(), progress.SourceDemo
	}

	if err := runReport(os.Stdout, opts); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

// parseProgress reads "Skill=pct" pairs separated by commas.
func parseProgress(s string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		i := strings.LastIndex(pair, "=")
		if i <= 0 {
			return nil, fmt.Errorf("bad pair %q: want Skill=pct", pair)
		}
		skill := strings.TrimSpace(pair[:i])
		v, err := strconv.ParseFloat(strings.TrimSpace(pair[i+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad progress for %q: %w", skill, err)
		}
		out[skill] = v
	}
	if len(out) == 0 {
		return nil, errors.New("no skills given")
	}
	return out, nil
}

func runReport(w io.Writer, opts reportOptions) error {
	if opts.frames < 0 {
		return errors.New("-frames must be >= 0")
	}
	if float64(opts.width) < constellation.MinCanvasSize || float64(opts.height) < constellation.MinCanvasSize {
		return fmt.Errorf("-width and -height must be >= %v", constellation.MinCanvasSize)
	}

	f := constellation.New(opts.width, opts.height,
		constellation.WithRand(rand.New(rand.NewSource(opts.seed)))) // #nosec G404 -- cosmetic only
	res := f.Reconcile(opts.progress)
	initial := f.Scene()
	for i := 0; i < opts.frames; i++ {
		f.Step()
	}
	final := f.Scene()

	fmt.Fprintf(w, "=== Constellation Report ===\n")
	fmt.Fprintf(w, "source=%s canvas=%dx%d seed=%d frames=%d\n\n", opts.source, opts.width, opts.height, opts.seed, opts.frames)

	stars := f.Stars()
	sort.Slice(stars, func(i, j int) bool { return stars[i].Skill < stars[j].Skill })
	fmt.Fprintf(w, "%-20s %8s %6s %8s %14s\n", "skill", "progress", "size", "color", "position")
	outOfBounds := 0
	for _, s := range stars {
		c := s.Color()
		fmt.Fprintf(w, "%-20s %8s %6.2f  #%02x%02x%02x %6.1f,%6.1f\n",
			s.Skill, constellation.FormatPercent(s.Progress), s.Size(), c.R, c.G, c.B, s.X, s.Y)
		if !f.InBounds(s.X, s.Y) {
			outOfBounds++
		}
	}

	st := progress.Summarize(f.Progress())
	fmt.Fprintf(w, "\nstars=%d average=%s clamped=%d\n", f.Len(), constellation.FormatPercent(st.Average), res.Clamped)
	fmt.Fprintf(w, "connections: initial=%d final=%d\n", len(initial.Connections), len(final.Connections))
	fmt.Fprintf(w, "strongest: %s\n", formatScores(st.Strongest))
	fmt.Fprintf(w, "weakest:   %s\n", formatScores(st.Weakest))
	if outOfBounds > 0 {
		fmt.Fprintf(w, "bounds: FAIL (%d stars outside margin)\n", outOfBounds)
		return fmt.Errorf("%d stars left the canvas", outOfBounds)
	}
	fmt.Fprintf(w, "bounds: ok\n")
	return nil
}

func formatScores(scores []progress.SkillScore) string {
	if len(scores) == 0 {
		return "-"
	}
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = s.Skill + " " + constellation.FormatPercent(s.Progress)
	}
	return strings.Join(parts, ", ")
}
