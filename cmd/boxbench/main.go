// Command boxbench compares naive and spatial-hash broad phases on random scenes
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/boxphys/engine"
	"github.com/lixenwraith/boxphys/physics"
	"github.com/lixenwraith/boxphys/scene"
)

var (
	sizesFlag = flag.String("n", "100,500,2000", "Comma-separated body counts")
	cellsFlag = flag.String("cells", "0,16,64", "Comma-separated cell sizes, 0 derives from the batch")
	repsFlag  = flag.Int("reps", 20, "Detect passes timed per mode")
	seedFlag  = flag.Int64("seed", 1, "Base random seed")
	worldFlag = flag.Float64("world", 2000, "Square domain side")
	jobsFlag  = flag.Int("j", runtime.NumCPU(), "Parallel trials")
)

// ErrMismatch is returned when the accelerated pass disagrees with the naive one
var ErrMismatch = errors.New("broad-phase result mismatch")

type trial struct {
	N        int
	CellSize float64
	Reps     int
	Seed     int64
	World    float64
}

type trialResult struct {
	trial
	Collisions    int
	NaiveCand     int
	SpatialCand   int
	EffectiveCell float64
	Naive         time.Duration // mean per pass
	Spatial       time.Duration
}

func main() {
	flag.Parse()

	sizes, err := parseList(*sizesFlag, strconv.Atoi)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -n: %v\n", err)
		os.Exit(2)
	}
	cells, err := parseList(*cellsFlag, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -cells: %v\n", err)
		os.Exit(2)
	}

	var trials []trial
	for i, n := range sizes {
		for _, cs := range cells {
			trials = append(trials, trial{N: n, CellSize: cs, Reps: max(1, *repsFlag), Seed: *seedFlag + int64(i), World: *worldFlag})
		}
	}

	results, err := runTrials(context.Background(), trials, *jobsFlag)
	out := termenv.NewOutput(os.Stdout)
	report(out, results)
	if err != nil {
		fmt.Fprintln(os.Stderr, out.String(err.Error()).Foreground(out.Color("1")).Bold())
		os.Exit(1)
	}
}

// runTrials executes trials concurrently, results keep input order
func runTrials(ctx context.Context, trials []trial, jobs int) ([]trialResult, error) {
	results := make([]trialResult, len(trials))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, jobs))

	for i, t := range trials {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := runTrial(t)
			results[i] = r
			return err
		})
	}
	return results, g.Wait()
}

// runTrial times both modes on one random scene and checks they agree
func runTrial(t trial) (trialResult, error) {
	boxes := scene.Boxes(scene.Random(t.N, physics.Box(0, 0, t.World, t.World), t.Seed))
	res := trialResult{trial: t}

	naive := engine.NewDetector()
	var want []physics.CollisionResult
	start := time.Now()
	for range t.Reps {
		want = naive.Detect(boxes, nil)
	}
	res.Naive = time.Since(start) / time.Duration(t.Reps)
	want = slices.Clone(want)
	res.NaiveCand = naive.Stats().Candidates
	res.Collisions = len(want)

	spatial := engine.NewDetector()
	opts := &engine.DetectOptions{SpatialHash: &engine.SpatialHashOptions{EnableOptimization: true, CellSize: t.CellSize}}
	var got []physics.CollisionResult
	start = time.Now()
	for range t.Reps {
		got = spatial.Detect(boxes, opts)
	}
	res.Spatial = time.Since(start) / time.Duration(t.Reps)
	res.SpatialCand = spatial.Stats().Candidates
	res.EffectiveCell = spatial.Stats().CellSize

	if !slices.Equal(want, got) {
		return res, fmt.Errorf("%w: n=%d cell=%v naive=%d spatial=%d", ErrMismatch, t.N, t.CellSize, len(want), len(got))
	}
	return res, nil
}

func report(out *termenv.Output, results []trialResult) {
	header := fmt.Sprintf("%6s %8s %8s %10s %10s %12s %12s %8s", "n", "cell", "eff", "contacts", "cand", "naive", "spatial", "speedup")
	fmt.Fprintln(out, out.String(header).Bold())

	for _, r := range results {
		if r.Reps == 0 {
			// Cancelled before it ran
			continue
		}
		speedup := float64(r.Naive) / float64(max(r.Spatial, 1))
		color := "2"
		if speedup < 1 {
			color = "3"
		}
		line := fmt.Sprintf("%6d %8.1f %8.1f %10d %10d %12s %12s",
			r.N, r.CellSize, r.EffectiveCell, r.Collisions, r.SpatialCand, r.Naive, r.Spatial)
		fmt.Fprintln(out, line, out.String(fmt.Sprintf("%7.1fx", speedup)).Foreground(out.Color(color)))
	}
}

func parseList[T any](s string, parse func(string) (T, error)) ([]T, error) {
	var out []T
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := parse(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("empty list")
	}
	return out, nil
}
