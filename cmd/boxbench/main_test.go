package main

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestRunTrialsAgree(t *testing.T) {
	trials := []trial{
		{N: 50, CellSize: 0, Reps: 1, Seed: 3, World: 300},
		{N: 200, CellSize: 8, Reps: 2, Seed: 4, World: 500},
		{N: 200, CellSize: -1, Reps: 1, Seed: 5, World: 500},
	}

	results, err := runTrials(context.Background(), trials, 2)
	if err != nil {
		t.Fatalf("runTrials failed: %v", err)
	}

	for i, r := range results {
		if r.N != trials[i].N {
			t.Errorf("Expected results in input order, got n=%d at %d", r.N, i)
		}
		if r.NaiveCand != r.N*(r.N-1)/2 {
			t.Errorf("Expected naive to test every pair, got %d", r.NaiveCand)
		}
		if r.SpatialCand > r.NaiveCand {
			t.Errorf("Spatial candidates %d exceed naive %d", r.SpatialCand, r.NaiveCand)
		}
		if r.EffectiveCell <= 0 {
			t.Errorf("Expected positive effective cell size, got %v", r.EffectiveCell)
		}
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))

	report(out, []trialResult{{trial: trial{N: 10, Reps: 1}, Collisions: 2, Naive: 100, Spatial: 50}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header and one row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "2.0x") {
		t.Errorf("Expected speedup 2.0x in %q", lines[1])
	}
}

func TestParseList(t *testing.T) {
	got, err := parseList(" 1, 2,,3 ", strconv.Atoi)
	if err != nil || len(got) != 3 || got[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v (%v)", got, err)
	}
	if _, err := parseList(",", strconv.Atoi); err == nil {
		t.Error("Expected error for empty list")
	}
	if _, err := parseList("x", strconv.Atoi); err == nil {
		t.Error("Expected error for non-numeric entry")
	}
}
