package trace

import (
	"testing"

	"github.com/san-kum/sway/internal/sim"
	"github.com/san-kum/sway/internal/vec"
	"github.com/san-kum/sway/internal/world"
)

func recordShortRun(t *testing.T) (*Recording, int) {
	t.Helper()

	s := sim.New(world.NewPlayground(vec.New(300, 300)))
	s.World().AddNode(world.NewNode(vec.New(0, 0)))
	s.World().AddNode(world.NewNode(vec.New(50, 0)))
	s.Play()

	rec := &Recording{}
	for i := 0; i < 5; i++ {
		if err := s.Step(0.016); err != nil {
			t.Fatal(err)
		}
		rec.Sample(s)
	}
	return rec, s.World().NodeCount()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	rec, nodes := recordShortRun(t)

	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save("snake", 0.016, 30, nodes, rec)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Scene != "snake" || meta.Nodes != nodes || meta.Frames != 5 {
		t.Errorf("metadata mismatch: %+v", meta)
	}

	frames, err := store.LoadFrames(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != len(rec.Frames) {
		t.Fatalf("frame count = %d, want %d", len(frames), len(rec.Frames))
	}
	for i := range frames {
		if len(frames[i].Positions) != nodes*2 {
			t.Fatalf("frame %d has %d values, want %d", i, len(frames[i].Positions), nodes*2)
		}
	}
}

func TestListFindsSavedRuns(t *testing.T) {
	rec, nodes := recordShortRun(t)

	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save("crawler", 0.016, 10, nodes, rec); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Scene != "crawler" {
		t.Errorf("runs = %+v, want single crawler run", runs)
	}
}

func TestListEmptyBaseDir(t *testing.T) {
	store := New("/nonexistent/trace/dir")
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestSaveEmptyRecording(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save("snake", 0.016, 0, 0, &Recording{})
	if err != nil {
		t.Fatal(err)
	}

	frames, err := store.LoadFrames(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 0 {
		t.Errorf("expected no frames, got %d", len(frames))
	}
}
