package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harven/cityforge/internal/models"
)

func TestRunnerTicksUntilCancelled(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(5)
	placeCompleted(t, e, s, models.Descriptor{Type: models.WheatFarm}, 0, 0)

	r := NewRunner(e, s, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Loop(ctx) }()

	deadline := time.After(2 * time.Second)
	for r.Snapshot().Tick < 3 {
		select {
		case <-deadline:
			t.Fatal("Runner never reached tick 3")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRunnerSnapshotIsDetached(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(5)
	farm := placeCompleted(t, e, s, models.Descriptor{Type: models.WheatFarm}, 0, 0)
	r := NewRunner(e, s, time.Second)

	snap := r.Snapshot()
	farm.Resources.Add(models.Wheat, 10)

	if got := snap.Building(farm.ID).Resources.Get(models.Wheat); got != 0 {
		t.Errorf("Snapshot must not see later mutations, got %v", got)
	}
}

func TestRunnerDoMutatesLiveState(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(5)
	r := NewRunner(e, s, time.Second)

	err := r.Do(func(e *Engine, s *State) error {
		e.Run(s, 4)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Snapshot().Tick; got != 4 {
		t.Errorf("Expected tick 4, got %v", got)
	}
}
