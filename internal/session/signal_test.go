package session

import (
	"context"
	"testing"
)

func TestSignalCoalescesBursts(t *testing.T) {
	signal := NewSignal()
	updates, cancel := signal.Subscribe()
	defer cancel()

	for i := 0; i < 5; i++ {
		signal.Publish(ReasonManual)
	}
	signal.Publish(ReasonLifecycle)

	refresh := <-updates
	if refresh.Generation != 6 || refresh.Reason != ReasonLifecycle {
		t.Fatalf("expected newest refresh, got %#v", refresh)
	}
	select {
	case extra := <-updates:
		t.Fatalf("expected one pending refresh, got another %#v", extra)
	default:
	}
}

func TestSignalBroadcastsToEverySubscriber(t *testing.T) {
	signal := NewSignal()
	first, cancelFirst := signal.Subscribe()
	second, cancelSecond := signal.Subscribe()
	defer cancelSecond()

	generation := signal.Publish(ReasonTargetGame)
	if got := <-first; got.Generation != generation {
		t.Fatalf("first subscriber got %#v", got)
	}
	if got := <-second; got.Generation != generation {
		t.Fatalf("second subscriber got %#v", got)
	}

	cancelFirst()
	cancelFirst()
	if _, ok := <-first; ok {
		t.Fatalf("expected channel to be closed after cancel")
	}
	signal.Publish(ReasonManual)
	if got := <-second; got.Generation != generation+1 {
		t.Fatalf("expected generation %d, got %d", generation+1, got.Generation)
	}
	if signal.Generation() != generation+1 {
		t.Fatalf("unexpected generation %d", signal.Generation())
	}
}

func TestSequencerDiscardsOlderResults(t *testing.T) {
	var seq sequencer
	ctx := context.Background()
	firstCtx, first := seq.next(ctx)
	_, second := seq.next(ctx)

	if firstCtx.Err() == nil {
		t.Fatalf("expected issuing a new token to cancel the previous fetch")
	}
	applied := 0
	if !seq.apply(second, func() { applied = 2 }) {
		t.Fatalf("expected newest token to apply")
	}
	if seq.apply(first, func() { applied = 1 }) {
		t.Fatalf("expected older token to be discarded")
	}
	if applied != 2 {
		t.Fatalf("expected second result to stick, got %d", applied)
	}
	if !seq.follow(second, func() {}) {
		t.Fatalf("expected chained work on the applied token to run")
	}
	if seq.follow(first, func() {}) {
		t.Fatalf("expected chained work on an old token to be dropped")
	}
	seq.release(second)
}
