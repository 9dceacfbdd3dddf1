package state

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestClaimIsSingleWriter(t *testing.T) {
	t.Parallel()

	s := NewStore()
	if _, err := s.ClaimSearch(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.ClaimSearch(); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}
	if _, err := s.ClaimDialog(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.ClaimDialog(); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}
}

func TestWritersUpdateSnapshotAndNotify(t *testing.T) {
	t.Parallel()

	s := NewStore()
	changes, cancel := s.Subscribe()
	defer cancel()

	search, _ := s.ClaimSearch()
	dialog, _ := s.ClaimDialog()

	search.Set("bit")
	dialog.Open()

	first := <-changes
	if !reflect.DeepEqual(first.Fields, []Field{FieldSearch}) || first.Snapshot.Search != "bit" {
		t.Fatalf("unexpected first change: %+v", first)
	}
	second := <-changes
	if !reflect.DeepEqual(second.Fields, []Field{FieldDialogOpen}) || !second.Snapshot.DialogOpen {
		t.Fatalf("unexpected second change: %+v", second)
	}
	if got := s.Snapshot(); got != (Snapshot{Search: "bit", DialogOpen: true}) {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestDialogCloseTouchesOnlyDialogFlag(t *testing.T) {
	t.Parallel()

	s := NewStore()
	search, _ := s.ClaimSearch()
	dialog, _ := s.ClaimDialog()
	search.Set("eth")
	dialog.Open()

	changes, cancel := s.Subscribe()
	defer cancel()
	dialog.Close()

	change := <-changes
	if !reflect.DeepEqual(change.Fields, []Field{FieldDialogOpen}) {
		t.Fatalf("unexpected fields: %v", change.Fields)
	}
	if change.Snapshot != (Snapshot{Search: "eth"}) {
		t.Fatalf("expected search left to its writer, got %+v", change.Snapshot)
	}

	search.Set("")
	change = <-changes
	if !reflect.DeepEqual(change.Fields, []Field{FieldSearch}) || change.Snapshot != (Snapshot{}) {
		t.Fatalf("unexpected clear change: %+v", change)
	}
}

func TestNoOpWritesDoNotNotify(t *testing.T) {
	t.Parallel()

	s := NewStore()
	changes, cancel := s.Subscribe()
	defer cancel()
	search, _ := s.ClaimSearch()
	dialog, _ := s.ClaimDialog()

	search.Set("")
	dialog.Close()

	select {
	case c := <-changes:
		t.Fatalf("expected no change, got %+v", c)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	s := NewStore()
	changes, cancel := s.Subscribe()
	cancel()
	cancel()

	if _, ok := <-changes; ok {
		t.Fatal("expected closed channel")
	}
	search, _ := s.ClaimSearch()
	search.Set("still works")
}

func TestConcurrentReadersSeeConsistentSnapshots(t *testing.T) {
	t.Parallel()

	s := NewStore()
	search, _ := s.ClaimSearch()
	dialog, _ := s.ClaimDialog()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			search.Set("btc")
			dialog.Open()
			dialog.Close()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			snap := s.Snapshot()
			if !snap.DialogOpen && snap.Search != "" && snap.Search != "btc" {
				t.Errorf("unexpected snapshot: %+v", snap)
			}
		}
	}()
	wg.Wait()
}
