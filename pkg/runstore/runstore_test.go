package runstore

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aviarylab/chirp/pkg/cluster"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	b, err := NewBadger(BadgerOptions{InMemory: true})
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	return map[string]Store{
		"memory": NewMemory(),
		"badger": b,
	}
}

func sampleRun(id string, at time.Time) *Run {
	return &Run{
		ID:        id,
		CreatedAt: at,
		Source:    "features.json",
		Snippets:  4,
		Result: &cluster.Result{
			ClusterLabels:  []int{0, 0, 1, -1},
			Embeddings:     [][]float64{{0.1, 0.2}, {0.3, 0.4}, {5, 6}, {-1, -2}},
			ClusterCenters: [][]float64{{0.5, 0.5}, {5, 6}},
			ValidIndices:   []int{0, 1, 2, 3},
			TotalClusters:  2,
			NoisePoints:    1,
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			ctx := context.Background()

			want := sampleRun(NewID(), time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
			if err := store.Put(ctx, want); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, err := store.Get(ctx, want.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.ID != want.ID || got.Source != want.Source || got.Snippets != want.Snippets {
				t.Errorf("run metadata mismatch: got %+v, want %+v", got, want)
			}
			if !got.CreatedAt.Equal(want.CreatedAt) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
			}
			if !reflect.DeepEqual(got.Result, want.Result) {
				t.Errorf("Result mismatch:\n got %+v\nwant %+v", got.Result, want.Result)
			}
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			if _, err := store.Get(context.Background(), "no-such-run"); !errors.Is(err, ErrNotFound) {
				t.Errorf("got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			ctx := context.Background()

			base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
			old := sampleRun("run-old", base)
			mid := sampleRun("run-mid", base.Add(time.Hour))
			newest := sampleRun("run-new", base.Add(2*time.Hour))
			for _, r := range []*Run{mid, old, newest} {
				if err := store.Put(ctx, r); err != nil {
					t.Fatalf("Put %s: %v", r.ID, err)
				}
			}

			runs, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			var ids []string
			for _, r := range runs {
				ids = append(ids, r.ID)
			}
			if want := []string{"run-new", "run-mid", "run-old"}; !reflect.DeepEqual(ids, want) {
				t.Errorf("List order = %v, want %v", ids, want)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			ctx := context.Background()

			run := sampleRun("run-del", time.Now().UTC())
			if err := store.Put(ctx, run); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := store.Delete(ctx, run.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := store.Get(ctx, run.ID); !errors.Is(err, ErrNotFound) {
				t.Errorf("after delete: got %v, want ErrNotFound", err)
			}

			// Deleting a missing ID is not an error.
			if err := store.Delete(ctx, "never-existed"); err != nil {
				t.Errorf("Delete missing: %v", err)
			}
		})
	}
}

func TestStorePutOverwrites(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			ctx := context.Background()

			run := sampleRun("run-ow", time.Now().UTC())
			if err := store.Put(ctx, run); err != nil {
				t.Fatalf("Put: %v", err)
			}
			run.Snippets = 99
			if err := store.Put(ctx, run); err != nil {
				t.Fatalf("Put again: %v", err)
			}

			got, err := store.Get(ctx, run.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Snippets != 99 {
				t.Errorf("Snippets = %d, want 99", got.Snippets)
			}
		})
	}
}

func TestBadgerRequiresDir(t *testing.T) {
	if _, err := NewBadger(BadgerOptions{}); err == nil {
		t.Error("on-disk mode without Dir accepted")
	}
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewBadger(BadgerOptions{Dir: dir})
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	run := sampleRun("run-persist", time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC))
	if err := store.Put(ctx, run); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err = NewBadger(BadgerOptions{Dir: dir})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	got, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if !reflect.DeepEqual(got.Result, run.Result) {
		t.Errorf("Result mismatch after reopen:\n got %+v\nwant %+v", got.Result, run.Result)
	}
}
