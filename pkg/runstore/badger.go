package runstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// runKeyPrefix namespaces run entries inside the database.
const runKeyPrefix = "run:"

// Badger is a Store implementation backed by BadgerDB v4.
type Badger struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files. Required unless
	// InMemory is set.
	Dir string

	// InMemory runs BadgerDB without disk persistence. Useful for
	// exercising the real engine in tests.
	InMemory bool

	// Logger sets the badger logger; nil silences badger output.
	Logger badger.Logger
}

// NewBadger opens a BadgerDB-backed run store.
func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("runstore: BadgerOptions.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	dbOpts = dbOpts.WithLogger(opts.Logger)
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("runstore: open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

func runKey(id string) []byte {
	return []byte(runKeyPrefix + id)
}

func (b *Badger) Put(_ context.Context, run *Run) error {
	if run.ID == "" {
		return errors.New("runstore: run ID is empty")
	}
	val, err := msgpack.Marshal(run)
	if err != nil {
		return fmt.Errorf("runstore: encode run %s: %w", run.ID, err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(run.ID), val)
	})
}

func (b *Badger) Get(_ context.Context, id string) (*Run, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(runKey(id))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeRun(val)
}

func (b *Badger) List(_ context.Context) ([]*Run, error) {
	var runs []*Run
	err := b.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = []byte(runKeyPrefix)
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(iterOpts.Prefix); it.ValidForPrefix(iterOpts.Prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			run, err := decodeRun(val)
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortRuns(runs)
	return runs, nil
}

func (b *Badger) Delete(_ context.Context, id string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(runKey(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (b *Badger) Close() error {
	return b.db.Close()
}

func decodeRun(val []byte) (*Run, error) {
	var run Run
	if err := msgpack.Unmarshal(val, &run); err != nil {
		return nil, fmt.Errorf("runstore: decode run: %w", err)
	}
	return &run, nil
}

// sortRuns orders newest first, breaking timestamp ties by ID for a
// stable listing.
func sortRuns(runs []*Run) {
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID < runs[j].ID
	})
}
