// Package memory is the session-scoped record store. Every collection lives
// in process memory for the lifetime of the DB value and is discarded with it.
package memory

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate primary key")
	ErrReadOnly       = errors.New("write attempted in read-only transaction")
	ErrTxDone         = errors.New("transaction has already been committed or rolled back")
)

// Table names one collection inside the DB.
type Table string

// DB holds every collection keyed by integer primary key. Values are stored
// by value; repositories copy records in and out so nothing stored here is
// aliased by a caller.
type DB struct {
	mu     sync.RWMutex
	tables map[Table]map[int]any
}

func New() *DB {
	return &DB{tables: make(map[Table]map[int]any)}
}

// Begin opens a write transaction. It holds the DB write lock until Commit
// or Rollback, so reading the max id and inserting happen as one step.
func (db *DB) Begin() *Tx {
	db.mu.Lock()
	return &Tx{db: db, writable: true}
}

// BeginRead opens a read-only transaction holding the DB read lock.
func (db *DB) BeginRead() *Tx {
	db.mu.RLock()
	return &Tx{db: db}
}

// Transaction runs fn inside a write transaction, committing when fn returns
// nil and rolling back otherwise.
func (db *DB) Transaction(fn func(tx *Tx) error) error {
	tx := db.Begin()
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Tx is a unit of work against the DB. Writes are applied immediately and
// recorded in an undo log that Rollback replays in reverse.
type Tx struct {
	db       *DB
	writable bool
	done     bool
	undo     []func()
}

// Commit keeps all writes and releases the lock.
func (tx *Tx) Commit() error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	tx.undo = nil
	tx.unlock()
	return nil
}

// Rollback discards all writes made in the transaction. It is a no-op after
// Commit, so it is safe to defer.
func (tx *Tx) Rollback() {
	if tx.done {
		return
	}
	tx.done = true
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
	tx.unlock()
}

func (tx *Tx) unlock() {
	if tx.writable {
		tx.db.mu.Unlock()
		return
	}
	tx.db.mu.RUnlock()
}

func (tx *Tx) table(name Table) map[int]any {
	t, ok := tx.db.tables[name]
	if !ok {
		t = make(map[int]any)
		if tx.writable {
			tx.db.tables[name] = t
		}
	}
	return t
}

func (tx *Tx) checkWritable() error {
	if tx.done {
		return ErrTxDone
	}
	if !tx.writable {
		return ErrReadOnly
	}
	return nil
}

// NextID returns max(existing ids, 0) + 1 for the table.
func (tx *Tx) NextID(name Table) int {
	maxID := 0
	for id := range tx.table(name) {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func (tx *Tx) Insert(name Table, id int, value any) error {
	if err := tx.checkWritable(); err != nil {
		return err
	}
	t := tx.table(name)
	if _, exists := t[id]; exists {
		return ErrDuplicateKey
	}
	t[id] = value
	tx.undo = append(tx.undo, func() { delete(t, id) })
	return nil
}

func (tx *Tx) Get(name Table, id int) (any, bool) {
	v, ok := tx.table(name)[id]
	return v, ok
}

// Put replaces an existing record.
func (tx *Tx) Put(name Table, id int, value any) error {
	if err := tx.checkWritable(); err != nil {
		return err
	}
	t := tx.table(name)
	prev, ok := t[id]
	if !ok {
		return ErrRecordNotFound
	}
	t[id] = value
	tx.undo = append(tx.undo, func() { t[id] = prev })
	return nil
}

// Delete removes a record and reports how many rows were affected.
func (tx *Tx) Delete(name Table, id int) (int64, error) {
	if err := tx.checkWritable(); err != nil {
		return 0, err
	}
	t := tx.table(name)
	prev, ok := t[id]
	if !ok {
		return 0, nil
	}
	delete(t, id)
	tx.undo = append(tx.undo, func() { t[id] = prev })
	return 1, nil
}

// IDs returns the table's primary keys in ascending order.
func (tx *Tx) IDs(name Table) []int {
	t := tx.table(name)
	ids := make([]int, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Find returns the typed record stored under id.
func Find[T any](tx *Tx, name Table, id int) (T, bool) {
	var zero T
	v, ok := tx.Get(name, id)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Scan returns every typed record of a table ordered by primary key, keeping
// only those for which keep returns true. A nil keep returns everything.
func Scan[T any](tx *Tx, name Table, keep func(T) bool) []T {
	ids := tx.IDs(name)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		v, ok := Find[T](tx, name, id)
		if !ok {
			continue
		}
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}
