package storage

import "strings"

// MemoryDB implements DB using an in-memory map. Used in tests.
type MemoryDB struct {
	data map[string][]byte
}

// NewMemory creates a new in-memory database.
func NewMemory() *MemoryDB {
	return &MemoryDB{
		data: make(map[string][]byte),
	}
}

// memoryTxn stages writes in an overlay map and applies them on commit.
type memoryTxn struct {
	db      *MemoryDB
	staged  map[string][]byte // nil value = staged delete
	discard bool
}

func (t *memoryTxn) Get(key []byte) ([]byte, error) {
	if v, ok := t.staged[string(key)]; ok {
		if v == nil {
			return nil, ErrNotFound
		}
		return v, nil
	}
	v, ok := t.db.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (t *memoryTxn) Put(key, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	t.staged[string(key)] = v
	return nil
}

func (t *memoryTxn) Delete(key []byte) error {
	t.staged[string(key)] = nil
	return nil
}

func (t *memoryTxn) Has(key []byte) (bool, error) {
	if v, ok := t.staged[string(key)]; ok {
		return v != nil, nil
	}
	_, ok := t.db.data[string(key)]
	return ok, nil
}

func (t *memoryTxn) commit() {
	for k, v := range t.staged {
		if v == nil {
			delete(t.db.data, k)
		} else {
			t.db.data[k] = v
		}
	}
}

// Update runs fn against a staged overlay; the overlay is applied only
// when fn returns nil.
func (m *MemoryDB) Update(fn func(txn Txn) error) error {
	txn := &memoryTxn{db: m, staged: make(map[string][]byte)}
	if err := fn(txn); err != nil {
		return err
	}
	txn.commit()
	return nil
}

// View runs fn against a read-only snapshot of the current data.
func (m *MemoryDB) View(fn func(txn Txn) error) error {
	txn := &memoryTxn{db: m, staged: make(map[string][]byte), discard: true}
	return fn(txn)
}

// Get retrieves a value by key.
func (m *MemoryDB) Get(key []byte) ([]byte, error) {
	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Put stores a key-value pair.
func (m *MemoryDB) Put(key, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.data[string(key)] = v
	return nil
}

// Delete removes a key.
func (m *MemoryDB) Delete(key []byte) error {
	delete(m.data, string(key))
	return nil
}

// Has checks if a key exists.
func (m *MemoryDB) Has(key []byte) (bool, error) {
	_, ok := m.data[string(key)]
	return ok, nil
}

// ForEach iterates over all keys with the given prefix.
func (m *MemoryDB) ForEach(prefix []byte, fn func(key, value []byte) error) error {
	p := string(prefix)
	for k, v := range m.data {
		if strings.HasPrefix(k, p) {
			if err := fn([]byte(k), v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes the database.
func (m *MemoryDB) Close() error {
	return nil
}
