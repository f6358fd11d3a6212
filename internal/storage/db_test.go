package storage

import (
	"bytes"
	"errors"
	"testing"
)

func openDBs(t *testing.T) map[string]DB {
	t.Helper()

	badgerDB, err := NewBadger(t.TempDir())
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	t.Cleanup(func() { badgerDB.Close() })

	return map[string]DB{
		"badger": badgerDB,
		"memory": NewMemory(),
	}
}

func TestPutGet(t *testing.T) {
	for name, db := range openDBs(t) {
		t.Run(name, func(t *testing.T) {
			key := []byte("key1")
			value := []byte("value1")

			if err := db.Put(key, value); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, err := db.Get(key)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if !bytes.Equal(got, value) {
				t.Errorf("Get = %q, want %q", got, value)
			}
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	for name, db := range openDBs(t) {
		t.Run(name, func(t *testing.T) {
			_, err := db.Get([]byte("missing"))
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Get missing key: err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	for name, db := range openDBs(t) {
		t.Run(name, func(t *testing.T) {
			key := []byte("key")
			if err := db.Put(key, []byte("v")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := db.Delete(key); err != nil {
				t.Fatalf("Delete: %v", err)
			}

			has, err := db.Has(key)
			if err != nil {
				t.Fatalf("Has: %v", err)
			}
			if has {
				t.Error("key still present after Delete")
			}
		})
	}
}

func TestHas(t *testing.T) {
	for name, db := range openDBs(t) {
		t.Run(name, func(t *testing.T) {
			has, err := db.Has([]byte("nope"))
			if err != nil {
				t.Fatalf("Has: %v", err)
			}
			if has {
				t.Error("Has reported missing key as present")
			}

			if err := db.Put([]byte("yes"), []byte("v")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			has, err = db.Has([]byte("yes"))
			if err != nil {
				t.Fatalf("Has: %v", err)
			}
			if !has {
				t.Error("Has reported present key as missing")
			}
		})
	}
}

func TestForEach(t *testing.T) {
	for name, db := range openDBs(t) {
		t.Run(name, func(t *testing.T) {
			pairs := map[string]string{
				"a/1": "one",
				"a/2": "two",
				"b/1": "other",
			}
			for k, v := range pairs {
				if err := db.Put([]byte(k), []byte(v)); err != nil {
					t.Fatalf("Put: %v", err)
				}
			}

			seen := make(map[string]string)
			err := db.ForEach([]byte("a/"), func(key, value []byte) error {
				seen[string(key)] = string(value)
				return nil
			})
			if err != nil {
				t.Fatalf("ForEach: %v", err)
			}

			if len(seen) != 2 {
				t.Fatalf("ForEach visited %d keys, want 2", len(seen))
			}
			if seen["a/1"] != "one" || seen["a/2"] != "two" {
				t.Errorf("ForEach results = %v", seen)
			}
		})
	}
}

func TestUpdate_Commit(t *testing.T) {
	for name, db := range openDBs(t) {
		t.Run(name, func(t *testing.T) {
			err := db.Update(func(txn Txn) error {
				if err := txn.Put([]byte("x"), []byte("1")); err != nil {
					return err
				}
				return txn.Put([]byte("y"), []byte("2"))
			})
			if err != nil {
				t.Fatalf("Update: %v", err)
			}

			for _, key := range []string{"x", "y"} {
				if _, err := db.Get([]byte(key)); err != nil {
					t.Errorf("Get %q after commit: %v", key, err)
				}
			}
		})
	}
}

func TestUpdate_Rollback(t *testing.T) {
	boom := errors.New("boom")
	for name, db := range openDBs(t) {
		t.Run(name, func(t *testing.T) {
			if err := db.Put([]byte("kept"), []byte("old")); err != nil {
				t.Fatalf("Put: %v", err)
			}

			err := db.Update(func(txn Txn) error {
				if err := txn.Put([]byte("kept"), []byte("new")); err != nil {
					return err
				}
				if err := txn.Put([]byte("fresh"), []byte("v")); err != nil {
					return err
				}
				return boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("Update err = %v, want boom", err)
			}

			got, err := db.Get([]byte("kept"))
			if err != nil {
				t.Fatalf("Get kept: %v", err)
			}
			if !bytes.Equal(got, []byte("old")) {
				t.Errorf("rolled-back value = %q, want %q", got, "old")
			}

			if has, _ := db.Has([]byte("fresh")); has {
				t.Error("rolled-back write is visible")
			}
		})
	}
}

func TestUpdate_TxnReadsOwnWrites(t *testing.T) {
	for name, db := range openDBs(t) {
		t.Run(name, func(t *testing.T) {
			err := db.Update(func(txn Txn) error {
				if err := txn.Put([]byte("k"), []byte("v")); err != nil {
					return err
				}
				got, err := txn.Get([]byte("k"))
				if err != nil {
					return err
				}
				if !bytes.Equal(got, []byte("v")) {
					t.Errorf("txn Get = %q, want %q", got, "v")
				}

				has, err := txn.Has([]byte("k"))
				if err != nil {
					return err
				}
				if !has {
					t.Error("txn Has missed staged write")
				}

				if err := txn.Delete([]byte("k")); err != nil {
					return err
				}
				if _, err := txn.Get([]byte("k")); !errors.Is(err, ErrNotFound) {
					t.Errorf("txn Get after delete: err = %v, want ErrNotFound", err)
				}
				return nil
			})
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
		})
	}
}

func TestBadger_Persistence(t *testing.T) {
	dir := t.TempDir()

	db, err := NewBadger(dir)
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	if err := db.Put([]byte("persist"), []byte("yes")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db2, err := NewBadger(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	got, err := db2.Get([]byte("persist"))
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if !bytes.Equal(got, []byte("yes")) {
		t.Errorf("Get = %q, want %q", got, "yes")
	}
}
