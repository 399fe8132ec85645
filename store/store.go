package store

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Zitronenjoghurt/simple-turing-machine/machine"
	"github.com/cockroachdb/pebble"
	"github.com/reusee/e5"
)

var (
	wrap = e5.Wrap.With(e5.WrapStacktrace)

	ErrNotFound = errors.New("not found")
	// ErrEmptyName is returned for programs and tapes stored without a name.
	ErrEmptyName = errors.New("empty name")
)

var writeOptions = pebble.Sync

const (
	programPrefix = "program/"
	tapePrefix    = "tape/"
)

// Store persists named programs and tapes in a pebble database.
type Store struct {
	db *pebble.DB
}

// Open opens or creates the database in dir. A nil opts uses pebble defaults.
func Open(dir string, opts *pebble.Options) (*Store, error) {
	if dir == "" {
		panic("store: missing directory")
	}
	if opts == nil || opts.FS == nil {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, wrap(err)
		}
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, wrap(err)
	}
	return &Store{
		db: db,
	}, nil
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return wrap(err)
	}
	return nil
}

type Entry struct {
	Name        string
	Description string
	Program     machine.Program
	Saved       time.Time
}

func (s *Store) PutProgram(entry Entry) error {
	if entry.Saved.IsZero() {
		entry.Saved = time.Now()
	}
	return s.put(programPrefix, entry.Name, entry)
}

func (s *Store) GetProgram(name string) (entry Entry, err error) {
	err = s.get(programPrefix, name, &entry)
	return
}

func (s *Store) DeleteProgram(name string) error {
	return s.delete(programPrefix, name)
}

// Programs lists stored program names in key order.
func (s *Store) Programs() ([]string, error) {
	return s.list(programPrefix)
}

func (s *Store) PutTape(name string, tape *machine.Unbounded) error {
	return s.put(tapePrefix, name, tape)
}

func (s *Store) GetTape(name string) (*machine.Unbounded, error) {
	tape := new(machine.Unbounded)
	if err := s.get(tapePrefix, name, tape); err != nil {
		return nil, err
	}
	return tape, nil
}

func (s *Store) DeleteTape(name string) error {
	return s.delete(tapePrefix, name)
}

func (s *Store) Tapes() ([]string, error) {
	return s.list(tapePrefix)
}

func (s *Store) put(prefix, name string, value any) error {
	if name == "" {
		return wrap(ErrEmptyName)
	}
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(value); err != nil {
		return wrap(err)
	}
	if err := s.db.Set([]byte(prefix+name), buf.Bytes(), writeOptions); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *Store) get(prefix, name string, target any) error {
	data, closer, err := s.db.Get([]byte(prefix + name))
	if errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("%w: %s%s", ErrNotFound, prefix, name)
	}
	if err != nil {
		return wrap(err)
	}
	defer closer.Close()
	// data is only valid until closer is closed
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(target); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *Store) delete(prefix, name string) error {
	key := []byte(prefix + name)
	_, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("%w: %s%s", ErrNotFound, prefix, name)
	}
	if err != nil {
		return wrap(err)
	}
	closer.Close()
	if err := s.db.Delete(key, writeOptions); err != nil {
		return wrap(err)
	}
	return nil
}

func (s *Store) list(prefix string) (names []string, err error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefix),
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return nil, wrap(err)
	}
	defer func() {
		if e := iter.Close(); e != nil && err == nil {
			err = wrap(e)
		}
	}()
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, strings.TrimPrefix(string(iter.Key()), prefix))
	}
	return names, nil
}

// upperBound is the smallest key greater than every key with prefix.
func upperBound(prefix string) []byte {
	end := []byte(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
