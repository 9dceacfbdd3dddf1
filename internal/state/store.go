// Package state holds the UI state shared between the header search box and
// the coin table dialog. A Store is created by the session controller and
// injected into both; each field has exactly one writer. Clearing the search
// when the dialog closes is the search writer's job, done in response to the
// dialog change.
package state

import (
	"errors"
	"sync"
)

var ErrAlreadyClaimed = errors.New("state: writer already claimed")

// Field identifies which part of the store a Change touched.
type Field string

const (
	FieldSearch     Field = "search"
	FieldDialogOpen Field = "dialog_open"
)

// Snapshot is a consistent copy of the store.
type Snapshot struct {
	Search     string `json:"search"`
	DialogOpen bool   `json:"dialog_open"`
}

// Change is delivered to subscribers after every write.
type Change struct {
	Fields   []Field
	Snapshot Snapshot
}

const subscriberBuffer = 16

type Store struct {
	mu            sync.RWMutex
	snap          Snapshot
	searchClaimed bool
	dialogClaimed bool
	subs          map[int]chan Change
	nextSub       int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]chan Change)}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe returns a channel of changes and a function that closes it.
// A subscriber that falls behind by more than the buffer misses changes;
// the next one it receives carries the full snapshot.
func (s *Store) Subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Change, subscriberBuffer)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// publish must be called with mu held.
func (s *Store) publish(fields ...Field) {
	change := Change{Fields: fields, Snapshot: s.snap}
	for _, ch := range s.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

// ClaimSearch hands out the only writer of the search text.
func (s *Store) ClaimSearch() (*SearchWriter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchClaimed {
		return nil, ErrAlreadyClaimed
	}
	s.searchClaimed = true
	return &SearchWriter{store: s}, nil
}

// ClaimDialog hands out the only writer of the dialog flag.
func (s *Store) ClaimDialog() (*DialogWriter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialogClaimed {
		return nil, ErrAlreadyClaimed
	}
	s.dialogClaimed = true
	return &DialogWriter{store: s}, nil
}

type SearchWriter struct {
	store *Store
}

func (w *SearchWriter) Set(text string) {
	s := w.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Search == text {
		return
	}
	s.snap.Search = text
	s.publish(FieldSearch)
}

type DialogWriter struct {
	store *Store
}

func (w *DialogWriter) Open() {
	s := w.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.DialogOpen {
		return
	}
	s.snap.DialogOpen = true
	s.publish(FieldDialogOpen)
}

func (w *DialogWriter) Close() {
	s := w.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snap.DialogOpen {
		return
	}
	s.snap.DialogOpen = false
	s.publish(FieldDialogOpen)
}
