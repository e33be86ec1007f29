package conversation

import (
	"sync"
	"time"

	"github.com/imobiliariaxyz/bot-corretor/internal/catalog"
)

// Stage is the dialogue position of a session in the multi-turn flow.
type Stage string

const (
	StageMain            Stage = "main"
	StageBuying          Stage = "buying"
	StageSelling         Stage = "selling"
	StageRenting         Stage = "renting"
	StageScheduling      Stage = "schedule"
	StageContact         Stage = "contact"
	StageViewingProperty Stage = "viewing_property"
)

// SearchFilters accumulates slot-filling criteria across turns.
type SearchFilters struct {
	Transaction catalog.Transaction
	Type        catalog.PropertyType
	MinPrice    int
	MaxPrice    int
	Bedrooms    int
	City        string
}

// Merge overlays non-zero fields of other onto f. Previously set fields
// survive unless the new turn supplies a replacement for that exact field.
func (f *SearchFilters) Merge(other SearchFilters) {
	if other.Transaction != catalog.TransactionAny {
		f.Transaction = other.Transaction
	}
	if other.Type != catalog.TypeAny {
		f.Type = other.Type
	}
	if other.MinPrice > 0 {
		f.MinPrice = other.MinPrice
	}
	if other.MaxPrice > 0 {
		f.MaxPrice = other.MaxPrice
	}
	if other.Bedrooms > 0 {
		f.Bedrooms = other.Bedrooms
	}
	if other.City != "" {
		f.City = other.City
	}
}

// Session is the mutable dialogue state for one sender.
type Session struct {
	SenderID        string
	Started         bool
	Stage           Stage
	Filters         *SearchFilters
	ViewingProperty int
	LastActivityAt  time.Time
}

// clone returns a deep copy so a turn can mutate freely and persist
// only on success.
func (s *Session) clone() *Session {
	cp := *s
	if s.Filters != nil {
		filters := *s.Filters
		cp.Filters = &filters
	}
	return &cp
}

// SessionStore is a process-wide map of sender id to session. Turn
// handling is serialized per sender; distinct senders never contend.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	locks    map[string]*sync.Mutex
	now      func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		locks:    make(map[string]*sync.Mutex),
		now:      time.Now,
	}
}

// GetOrCreate returns a copy of the sender's session, creating it with
// defaults on first contact.
func (s *SessionStore) GetOrCreate(senderID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(senderID).clone()
}

// Save upserts the session keyed by its sender id.
func (s *SessionStore) Save(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.LastActivityAt = s.now()
	s.sessions[session.SenderID] = session.clone()
}

// Do runs fn while holding the sender's turn lock. fn receives a copy
// of the session; the copy is persisted only when fn returns nil, so a
// failed turn never leaves a partially mutated session behind.
func (s *SessionStore) Do(senderID string, fn func(*Session) error) error {
	lock := s.senderLock(senderID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	working := s.getOrCreateLocked(senderID).clone()
	s.mu.Unlock()

	if err := fn(working); err != nil {
		return err
	}

	s.Save(working)
	return nil
}

func (s *SessionStore) getOrCreateLocked(senderID string) *Session {
	if session, ok := s.sessions[senderID]; ok {
		return session
	}
	session := &Session{
		SenderID:       senderID,
		Stage:          StageMain,
		LastActivityAt: s.now(),
	}
	s.sessions[senderID] = session
	return session
}

func (s *SessionStore) senderLock(senderID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[senderID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[senderID] = lock
	}
	return lock
}
