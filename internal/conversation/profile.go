package conversation

import (
	"sync"
	"time"

	"github.com/imobiliariaxyz/bot-corretor/internal/nlu"
)

// Preferences accumulates what we have learned about a contact. Fields
// are merged, never overwritten wholesale.
type Preferences struct {
	PropertyType string
	MinPrice     int
	MaxPrice     int
	Locations    map[string]struct{}
	Features     map[string]struct{}
}

// Profile is the durable-ish view of one contact, separate from the
// dialogue session.
type Profile struct {
	SenderID          string
	DisplayName       string
	Preferences       Preferences
	InteractionCount  int
	LastInteractionAt time.Time
}

// ProfileStore keeps contact profiles for the process lifetime.
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*Profile
	now      func() time.Time
}

// NewProfileStore creates an empty store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]*Profile),
		now:      time.Now,
	}
}

// Touch records one interaction, capturing the display name when known.
func (s *ProfileStore) Touch(senderID, displayName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.getOrCreateLocked(senderID)
	if displayName != "" {
		p.DisplayName = displayName
	}
	p.InteractionCount++
	p.LastInteractionAt = s.now()
}

// Learn merges non-default intent fields into the contact's preferences.
func (s *ProfileStore) Learn(senderID string, intent nlu.Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.getOrCreateLocked(senderID)
	if intent.PropertyType != "" && intent.PropertyType != nlu.PropertyAny {
		p.Preferences.PropertyType = intent.PropertyType
	}
	if intent.PriceRange.Min > 0 {
		p.Preferences.MinPrice = intent.PriceRange.Min
	}
	if intent.PriceRange.Max > 0 {
		p.Preferences.MaxPrice = intent.PriceRange.Max
	}
	if intent.Location != "" {
		p.Preferences.Locations[intent.Location] = struct{}{}
	}
	for _, feature := range intent.Features {
		if feature != "" {
			p.Preferences.Features[feature] = struct{}{}
		}
	}
}

// Get returns a copy of the profile, if one exists.
func (s *ProfileStore) Get(senderID string) (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[senderID]
	if !ok {
		return Profile{}, false
	}
	cp := *p
	cp.Preferences.Locations = copySet(p.Preferences.Locations)
	cp.Preferences.Features = copySet(p.Preferences.Features)
	return cp, true
}

func (s *ProfileStore) getOrCreateLocked(senderID string) *Profile {
	if p, ok := s.profiles[senderID]; ok {
		return p
	}
	p := &Profile{
		SenderID: senderID,
		Preferences: Preferences{
			Locations: make(map[string]struct{}),
			Features:  make(map[string]struct{}),
		},
	}
	s.profiles[senderID] = p
	return p
}

func copySet(src map[string]struct{}) map[string]struct{} {
	dst := make(map[string]struct{}, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}
