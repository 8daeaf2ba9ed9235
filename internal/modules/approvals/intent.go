package approvals

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type ItemType string

const (
	ItemInstitution ItemType = "institution"
	ItemStation     ItemType = "station"
	ItemResearcher  ItemType = "researcher"
)

func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemInstitution, ItemStation, ItemResearcher:
		return ItemType(s), nil
	}
	return "", ErrUnknownItemType
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Intent is a single-use confirmation: the caller sees the prompt (with any
// warning), then replays the token with the decision. Mutations without a
// live intent are refused.
type Intent struct {
	Token         string    `json:"confirmation_token"`
	Type          ItemType  `json:"item_type"`
	Action        Action    `json:"action"`
	ItemID        int64     `json:"item_id"`
	UserID        int64     `json:"-"`
	Warning       string    `json:"warning,omitempty"`
	RequiresForce bool      `json:"requires_force"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type intentStore struct {
	mu      sync.Mutex
	intents map[string]Intent
	ttl     time.Duration
	now     func() time.Time
}

func newIntentStore(ttl time.Duration) *intentStore {
	return &intentStore{intents: map[string]Intent{}, ttl: ttl, now: time.Now}
}

func (s *intentStore) create(it Intent) Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	it.Token = uuid.NewString()
	it.ExpiresAt = s.now().Add(s.ttl)
	s.intents[it.Token] = it
	return it
}

// consume removes the intent whether or not it matches; a failed decision
// needs a fresh confirmation round.
func (s *intentStore) consume(token string) (Intent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.intents[token]
	if !ok {
		return Intent{}, false
	}
	delete(s.intents, token)
	if s.now().After(it.ExpiresAt) {
		return Intent{}, false
	}
	return it, true
}
