package model

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Language selects the UI string table.
type Language string

const (
	// LanguageEnglish is the default UI language.
	LanguageEnglish Language = "en"
	// LanguageBengali is the alternative UI language.
	LanguageBengali Language = "bn"
)

// ErrInvalidLanguage is returned for language codes the UI has no strings for.
var ErrInvalidLanguage = errors.New("invalid language")

// ParseLanguage parses a language code such as "en" or "bn".
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageBengali:
		return LanguageBengali, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
	}
}

// Default profile values.
const (
	DefaultName     = "Guest"
	DefaultCurrency = "$"
	syncIDLength    = 8
	syncIDAlphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// UserProfile holds the display preferences of the single local user.
type UserProfile struct {
	LastSync *time.Time
	Name     string
	Currency string
	Language Language
	SyncID   string
}

// DefaultProfile returns the profile used before anything has been saved.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:     DefaultName,
		Currency: DefaultCurrency,
		Language: LanguageEnglish,
		SyncID:   NewSyncID(),
	}
}

// NewSyncID returns a random 8 character device label.
func NewSyncID() string {
	var b strings.Builder
	b.Grow(syncIDLength)
	limit := big.NewInt(int64(len(syncIDAlphabet)))
	for i := 0; i < syncIDLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand only fails when the OS source is unavailable.
			n = big.NewInt(time.Now().UnixNano() % int64(len(syncIDAlphabet)))
		}
		b.WriteByte(syncIDAlphabet[n.Int64()])
	}
	return b.String()
}

// Synced returns a copy of p with LastSync set to at.
func (p UserProfile) Synced(at time.Time) UserProfile {
	p.LastSync = &at
	return p
}

type profileJSON struct {
	Name     *string          `json:"name,omitempty"`
	Currency *string          `json:"currency,omitempty"`
	Language *Language        `json:"language,omitempty"`
	SyncID   *string          `json:"syncId,omitempty"`
	LastSync *json.RawMessage `json:"lastSync,omitempty"`
}

func (p UserProfile) MarshalJSON() ([]byte, error) {
	out := struct {
		Name     string   `json:"name"`
		Currency string   `json:"currency"`
		Language Language `json:"language"`
		SyncID   string   `json:"syncId,omitempty"`
		LastSync string   `json:"lastSync,omitempty"`
	}{
		Name:     p.Name,
		Currency: p.Currency,
		Language: p.Language,
		SyncID:   p.SyncID,
	}
	if p.LastSync != nil {
		out.LastSync = p.LastSync.Format(time.RFC3339)
	}
	return json.Marshal(out)
}

// UnmarshalJSON overlays the fields present in data onto p, so decoding into
// DefaultProfile() yields the saved values merged over the defaults. A
// lastSync value that is not an RFC 3339 timestamp decodes as never synced.
func (p *UserProfile) UnmarshalJSON(data []byte) error {
	var in profileJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Currency != nil {
		p.Currency = *in.Currency
	}
	if in.Language != nil {
		p.Language = *in.Language
	}
	if in.SyncID != nil {
		p.SyncID = *in.SyncID
	}
	if in.LastSync != nil {
		p.LastSync = parseLastSync(*in.LastSync)
	}
	return nil
}

func parseLastSync(raw json.RawMessage) *time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
