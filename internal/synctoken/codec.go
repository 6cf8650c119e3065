// Package synctoken converts the full ledger state to and from a portable
// text token that can be carried between devices by hand.
//
// A token is the standard base64 encoding of the UTF-8 JSON object
// {"transactions": [...], "user": {...}}.
package synctoken

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Veraticus/lumina/internal/model"
)

// Field names of the token payload.
const (
	FieldTransactions = "transactions"
	FieldUser         = "user"
)

// Snapshot is the state carried by a token.
type Snapshot struct {
	Transactions []model.Transaction `json:"transactions"`
	User         model.UserProfile   `json:"user"`
}

// Encode serialises the snapshot into a single-line token.
func Encode(s Snapshot) (string, error) {
	if s.Transactions == nil {
		s.Transactions = []model.Transaction{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(bytes.TrimSpace(buf.Bytes())), nil
}

// Decode parses a token. Whitespace anywhere in the token is ignored. It
// returns a *DecodeError when the token cannot be read and a
// *MissingFieldError when it reads fine but lacks transactions or user.
func Decode(token string) (Snapshot, error) {
	compact := stripSpace(token)
	if compact == "" {
		return Snapshot{}, &DecodeError{Stage: "token", Err: ErrEmptyToken}
	}

	raw, err := decodeBase64(compact)
	if err != nil {
		return Snapshot{}, &DecodeError{Stage: "base64", Err: err}
	}
	if !utf8.Valid(raw) {
		return Snapshot{}, &DecodeError{Stage: "utf-8"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Snapshot{}, &DecodeError{Stage: "json", Err: err}
	}
	if fields == nil {
		// The payload was the JSON literal null.
		return Snapshot{}, &DecodeError{Stage: "json"}
	}

	txnsRaw, ok := present(fields, FieldTransactions)
	if !ok {
		return Snapshot{}, &MissingFieldError{Field: FieldTransactions}
	}
	userRaw, ok := present(fields, FieldUser)
	if !ok {
		return Snapshot{}, &MissingFieldError{Field: FieldUser}
	}

	var snap Snapshot
	if err := json.Unmarshal(txnsRaw, &snap.Transactions); err != nil {
		return Snapshot{}, &DecodeError{Stage: FieldTransactions, Err: err}
	}
	if err := json.Unmarshal(userRaw, &snap.User); err != nil {
		return Snapshot{}, &DecodeError{Stage: FieldUser, Err: err}
	}
	if snap.Transactions == nil {
		snap.Transactions = []model.Transaction{}
	}
	return snap, nil
}

// present reports whether a top-level field carries a value. Absent fields and
// the falsy literals null, false, 0 and "" count as missing; empty lists and
// objects do not.
func present(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok {
		return nil, false
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return raw, true
	}
	switch v := value.(type) {
	case nil:
		return nil, false
	case bool:
		return raw, v
	case string:
		return raw, v != ""
	case float64:
		return raw, v != 0
	}
	return raw, true
}

func decodeBase64(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return raw, nil
	}
	if unpadded, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return unpadded, nil
	}
	return nil, err
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
