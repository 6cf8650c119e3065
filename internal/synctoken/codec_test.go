package synctoken

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/lumina/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	synced := time.Date(2025, time.February, 1, 8, 0, 0, 0, time.UTC)
	return Snapshot{
		Transactions: []model.Transaction{
			{ID: "t2", Type: model.TypeExpense, Amount: 42.75, Category: "Food", Description: "Bazar <fish> & rice", Date: model.DateOf(2025, time.February, 3)},
			{ID: "t1", Type: model.TypeIncome, Amount: 1000, Category: "Salary", Description: "বেতন", Date: model.DateOf(2025, time.February, 1)},
		},
		User: model.UserProfile{
			Name:     "Nadia",
			Currency: "৳",
			Language: model.LanguageBengali,
			SyncID:   "K3J9QX2A",
			LastSync: &synced,
		},
	}
}

func encodeRaw(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	token, err := Encode(snap)
	require.NoError(t, err)
	assert.NotContains(t, token, "\n")

	got, err := Decode(token)
	require.NoError(t, err)

	require.Len(t, got.Transactions, 2)
	for i := range snap.Transactions {
		want, have := snap.Transactions[i], got.Transactions[i]
		assert.Equal(t, want.ID, have.ID)
		assert.Equal(t, want.Type, have.Type)
		assert.InDelta(t, want.Amount, have.Amount, 0)
		assert.Equal(t, want.Category, have.Category)
		assert.Equal(t, want.Description, have.Description)
		assert.Equal(t, want.Date.String(), have.Date.String())
	}
	assert.Equal(t, snap.User.Name, got.User.Name)
	assert.Equal(t, snap.User.Currency, got.User.Currency)
	assert.Equal(t, snap.User.Language, got.User.Language)
	assert.Equal(t, snap.User.SyncID, got.User.SyncID)
	require.NotNil(t, got.User.LastSync)
	assert.True(t, snap.User.LastSync.Equal(*got.User.LastSync))
}

func TestEncodeWireFormat(t *testing.T) {
	token, err := Encode(Snapshot{User: model.UserProfile{Name: "Guest", Currency: "$", Language: model.LanguageEnglish}})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.JSONEq(t, `{"transactions":[],"user":{"name":"Guest","currency":"$","language":"en"}}`, string(raw))
}

func TestEncodeKeepsNonASCIIAsUTF8(t *testing.T) {
	token, err := Encode(sampleSnapshot())
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "৳")
	assert.Contains(t, string(raw), "<fish> & rice")
}

func TestDecodeAcceptsForeignTokens(t *testing.T) {
	// Shape written by the browser build: ISO dates and a locale lastSync.
	payload := `{"transactions":[{"id":"550e8400-e29b-41d4-a716-446655440000","type":"expense","amount":12,"category":"Food","description":"Tea","date":"2025-02-03"}],` +
		`"user":{"name":"Rafi","currency":"€","language":"en","syncId":"ZX81AB0C","lastSync":"2/3/2025, 10:00:00 AM"}}`

	got, err := Decode(encodeRaw(payload))
	require.NoError(t, err)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "Tea", got.Transactions[0].Description)
	assert.Equal(t, "€", got.User.Currency)
	assert.Nil(t, got.User.LastSync)
}

func TestDecodeToleratesWrappingAndPadding(t *testing.T) {
	token, err := Encode(sampleSnapshot())
	require.NoError(t, err)

	var wrapped strings.Builder
	for i, r := range token {
		if i > 0 && i%20 == 0 {
			wrapped.WriteString("\r\n ")
		}
		wrapped.WriteRune(r)
	}
	_, err = Decode("  " + wrapped.String() + "\n")
	require.NoError(t, err)

	_, err = Decode(strings.TrimRight(token, "="))
	require.NoError(t, err)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "whitespace", token: " \n\t "},
		{name: "not base64", token: "not base64!!"},
		{name: "invalid utf-8", token: base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd})},
		{name: "invalid json", token: encodeRaw(`{"transactions":`)},
		{name: "json array", token: encodeRaw(`[1,2,3]`)},
		{name: "json null", token: encodeRaw(`null`)},
		{name: "json string", token: encodeRaw(`"hello"`)},
		{name: "transactions not a list", token: encodeRaw(`{"transactions":"x","user":{}}`)},
		{name: "user not an object", token: encodeRaw(`{"transactions":[],"user":"me"}`)},
		{name: "bad date", token: encodeRaw(`{"transactions":[{"id":"a","date":"yesterday"}],"user":{}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			assert.NotErrorIs(t, err, ErrMissingField)

			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr))
		})
	}
}

func TestDecodeEmptyTokenCause(t *testing.T) {
	_, err := Decode("   ")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestDecodeMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{name: "no user", payload: `{"transactions":[]}`, field: FieldUser},
		{name: "null user", payload: `{"transactions":[],"user":null}`, field: FieldUser},
		{name: "no transactions", payload: `{"user":{"name":"A"}}`, field: FieldTransactions},
		{name: "empty object", payload: `{}`, field: FieldTransactions},
		{name: "false transactions", payload: `{"transactions":false,"user":{}}`, field: FieldTransactions},
		{name: "zero transactions", payload: `{"transactions":0,"user":{}}`, field: FieldTransactions},
		{name: "empty string user", payload: `{"transactions":[],"user":""}`, field: FieldUser},
		{name: "false user", payload: `{"transactions":[],"user":false}`, field: FieldUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(encodeRaw(tt.payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingField)
			assert.NotErrorIs(t, err, ErrDecode)

			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.field, missing.Field)
		})
	}
}

func TestDecodeEmptyTransactionsIsValid(t *testing.T) {
	got, err := Decode(encodeRaw(`{"transactions":[],"user":{"name":"A","currency":"$","language":"en"}}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Transactions)
	assert.Empty(t, got.Transactions)
	assert.Equal(t, "A", got.User.Name)
	assert.Empty(t, got.User.SyncID)
}
