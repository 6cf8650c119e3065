package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		input   string
		want    TransactionType
		wantErr bool
	}{
		{input: "income", want: TypeIncome},
		{input: " Expense ", want: TypeExpense},
		{input: "debit", want: TypeExpense},
		{input: "transfer", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTransactionType(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransactionType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestDateJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		d := DateOf(2025, time.February, 28)
		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.JSONEq(t, `"2025-02-28"`, string(data))

		var back Date
		require.NoError(t, json.Unmarshal(data, &back))
		assert.True(t, d.Equal(back.Time))
	})

	t.Run("accepts ISO timestamps", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2025-01-15T10:30:00.000Z"`), &d))
		assert.Equal(t, "2025-01-15", d.String())
		assert.Equal(t, "2025-01", d.YearMonth())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"15/01/2025"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`20250115`), &d))
	})
}

func TestDateSameMonth(t *testing.T) {
	now := time.Date(2025, time.February, 15, 23, 0, 0, 0, time.UTC)
	assert.False(t, DateOf(2025, time.January, 15).SameMonth(now))
	assert.True(t, DateOf(2025, time.February, 1).SameMonth(now))
	assert.True(t, DateOf(2025, time.February, 28).SameMonth(now))
	assert.False(t, DateOf(2024, time.February, 1).SameMonth(now))
	assert.False(t, Date{}.SameMonth(now))
}

func TestCategoriesFor(t *testing.T) {
	income := CategoriesFor(TypeIncome)
	expense := CategoriesFor(TypeExpense)

	assert.Equal(t, []Category{"Salary", "Freelance", "Investments", "Gift", "Other"}, income)
	assert.Len(t, expense, 9)
	assert.Nil(t, CategoriesFor("bogus"))

	income[0] = "Mutated"
	assert.Equal(t, CategorySalary, CategoriesFor(TypeIncome)[0])

	assert.True(t, IsKnownCategory(TypeExpense, "Rent"))
	assert.False(t, IsKnownCategory(TypeIncome, "Rent"))
	assert.True(t, IsKnownCategory(TypeIncome, "Other"))
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "Guest", p.Name)
	assert.Equal(t, "$", p.Currency)
	assert.Equal(t, LanguageEnglish, p.Language)
	assert.Nil(t, p.LastSync)
	assert.Regexp(t, `^[0-9A-Z]{8}$`, p.SyncID)
}

func TestProfileJSON(t *testing.T) {
	t.Run("overlay onto defaults", func(t *testing.T) {
		p := DefaultProfile()
		syncID := p.SyncID
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Alex","language":"bn"}`), &p))
		assert.Equal(t, "Alex", p.Name)
		assert.Equal(t, LanguageBengali, p.Language)
		assert.Equal(t, "$", p.Currency)
		assert.Equal(t, syncID, p.SyncID)
	})

	t.Run("last sync round trip", func(t *testing.T) {
		at := time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC)
		p := UserProfile{Name: "A", Currency: "€", Language: LanguageEnglish, SyncID: "ABCD1234"}.Synced(at)
		data, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"A","currency":"€","language":"en","syncId":"ABCD1234","lastSync":"2025-03-01T09:30:00Z"}`, string(data))

		var back UserProfile
		require.NoError(t, json.Unmarshal(data, &back))
		require.NotNil(t, back.LastSync)
		assert.True(t, at.Equal(*back.LastSync))
	})

	t.Run("locale last sync decodes as never", func(t *testing.T) {
		var p UserProfile
		require.NoError(t, json.Unmarshal([]byte(`{"name":"A","lastSync":"3/1/2025, 9:30:00 AM"}`), &p))
		assert.Nil(t, p.LastSync)
	})

	t.Run("never synced omits field", func(t *testing.T) {
		data, err := json.Marshal(UserProfile{Name: "A"})
		require.NoError(t, err)
		assert.NotContains(t, string(data), "lastSync")
	})
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("BN")
	require.NoError(t, err)
	assert.Equal(t, LanguageBengali, lang)

	_, err = ParseLanguage("fr")
	assert.ErrorIs(t, err, ErrInvalidLanguage)
}

func TestCurrencyLookup(t *testing.T) {
	c, ok := CurrencyBySymbol("৳")
	require.True(t, ok)
	assert.Equal(t, "BDT", c.Code)

	c, ok = CurrencyByCode("JPY")
	require.True(t, ok)
	assert.Equal(t, "¥", c.Symbol)

	_, ok = CurrencyBySymbol("R$")
	assert.False(t, ok)
}

func TestDraftValidate(t *testing.T) {
	valid := Draft{Type: TypeExpense, Amount: 12.5, Category: "Food", Date: DateOf(2025, time.February, 1)}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Draft)
		want   error
	}{
		{name: "bad type", mutate: func(d *Draft) { d.Type = "transfer" }, want: ErrInvalidTransactionType},
		{name: "zero amount", mutate: func(d *Draft) { d.Amount = 0 }, want: ErrInvalidAmount},
		{name: "negative amount", mutate: func(d *Draft) { d.Amount = -3 }, want: ErrInvalidAmount},
		{name: "nan amount", mutate: func(d *Draft) { d.Amount = math.NaN() }, want: ErrInvalidAmount},
		{name: "inf amount", mutate: func(d *Draft) { d.Amount = math.Inf(1) }, want: ErrInvalidAmount},
		{name: "blank category", mutate: func(d *Draft) { d.Category = "  " }, want: ErrMissingCategory},
		{name: "no date", mutate: func(d *Draft) { d.Date = Date{} }, want: ErrMissingDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			assert.ErrorIs(t, d.Validate(), tt.want)
		})
	}
}
