package cli

import "github.com/Veraticus/lumina/internal/model"

// Strings is the table of user-facing labels for one language.
type Strings struct {
	Dashboard     string
	History       string
	Balance       string
	Income        string
	Expense       string
	Spending      string
	Recent        string
	NoData        string
	Added         string
	Deleted       string
	NotFound      string
	SyncID        string
	LastSync      string
	Never         string
	SyncToken     string
	SyncSuccess   string
	SyncIgnored   string
	SyncError     string
	ProfileSaved  string
	WipeConfirm   string
	WipeDone      string
	WipeCancelled string
	Name          string
	Currency      string
	Language      string
	Date          string
	Category      string
	Description   string
	Amount        string
	Type          string
	ID            string
	Imported      string
}

var english = Strings{
	Dashboard:     "This month",
	History:       "All time",
	Balance:       "Balance",
	Income:        "Income",
	Expense:       "Expenses",
	Spending:      "Spending by category",
	Recent:        "Recent transactions",
	NoData:        "No transactions yet",
	Added:         "Transaction added",
	Deleted:       "Transaction deleted",
	NotFound:      "No transaction with that id",
	SyncID:        "Sync ID",
	LastSync:      "Last sync",
	Never:         "never",
	SyncToken:     "Sync token",
	SyncSuccess:   "Data synced from token",
	SyncIgnored:   "Token has no ledger data; nothing changed",
	SyncError:     "Invalid sync token",
	ProfileSaved:  "Profile saved",
	WipeConfirm:   "This permanently deletes every transaction and resets your profile. Continue? [y/N]: ",
	WipeDone:      "All local data wiped",
	WipeCancelled: "Wipe canceled",
	Name:          "Name",
	Currency:      "Currency",
	Language:      "Language",
	Date:          "Date",
	Category:      "Category",
	Description:   "Description",
	Amount:        "Amount",
	Type:          "Type",
	ID:            "ID",
	Imported:      "Imported transactions",
}

var bengali = Strings{
	Dashboard:     "এই মাস",
	History:       "সব সময়",
	Balance:       "ব্যালেন্স",
	Income:        "আয়",
	Expense:       "ব্যয়",
	Spending:      "বিভাগ অনুযায়ী খরচ",
	Recent:        "সাম্প্রতিক লেনদেন",
	NoData:        "এখনও কোনো লেনদেন নেই",
	Added:         "লেনদেন যোগ হয়েছে",
	Deleted:       "লেনদেন মুছে ফেলা হয়েছে",
	NotFound:      "এই আইডির কোনো লেনদেন নেই",
	SyncID:        "সিঙ্ক আইডি",
	LastSync:      "শেষ সিঙ্ক",
	Never:         "কখনও না",
	SyncToken:     "সিঙ্ক টোকেন",
	SyncSuccess:   "টোকেন থেকে ডেটা সিঙ্ক হয়েছে",
	SyncIgnored:   "টোকেনে কোনো লেজার ডেটা নেই; কিছু বদলায়নি",
	SyncError:     "অবৈধ সিঙ্ক টোকেন",
	ProfileSaved:  "প্রোফাইল সংরক্ষিত হয়েছে",
	WipeConfirm:   "এটি সব লেনদেন স্থায়ীভাবে মুছে প্রোফাইল রিসেট করবে। চালিয়ে যাবেন? [y/N]: ",
	WipeDone:      "সব স্থানীয় ডেটা মুছে ফেলা হয়েছে",
	WipeCancelled: "মুছে ফেলা বাতিল",
	Name:          "নাম",
	Currency:      "মুদ্রা",
	Language:      "ভাষা",
	Date:          "তারিখ",
	Category:      "বিভাগ",
	Description:   "বিবরণ",
	Amount:        "পরিমাণ",
	Type:          "ধরন",
	ID:            "আইডি",
	Imported:      "লেনদেন আমদানি হয়েছে",
}

// For returns the string table for lang, falling back to English.
func For(lang model.Language) Strings {
	if lang == model.LanguageBengali {
		return bengali
	}
	return english
}

// TypeLabel returns the translated label of a transaction type.
func (s Strings) TypeLabel(t model.TransactionType) string {
	if t == model.TypeIncome {
		return s.Income
	}
	return s.Expense
}
