package model

// Category is one of the labels offered when recording a transaction.
// Stored transactions keep the label as plain text, so records carrying a
// label outside this list (from a sync token, say) remain valid.
type Category string

// Income categories.
const (
	CategorySalary      Category = "Salary"
	CategoryFreelance   Category = "Freelance"
	CategoryInvestments Category = "Investments"
	CategoryGift        Category = "Gift"
)

// Expense categories.
const (
	CategoryFood          Category = "Food"
	CategoryRent          Category = "Rent"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryHealth        Category = "Health"
	CategoryTravel        Category = "Travel"
)

// CategoryOther is offered for both types.
const CategoryOther Category = "Other"

var (
	incomeCategories = []Category{
		CategorySalary, CategoryFreelance, CategoryInvestments, CategoryGift, CategoryOther,
	}
	expenseCategories = []Category{
		CategoryFood, CategoryRent, CategoryUtilities, CategoryEntertainment,
		CategoryTransport, CategoryShopping, CategoryHealth, CategoryTravel, CategoryOther,
	}
)

// CategoriesFor returns the labels offered for a transaction type, in display order.
func CategoriesFor(t TransactionType) []Category {
	var src []Category
	switch t {
	case TypeIncome:
		src = incomeCategories
	case TypeExpense:
		src = expenseCategories
	default:
		return nil
	}
	out := make([]Category, len(src))
	copy(out, src)
	return out
}

// IsKnownCategory reports whether label is one of the labels offered for t.
func IsKnownCategory(t TransactionType, label string) bool {
	for _, c := range CategoriesFor(t) {
		if string(c) == label {
			return true
		}
	}
	return false
}

// DefaultCategory is the label preselected for a new transaction of type t.
func DefaultCategory(t TransactionType) Category {
	if t == TypeIncome {
		return CategorySalary
	}
	return CategoryFood
}
