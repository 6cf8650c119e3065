package ofx

import (
	"regexp"

	"github.com/Veraticus/lumina/internal/model"
)

// categoryRule guesses a category from the statement text.
type categoryRule struct {
	pattern  *regexp.Regexp
	category model.Category
	kind     model.TransactionType
}

var categoryRules = []categoryRule{
	// Income
	{kind: model.TypeIncome, category: model.CategorySalary, pattern: regexp.MustCompile(`(?i)\b(DIRECTDEP|DIRECT\s*DEP|DIR\s*DEP|PAYROLL|SALARY|WAGES)\b`)},
	{kind: model.TypeIncome, category: model.CategoryInvestments, pattern: regexp.MustCompile(`(?i)\b(INTEREST|INT\s*EARNED|DIVIDEND|DIV|CAPITAL\s*GAIN)\b`)},
	{kind: model.TypeIncome, category: model.CategoryFreelance, pattern: regexp.MustCompile(`(?i)\b(INVOICE|CLIENT|UPWORK|FIVERR)\b`)},
	{kind: model.TypeIncome, category: model.CategoryGift, pattern: regexp.MustCompile(`(?i)\b(GIFT)\b`)},

	// Expense
	{kind: model.TypeExpense, category: model.CategoryRent, pattern: regexp.MustCompile(`(?i)\b(RENT|LANDLORD|LEASE|MORTGAGE)\b`)},
	{kind: model.TypeExpense, category: model.CategoryUtilities, pattern: regexp.MustCompile(`(?i)\b(ELECTRIC|POWER|WATER|GAS\s*CO|INTERNET|COMCAST|VERIZON|UTILIT\w*)\b`)},
	{kind: model.TypeExpense, category: model.CategoryTransport, pattern: regexp.MustCompile(`(?i)\b(UBER|LYFT|METRO|TRANSIT|PARKING|SHELL|CHEVRON|EXXON|FUEL)\b`)},
	{kind: model.TypeExpense, category: model.CategoryEntertainment, pattern: regexp.MustCompile(`(?i)(NETFLIX|SPOTIFY|HULU|STEAM|CINEMA|THEATER)`)},
	{kind: model.TypeExpense, category: model.CategoryHealth, pattern: regexp.MustCompile(`(?i)\b(PHARMACY|CVS|WALGREENS|CLINIC|HOSPITAL|DENTAL|DOCTOR)\b`)},
	{kind: model.TypeExpense, category: model.CategoryTravel, pattern: regexp.MustCompile(`(?i)\b(AIRLINES?|AIRBNB|HOTEL|EXPEDIA|MARRIOTT|HILTON)\b`)},
	{kind: model.TypeExpense, category: model.CategoryFood, pattern: regexp.MustCompile(`(?i)(STARBUCKS|COFFEE|CAFE|RESTAURANT|PIZZA|GROCER|FOODS?\b|MARKET|DOORDASH|GRUBHUB)`)},
	{kind: model.TypeExpense, category: model.CategoryShopping, pattern: regexp.MustCompile(`(?i)(AMAZON|TARGET|WALMART|EBAY|IKEA|BEST\s*BUY)`)},
}

// guessCategory picks a category for a statement line. OFX transaction types
// that carry a clear meaning win over text matching; anything unmatched is Other.
func guessCategory(kind model.TransactionType, trnType, text string) model.Category {
	if kind == model.TypeIncome {
		switch trnType {
		case "DIRECTDEP":
			return model.CategorySalary
		case "INT", "DIV":
			return model.CategoryInvestments
		}
	}

	for _, rule := range categoryRules {
		if rule.kind == kind && rule.pattern.MatchString(text) {
			return rule.category
		}
	}
	return model.CategoryOther
}
