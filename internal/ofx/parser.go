// Package ofx imports OFX/QFX bank and credit card statements as ledger drafts.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/lumina/internal/model"
	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Entry is one statement line converted to a draft.
type Entry struct {
	FitID   string
	Account string
	Draft   model.Draft
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{logger: slog.Default().With("component", "ofx")}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket of a bare opening tag.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX statement. Lines repeating a FITID already
// seen for the same account are skipped, as are zero-amount lines.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Entry, error) {
	resp, err := p.parse(ctx, reader)
	if err != nil {
		return nil, err
	}

	var (
		entries          []Entry
		bankStmts, cards int
	)
	seen := make(map[string]struct{})
	add := func(account string, list *ofxgo.TransactionList) {
		if list == nil {
			return
		}
		for _, ofxTx := range list.Transactions {
			entry, ok := p.convertTransaction(ofxTx, account)
			if !ok {
				continue
			}
			key := account + "\x00" + entry.FitID
			if entry.FitID != "" {
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			}
			entries = append(entries, entry)
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			add(string(stmt.BankAcctFrom.AcctID), stmt.BankTranList)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			cards++
			add(string(stmt.CCAcctFrom.AcctID), stmt.BankTranList)
		}
	}

	p.logger.Info("Parsed OFX file",
		"total_transactions", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", cards)

	return entries, nil
}

// GetAccounts lists the account ids present in a statement, sorted.
func (p *Parser) GetAccounts(ctx context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(ctx, reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			seen[string(stmt.BankAcctFrom.AcctID)] = struct{}{}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			seen[string(stmt.CCAcctFrom.AcctID)] = struct{}{}
		}
	}

	accounts := make([]string, 0, len(seen))
	for acct := range seen {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)
	return accounts, nil
}

func (p *Parser) parse(ctx context.Context, reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// convertTransaction maps a statement line to a draft. OFX amounts are
// negative for money leaving the account.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, account string) (Entry, bool) {
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount == 0 {
		return Entry{}, false
	}

	kind := model.TypeIncome
	if amount < 0 {
		kind = model.TypeExpense
		amount = -amount
	}

	description := p.extractMerchantName(ofxTx)
	trnType := fmt.Sprintf("%v", ofxTx.TrnType)
	if ofxTx.CheckNum != "" && description == "" {
		description = "Check " + string(ofxTx.CheckNum)
	}

	return Entry{
		FitID:   string(ofxTx.FiTID),
		Account: account,
		Draft: model.Draft{
			Type:        kind,
			Amount:      amount,
			Category:    string(guessCategory(kind, trnType, description+" "+string(ofxTx.Memo)+" "+trnType)),
			Description: description,
			Date:        model.NewDate(ofxTx.DtPosted.Time),
		},
	}, true
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
