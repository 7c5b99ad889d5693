// Package ofx parses OFX/QFX bank statements into budget transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/pkeller/capflow/internal/model"
)

// Parser implements OFX/QFX file parsing. Parsed entries are assigned to
// a single caller-chosen category; OFX carries no category information a
// budget cap could map to.
type Parser struct {
	category string
	expType  string
}

// NewParser creates a parser that labels every parsed transaction with
// the given category and expense type.
func NewParser(category, expenseType string) *Parser {
	return &Parser{category: category, expType: expenseType}
}

// preprocess fixes common formatting issues in OFX files exported by
// banks: stray leading whitespace, mixed-case SEVERITY values, and
// SGML-style tags missing their closing bracket.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX statement and returns the expense
// transactions it contains, without ids; ids are assigned when the
// transactions are logged.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			transactions = append(transactions, p.convertStatement(stmt.BankTranList)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			transactions = append(transactions, p.convertStatement(stmt.BankTranList)...)
		}
	}

	slog.Info("parsed OFX statement",
		"transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *Parser) convertStatement(list *ofxgo.TransactionList) []model.Transaction {
	if list == nil {
		return nil
	}

	var transactions []model.Transaction
	for _, ofxTx := range list.Transactions {
		// OFX uses negative amounts for debits; budget amounts are
		// always positive. Credits (refunds, interest) are skipped.
		amount, _ := ofxTx.TrnAmt.Float64()
		if amount >= 0 {
			continue
		}

		transactions = append(transactions, model.Transaction{
			Category: p.category,
			Amount:   -amount,
			Note:     p.note(ofxTx),
			Date:     ofxTx.DtPosted.Time.Format(model.DateLayout),
			Type:     p.expType,
		})
	}
	return transactions
}

// note builds the transaction note from the statement's payee or memo.
func (p *Parser) note(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}
	name := strings.TrimSpace(string(tx.Name))
	if memo := strings.TrimSpace(string(tx.Memo)); memo != "" && name == "" {
		return memo
	}
	return name
}
