package ledger

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/eocodev/reviewstation/internal/common"
	"github.com/eocodev/reviewstation/internal/model"
)

// LoadOFX parses an OFX/QFX bank statement into ledger transactions and
// indexes them. Debits are negative in OFX; the absolute value is indexed
// since receipts carry positive charge amounts.
func LoadOFX(r io.Reader) (*Index, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	// Some exports lead with blank lines that break header detection.
	trimmed := strings.TrimLeft(string(content), " \t\r\n")

	resp, err := ofxgo.ParseResponse(strings.NewReader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction

	appendStatement := func(list *ofxgo.TransactionList) error {
		if list == nil {
			return nil
		}
		for _, ofxTx := range list.Transactions {
			tx, convErr := convertOFXTransaction(ofxTx, len(transactions))
			if convErr != nil {
				return convErr
			}
			transactions = append(transactions, tx)
		}
		return nil
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			if err := appendStatement(stmt.BankTranList); err != nil {
				return nil, err
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			if err := appendStatement(stmt.BankTranList); err != nil {
				return nil, err
			}
		}
	}

	if len(transactions) == 0 {
		return nil, common.ErrEmptyLedger
	}

	return NewIndexFromTransactions(transactions), nil
}

func convertOFXTransaction(ofxTx ofxgo.Transaction, index int) (model.Transaction, error) {
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: transaction %d: %v",
			common.ErrNonNumericAmount, index, err)
	}

	vendor := string(ofxTx.Name)
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		vendor = string(ofxTx.Payee.Name)
	}
	if vendor == "" {
		vendor = string(ofxTx.Memo)
	}

	return model.Transaction{
		Index:  index,
		Amount: amount.Abs(),
		Vendor: strings.TrimSpace(vendor),
		Date:   ofxTx.DtPosted.Time.Format("2006-01-02"),
	}, nil
}
