package ledger

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eocodev/reviewstation/internal/common"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-45.00
<FITID>2024011501
<NAME>ACME CORP
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-12.50
<FITID>2024012001
<NAME>BETA LLC
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestLoadOFX(t *testing.T) {
	idx, err := LoadOFX(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Equal(t, 2, idx.Len())

	transactions := idx.Transactions()
	assert.Equal(t, 0, transactions[0].Index)
	assert.Equal(t, "ACME CORP", transactions[0].Vendor)
	assert.Equal(t, "2024-01-15", transactions[0].Date)
	// Debits arrive negative; the index stores absolute values.
	assert.Equal(t, "45.00", transactions[0].AmountKey())

	matches := idx.Lookup(decimal.RequireFromString("12.50"))
	require.Len(t, matches, 1)
	assert.Equal(t, "BETA LLC", matches[0].Vendor)
}

func TestLoadOFXLeadingWhitespace(t *testing.T) {
	idx, err := LoadOFX(strings.NewReader("\n\n  " + sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
}

func TestLoadOFXInvalid(t *testing.T) {
	_, err := LoadOFX(strings.NewReader("not an ofx document"))
	assert.Error(t, err)
}

func TestLoadOFXNoTransactions(t *testing.T) {
	// Strip the transaction list entirely.
	start := strings.Index(sampleBankOFX, "<BANKTRANLIST>")
	end := strings.Index(sampleBankOFX, "</BANKTRANLIST>") + len("</BANKTRANLIST>")
	require.NotEqual(t, -1, start)
	empty := sampleBankOFX[:start] + sampleBankOFX[end:]

	_, err := LoadOFX(strings.NewReader(empty))
	assert.ErrorIs(t, err, common.ErrEmptyLedger)
}
