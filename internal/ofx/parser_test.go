package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
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
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>42.00
<FITID>2024012501
<NAME>REFUND
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

func TestParser_ParseFile(t *testing.T) {
	parser := NewParser("Food", "Variable")

	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	// The refund credit is skipped; only debits become expenses.
	require.Len(t, transactions, 2)

	first := transactions[0]
	assert.Equal(t, "Food", first.Category)
	assert.Equal(t, "Variable", first.Type)
	assert.InDelta(t, 25.50, first.Amount, 1e-9)
	assert.Equal(t, "2024-01-15", first.Date)
	assert.Equal(t, "STARBUCKS STORE #1234", first.Note)
	assert.Zero(t, first.ID, "parsed transactions have no id until logged")

	second := transactions[1]
	assert.InDelta(t, 125.00, second.Amount, 1e-9)
	assert.Equal(t, "Whole Foods Market", second.Note)
}

func TestParser_ParseFile_Invalid(t *testing.T) {
	parser := NewParser("Food", "Variable")

	_, err := parser.ParseFile(context.Background(), strings.NewReader("not an ofx file"))
	require.Error(t, err)
}
