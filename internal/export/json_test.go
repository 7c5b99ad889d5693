package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkeller/capflow/internal/model"
)

func TestWriteCaps_Shape(t *testing.T) {
	var buf bytes.Buffer
	caps := model.Caps{"Food": {Cap: 100, Type: "Fixed"}}

	require.NoError(t, WriteCaps(&buf, caps))

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 100.0, decoded["Food"]["cap"])
	assert.Equal(t, "Fixed", decoded["Food"]["type"])
}

func TestWriteTransactions_Shape(t *testing.T) {
	var buf bytes.Buffer
	txns := []model.Transaction{
		{ID: 1, Category: "Food", Amount: 30, Date: "2024-03-01", Type: "Fixed"},
		{ID: 2, Category: "Food", Amount: 12.5, Note: "lunch", Date: "2024-03-02", Type: "Fixed"},
	}

	require.NoError(t, WriteTransactions(&buf, txns))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "Food", decoded[0]["category"])
	_, hasNote := decoded[0]["note"]
	assert.False(t, hasNote, "empty note must be omitted")
	assert.Equal(t, "lunch", decoded[1]["note"])
}

func TestWriteTransactions_NilIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())
}

func TestWriteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backup")
	caps := model.Caps{"Rent": {Cap: 500, Type: "Fixed"}}
	txns := []model.Transaction{
		{ID: 1, Category: "Rent", Amount: 500, Date: "2024-03-01", Type: "Fixed"},
	}

	require.NoError(t, WriteDir(dir, caps, txns))

	capsData, err := os.ReadFile(filepath.Join(dir, CapsFileName))
	require.NoError(t, err)
	var decodedCaps model.Caps
	require.NoError(t, json.Unmarshal(capsData, &decodedCaps))
	assert.Equal(t, caps, decodedCaps)

	txData, err := os.ReadFile(filepath.Join(dir, TransactionsFileName))
	require.NoError(t, err)
	var decodedTx []model.Transaction
	require.NoError(t, json.Unmarshal(txData, &decodedTx))
	assert.Equal(t, txns, decodedTx)
}
