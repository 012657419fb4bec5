package service

import (
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koenbroumels/zelf-bar-dienst/internal/ledger"
	"github.com/koenbroumels/zelf-bar-dienst/internal/models"
)

func exportFixture() (models.PaymentBatch, []models.Item) {
	batch := models.PaymentBatch{ID: "b1", CreatedAt: 1710000000, Note: "round"}
	items := []models.Item{
		{ID: "i1", Type: models.ItemTypeBeer, CreatedAt: 1700000000, PriceCents: 140, Label: "Koen", PaidAt: 1710000000, PaymentBatchID: "b1"},
		{ID: "i2", Type: models.ItemTypeSoda, CreatedAt: 1700000100, PriceCents: 70, PaidAt: 1710000000, PaymentBatchID: "b1"},
		{ID: "i3", Type: models.ItemTypeCandy, CreatedAt: 1700000200, PriceCents: 70}, // unpaid, different batch scope
	}
	return batch, items
}

func TestExportCSV(t *testing.T) {
	batch, items := exportFixture()

	out, err := ExportCSV(batch, items)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per settled item")

	assert.Equal(t, []string{"type", "price_cents", "date", "user", "paid_at", "batch_id"}, records[0])

	beer := records[1]
	assert.Equal(t, "beer", beer[0])
	assert.Equal(t, "140", beer[1])
	assert.Equal(t, "2023-11-14T22:13:20Z", beer[2])
	assert.Equal(t, "Koen", beer[3])
	assert.Equal(t, "2024-03-09T16:00:00Z", beer[4])
	assert.Equal(t, "b1", beer[5])

	soda := records[2]
	assert.Equal(t, "soda", soda[0])
	assert.Equal(t, "", soda[3], "absent label renders as empty string")
}

func TestExportCSVSumMatchesTotalFor(t *testing.T) {
	batch, items := exportFixture()

	out, err := ExportCSV(batch, items)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)

	var sum int64
	for _, row := range records[1:] {
		cents, err := strconv.ParseInt(row[1], 10, 64)
		require.NoError(t, err)
		sum += cents
	}
	assert.Equal(t, ledger.TotalFor(batch, items), sum)
}

func TestExportCSVEscapesLabels(t *testing.T) {
	batch := models.PaymentBatch{ID: "b1", CreatedAt: 1710000000}
	items := []models.Item{
		{ID: "i1", Type: models.ItemTypeBeer, CreatedAt: 1700000000, PriceCents: 140,
			Label: `Koen, "the regular"`, PaidAt: 1710000000, PaymentBatchID: "b1"},
	}

	out, err := ExportCSV(batch, items)
	require.NoError(t, err)

	// The raw text must quote the label so it stays one field.
	assert.Contains(t, out, `"Koen, ""the regular"""`)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `Koen, "the regular"`, records[1][3])
	assert.Len(t, records[1], 6)
}

func TestExportCSVEmptyBatch(t *testing.T) {
	batch := models.PaymentBatch{ID: "lonely"}

	out, err := ExportCSV(batch, nil)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestExportFilename(t *testing.T) {
	batch := models.PaymentBatch{ID: "b1", CreatedAt: 1710000000}
	assert.Equal(t, "payment-batch-2024-03-09.csv", ExportFilename(batch))
}
