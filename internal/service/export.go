package service

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/koenbroumels/zelf-bar-dienst/internal/ledger"
	"github.com/koenbroumels/zelf-bar-dienst/internal/models"
)

// csvHeader is the fixed column order of a batch export.
var csvHeader = []string{"type", "price_cents", "date", "user", "paid_at", "batch_id"}

// ExportCSV renders the batch's items as CSV text: a header row followed by
// one row per item settled by the batch. Timestamps are RFC 3339 in UTC;
// absent labels render as empty strings. Labels containing commas or quotes
// are escaped per RFC 4180 by the csv writer.
func ExportCSV(batch models.PaymentBatch, items []models.Item) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, item := range ledger.ItemsInBatch(items, batch.ID) {
		row := []string{
			string(item.Type),
			strconv.FormatInt(item.PriceCents, 10),
			formatTimestamp(item.CreatedAt),
			item.Label,
			formatTimestamp(item.PaidAt),
			item.PaymentBatchID,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return sb.String(), nil
}

// ExportFilename returns a stable file name for a batch export.
func ExportFilename(batch models.PaymentBatch) string {
	return fmt.Sprintf("payment-batch-%s.csv", time.Unix(batch.CreatedAt, 0).UTC().Format("2006-01-02"))
}

func formatTimestamp(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
