package ledger

import (
	"testing"

	"github.com/koenbroumels/zelf-bar-dienst/internal/models"
)

func testItems() []models.Item {
	return []models.Item{
		{ID: "i1", Type: models.ItemTypeBeer, PriceCents: 140, Label: "Koen"},
		{ID: "i2", Type: models.ItemTypeSoda, PriceCents: 70, Label: "Anna"},
		{ID: "i3", Type: models.ItemTypeCandy, PriceCents: 70, Label: "koen b", PaidAt: 1700000000, PaymentBatchID: "b1"},
		{ID: "i4", Type: models.ItemTypeBeer, PriceCents: 140},
	}
}

func ids(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{
			name: "no filters returns everything",
			opts: FilterOptions{},
			want: []string{"i1", "i2", "i3", "i4"},
		},
		{
			name: "only unpaid excludes settled items",
			opts: FilterOptions{OnlyUnpaid: true},
			want: []string{"i1", "i2", "i4"},
		},
		{
			name: "search matches label case-insensitively",
			opts: FilterOptions{SearchText: "KOEN"},
			want: []string{"i1", "i3"},
		},
		{
			name: "search matches type name",
			opts: FilterOptions{SearchText: "beer"},
			want: []string{"i1", "i4"},
		},
		{
			name: "search and unpaid combine with AND",
			opts: FilterOptions{OnlyUnpaid: true, SearchText: "koen"},
			want: []string{"i1"},
		},
		{
			name: "whitespace-only search matches everything",
			opts: FilterOptions{SearchText: "   "},
			want: []string{"i1", "i2", "i3", "i4"},
		},
		{
			name: "no match returns empty",
			opts: FilterOptions{SearchText: "whisky"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(testItems(), tt.opts))
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%+v) returned %v, want %v", tt.opts, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Filter(%+v)[%d] = %s, want %s", tt.opts, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFilter_OnlyUnpaidNeverReturnsPaid(t *testing.T) {
	for _, item := range Filter(testItems(), FilterOptions{OnlyUnpaid: true}) {
		if item.Paid() {
			t.Errorf("item %s is paid but survived OnlyUnpaid filter", item.ID)
		}
	}
}

func TestMarkPaid(t *testing.T) {
	items := testItems()
	updated := MarkPaid(items, []string{"i1", "i4"}, "b2", 1710000000)

	for _, item := range updated {
		switch item.ID {
		case "i1", "i4":
			if item.PaymentBatchID != "b2" || item.PaidAt != 1710000000 {
				t.Errorf("item %s: got batch=%q paidAt=%d, want b2/1710000000", item.ID, item.PaymentBatchID, item.PaidAt)
			}
		case "i2":
			if item.Paid() {
				t.Errorf("item i2 should remain unpaid")
			}
		case "i3":
			if item.PaymentBatchID != "b1" {
				t.Errorf("item i3 should keep its original batch, got %q", item.PaymentBatchID)
			}
		}
	}

	// Input must not be mutated.
	if items[0].Paid() {
		t.Error("MarkPaid mutated its input slice")
	}
}

func TestMarkPaidThenClearPaidRoundTrip(t *testing.T) {
	items := testItems()
	marked := MarkPaid(items, []string{"i1", "i2"}, "b2", 1710000000)
	cleared := ClearPaid(marked, "b2")

	for i := range items {
		if cleared[i] != items[i] {
			t.Errorf("item %s not restored: got %+v, want %+v", items[i].ID, cleared[i], items[i])
		}
	}
}

func TestClearPaid_UnknownBatchIsNoop(t *testing.T) {
	items := testItems()
	cleared := ClearPaid(items, "does-not-exist")
	for i := range items {
		if cleared[i] != items[i] {
			t.Errorf("item %s changed by clearing an unknown batch", items[i].ID)
		}
	}
}

func TestTotalFor(t *testing.T) {
	batch := models.PaymentBatch{ID: "b2"}
	items := MarkPaid(testItems(), []string{"i1", "i2"}, "b2", 1710000000)

	if got := TotalFor(batch, items); got != 210 {
		t.Errorf("TotalFor = %d, want 210 (140 beer + 70 soda)", got)
	}

	empty := models.PaymentBatch{ID: "nope"}
	if got := TotalFor(empty, items); got != 0 {
		t.Errorf("TotalFor on unknown batch = %d, want 0", got)
	}
}

func TestItemsInBatch(t *testing.T) {
	items := testItems()
	got := ItemsInBatch(items, "b1")
	if len(got) != 1 || got[0].ID != "i3" {
		t.Fatalf("ItemsInBatch(b1) = %v, want [i3]", ids(got))
	}
	if got := ItemsInBatch(items, "absent"); got != nil {
		t.Errorf("ItemsInBatch(absent) = %v, want nil", ids(got))
	}
}
