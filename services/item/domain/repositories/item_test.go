package repositories

import (
	"testing"

	"github.com/ghuser/itemsvc/services/item/domain/models"
)

func TestParseSortKey(t *testing.T) {
	for _, s := range []string{"id", "name", "price"} {
		k, err := ParseSortKey(s)
		if err != nil {
			t.Fatalf("ParseSortKey(%q): %v", s, err)
		}
		if string(k) != s {
			t.Fatalf("expected %q, got %q", s, k)
		}
	}

	for _, s := range []string{"", "ID", "created_at", "name; DROP TABLE items", "price desc"} {
		if _, err := ParseSortKey(s); err == nil {
			t.Errorf("ParseSortKey(%q) expected error", s)
		}
	}
}

func TestParseSortDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    SortDirection
		wantErr bool
	}{
		{"asc", SortAsc, false},
		{"desc", SortDesc, false},
		{"DESC", "", true},
		{"", "", true},
		{"up", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSortDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseSortDirection(%q) error = %v, wantErr = %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseSortDirection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultListQuery(t *testing.T) {
	q := DefaultListQuery()
	if q.Limit != 50 || q.Offset != 0 || q.OrderBy != SortByID || q.Direction != SortAsc {
		t.Fatalf("unexpected defaults: %+v", q)
	}
	if q.MinPrice != nil || q.MaxPrice != nil || q.NameQuery != nil {
		t.Fatal("defaults must not apply filters")
	}
}

func TestItemPatch_IsEmpty(t *testing.T) {
	if !(ItemPatch{}).IsEmpty() {
		t.Fatal("zero patch must be empty")
	}
	name := models.ItemName("x")
	if (ItemPatch{Name: &name}).IsEmpty() {
		t.Fatal("patch with name must not be empty")
	}
	price := models.Price(0)
	if (ItemPatch{Price: &price}).IsEmpty() {
		t.Fatal("patch with zero price must not be empty")
	}
}
