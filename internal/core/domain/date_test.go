package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2026-03-10" || d.Location() != time.UTC {
		t.Fatalf("unexpected date: %v", d)
	}

	for _, bad := range []string{"", "10/03/2026", "2026-13-01", "2026-02-30"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseDate(%q): expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestNewDate_TruncatesToDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	d := NewDate(time.Date(2026, 3, 10, 23, 30, 0, 0, loc))
	if d.String() != "2026-03-10" {
		t.Fatalf("expected the local calendar day, got %s", d)
	}
	if d.Hour() != 0 || d.Location() != time.UTC {
		t.Fatalf("expected UTC midnight, got %v", d.Time)
	}
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Due Date `json:"vencimento"`
	}

	b, err := json.Marshal(wrapper{Due: NewDate(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"vencimento":"2026-01-05"}` {
		t.Fatalf("unexpected json: %s", b)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"vencimento":"2026-02-28"}`), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Due.String() != "2026-02-28" {
		t.Fatalf("unexpected date: %s", w.Due)
	}

	if err := json.Unmarshal([]byte(`{"vencimento":"28/02/2026"}`), &w); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2026-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.String() != "2026-12-01" || end.String() != "2027-01-01" {
		t.Fatalf("unexpected range: %s .. %s", start, end)
	}

	if _, _, err := MonthRange("2026-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDate_Before(t *testing.T) {
	a, _ := ParseDate("2026-03-09")
	b, _ := ParseDate("2026-03-10")
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatal("Before must be a strict day ordering")
	}
}
