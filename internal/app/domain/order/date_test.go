package order

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2024-01-05" {
		t.Fatalf("expected 2024-01-05, got %s", d)
	}

	if _, err := ParseDate("01/05/2024"); err == nil {
		t.Fatalf("expected seed-format input to be rejected")
	}
}

func TestParseSeedDate(t *testing.T) {
	d, err := ParseSeedDate("03/08/2021")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// MM/DD/YYYY: March 8th, not August 3rd.
	if !d.Equal(NewDate(2021, time.March, 8)) {
		t.Fatalf("expected 2021-03-08, got %s", d)
	}

	if _, err := ParseSeedDate("2021-03-08"); err == nil {
		t.Fatalf("expected API-format input to be rejected")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.December, 31)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-12-31"` {
		t.Fatalf("expected quoted date string, got %s", data)
	}

	var decoded Date
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(d) {
		t.Fatalf("round trip mismatch: %s != %s", decoded, d)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2023, time.June, 3, 13, 45, 0, 0, time.Local)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2023-06-03" {
		t.Fatalf("expected time component dropped, got %s", d)
	}

	var fromBytes Date
	if err := fromBytes.Scan([]byte("2023-06-04")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if fromBytes.String() != "2023-06-04" {
		t.Fatalf("expected 2023-06-04, got %s", fromBytes)
	}
}

func TestOrderFieldsEnumeratesEveryColumn(t *testing.T) {
	o := Order{
		ID:          1,
		Name:        "Fix",
		Description: "d",
		StartDate:   NewDate(2024, time.January, 1),
		EndDate:     NewDate(2024, time.January, 5),
		Address:     "A",
		Price:       100,
		CustomerID:  1,
		ExecutorID:  2,
	}

	want := []string{"id", "name", "description", "start_date", "end_date", "address", "price", "customer_id", "executor_id"}
	got := o.Fields().Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	data, err := json.Marshal(o.Fields())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["start_date"] != "2024-01-01" || decoded["end_date"] != "2024-01-05" {
		t.Fatalf("expected ISO date strings, got %v / %v", decoded["start_date"], decoded["end_date"])
	}
}
