package record

import (
	"encoding/json"
	"testing"
)

func TestFieldsMarshalPreservesOrder(t *testing.T) {
	fields := Fields{
		{Name: "id", Value: 7},
		{Name: "zeta", Value: "last"},
		{Name: "alpha", Value: "first"},
	}

	data, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"id":7,"zeta":"last","alpha":"first"}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestFieldsGet(t *testing.T) {
	fields := Fields{{Name: "price", Value: 100}}

	v, ok := fields.Get("price")
	if !ok || v != 100 {
		t.Fatalf("expected price 100, got %v (ok=%v)", v, ok)
	}
	if _, ok := fields.Get("missing"); ok {
		t.Fatalf("expected missing lookup to fail")
	}
}
