package api

import (
	"strings"
	"testing"
)

func TestJSONCodecRoundTrip(t *testing.T) {
	codec := jsonCodec{}
	if codec.Name() != "json" {
		t.Fatalf("expected codec name json, got %q", codec.Name())
	}

	in := &CreateExpenseRequest{
		Description: "Groceries",
		Amount:      42.50,
		SpentOn:     "2024-03-01",
		PayerID:     "p1",
		SplitAmong:  []string{"p1", "p2"},
	}
	data, err := codec.Marshal(in)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var out CreateExpenseRequest
	if err := codec.Unmarshal(data, &out); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if out.Description != in.Description || out.Amount != in.Amount || out.PayerID != in.PayerID {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, *in)
	}
	if len(out.SplitAmong) != 2 {
		t.Errorf("expected 2 split_among entries, got %d", len(out.SplitAmong))
	}
}

func TestJSONCodecEmptyBody(t *testing.T) {
	codec := jsonCodec{}

	var out ListPeopleRequest
	if err := codec.Unmarshal(nil, &out); err != nil {
		t.Fatalf("expected empty body to unmarshal cleanly, got %v", err)
	}
}

func TestJSONCodecOmitsUnsetSplitFields(t *testing.T) {
	codec := jsonCodec{}

	data, err := codec.Marshal(&CreateExpenseRequest{Description: "Rent", Amount: 900})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	for _, field := range []string{"splits", "split_among", "percents"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("expected %q to be omitted from %s", field, data)
		}
	}
}
