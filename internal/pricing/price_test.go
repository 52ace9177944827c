package pricing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  string
	}{
		{name: "suffix symbol", input: "12.99 €", want: "12.99"},
		{name: "prefix symbol", input: "€12.99", want: "12.99"},
		{name: "nil", input: nil, want: "0"},
		{name: "letters", input: "abc", want: "0"},
		{name: "float", input: 4.5, want: "4.5"},
		{name: "int", input: 3, want: "3"},
		{name: "negative sign stripped", input: "-5", want: "5"},
		{name: "second dot ends number", input: "1.2.3", want: "1.2"},
		{name: "bool", input: true, want: "0"},
		{name: "price type", input: Price("€ 7.10"), want: "7.1"},
	}
	for _, tc := range cases {
		got := ParsePrice(tc.input)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("%s: want %s got %s", tc.name, tc.want, got.String())
		}
	}
}

func TestParseAmountTolerant(t *testing.T) {
	cases := map[string]string{
		"1.50":   "1.5",
		" 2":     "2",
		"1.50€":  "1.5",
		"€1.50":  "0",
		"":       "0",
		".5":     "0.5",
		"3.":     "3",
		"1e2":    "100",
		"-0.25":  "-0.25",
		"abc1.0": "0",
	}
	for input, want := range cases {
		got := ParseAmount(input)
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("ParseAmount(%q) want %s got %s", input, want, got.String())
		}
	}
	if !ParseAmount(math.NaN()).IsZero() {
		t.Fatalf("NaN should parse as zero")
	}
	if !ParseAmount(struct{}{}).IsZero() {
		t.Fatalf("unknown type should parse as zero")
	}
}

func TestPriceJSONAcceptsStringAndNumber(t *testing.T) {
	var payload struct {
		A Price `json:"a"`
		B Price `json:"b"`
		C Price `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"1.50","b":2.25,"c":null}`), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.A != "1.50" || payload.B != "2.25" || payload.C != "" {
		t.Fatalf("unexpected prices: %+v", payload)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"a":"1.50","b":"2.25","c":""}` {
		t.Fatalf("unexpected json: %s", string(out))
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(decimal.RequireFromString("12.5")); got != "€12.50" {
		t.Fatalf("want €12.50 got %s", got)
	}
	if got := NewFormatter("$").Format(decimal.NewFromInt(3)); got != "$3.00" {
		t.Fatalf("want $3.00 got %s", got)
	}
	if got := NewFormatter("  ").Format(decimal.RequireFromString("0.005")); got != "€0.01" {
		t.Fatalf("want €0.01 got %s", got)
	}
}
