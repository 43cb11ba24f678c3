package invoice

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name string
		raw  string
		loc  *time.Location
		want string
	}{
		{name: "rfc3339 utc", raw: "2024-12-23T00:00:00Z", loc: time.UTC, want: "23 Dec, 2024"},
		{name: "rfc3339 converted forward", raw: "2024-12-23T20:00:00Z", loc: kolkata, want: "24 Dec, 2024"},
		{name: "fractional seconds", raw: "2024-01-05T10:11:12.345Z", loc: time.UTC, want: "05 Jan, 2024"},
		{name: "date only", raw: "2024-12-23", loc: time.UTC, want: "23 Dec, 2024"},
		{name: "zoneless read in location", raw: "2024-03-01T23:30:00", loc: kolkata, want: "01 Mar, 2024"},
		{name: "space separated", raw: "2024-07-09 08:00:00", loc: time.UTC, want: "09 Jul, 2024"},
		{name: "surrounding whitespace", raw: "  2024-12-23  ", loc: time.UTC, want: "23 Dec, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDate(tt.raw, tt.loc)
			if err != nil {
				t.Fatalf("FormatDate(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatDate_Invalid(t *testing.T) {
	for _, raw := range []string{"", "tomorrow", "23/12/2024", "2024-13-45"} {
		_, err := FormatDate(raw, time.UTC)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("FormatDate(%q) error = %v, want *FormatError", raw, err)
			continue
		}
		if !errors.Is(err, ErrUnparseableDate) {
			t.Errorf("FormatDate(%q) should wrap ErrUnparseableDate", raw)
		}
		if fe.Kind != "date" {
			t.Errorf("Kind = %q", fe.Kind)
		}
	}
}

func TestDisplayDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "", want: NotSpecified},
		{raw: "   ", want: NotSpecified},
		{raw: "garbage", want: InvalidDate},
		{raw: "2024-12-23", want: "23 Dec, 2024"},
	}
	for _, tt := range tests {
		if got := DisplayDate(tt.raw, time.UTC); got != tt.want {
			t.Errorf("DisplayDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		in   Amount
		want string
	}{
		{name: "one decimal padded", in: NewAmount(1234.5), want: "₹ 1234.50"},
		{name: "integer", in: NewAmount(100), want: "₹ 100.00"},
		{name: "rounded", in: NewAmount(0.126), want: "₹ 0.13"},
		{name: "large", in: NewAmount(6739289.19), want: "₹ 6739289.19"},
		{name: "negative", in: NewAmount(-12), want: "₹ -12.00"},
		{name: "missing", in: Amount{}, want: NotAvailable},
		{name: "nan", in: NewAmount(math.NaN()), want: NotAvailable},
		{name: "inf", in: NewAmount(math.Inf(1)), want: NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(tt.in); got != tt.want {
				t.Errorf("FormatAmount(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAmountFromAny(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: 1234.5, want: "₹ 1234.50"},
		{in: 7, want: "₹ 7.00"},
		{in: int64(3), want: "₹ 3.00"},
		{in: json.Number("9.9"), want: "₹ 9.90"},
		{in: json.Number("x"), want: NotAvailable},
		{in: "abc", want: NotAvailable},
		{in: "100", want: NotAvailable},
		{in: nil, want: NotAvailable},
		{in: true, want: NotAvailable},
	}
	for _, tt := range tests {
		if got := FormatAmount(AmountFromAny(tt.in)); got != tt.want {
			t.Errorf("FormatAmount(AmountFromAny(%#v)) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAmount_JSON(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
		value float64
	}{
		{raw: `12.5`, valid: true, value: 12.5},
		{raw: `0`, valid: true, value: 0},
		{raw: `null`, valid: false},
		{raw: `"12.5"`, valid: false},
		{raw: `{}`, valid: false},
	}
	for _, tt := range tests {
		var a Amount
		if err := json.Unmarshal([]byte(tt.raw), &a); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tt.raw, err)
		}
		if a.Valid != tt.valid || a.Value != tt.value {
			t.Errorf("Unmarshal(%s) = %+v", tt.raw, a)
		}
	}

	out, err := json.Marshal(struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}{A: NewAmount(3), B: Amount{}})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":3,"b":null}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestDifficultyLabel(t *testing.T) {
	tests := map[string]string{
		"few-issues":   "Few Issues",
		"no-issues":    "No Issues",
		"MANY_ISSUES":  "Many Issues",
		"":             "",
		"-":            "",
		"needs review": "Needs Review",
	}
	for in, want := range tests {
		if got := DifficultyLabel(in); got != want {
			t.Errorf("DifficultyLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatSyncTime(t *testing.T) {
	tests := []struct {
		hour, min int
		want      string
	}{
		{0, 5, "12:05 AM"},
		{9, 0, "9:00 AM"},
		{12, 30, "12:30 PM"},
		{23, 59, "11:59 PM"},
	}
	for _, tt := range tests {
		ts := time.Date(2024, 12, 23, tt.hour, tt.min, 0, 0, time.UTC)
		if got := FormatSyncTime(ts); got != tt.want {
			t.Errorf("FormatSyncTime(%02d:%02d) = %q, want %q", tt.hour, tt.min, got, tt.want)
		}
	}
}

func TestSummary_SearchFields(t *testing.T) {
	s := Summary{
		InvoiceNumber:     "INV1",
		DueDate:           "2024-12-23",
		InvoiceDifficulty: "few-issues",
		TotalAmount:       NewAmount(100),
	}
	got := s.SearchFields(time.UTC)
	want := []string{UnknownVendor, "INV1", "23 Dec, 2024", "₹ 100.00", "few-issues", "Few Issues"}
	if len(got) != len(want) {
		t.Fatalf("SearchFields() = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProcessedInvoice_SearchFields(t *testing.T) {
	p := ProcessedInvoice{
		Summary:   Summary{VendorName: "Globex", InvoiceNumber: "P-1"},
		PONumbers: "PO-555, PO-556",
	}
	got := p.SearchFields(time.UTC)
	if len(got) != 8 {
		t.Fatalf("SearchFields() = %q, want summary fields plus PO and currency", got)
	}
	if got[6] != "PO-555, PO-556" || got[7] != NotAvailable {
		t.Errorf("PO/currency fields = %q, %q", got[6], got[7])
	}
}
