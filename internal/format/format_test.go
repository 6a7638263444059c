package format

import (
	"math"
	"testing"
	"time"
)

func TestUSDPrice(t *testing.T) {
	cases := map[float64]string{
		0:          "$0.00",
		1234.5:     "$1,234.50",
		1:          "$1.00",
		0.1234:     "$0.1234",
		0.012345:   "$0.0123",
		0.00001234: "$0.00001234",
		-2.5:       "-$2.50",
	}
	for in, want := range cases {
		if got := USDPrice(in); got != want {
			t.Fatalf("USDPrice(%v) = %q, want %q", in, got, want)
		}
	}
	if got := USDPrice(math.NaN()); got != Placeholder {
		t.Fatalf("expected placeholder for NaN, got %q", got)
	}
}

func TestCompactUSD(t *testing.T) {
	cases := map[float64]string{
		999:           "$999",
		12_300:        "$12.3K",
		1_000_000:     "$1M",
		1_234_567:     "$1.23M",
		456_000_000:   "$456M",
		2_500_000_000: "$2.5B",
	}
	for in, want := range cases {
		if got := CompactUSD(in); got != want {
			t.Fatalf("CompactUSD(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPercentAndTrend(t *testing.T) {
	if got := Percent(5.2); got != "+5.20%" {
		t.Fatalf("got %q", got)
	}
	if got := Percent(-0.75); got != "-0.75%" {
		t.Fatalf("got %q", got)
	}
	if got := Percent(0); got != "0.00%" {
		t.Fatalf("got %q", got)
	}
	if Trend(1) != "up" || Trend(-1) != "down" || Trend(0) != "flat" {
		t.Fatalf("unexpected trend classification")
	}
}

func TestTimestamp(t *testing.T) {
	if got := Timestamp(time.Time{}); got != Placeholder {
		t.Fatalf("zero time should render placeholder, got %q", got)
	}
	ts := time.Date(2025, 3, 4, 5, 6, 0, 0, time.FixedZone("JST", 9*60*60))
	if got := Timestamp(ts); got != "Mar 3, 2025 20:06 UTC" {
		t.Fatalf("got %q", got)
	}
}
