package exchange

import (
	"math"
	"testing"

	"github.com/bytedance/sonic"
)

func TestFlexFloatVariants(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`1.25`, 1.25},
		{`"1.25"`, 1.25},
		{`""`, 0},
		{`null`, 0},
		{`"not a number"`, 0},
	}
	for _, tc := range cases {
		var f flexFloat
		if err := f.UnmarshalJSON([]byte(tc.in)); err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if float64(f) != tc.want {
			t.Errorf("%s: got %v, want %v", tc.in, float64(f), tc.want)
		}
	}
}

func TestToRecordFullPayload(t *testing.T) {
	payload := `{
		"question": "Will the Fed cut rates in March?",
		"slug": "fed-cut-march",
		"eventSlug": "fed-decision",
		"endDate": "2026-03-18T00:00:00Z",
		"spread": "0.01",
		"liquidity": "50000",
		"competitive": 0.9,
		"volume": "120000",
		"outcomePrices": "[\"0.62\", \"0.38\"]",
		"clobTokenIds": "[\"111\", \"222\"]",
		"clobRewards": [{"rewardsDailyRate": "50"}]
	}`
	var m gammaMarket
	if err := sonic.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rec := m.toRecord()
	if rec.EndDate == nil || rec.EndDate.Year() != 2026 {
		t.Fatalf("end date not parsed: %v", rec.EndDate)
	}
	if rec.YesPrice != 0.62 || rec.NoPrice != 0.38 {
		t.Fatalf("prices = %v/%v", rec.YesPrice, rec.NoPrice)
	}
	if rec.YesTokenID != "111" || rec.NoTokenID != "222" {
		t.Fatalf("tokens = %q/%q", rec.YesTokenID, rec.NoTokenID)
	}
	if rec.DailyRewardRate != 50 {
		t.Fatalf("daily reward rate = %v", rec.DailyRewardRate)
	}
	if rec.Liquidity != 50000 || rec.Volume != 120000 {
		t.Fatalf("liquidity/volume = %v/%v", rec.Liquidity, rec.Volume)
	}
}

func TestParseOutcomePricesFallbacks(t *testing.T) {
	// Missing entirely: even split.
	yes, no := parseOutcomePrices(nil)
	if yes != 0.5 || no != 0.5 {
		t.Fatalf("default split = %v/%v", yes, no)
	}

	// Single-quoted inner array.
	yes, no = parseOutcomePrices([]byte(`"['0.7', '0.3']"`))
	if yes != 0.7 || no != 0.3 {
		t.Fatalf("single-quoted = %v/%v", yes, no)
	}

	// Only yes given: no is the complement.
	yes, no = parseOutcomePrices([]byte(`"[\"0.8\"]"`))
	if yes != 0.8 || math.Abs(no-0.2) > 1e-9 {
		t.Fatalf("complement = %v/%v", yes, no)
	}

	// Numeric array variant.
	yes, no = parseOutcomePrices([]byte(`[0.55, 0.45]`))
	if yes != 0.55 || no != 0.45 {
		t.Fatalf("numeric array = %v/%v", yes, no)
	}

	// Garbage: even split.
	yes, no = parseOutcomePrices([]byte(`"not json"`))
	if yes != 0.5 || no != 0.5 {
		t.Fatalf("garbage = %v/%v", yes, no)
	}
}

func TestClobLevelSizeFallback(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`{"price":"0.45","size":"100"}`, 100},
		{`{"price":"0.45","quantity":"75"}`, 75},
		{`{"price":"0.45","remaining":"30"}`, 30},
		{`{"price":"0.45","quantity":"75","size":"100"}`, 75},
	}
	for _, tc := range cases {
		var l clobLevel
		if err := sonic.Unmarshal([]byte(tc.in), &l); err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if l.size() != tc.want {
			t.Errorf("%s: size = %v, want %v", tc.in, l.size(), tc.want)
		}
	}
}
