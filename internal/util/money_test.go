package util

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "plain decimal", input: "2.646", want: 2.646},
		{name: "dollar sign", input: "$2.65", want: 2.65},
		{name: "currency code", input: "USD 2,646.00", want: 2646},
		{name: "decimal comma", input: "2,65", want: 2.65},
		{name: "integer", input: "3", want: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := ParseMoney(tc.input)
			if parsed.Amount == nil {
				t.Fatalf("amount is nil")
			}
			if *parsed.Amount != tc.want {
				t.Fatalf("got %v want %v", *parsed.Amount, tc.want)
			}
		})
	}
}

func TestParseMoneyNoAmount(t *testing.T) {
	for _, input := range []string{"", "TBD", "n/a"} {
		if parsed := ParseMoney(input); parsed.Amount != nil {
			t.Fatalf("input %q should not parse, got %v", input, *parsed.Amount)
		}
	}
}

func TestParseFlag(t *testing.T) {
	if ParseFlag("") != nil {
		t.Fatalf("empty cell must stay undecided")
	}
	if v := ParseFlag("Y"); v == nil || !*v {
		t.Fatalf("Y must mark presence")
	}
	if v := ParseFlag("No"); v == nil || *v {
		t.Fatalf("No must mark absence")
	}
	if v := ParseFlag("RFID Hangtag 2x3"); v == nil || !*v {
		t.Fatalf("spec text counts as presence")
	}
}
