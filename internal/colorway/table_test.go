package colorway

import (
	"os"
	"path/filepath"
	"testing"

	"bomcheck/internal"
)

func TestNormalizeForms(t *testing.T) {
	table := Default()
	want := internal.ColorwayKey{Code: "010", Name: "black"}

	cases := []struct {
		name  string
		input string
	}{
		{name: "bare code", input: "010"},
		{name: "code dash name", input: "010-Black"},
		{name: "code space name", input: "010 Black"},
		{name: "code glued to name", input: "010Black"},
		{name: "bare name", input: "Black"},
		{name: "name with stray spaces", input: "  black  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, ok := table.Normalize(tc.input)
			if !ok {
				t.Fatalf("unresolvable")
			}
			if key != want {
				t.Fatalf("got %+v want %+v", key, want)
			}
		})
	}
}

func TestNormalizeUnknownCode(t *testing.T) {
	table := Default()
	key, ok := table.Normalize("999")
	if !ok {
		t.Fatalf("unresolvable")
	}
	if key.Code != "999" || key.Name != "" {
		t.Fatalf("got %+v", key)
	}
}

func TestNormalizeUnresolvable(t *testing.T) {
	table := Default()
	for _, input := range []string{"", "   ", "???", "!!"} {
		if _, ok := table.Normalize(input); ok {
			t.Fatalf("input %q should be unresolvable", input)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	table := Default()
	inputs := []string{"010", "224-Camel Brown", "Everblue", "999", "7-Mist Grey"}
	for _, input := range inputs {
		key, ok := table.Normalize(input)
		if !ok {
			t.Fatalf("input %q unresolvable", input)
		}
		again, ok := table.Normalize(key.Display())
		if !ok {
			t.Fatalf("display %q unresolvable", key.Display())
		}
		if again != key {
			t.Fatalf("not idempotent: %+v -> %+v", key, again)
		}
	}
}

func TestMatchSymmetry(t *testing.T) {
	table := Default()
	refs := []string{"010", "010-Black", "Black", "224", "999", "Camel Brown"}
	for _, a := range refs {
		for _, b := range refs {
			ka, _ := table.Normalize(a)
			kb, _ := table.Normalize(b)
			if Match(ka, kb) != Match(kb, ka) {
				t.Fatalf("asymmetric match for %q / %q", a, b)
			}
		}
	}
}

func TestMatchNameOnly(t *testing.T) {
	table := Default()
	ref, _ := table.Normalize("010")
	bomSide, _ := table.Normalize("224-Black ")
	if got := Match(ref, bomSide); got != internal.MatchNameOnly {
		t.Fatalf("got %s want %s", got, internal.MatchNameOnly)
	}
}

func TestMatchCodeBeatsMissingName(t *testing.T) {
	table := Default()
	a, _ := table.Normalize("999")
	b, _ := table.Normalize("999")
	if Match(a, b) != internal.MatchExact {
		t.Fatalf("equal codes must match")
	}
	c, _ := table.Normalize("998")
	if Match(a, c) != internal.MatchNone {
		t.Fatalf("different codes with no names must not match")
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colorways.csv")
	if err := os.WriteFile(path, []byte("703,Mist Grey\n8,Sea Salt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	key, ok := table.Normalize("Mist Grey")
	if !ok || key.Code != "703" {
		t.Fatalf("csv entry missing: %+v", key)
	}
	key, ok = table.Normalize("008")
	if !ok || key.Name != "sea salt" {
		t.Fatalf("code padding not applied: %+v", key)
	}
	if key, _ := table.Normalize("Black"); key.Code != "010" {
		t.Fatalf("seed entries must survive the merge")
	}
}
