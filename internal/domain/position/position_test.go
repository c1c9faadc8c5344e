package position

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code Code
		want Role
	}{
		{code: "GK", want: RoleKeeper},
		{code: "CB", want: RoleDefender},
		{code: "RWB", want: RoleDefender},
		{code: "CDM", want: RoleMidfielder},
		{code: "LM", want: RoleMidfielder},
		{code: "CAM", want: RoleMidfielder},
		{code: "RW", want: RoleForward},
		{code: "CF", want: RoleForward},
		{code: "RST", want: RoleForward},
	}

	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			got, err := Classify(tc.code)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected role: got=%s want=%s", got, tc.want)
			}
		})
	}
}

func TestClassifyUnknownCode(t *testing.T) {
	if _, err := Classify("SW"); !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("expected ErrUnknownPosition, got %v", err)
	}
	if _, err := FallbackSlots(""); !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("expected ErrUnknownPosition, got %v", err)
	}
}

func TestFallbackListsAreTotal(t *testing.T) {
	for _, code := range KnownCodes() {
		fallbacks, err := FallbackSlots(code)
		if err != nil {
			t.Fatalf("fallback %s: %v", code, err)
		}
		if len(fallbacks) == 0 {
			t.Fatalf("empty fallback list for %s", code)
		}
		if fallbacks[0] != code {
			t.Fatalf("fallback list for %s must start with itself, got %v", code, fallbacks)
		}

		seen := make(map[Code]struct{}, len(fallbacks))
		for _, fb := range fallbacks {
			if !Known(fb) {
				t.Fatalf("fallback %s of %s is not a known code", fb, code)
			}
			if _, dup := seen[fb]; dup {
				t.Fatalf("duplicate fallback %s for %s", fb, code)
			}
			seen[fb] = struct{}{}
		}
	}

	gk, _ := FallbackSlots("GK")
	if len(gk) != 1 {
		t.Fatalf("keeper must only fall back to itself, got %v", gk)
	}
}

func TestFallbackSlotsReturnsCopy(t *testing.T) {
	first, _ := FallbackSlots("CM")
	first[0] = "GK"

	second, _ := FallbackSlots("CM")
	if second[0] != "CM" {
		t.Fatalf("fallback table mutated through returned slice: %v", second)
	}
}

func TestSlotCode(t *testing.T) {
	tests := map[string]Code{
		"CB1":  "CB",
		"ST2":  "ST",
		"GK":   "GK",
		"cam":  "CAM",
		" LW ": "LW",
		"12":   "",
	}
	for in, want := range tests {
		if got := SlotCode(in); got != want {
			t.Fatalf("SlotCode(%q): got=%q want=%q", in, got, want)
		}
	}
}
