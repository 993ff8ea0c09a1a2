package transcript

import (
	"strings"
	"testing"
)

func TestParseModelTier(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        ModelTier
		wantErr     bool
		errContains string
	}{
		{name: "small", input: "small", want: TierSmall},
		{name: "mixed case", input: "Large-V3", want: TierLargeV3},
		{name: "english only", input: "base.en", want: TierBaseEN},
		{name: "padded", input: "  medium ", want: TierMedium},
		{name: "empty uses default", input: "", want: DefaultModelTier},
		{name: "unknown", input: "huge", wantErr: true, errContains: "unknown model tier"},
		{name: "unknown lists valid tiers", input: "xl", wantErr: true, errContains: "tiny, tiny.en, base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModelTier(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseModelTier(%q) expected error, got %q", tt.input, got)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ParseModelTier(%q) error = %v, want error containing %q", tt.input, err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseModelTier(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseModelTier(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestModelTier_SuitableFor(t *testing.T) {
	tests := []struct {
		tier ModelTier
		lang Language
		want bool
	}{
		{TierTiny, English, true},
		{TierTinyEN, English, true},
		{TierTiny, Japanese, false},
		{TierTinyEN, Japanese, false},
		{TierBase, Japanese, true},
		{TierSmall, Japanese, true},
		{TierMediumEN, "de", false},
		{TierLargeV3, "de", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier)+"/"+string(tt.lang), func(t *testing.T) {
			if got := tt.tier.SuitableFor(tt.lang); got != tt.want {
				t.Errorf("%s.SuitableFor(%s) = %v, want %v", tt.tier, tt.lang, got, tt.want)
			}
		})
	}
}

func TestTiers(t *testing.T) {
	tiers := Tiers()
	if len(tiers) == 0 {
		t.Fatal("Tiers() returned an empty catalog")
	}
	if tiers[0].Tier != TierTiny {
		t.Errorf("first tier = %q, want smallest tier %q", tiers[0].Tier, TierTiny)
	}
	for _, info := range tiers {
		if _, err := ParseModelTier(string(info.Tier)); err != nil {
			t.Errorf("catalog tier %q does not parse: %v", info.Tier, err)
		}
	}
}
