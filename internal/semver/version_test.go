package semver

import (
	"errors"
	"strings"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    SemVersion
		wantErr bool
	}{
		{input: "1.2.3", want: SemVersion{1, 2, 3}},
		{input: "0.0.0", want: SemVersion{0, 0, 0}},
		{input: "  10.20.30\n", want: SemVersion{10, 20, 30}},
		{input: "01.2.3", want: SemVersion{1, 2, 3}},
		{input: "1.2", wantErr: true},
		{input: "1.2.3.4", wantErr: true},
		{input: "v1.2.3", wantErr: true},
		{input: "1.2.3-beta.1", wantErr: true},
		{input: "1.2.3+build", wantErr: true},
		{input: "1.-2.3", wantErr: true},
		{input: "a.b.c", wantErr: true},
		{input: "", wantErr: true},
		{input: strings.Repeat("1", 130) + ".0.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidVersion) {
					t.Fatalf("ParseVersion(%q) error = %v, want ErrInvalidVersion", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseImpact(t *testing.T) {
	tests := []struct {
		input   string
		want    Impact
		wantErr bool
	}{
		{"", ImpactPatch, false},
		{"patch", ImpactPatch, false},
		{"minor", ImpactMinor, false},
		{"major", ImpactMajor, false},
		{"MAJOR", "", true},
		{"auto", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseImpact(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidImpact) {
					t.Fatalf("expected ErrInvalidImpact, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseImpact(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		current string
		impact  Impact
		want    string
	}{
		{"1.2.3", ImpactMajor, "2.0.0"},
		{"1.2.3", ImpactMinor, "1.3.0"},
		{"1.2.3", ImpactPatch, "1.2.4"},
		{"0.0.0", ImpactPatch, "0.0.1"},
		{"0.9.9", ImpactMinor, "0.10.0"},
		{"9.9.9", ImpactMajor, "10.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.current+"/"+string(tt.impact), func(t *testing.T) {
			got, err := BumpString(tt.current, tt.impact)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BumpString(%q, %s) = %q, want %q", tt.current, tt.impact, got, tt.want)
			}
		})
	}
}

func TestBump_AllImpactsAcrossGrid(t *testing.T) {
	for major := range 3 {
		for minor := range 3 {
			for patch := range 3 {
				v := SemVersion{major, minor, patch}
				for _, impact := range Impacts {
					got, err := Bump(v, impact)
					if err != nil {
						t.Fatalf("Bump(%s, %s): %v", v, impact, err)
					}
					var want SemVersion
					switch impact {
					case ImpactMajor:
						want = SemVersion{major + 1, 0, 0}
					case ImpactMinor:
						want = SemVersion{major, minor + 1, 0}
					case ImpactPatch:
						want = SemVersion{major, minor, patch + 1}
					}
					if got != want {
						t.Errorf("Bump(%s, %s) = %s, want %s", v, impact, got, want)
					}
				}
			}
		}
	}
}

func TestBump_InvalidInputs(t *testing.T) {
	if _, err := Bump(SemVersion{1, 0, 0}, Impact("huge")); !errors.Is(err, ErrInvalidImpact) {
		t.Errorf("expected ErrInvalidImpact, got %v", err)
	}
	if _, err := BumpString("1.0", ImpactPatch); !errors.Is(err, ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestJoinImpacts(t *testing.T) {
	if got := JoinImpacts("|"); got != "major|minor|patch" {
		t.Errorf("JoinImpacts(|) = %q", got)
	}

	_, err := ParseImpact("huge")
	if err == nil || !strings.Contains(err.Error(), "(use major, minor, patch)") {
		t.Errorf("ParseImpact error should list the accepted impacts, got %v", err)
	}
}

func TestSemVersion_Compare(t *testing.T) {
	tests := []struct {
		a, b SemVersion
		want int
	}{
		{SemVersion{1, 0, 0}, SemVersion{1, 0, 0}, 0},
		{SemVersion{1, 0, 0}, SemVersion{2, 0, 0}, -1},
		{SemVersion{1, 3, 0}, SemVersion{1, 2, 9}, 1},
		{SemVersion{1, 2, 3}, SemVersion{1, 2, 4}, -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompareFormatter(t *testing.T) {
	tests := []struct {
		a, b   string
		want   int
		wantOK bool
	}{
		{"0.9.0", "0.9.1", -1, true},
		{"v0.10.0", "0.9.1", 1, true},
		{"1.0.0", "1.0.0", 0, true},
		{"1.0.0-rc.1", "1.0.0", -1, true},
		{"nightly", "1.0.0", 0, false},
	}
	for _, tt := range tests {
		got, ok := CompareFormatter(tt.a, tt.b)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CompareFormatter(%q, %q) = (%d, %v), want (%d, %v)", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
		}
	}
}
