package precedent

import "testing"

func TestStrengthForAuthority_Thresholds(t *testing.T) {
	cases := []struct {
		authority float64
		want      Strength
	}{
		{1.0, StrengthVeryStrong},
		{0.95, StrengthVeryStrong},
		{0.94999, StrengthStrong},
		{0.8, StrengthStrong},
		{0.79999, StrengthModerate},
		{0.6, StrengthModerate},
		{0.59999, StrengthWeak},
		{0.4, StrengthWeak},
		{0.39999, StrengthVeryWeak},
		{0.0, StrengthVeryWeak},
	}
	for _, tc := range cases {
		if got := StrengthForAuthority(tc.authority); got != tc.want {
			t.Errorf("StrengthForAuthority(%v) = %q, want %q", tc.authority, got, tc.want)
		}
	}
}

func TestJurisdictionIsFederal(t *testing.T) {
	cases := []struct {
		j    Jurisdiction
		want bool
	}{
		{"US_Federal", true},
		{"US_Federal_9th_Circuit", true},
		{"US_State_Ohio", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := tc.j.IsFederal(); got != tc.want {
			t.Errorf("Jurisdiction(%q).IsFederal() = %v, want %v", tc.j, got, tc.want)
		}
	}
}

func TestJurisdictionContains(t *testing.T) {
	cases := []struct {
		a, b Jurisdiction
		want bool
	}{
		{"US_Federal", "US_Federal_9th_Circuit", true},
		{"US_Federal_9th_Circuit", "US_Federal", true},
		{"US_State_Ohio", "US_Federal", false},
		{"", "US_Federal", false},
		{"US_Federal", "", false},
	}
	for _, tc := range cases {
		if got := tc.a.Contains(tc.b); got != tc.want {
			t.Errorf("Jurisdiction(%q).Contains(%q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	if !StrengthStrong.IsValid() {
		t.Error("StrengthStrong should be valid")
	}
	if Strength("colossal").IsValid() {
		t.Error("unknown strength should be invalid")
	}
	if !TypeSuperseded.IsValid() {
		t.Error("TypeSuperseded should be valid")
	}
	if Type("binding").IsValid() {
		t.Error("unknown type should be invalid")
	}
}
