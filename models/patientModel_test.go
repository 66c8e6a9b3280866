package models

import (
	"testing"
	"time"
)

func TestAgeAtUsesCalendarYears(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		birth time.Time
		want  int
	}{
		// Only the year component counts; a birthday later in the year
		// still yields the full year difference.
		{time.Date(2008, time.December, 31, 0, 0, 0, 0, time.UTC), 18},
		{time.Date(2008, time.January, 1, 0, 0, 0, 0, time.UTC), 18},
		{time.Date(1996, time.June, 15, 0, 0, 0, 0, time.UTC), 30},
		{time.Date(1976, time.June, 15, 0, 0, 0, 0, time.UTC), 50},
		{time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tc := range cases {
		p := Patient{BirthDate: tc.birth}
		if got := p.AgeAt(now); got != tc.want {
			t.Errorf("AgeAt(birth=%v) = %d, want %d", tc.birth, got, tc.want)
		}
	}
}

func TestLocationToken(t *testing.T) {
	cases := []struct {
		address string
		want    string
	}{
		{"Jl. Melati 1, Jakarta", "Jakarta"},
		{"Jl. Mawar 2,  Jakarta ", "Jakarta"},
		{"Gang A, RT 3, Bandung", "Bandung"},
		{"Surabaya", "Surabaya"},
		{"   ", ""},
		{"", ""},
	}
	for _, tc := range cases {
		p := Patient{Address: tc.address}
		if got := p.LocationToken(); got != tc.want {
			t.Errorf("LocationToken(%q) = %q, want %q", tc.address, got, tc.want)
		}
	}
}

func TestProfileComplete(t *testing.T) {
	email := "siti@example.com"
	blood := "A"

	complete := Patient{Email: &email, BloodType: &blood, Address: "Jl. Melati, Jakarta"}
	if !complete.ProfileComplete() {
		t.Error("complete profile reported incomplete")
	}

	empty := ""
	cases := []Patient{
		{BloodType: &blood, Address: "Jl. Melati"},                // no email
		{Email: &empty, BloodType: &blood, Address: "Jl. Melati"}, // blank email
		{Email: &email, Address: "Jl. Melati"},                    // no blood type
		{Email: &email, BloodType: &blood, Address: "   "},        // blank address
	}
	for i, p := range cases {
		if p.ProfileComplete() {
			t.Errorf("case %d reported complete: %+v", i, p)
		}
	}
}
