package cli

import "testing"

func TestParseWhen(t *testing.T) {
	cases := []struct {
		in       string
		wantDate string
		wantTime string // "" means no time-of-day
		wantErr  bool
	}{
		{in: "2024-03-15", wantDate: "2024-03-15"},
		{in: "2024-03-15 09:30", wantDate: "2024-03-15", wantTime: "09:30"},
		{in: "2024-03-15T09:30:45", wantDate: "2024-03-15", wantTime: "09:30"},
		{in: "15/03/2024", wantDate: "2024-03-15"},
		{in: "1/2/2024", wantDate: "2024-02-01"},
		{in: "15/03/2024 9:30", wantDate: "2024-03-15", wantTime: "09:30"},
		{in: "2024-03-15T09:30:00Z", wantDate: "2024-03-15", wantTime: "09:30"},
		// Offsets convert to UTC before storage.
		{in: "2024-03-15T23:30:00-03:00", wantDate: "2024-03-16", wantTime: "02:30"},
		{in: "", wantErr: true},
		{in: "soon", wantErr: true},
		{in: "2024-13-01", wantErr: true},
		{in: "32/01/2024", wantErr: true},
		{in: "2024-03-15 25:00", wantErr: true},
	}

	for _, tc := range cases {
		got, err := parseWhen(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseWhen(%q): expected error, got %+v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseWhen(%q): %v", tc.in, err)
		}
		if got.Date != tc.wantDate {
			t.Fatalf("parseWhen(%q): date %q, want %q", tc.in, got.Date, tc.wantDate)
		}
		if tc.wantTime == "" {
			if got.Time != nil {
				t.Fatalf("parseWhen(%q): expected no time, got %q", tc.in, *got.Time)
			}
			continue
		}
		if got.Time == nil || *got.Time != tc.wantTime {
			t.Fatalf("parseWhen(%q): time %v, want %q", tc.in, got.Time, tc.wantTime)
		}
	}
}
