package posting

import "testing"

func TestParseState(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"unnotified", "notified", "suppressed"} {
		if _, err := ParseState(valid); err != nil {
			t.Fatalf("ParseState(%q): %v", valid, err)
		}
	}

	for _, invalid := range []string{"", "sent", "UNNOTIFIED"} {
		if _, err := ParseState(invalid); err == nil {
			t.Fatalf("ParseState(%q): want an error", invalid)
		}
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to State
		allowed  bool
	}{
		{StateUnnotified, StateNotified, true},
		{StateNotified, StateUnnotified, false},
		{StateNotified, StateNotified, false},
		{StateUnnotified, StateSuppressed, false},
		{StateSuppressed, StateNotified, false},
		{StateSuppressed, StateUnnotified, false},
	}

	for _, tc := range cases {
		if got := IsTransitionAllowed(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("IsTransitionAllowed(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestPending(t *testing.T) {
	t.Parallel()

	if !Pending(StateUnnotified) {
		t.Fatal("unnotified postings are pending")
	}
	if Pending(StateNotified) || Pending(StateSuppressed) {
		t.Fatal("delivered and suppressed postings are not pending")
	}
}

func TestRawPostingValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		raw     RawPosting
		wantErr bool
	}{
		{"link only", RawPosting{Link: "https://jobs/1"}, false},
		{"title only", RawPosting{Title: "Backend Intern"}, false},
		{"both empty", RawPosting{}, true},
		{"whitespace identity", RawPosting{Link: "  ", Title: "\t"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.raw.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("want ErrMalformed")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("validate: %v", err)
			}
		})
	}
}
