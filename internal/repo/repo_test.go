package repo

import "testing"

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		owner   string
		repo    string
		wantErr bool
	}{
		{
			name:    "SSH address",
			address: "git@github.com:acme/widgets.git",
			owner:   "acme",
			repo:    "widgets",
		},
		{
			name:    "SSH address without .git",
			address: "git@github.com:acme/widgets",
			owner:   "acme",
			repo:    "widgets",
		},
		{
			name:    "HTTPS address",
			address: "https://github.com/acme/widgets.git",
			owner:   "acme",
			repo:    "widgets",
		},
		{
			name:    "HTTPS address with trailing slash",
			address: "https://github.com/acme/widgets/",
			owner:   "acme",
			repo:    "widgets",
		},
		{
			name:    "bare owner/name",
			address: "acme/widgets",
			owner:   "acme",
			repo:    "widgets",
		},
		{
			name:    "surrounding whitespace",
			address: "  git@github.com:acme/widgets.git\n",
			owner:   "acme",
			repo:    "widgets",
		},
		{
			name:    "empty",
			address: "",
			wantErr: true,
		},
		{
			name:    "missing name",
			address: "git@github.com:acme",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseAddress(tt.address)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAddress(%q) expected error, got %+v", tt.address, ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddress(%q) unexpected error: %v", tt.address, err)
			}
			if ref.Owner != tt.owner || ref.Name != tt.repo {
				t.Errorf("ParseAddress(%q) = %s/%s, want %s/%s", tt.address, ref.Owner, ref.Name, tt.owner, tt.repo)
			}
		})
	}
}

func TestParseAddressIdempotent(t *testing.T) {
	const address = "git@github.com:acme/widgets.git"
	a, err := ParseAddress(address)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseAddress(address)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("parsing the same address twice differs: %+v vs %+v", a, b)
	}
}

func TestResultKey(t *testing.T) {
	ref := Ref{Address: "git@github.com:acme/widgets.git", Owner: "acme", Name: "widgets"}
	if got, want := ref.ResultKey("main"), "acme/widgets:main"; got != want {
		t.Errorf("ResultKey = %q, want %q", got, want)
	}
	if got, want := ref.FullName(), "acme/widgets"; got != want {
		t.Errorf("FullName = %q, want %q", got, want)
	}
}
