package utils

import "testing"

func TestValidateNIK(t *testing.T) {
	cases := []struct {
		nik  string
		want bool
	}{
		{"3201011503990001", true},
		{"0000000000000000", true},
		{"320101150399000", false},   // 15 digits
		{"32010115039900011", false}, // 17 digits
		{"32010115039900ab", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateNIK(tc.nik); got != tc.want {
			t.Errorf("ValidateNIK(%q) = %v, want %v", tc.nik, got, tc.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("short"); ok {
		t.Errorf("short password accepted")
	}
	if ok, msg := ValidatePassword("long-enough-secret"); !ok {
		t.Errorf("valid password rejected: %s", msg)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeInput = %q", got)
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("rahasia-desa")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("rahasia-desa", hash) {
		t.Fatalf("correct password rejected")
	}
	if CheckPasswordHash("salah", hash) {
		t.Fatalf("wrong password accepted")
	}
}

func TestStoredFilename(t *testing.T) {
	a := StoredFilename("KTP Lama.PDF")
	b := StoredFilename("KTP Lama.PDF")
	if a == b {
		t.Fatalf("stored names must be unique, got %q twice", a)
	}
	if len(a) < 5 || a[len(a)-4:] != ".pdf" {
		t.Fatalf("extension not preserved lowercase: %q", a)
	}
	if c := StoredFilename("noext"); len(c) == 0 || c[len(c)-1] == '.' {
		t.Fatalf("unexpected name for extensionless file: %q", c)
	}
}
