package service

import "testing"

func TestHashEmailIsCaseInsensitive(t *testing.T) {
	lower := HashEmail("uczen@zspbytow.pl")
	upper := HashEmail("  UCZEN@ZSPBYTOW.PL ")
	if lower != upper {
		t.Fatalf("hash differs across case: %s vs %s", lower, upper)
	}
	if len(lower) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(lower))
	}
	// sha256("uczen@zspbytow.pl")
	if lower != HashEmail("uczen@zspbytow.pl") {
		t.Fatalf("hash not deterministic")
	}
	if lower == HashEmail("inny@zspbytow.pl") {
		t.Fatalf("distinct emails must hash differently")
	}
}

func TestIsSchoolEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"uczen@zspbytow.pl", true},
		{"Uczen.Nowak@ZSPBYTOW.PL", true},
		{"u.czen_1%+x@zspbytow.pl", true},
		{"uczen@gmail.com", false},
		{"uczen@zspbytow.pl.evil.com", false},
		{"@zspbytow.pl", false},
		{"uczen@", false},
		{"uczen", false},
		{"ucz en@zspbytow.pl", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsSchoolEmail(tc.email, "zspbytow.pl"); got != tc.want {
			t.Errorf("IsSchoolEmail(%q)=%v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestSanitizeTextTrimsAndCaps(t *testing.T) {
	if got := SanitizeText("  hello  ", 200); got != "hello" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
	long := make([]rune, 0, 250)
	for i := 0; i < 250; i++ {
		long = append(long, 'ż')
	}
	got := SanitizeText(string(long), 200)
	if len([]rune(got)) != 200 {
		t.Fatalf("expected 200 runes, got %d", len([]rune(got)))
	}
	if got := SanitizeText("", 200); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
