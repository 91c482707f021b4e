package service

import (
	"strings"
	"unicode"
)

// vulgarWords is the blocked vocabulary, Polish and English. Matching is
// whole-word on lowercased input; substrings inside longer words pass.
var vulgarWords = []string{
	// Polish
	"kurwa", "kurwy", "kurwo", "kurwą", "kurwie", "kurewski",
	"chuj", "chuja", "chuju", "chujem", "huj",
	"dziwka", "dziwki", "dziwko", "dziwką",
	"pierdol", "pierdolić", "pierdoli", "pierdolę",
	"jebać", "jebak", "jebane", "jebany", "jebana",
	"dupek", "dupa", "dupie", "dupą", "dupsko",
	"suka", "suko", "suki", "sukinsyn",
	"skurwysyn", "skurwiel", "skurwysynowski",
	"pizda", "pizdy", "pizdo", "pizdą",
	"gówno", "gowno", "gówna",
	"spierdalaj", "spierdala", "spierdalać",
	"zajebisty", "zajebiste", "zajebista",
	"kutas", "kutasa", "kutasie",
	"cipka", "cipa",
	"srać", "sraka",
	"pierdzieć", "pierdnąć",

	// English
	"fuck", "fucking", "fucker", "fucked", "fucks",
	"shit", "shitty", "shithead",
	"bitch", "bitches", "bitching",
	"ass", "asshole", "asses",
	"damn", "damned", "damnit",
	"cunt", "cunts",
	"dick", "dickhead", "dicks",
	"pussy", "pussies",
	"bastard", "bastards",
	"whore", "whores",
	"slut", "sluts", "slutty",
	"cock", "cocks",
	"piss", "pissed", "pissing",
	"motherfucker", "motherfucking",
	"bullshit",
	"nigga", "nigger",
	"retard", "retarded",
}

// ContentFilter screens artist and title text against the blocked vocabulary.
type ContentFilter struct {
	words map[string]struct{}
}

// NewContentFilter builds a filter over the default vocabulary plus any
// extra configured words.
func NewContentFilter(extraWords ...string) *ContentFilter {
	words := make(map[string]struct{}, len(vulgarWords)+len(extraWords))
	for _, word := range vulgarWords {
		words[strings.ToLower(word)] = struct{}{}
	}
	for _, word := range extraWords {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			words[word] = struct{}{}
		}
	}
	return &ContentFilter{words: words}
}

// ContainsVulgar reports whether any whole word of text is blocked.
// Tokens split on any rune that is not a letter or digit, so word
// boundaries work for Polish diacritics as well.
func (f *ContentFilter) ContainsVulgar(text string) bool {
	if text == "" {
		return false
	}
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if _, blocked := f.words[token]; blocked {
			return true
		}
	}
	return false
}

// Check screens artist before title and returns the matching rejection
// error, or nil when both fields are clean.
func (f *ContentFilter) Check(artist, title string) error {
	if f.ContainsVulgar(artist) {
		return ErrVulgarArtist
	}
	if f.ContainsVulgar(title) {
		return ErrVulgarTitle
	}
	return nil
}
