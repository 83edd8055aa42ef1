// Package textclean lowercases, strips and tokenizes post text.
package textclean

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	English    = "english"
	Portuguese = "portuguese"

	FallbackLanguage = English
)

// SPACE_CLASS matches Unicode whitespace, including \v, NEL and the
// \x1c-\x1f separators. RE2's \s is ASCII only and leaves out \v.
const SPACE_CLASS = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	urlPattern   = regexp.MustCompile(`http[^` + SPACE_CLASS + `]+|www[^` + SPACE_CLASS + `]+|https[^` + SPACE_CLASS + `]+`)
	punctPattern = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_` + SPACE_CLASS + `]`)
	digitPattern = regexp.MustCompile(`\p{Nd}+`)
)

var languageNames = map[string]string{
	"en":         English,
	"english":    English,
	"inglês":     English,
	"pt":         Portuguese,
	"portuguese": Portuguese,
	"português":  Portuguese,
}

// tokenizers holds the languages with a dedicated word tokenizer. Any other
// language falls back to whitespace splitting.
var tokenizers = map[string]func(string) []string{
	English:    wordTokenize,
	Portuguese: wordTokenize,
}

// ResolveLanguage maps a language name or BCP 47 tag ("pt-BR", "en") to the
// resource name used for tokenizers and stopwords. Unknown inputs are
// returned lowercased so callers can still report them.
func ResolveLanguage(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if lang, ok := languageNames[key]; ok {
		return lang
	}
	if tag, err := language.Parse(key); err == nil {
		base, _ := tag.Base()
		if lang, ok := languageNames[base.String()]; ok {
			return lang
		}
	}
	return key
}

// Cleaner runs the fixed cleaning pipeline for one language. It is not safe
// for concurrent use.
type Cleaner struct {
	Language  string
	tokenize  func(string) []string
	stopwords map[string]struct{}
	lower     cases.Caser
}

func NewCleaner(lang string) *Cleaner {
	resolved := ResolveLanguage(lang)
	c := &Cleaner{
		Language: resolved,
		lower:    cases.Lower(language.Und),
	}

	tokenize, ok := tokenizers[resolved]
	if !ok {
		slog.Debug("[TextClean] No tokenizer for language, splitting on whitespace",
			slog.String("language", resolved))
		tokenize = strings.Fields
	}
	c.tokenize = tokenize

	stopwords, ok := loadStopwords(resolved)
	if !ok {
		slog.Debug("[TextClean] No stopwords for language, using english",
			slog.String("language", resolved))
		stopwords, _ = loadStopwords(FallbackLanguage)
	}
	c.stopwords = stopwords

	return c
}

// Tokens returns the cleaned, stopword-free tokens of text in order.
func (c *Cleaner) Tokens(text string) []string {
	text = c.lower.String(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = punctPattern.ReplaceAllString(text, "")
	text = digitPattern.ReplaceAllString(text, "")
	// Dropping punctuation or digits can glue URL-looking fragments back
	// together; strip them again so a second pass finds nothing new.
	text = urlPattern.ReplaceAllString(text, "")

	raw := c.tokenize(text)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := c.stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Clean returns the tokens and their space-joined form.
func (c *Cleaner) Clean(text string) (string, []string) {
	tokens := c.Tokens(text)
	return strings.Join(tokens, " "), tokens
}

func (c *Cleaner) IsStopword(word string) bool {
	_, ok := c.stopwords[word]
	return ok
}

func wordTokenize(text string) []string {
	return strings.FieldsFunc(text, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Z) || (r >= 0x1c && r <= 0x1f)
}
