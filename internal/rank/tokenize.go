package rank

import (
	"path/filepath"
	"strings"
	"unicode"
)

// stopWords are filtered out of every token stream. English and Russian
// function words plus identifier noise that saturates code-heavy text.
var stopWords = map[string]bool{
	// English
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "been": true, "this": true, "that": true,
	"these": true, "those": true, "with": true, "from": true, "into": true,
	"about": true, "then": true, "than": true, "them": true, "they": true,
	"their": true, "there": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "will": true, "would": true, "should": true,
	"could": true, "were": true, "your": true, "some": true, "more": true,
	"very": true, "just": true, "also": true, "only": true, "over": true,
	"such": true, "its": true, "his": true, "she": true, "him": true,
	"how": true, "why": true, "who": true, "did": true, "does": true,
	"doing": true, "done": true,
	// Russian
	"это": true, "как": true, "так": true, "его": true, "но": true,
	"да": true, "ты": true, "же": true, "вы": true, "за": true,
	"бы": true, "по": true, "только": true, "ее": true, "мне": true,
	"было": true, "вот": true, "от": true, "меня": true, "еще": true,
	"нет": true, "из": true, "ему": true, "теперь": true, "когда": true,
	"даже": true, "ну": true, "вдруг": true, "ли": true, "если": true,
	"уже": true, "или": true, "ни": true, "быть": true, "был": true,
	"него": true, "до": true, "вас": true, "нибудь": true, "вам": true,
	"ведь": true, "там": true, "потом": true, "себя": true, "ничего": true,
	"ей": true, "может": true, "они": true, "тут": true, "где": true,
	"есть": true, "надо": true, "ней": true, "для": true, "мы": true,
	"тебя": true, "их": true, "чем": true, "была": true, "сам": true,
	"чтоб": true, "без": true, "будто": true, "чего": true, "раз": true,
	"тоже": true, "себе": true, "под": true, "будет": true, "тогда": true,
	"кто": true, "этот": true, "что": true, "на": true, "не": true,
	// identifier noise
	"const": true, "var": true, "let": true, "func": true, "function": true,
	"return": true, "import": true, "export": true, "class": true,
	"interface": true, "type": true, "struct": true, "string": true,
	"int": true, "bool": true, "true": true, "false": true, "null": true,
	"nil": true, "undefined": true, "new": true, "self": true,
	"async": true, "await": true, "def": true, "void": true, "err": true,
	"error": true, "public": true, "private": true,
}

// isWordRune reports whether r survives normalization: lowercase ASCII
// word characters plus the Cyrillic block (U+0400–U+04FF).
func isWordRune(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	if r >= '0' && r <= '9' {
		return true
	}
	if r == '_' {
		return true
	}
	return r >= 0x0400 && r <= 0x04FF
}

// keepToken applies the shared token filter: minimum length 2, not a stop
// word, not purely numeric.
func keepToken(tok string) bool {
	if len([]rune(tok)) < 2 {
		return false
	}
	if stopWords[tok] {
		return false
	}
	allDigits := true
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	return !allDigits
}

// Tokenize normalizes free text into keyword tokens: lowercased, punctuation
// stripped, short tokens, stop words, and pure numbers dropped. Empty input
// yields nil.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	var tokens []string
	for _, tok := range strings.Fields(b.String()) {
		if keepToken(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// TokenizePath tokenizes a file or directory path. Each path segment loses
// its extension and is split on camelCase boundaries and on
// hyphen/underscore runs, so "handleUserLogin.js" surfaces "handle",
// "user", "login".
func TokenizePath(path string) []string {
	if path == "" {
		return nil
	}

	path = strings.ReplaceAll(path, "\\", "/")

	var tokens []string
	for _, seg := range strings.Split(path, "/") {
		seg = strings.TrimSuffix(seg, filepath.Ext(seg))
		if len([]rune(seg)) <= 1 {
			continue
		}
		for _, word := range splitSegment(seg) {
			if keepToken(word) {
				tokens = append(tokens, word)
			}
		}
	}
	return tokens
}

// splitSegment breaks a path segment into lowercase words. A camelCase
// boundary is an uppercase letter that follows a lowercase letter.
func splitSegment(seg string) []string {
	var b strings.Builder
	b.Grow(len(seg) + 4)

	prev := rune(0)
	for _, r := range seg {
		if unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}

	splitter := func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	}
	return strings.FieldsFunc(strings.ToLower(b.String()), splitter)
}
