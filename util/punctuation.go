package util

import (
	"unicode"
	"unicode/utf8"
)

// punctuationTable lists the marks recognized as whole spans, including
// multi-rune ones such as the double em dash.
var punctuationTable = map[string]struct{}{
	"，": {}, "。": {}, "！": {}, "？": {}, "：": {}, "；": {},
	"（": {}, "）": {}, "【": {}, "】": {}, "《": {}, "》": {},
	"、": {}, "——": {}, "「": {}, "」": {}, "·": {}, "～": {},
	"“": {}, "”": {}, "＂": {}, "′": {}, "℃": {}, "‰": {},
}

var maxPunctuationLen = func() int {
	longest := 1
	for mark := range punctuationTable {
		longest = max(longest, utf8.RuneCountInString(mark))
	}
	return longest
}()

// MaxPunctuationLen returns the length in runes of the longest built-in mark.
func MaxPunctuationLen() int { return maxPunctuationLen }

// IsPunctuation reports whether s is a single punctuation span: an entry of
// the punctuation table, or one rune that is punctuation or a CJK symbol.
func IsPunctuation(s string) bool {
	if _, ok := punctuationTable[s]; ok {
		return true
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return false
	}
	return isPunct(r)
}

func isPunct(r rune) bool {
	if unicode.IsPunct(r) || unicode.IsSymbol(r) {
		return true
	}
	// CJK Symbols and Punctuation
	if r >= 0x3000 && r <= 0x303F {
		return true
	}
	// Full-width forms
	if r >= 0xFF00 && r <= 0xFFEF {
		return !isFullWidthAlphaNum(r)
	}
	return false
}

// isFullWidthAlphaNum covers ０-９, Ａ-Ｚ and ａ-ｚ, which share the
// full-width block with punctuation but are not marks.
func isFullWidthAlphaNum(r rune) bool {
	return (r >= 0xFF10 && r <= 0xFF19) || (r >= 0xFF21 && r <= 0xFF3A) || (r >= 0xFF41 && r <= 0xFF5A)
}

// ContainsPunctuation checks if any part of the string contains punctuation or special symbols.
func ContainsPunctuation(s string) bool {
	if _, ok := punctuationTable[s]; ok {
		return true
	}
	for _, r := range s {
		if isPunct(r) {
			return true
		}
	}
	return false
}
