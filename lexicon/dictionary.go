// Package lexicon holds the word list the segmenter consults.
//
// A Dictionary is filled once, from text files or from a SQLite store, and
// then only read. Frequencies and tags are kept for the tools that maintain
// dictionaries; segmentation only asks whether a span is a word or a
// punctuation mark.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/teatak/wordlattice/util"
)

// ErrEmptyWord is returned when adding an empty word.
var ErrEmptyWord = errors.New("lexicon: empty word")

// DefaultFreq is used when a dictionary line has no frequency column.
const DefaultFreq = 1

// Entry is the metadata stored with a word.
type Entry struct {
	Freq int
	Tag  string
}

// Dictionary holds words, their metadata and extra punctuation marks.
type Dictionary struct {
	Total  int
	Words  map[string]Entry
	MaxLen int // longest word in runes
	Loaded bool

	punct    map[string]struct{}
	maxPunct int
}

// NewDictionary creates a new empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		Words: make(map[string]Entry),
		punct: make(map[string]struct{}),
	}
}

// Add inserts or replaces a word. Replacing keeps Total consistent.
func (d *Dictionary) Add(word string, e Entry) error {
	if word == "" {
		return ErrEmptyWord
	}
	if old, ok := d.Words[word]; ok {
		d.Total -= old.Freq
	}
	d.Words[word] = e
	d.Total += e.Freq
	if n := utf8.RuneCountInString(word); n > d.MaxLen {
		d.MaxLen = n
	}
	return nil
}

// AddPunctuation registers extra punctuation marks on top of the built-in table.
func (d *Dictionary) AddPunctuation(marks ...string) {
	if d.punct == nil {
		d.punct = make(map[string]struct{})
	}
	for _, m := range marks {
		if m != "" {
			d.punct[m] = struct{}{}
			d.maxPunct = max(d.maxPunct, utf8.RuneCountInString(m))
		}
	}
}

// MaxSpan returns the longest span in runes that can be a word or a
// punctuation mark. Lattice building skips longer spans.
func (d *Dictionary) MaxSpan() int {
	return max(d.MaxLen, d.maxPunct, util.MaxPunctuationLen())
}

// Load loads words from a file.
// File format: word [frequency [tag]] (whitespace separated)
func (d *Dictionary) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := d.LoadReader(file); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadReader reads dictionary lines from r. Blank lines and lines starting
// with '#' are skipped; later lines overwrite earlier ones.
func (d *Dictionary) LoadReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		word, e, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if err := d.Add(word, e); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	d.Loaded = true
	return nil
}

// ParseLine parses one dictionary line. ok is false for blank and comment
// lines. An unparsable frequency falls back to DefaultFreq.
func ParseLine(line string) (word string, e Entry, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", Entry{}, false
	}
	parts := strings.Fields(line)
	word = parts[0]
	e.Freq = DefaultFreq
	if len(parts) >= 2 {
		if f, err := strconv.Atoi(parts[1]); err == nil {
			e.Freq = f
		}
	}
	if len(parts) >= 3 {
		e.Tag = parts[2]
	}
	return word, e, true
}

// Lookup returns the entry of a word.
func (d *Dictionary) Lookup(word string) (Entry, bool) {
	e, ok := d.Words[word]
	return e, ok
}

// Contains checks if a word exists in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.Words[word]
	return ok
}

// ContainsWord is Contains under the name the lattice builder expects.
func (d *Dictionary) ContainsWord(word string) bool { return d.Contains(word) }

// IsPunctuation reports whether word is a punctuation mark, either built in
// or registered with AddPunctuation.
func (d *Dictionary) IsPunctuation(word string) bool {
	if _, ok := d.punct[word]; ok {
		return true
	}
	return util.IsPunctuation(word)
}

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.Words) }

// WriteTo writes the dictionary in the text format Load reads, sorted by word.
func (d *Dictionary) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	words := make([]string, 0, len(d.Words))
	for word := range d.Words {
		words = append(words, word)
	}
	slices.Sort(words)
	for _, word := range words {
		e := d.Words[word]
		var written int
		var err error
		if e.Tag != "" {
			written, err = fmt.Fprintf(bw, "%s %d %s\n", word, e.Freq, e.Tag)
		} else {
			written, err = fmt.Fprintf(bw, "%s %d\n", word, e.Freq)
		}
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}
