package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/teatak/wordlattice/config"
	"github.com/teatak/wordlattice/segmenter"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (default data/config.yaml if present)")
	dictPaths := flag.String("dict", "", "Comma separated dictionary files (override config)")
	dbPath := flag.String("db", "", "Path to SQLite lexicon (override config)")
	heuristic := flag.String("heuristic", "", "Ranking of alternatives: units (discovery order) or zero (ascending cost)")
	k := flag.Int("k", 0, "Return the k-th alternative segmentation (k >= 1) instead of the shortest")
	top := flag.Int("top", 0, "Print the first N alternative segmentations")
	search := flag.Bool("search", false, "Search mode: add dictionary sub-words of long tokens")
	keepAlphaNum := flag.Bool("keep-alnum", false, "Keep ASCII letter/digit runs whole")
	flag.Parse()

	cfg, err := config.Load(config.Resolve(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg = config.Merge(cfg, config.Config{
		Dictionaries: config.SplitList(*dictPaths),
		Database:     *dbPath,
		Heuristic:    *heuristic,
		KeepAlphaNum: *keepAlphaNum,
	})

	seg, dict, err := segmenter.Load(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Loaded %d words.\n", dict.Len())

	r := runner{seg: seg, k: *k, top: *top, search: *search, maxRunes: cfg.MaxRunes}

	// If args provided (non-flag args), segment them
	args := flag.Args()
	if len(args) > 0 {
		if !r.process(os.Stdout, strings.Join(args, " ")) {
			os.Exit(2)
		}
		return
	}

	// Otherwise interactive mode
	r.interactive(os.Stdin, os.Stdout)
}

// runner segments lines. k and top are unset at zero; any other value is
// passed to the alternative searches, which reject values below one.
type runner struct {
	seg      *segmenter.Segmenter
	k        int
	top      int
	search   bool
	maxRunes int
}

// interactive prompts for lines until EOF or "exit".
func (r runner) interactive(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter text to segment ('exit' to quit): ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "exit" {
			return
		}
		if text == "" {
			continue
		}
		r.process(out, text)
	}
}

// process segments one text and prints the tokens joined with "/".
// Failures are printed instead of tokens; it reports success.
func (r runner) process(out io.Writer, text string) bool {
	if n := utf8.RuneCountInString(text); r.maxRunes > 0 && n > r.maxRunes {
		fmt.Fprintf(out, "error: input has %d runes, limit %d\n", n, r.maxRunes)
		return false
	}

	ctx := context.Background()
	switch {
	case r.top != 0:
		alts, err := r.seg.CutTopK(ctx, text, r.top)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		for i, tokens := range alts {
			fmt.Fprintf(out, "%d: %s\n", i+1, strings.Join(tokens, "/"))
		}
		return true
	case r.k != 0:
		tokens, err := r.seg.CutKth(ctx, text, r.k)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		fmt.Fprintln(out, strings.Join(tokens, "/"))
		return true
	}

	var tokens []string
	var err error
	if r.search {
		tokens, err = r.seg.CutSearch(text)
	} else {
		tokens, err = r.seg.Cut(text)
	}
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return false
	}
	fmt.Fprintln(out, strings.Join(tokens, "/"))
	return true
}
