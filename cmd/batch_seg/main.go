package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/teatak/wordlattice/config"
	"github.com/teatak/wordlattice/segmenter"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (default data/config.yaml if present)")
	inputPath := flag.String("input", "data/text.txt", "Input file path")
	outputPath := flag.String("output", "data/corpus.txt", "Output corpus file path")
	dictPaths := flag.String("dict", "", "Comma separated dictionary files (override config)")
	dbPath := flag.String("db", "", "Path to SQLite lexicon (override config)")
	maxRunes := flag.Int("max-runes", 0, "Longest line to segment, longer lines are copied as is (override config)")
	flag.Parse()

	cfg, err := config.Load(config.Resolve(*configPath))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg = config.Merge(cfg, config.Config{
		Dictionaries: config.SplitList(*dictPaths),
		Database:     *dbPath,
		MaxRunes:     *maxRunes,
	})

	// 1. Load Dictionary
	seg, dict, err := segmenter.Load(cfg)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Printf("Loaded dictionary (%d words, total frequency %d)", dict.Len(), dict.Total)

	// 2. Open Files
	inFile, err := os.Open(*inputPath)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer inFile.Close()

	outFile, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer outFile.Close()

	// 3. Process
	st, err := convert(seg, inFile, outFile, cfg.MaxRunes)
	if err != nil {
		log.Printf("Error scanning file: %v", err)
	}
	log.Printf("Done. Processed %d lines (%d unsegmentable, %d over %d runes). Saved to %s",
		st.lines, st.failed, st.tooLong, cfg.MaxRunes, *outputPath)
}

type stats struct {
	lines   int
	failed  int
	tooLong int
}

// convert writes one space separated line per non-empty input line. Lines that
// cannot be segmented, or are longer than maxRunes (when positive), are
// written unchanged.
func convert(seg *segmenter.Segmenter, in io.Reader, out io.Writer, maxRunes int) (stats, error) {
	var st stats
	writer := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if maxRunes > 0 && utf8.RuneCountInString(line) > maxRunes {
			st.tooLong++
			if _, err := fmt.Fprintln(writer, line); err != nil {
				return st, err
			}
			st.lines++
			continue
		}

		parts, err := seg.Cut(line)
		if err != nil {
			st.failed++
			if st.failed <= 10 {
				log.Printf("Line %d left unsegmented: %v", st.lines+1, err)
			}
			parts = []string{line}
		}

		if _, err := fmt.Fprintln(writer, strings.Join(parts, " ")); err != nil {
			return st, err
		}
		st.lines++
		if st.lines%1000 == 0 {
			log.Printf("Processed %d lines...", st.lines)
		}
	}

	if err := scanner.Err(); err != nil {
		writer.Flush()
		return st, err
	}
	return st, writer.Flush()
}
