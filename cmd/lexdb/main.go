// Command lexdb maintains the SQLite lexicon store.
//
//	lexdb import -db lexicon.db dict_core.txt dict_user.txt
//	lexdb punct  -db lexicon.db ※ Ⅲ
//	lexdb export -db lexicon.db -o dictionary.txt
//	lexdb stats  -db lexicon.db
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/teatak/wordlattice/lexicon"
)

const defaultDB = "data/lexicon.db"

var errUsage = errors.New("usage: lexdb <import|punct|export|stats> [flags] [args]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "import", "punct", "export", "stats":
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	dbPath := fs.String("db", defaultDB, "Path to SQLite lexicon")
	output := fs.String("o", "", "Output file for export (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := lexicon.NewStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch cmd {
	case "import":
		return importFiles(store, fs.Args(), stdout)
	case "punct":
		if err := store.AddPunctuation(fs.Args()...); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Stored %d punctuation marks\n", len(fs.Args()))
		return nil
	case "export":
		return export(store, *output, stdout)
	default:
		return printStats(store, stdout)
	}
}

func importFiles(store *lexicon.Store, paths []string, stdout io.Writer) error {
	if len(paths) == 0 {
		return errors.New("import: no dictionary files given")
	}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		batch, err := store.ImportReader(filepath.Base(p), f)
		f.Close()
		if err != nil {
			return fmt.Errorf("import %s: %w", p, err)
		}
		fmt.Fprintf(stdout, "Imported %d words from %s (batch %s)\n", batch.Entries, p, batch.ID)
	}
	return nil
}

func export(store *lexicon.Store, output string, stdout io.Writer) error {
	if output == "" {
		return store.Export(stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := store.Export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printStats(store *lexicon.Store, stdout io.Writer) error {
	n, err := store.Count()
	if err != nil {
		return err
	}
	batches, err := store.Batches()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Words: %d\nBatches: %d\n", n, len(batches))
	for _, b := range batches {
		fmt.Fprintf(stdout, "  %s  %s  %-20s %d\n", b.CreatedAt.Format("2006-01-02 15:04:05"), b.ID, b.Source, b.Entries)
	}
	return nil
}
