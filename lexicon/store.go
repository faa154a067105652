package lexicon

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS import_batches (
	batch_id    TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	entries     INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS words (
	word        TEXT PRIMARY KEY,
	freq        INTEGER NOT NULL,
	tag         TEXT NOT NULL DEFAULT '',
	batch_id    TEXT NOT NULL,
	FOREIGN KEY (batch_id) REFERENCES import_batches(batch_id)
);

CREATE TABLE IF NOT EXISTS punctuation (
	mark        TEXT PRIMARY KEY
);
`

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store keeps a lexicon in SQLite.
type Store struct {
	db *sql.DB
}

// Batch describes one import.
type Batch struct {
	ID        string
	Source    string
	Entries   int
	CreatedAt time.Time
}

// WordEntry is a word with its metadata, as imported into a Store.
type WordEntry struct {
	Word string
	Entry
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Import upserts entries in one transaction and records the batch.
func (s *Store) Import(source string, entries []WordEntry) (Batch, error) {
	b := Batch{
		ID:        uuid.New().String(),
		Source:    source,
		Entries:   len(entries),
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Batch{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO import_batches (batch_id, source, entries, created_at) VALUES (?, ?, ?, ?)`,
		b.ID, b.Source, b.Entries, b.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Batch{}, fmt.Errorf("insert batch: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO words (word, freq, tag, batch_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT(word) DO UPDATE SET freq = excluded.freq, tag = excluded.tag, batch_id = excluded.batch_id`,
	)
	if err != nil {
		return Batch{}, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, we := range entries {
		if we.Word == "" {
			return Batch{}, ErrEmptyWord
		}
		if _, err := stmt.Exec(we.Word, we.Freq, we.Tag, b.ID); err != nil {
			return Batch{}, fmt.Errorf("upsert %q: %w", we.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Batch{}, fmt.Errorf("commit: %w", err)
	}
	return b, nil
}

// ImportReader parses dictionary text from r and imports it as one batch.
func (s *Store) ImportReader(source string, r io.Reader) (Batch, error) {
	d := NewDictionary()
	if err := d.LoadReader(r); err != nil {
		return Batch{}, err
	}
	entries := make([]WordEntry, 0, d.Len())
	for w, e := range d.Words {
		entries = append(entries, WordEntry{Word: w, Entry: e})
	}
	return s.Import(source, entries)
}

// AddPunctuation stores extra punctuation marks.
func (s *Store) AddPunctuation(marks ...string) error {
	for _, m := range marks {
		if m == "" {
			continue
		}
		if _, err := s.db.Exec(`INSERT OR IGNORE INTO punctuation (mark) VALUES (?)`, m); err != nil {
			return fmt.Errorf("insert punctuation %q: %w", m, err)
		}
	}
	return nil
}

// LoadInto adds every stored word and punctuation mark to d.
func (s *Store) LoadInto(d *Dictionary) error {
	rows, err := s.db.Query(`SELECT word, freq, tag FROM words`)
	if err != nil {
		return fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var word string
		var e Entry
		if err := rows.Scan(&word, &e.Freq, &e.Tag); err != nil {
			return fmt.Errorf("scan word: %w", err)
		}
		if err := d.Add(word, e); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate words: %w", err)
	}

	prows, err := s.db.Query(`SELECT mark FROM punctuation`)
	if err != nil {
		return fmt.Errorf("query punctuation: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var mark string
		if err := prows.Scan(&mark); err != nil {
			return fmt.Errorf("scan punctuation: %w", err)
		}
		d.AddPunctuation(mark)
	}
	if err := prows.Err(); err != nil {
		return fmt.Errorf("iterate punctuation: %w", err)
	}
	d.Loaded = true
	return nil
}

// Export writes all stored words in dictionary text format, sorted by word.
func (s *Store) Export(w io.Writer) error {
	d := NewDictionary()
	if err := s.LoadInto(d); err != nil {
		return err
	}
	_, err := d.WriteTo(w)
	return err
}

// Count returns the number of stored words.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM words`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return n, nil
}

// Batches lists imports, newest first.
func (s *Store) Batches() ([]Batch, error) {
	rows, err := s.db.Query(`SELECT batch_id, source, entries, created_at FROM import_batches ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var b Batch
		var created string
		if err := rows.Scan(&b.ID, &b.Source, &b.Entries, &created); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse batch time: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// LoadSources fills a new dictionary from a SQLite store (if dbPath is not
// empty) and then from text files, in order; later sources win.
func LoadSources(dbPath string, paths ...string) (*Dictionary, error) {
	d := NewDictionary()
	if dbPath != "" {
		s, err := NewStore(dbPath)
		if err != nil {
			return nil, err
		}
		err = s.LoadInto(d)
		s.Close()
		if err != nil {
			return nil, err
		}
	}
	for _, p := range paths {
		if err := d.Load(p); err != nil {
			return nil, err
		}
	}
	return d, nil
}
