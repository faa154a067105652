// Package config loads segmenter settings from YAML, the environment and flags.
//
// Precedence, lowest first: Defaults, YAML file, WORDLATTICE_* environment
// variables, command-line flags (applied by each binary through Merge).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teatak/wordlattice/util"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WORDLATTICE_"

// DefaultPath is read when no config file is named and it exists.
const DefaultPath = "data/config.yaml"

// Config holds the settings shared by the binaries.
type Config struct {
	Dictionaries  []string `yaml:"dictionaries"`   // text dictionaries, loaded in order
	Database      string   `yaml:"database"`       // optional SQLite lexicon, loaded before the text files
	Punctuation   []string `yaml:"punctuation"`    // extra punctuation marks
	Heuristic     string   `yaml:"heuristic"`      // units | zero
	MaxExpansions int      `yaml:"max_expansions"` // k-th search bound, 0 = unlimited
	CacheSize     int      `yaml:"cache_size"`     // 0 disables the result cache
	Normalize     bool     `yaml:"normalize"`      // NFC before segmentation
	KeepAlphaNum  bool     `yaml:"keep_alphanum"`  // ASCII letter/digit runs stay whole
	MaxRunes      int      `yaml:"max_runes"`      // longest accepted input, 0 = unlimited
	Server        Server   `yaml:"server"`
}

// Server holds cmd/server settings.
type Server struct {
	Addr      string `yaml:"addr"`
	AccessLog string `yaml:"access_log"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Dictionaries:  []string{"data/dictionary.txt"},
		Heuristic:     "units",
		MaxExpansions: 1_000_000,
		CacheSize:     4096,
		Normalize:     true,
		MaxRunes:      4096,
		Server: Server{
			Addr:      ":8080",
			AccessLog: "data/server_access.log",
		},
	}
}

// Load returns Defaults overlaid with the YAML file at path (if not empty)
// and then with environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		fileCfg, err := Decode(f)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		cfg = fileCfg
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Resolve returns path, or DefaultPath when path is empty and that file exists.
func Resolve(path string) string {
	if path == "" && util.FileExists(DefaultPath) {
		return DefaultPath
	}
	return path
}

// Decode parses YAML on top of Defaults. Unknown fields are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Defaults()
	raw, err := io.ReadAll(r)
	if err != nil {
		return cfg, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read through lookup.
// List values are comma separated.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "DICTIONARIES"); ok {
		cfg.Dictionaries = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "DATABASE"); ok {
		cfg.Database = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPrefix + "PUNCTUATION"); ok {
		cfg.Punctuation = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "HEURISTIC"); ok {
		cfg.Heuristic = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPrefix + "MAX_EXPANSIONS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sMAX_EXPANSIONS: %w", EnvPrefix, err)
		}
		cfg.MaxExpansions = n
	}
	if v, ok := lookup(EnvPrefix + "CACHE_SIZE"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sCACHE_SIZE: %w", EnvPrefix, err)
		}
		cfg.CacheSize = n
	}
	if v, ok := lookup(EnvPrefix + "MAX_RUNES"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sMAX_RUNES: %w", EnvPrefix, err)
		}
		cfg.MaxRunes = n
	}
	if v, ok := lookup(EnvPrefix + "NORMALIZE"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sNORMALIZE: %w", EnvPrefix, err)
		}
		cfg.Normalize = b
	}
	if v, ok := lookup(EnvPrefix + "KEEP_ALPHANUM"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sKEEP_ALPHANUM: %w", EnvPrefix, err)
		}
		cfg.KeepAlphaNum = b
	}
	if v, ok := lookup(EnvPrefix + "ADDR"); ok {
		cfg.Server.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPrefix + "ACCESS_LOG"); ok {
		cfg.Server.AccessLog = strings.TrimSpace(v)
	}
	return nil
}

// Merge overlays the non-zero fields of over onto base. Booleans cannot be
// cleared this way; binaries set them directly.
func Merge(base, over Config) Config {
	out := base
	if len(over.Dictionaries) > 0 {
		out.Dictionaries = over.Dictionaries
	}
	if over.Database != "" {
		out.Database = over.Database
	}
	if len(over.Punctuation) > 0 {
		out.Punctuation = over.Punctuation
	}
	if over.Heuristic != "" {
		out.Heuristic = over.Heuristic
	}
	if over.MaxExpansions != 0 {
		out.MaxExpansions = over.MaxExpansions
	}
	if over.CacheSize != 0 {
		out.CacheSize = over.CacheSize
	}
	if over.MaxRunes != 0 {
		out.MaxRunes = over.MaxRunes
	}
	if over.Normalize {
		out.Normalize = true
	}
	if over.KeepAlphaNum {
		out.KeepAlphaNum = true
	}
	if over.Server.Addr != "" {
		out.Server.Addr = over.Server.Addr
	}
	if over.Server.AccessLog != "" {
		out.Server.AccessLog = over.Server.AccessLog
	}
	return out
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	switch c.Heuristic {
	case "", "units", "zero", "cost":
	default:
		errs = append(errs, fmt.Errorf("unknown heuristic %q (want units or zero)", c.Heuristic))
	}
	if c.MaxExpansions < 0 {
		errs = append(errs, errors.New("max_expansions must be non-negative"))
	}
	if c.CacheSize < 0 {
		errs = append(errs, errors.New("cache_size must be non-negative"))
	}
	if c.MaxRunes < 0 {
		errs = append(errs, errors.New("max_runes must be non-negative"))
	}
	if len(c.Dictionaries) == 0 && c.Database == "" {
		errs = append(errs, errors.New("no lexicon source: set dictionaries or database"))
	}
	return errors.Join(errs...)
}

// SplitList splits a comma separated list, dropping empty items.
func SplitList(s string) []string { return splitList(s) }

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
