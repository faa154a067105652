package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teatak/wordlattice/config"
	"github.com/teatak/wordlattice/lattice"
	"github.com/teatak/wordlattice/lexicon"
	"github.com/teatak/wordlattice/segmenter"
	"github.com/teatak/wordlattice/util"
)

// server holds the active engine. Reloads swap it under segLock, so a request
// keeps the lexicon it started with.
type server struct {
	cfg     config.Config
	metrics *metrics
	reg     *prometheus.Registry

	segLock sync.RWMutex
	seg     *segmenter.Segmenter
	dict    *lexicon.Dictionary

	logLock   sync.Mutex
	accessLog io.Writer
}

func newServer(cfg config.Config, accessLog io.Writer, reg *prometheus.Registry) *server {
	s := &server{cfg: cfg, accessLog: accessLog, reg: reg}
	s.metrics = newMetrics(reg, s.cacheStats)
	return s
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /segment", s.handleSegment)
	mux.HandleFunc("POST /reload", s.handleReload)
	mux.HandleFunc("POST /feedback", s.handleFeedback) // 人工教词
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	return mux
}

// reloadEngine rebuilds the lexicon and segmenter from the configured sources.
// On failure the running engine is kept.
func (s *server) reloadEngine() error {
	log.Println("Reloading engine...")
	newSeg, dict, err := segmenter.Load(s.cfg)
	if err != nil {
		s.metrics.reloads.WithLabelValues("error").Inc()
		return err
	}

	s.segLock.Lock()
	s.seg = newSeg
	s.dict = dict
	s.segLock.Unlock()

	s.metrics.reloads.WithLabelValues("ok").Inc()
	s.metrics.lexiconWords.Set(float64(dict.Len()))
	log.Printf("Engine reloaded successfully: %d words.", dict.Len())
	return nil
}

func (s *server) engine() *segmenter.Segmenter {
	s.segLock.RLock()
	defer s.segLock.RUnlock()
	return s.seg
}

func (s *server) cacheStats() (uint64, uint64) {
	seg := s.engine()
	if seg == nil {
		return 0, 0
	}
	return seg.CacheStats()
}

// SegRequest is the body of POST /segment. K selects the k-th alternative
// segmentation; Top asks for the first Top alternatives. Both zero means the
// segmentation with the fewest tokens.
type SegRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"` // standard, search
	K    int    `json:"k"`
	Top  int    `json:"top"`
}

type SegResponse struct {
	RequestID    string     `json:"request_id"`
	Tokens       []string   `json:"tokens,omitempty"`
	Alternatives [][]string `json:"alternatives,omitempty"`
	Error        string     `json:"error,omitempty"`
}

var (
	errBadRequest = errors.New("bad request")
	errTooLong    = errors.New("input too long")
)

// maxBodyBytes bounds a /segment body holding maxRunes runes of text. A rune
// takes at most 12 bytes of JSON (a \uXXXX\uXXXX surrogate pair).
func maxBodyBytes(maxRunes int) int64 {
	return int64(maxRunes)*12 + 4096
}

func (s *server) handleSegment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := SegResponse{RequestID: uuid.New().String()}
	w.Header().Set("X-Request-ID", resp.RequestID)

	if s.cfg.MaxRunes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes(s.cfg.MaxRunes))
	}

	var req SegRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: body exceeds %d bytes", errTooLong, tooLarge.Limit)
		} else {
			err = fmt.Errorf("%w: %v", errBadRequest, err)
		}
		s.fail(w, &resp, "decode", err)
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = "standard"
	}
	defer func() {
		s.metrics.duration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}()

	runes := utf8.RuneCountInString(req.Text)
	s.metrics.inputRunes.Observe(float64(runes))
	if s.cfg.MaxRunes > 0 && runes > s.cfg.MaxRunes {
		s.fail(w, &resp, mode, fmt.Errorf("%w: %d runes, limit %d", errTooLong, runes, s.cfg.MaxRunes))
		return
	}
	s.writeAccessLog(resp.RequestID, req.Text)

	seg := s.engine()
	var err error
	switch {
	case mode != "standard" && mode != "search":
		err = fmt.Errorf("%w: unknown mode %q", errBadRequest, req.Mode)
	case mode == "search" && (req.K != 0 || req.Top != 0):
		err = fmt.Errorf("%w: search mode does not take k or top", errBadRequest)
	case mode == "search":
		resp.Tokens, err = seg.CutSearch(req.Text)
	case req.Top != 0:
		resp.Alternatives, err = seg.CutTopK(r.Context(), req.Text, req.Top)
	case req.K != 0:
		resp.Tokens, err = seg.CutKth(r.Context(), req.Text, req.K)
	default:
		resp.Tokens, err = seg.Cut(req.Text)
	}
	if err != nil {
		s.fail(w, &resp, mode, err)
		return
	}

	s.metrics.requests.WithLabelValues(mode, "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) fail(w http.ResponseWriter, resp *SegResponse, mode string, err error) {
	status, outcome := classify(err)
	s.metrics.requests.WithLabelValues(mode, outcome).Inc()
	if status == http.StatusInternalServerError {
		log.Printf("[%s] segment failed: %v", resp.RequestID, err)
	}
	resp.Error = err.Error()
	writeJSON(w, status, *resp)
}

// classify maps a segmentation error to an HTTP status and a metrics outcome.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errTooLong):
		return http.StatusRequestEntityTooLarge, "too_long"
	case errors.Is(err, errBadRequest), errors.Is(err, lattice.ErrInvalidK):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, lattice.ErrUnreachable):
		return http.StatusUnprocessableEntity, "unsegmentable"
	case errors.Is(err, lattice.ErrKOutOfRange):
		return http.StatusUnprocessableEntity, "k_out_of_range"
	case errors.Is(err, lattice.ErrSearchLimit):
		return http.StatusUnprocessableEntity, "search_limit"
	default:
		return http.StatusInternalServerError, "error"
	}
}

func (s *server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.reloadEngine(); err != nil {
		log.Printf("Reload failed: %v", err)
		http.Error(w, fmt.Sprintf("Reload failed: %v", err), http.StatusInternalServerError)
		return
	}
	s.segLock.RLock()
	n := s.dict.Len()
	s.segLock.RUnlock()
	fmt.Fprintf(w, "Engine reloaded: %d words.\n", n)
}

// handleFeedback stores user-taught words in the lexicon database and reloads.
// Several words may be given separated by spaces.
func (s *server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Database == "" {
		http.Error(w, "no lexicon database configured", http.StatusConflict)
		return
	}
	words := strings.Fields(r.URL.Query().Get("word"))
	if len(words) == 0 {
		http.Error(w, "word param required", http.StatusBadRequest)
		return
	}

	for _, word := range words {
		if util.ContainsPunctuation(word) {
			http.Error(w, fmt.Sprintf("word %q contains punctuation", word), http.StatusBadRequest)
			return
		}
	}

	store, err := lexicon.NewStore(s.cfg.Database)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	entries := make([]lexicon.WordEntry, 0, len(words))
	for _, word := range words {
		entries = append(entries, lexicon.WordEntry{Word: word, Entry: lexicon.Entry{Freq: lexicon.DefaultFreq}})
	}
	batch, err := store.Import("feedback", entries)
	store.Close()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Printf("Feedback batch %s: %v", batch.ID, words)

	if err := s.reloadEngine(); err != nil {
		http.Error(w, fmt.Sprintf("Reload failed: %v", err), http.StatusInternalServerError)
		return
	}
	fmt.Fprintf(w, "Added %d words in batch %s.\n", len(words), batch.ID)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.engine() == nil {
		http.Error(w, "engine not loaded", http.StatusServiceUnavailable)
		return
	}
	fmt.Fprintln(w, "ok")
}

// writeAccessLog records one input per line for later dictionary work.
func (s *server) writeAccessLog(id, text string) {
	if s.accessLog == nil || text == "" {
		return
	}
	line := strings.ReplaceAll(text, "\n", " ")
	s.logLock.Lock()
	defer s.logLock.Unlock()
	if _, err := fmt.Fprintf(s.accessLog, "%s\t%s\n", id, line); err != nil {
		log.Printf("access log write failed: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
