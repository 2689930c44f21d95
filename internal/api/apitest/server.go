// Package apitest provides an in-process fake of the remote web API for
// tests: it serves metadata collections, accepts single and batch record
// submissions with scripted verdicts, and can simulate channel failures.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iupui-soic/dhis2-android-sdk/models"
)

// Server is the fake remote instance. Configure state via the setters, point
// an api.Client at URL, and inspect the captured requests afterwards.
type Server struct {
	*httptest.Server

	mu sync.Mutex
	// collections maps resource name to the raw records served for it.
	collections map[string][]json.RawMessage
	// verdicts maps record uid to the scripted import summary; records
	// without a verdict are answered with SUCCESS.
	verdicts map[string]models.ImportSummary
	// serverTime, when set, overrides the Date response header.
	serverTime time.Time
	// failBatch makes the next batch submit die mid-flight (connection
	// closed without a response), simulating lost connectivity.
	failBatch bool

	// lastMetadataQuery holds the query parameters of the most recent
	// metadata request.
	lastMetadataQuery url.Values
	// submittedSingles records the uids submitted through the
	// single-record endpoint, in arrival order.
	submittedSingles []string
	batchCalls       int
}

// New starts the fake server. The caller owns the returned server and must
// Close it.
func New() *Server {
	s := &Server{
		collections: make(map[string][]json.RawMessage),
		verdicts:    make(map[string]models.ImportSummary),
	}

	r := chi.NewRouter()
	r.Get("/api/{resource}", s.handleMetadata)
	r.Post("/api/{resource}", s.handleSubmit)

	s.Server = httptest.NewServer(r)
	return s
}

// SetCollection replaces the records served for resource. Records are given
// as raw JSON objects.
func (s *Server) SetCollection(resource string, records ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		raw = append(raw, json.RawMessage(r))
	}
	s.collections[resource] = raw
}

// SetServerTime pins the Date response header to t.
func (s *Server) SetServerTime(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverTime = t
}

// SetVerdict scripts the import summary returned for the record with uid.
func (s *Server) SetVerdict(uid string, summary models.ImportSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verdicts[uid] = summary
}

// FailBatch makes batch submissions die with a connection error while the
// single-record endpoint keeps working.
func (s *Server) FailBatch(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failBatch = fail
}

// LastMetadataQuery returns the query parameters of the most recent metadata
// request.
func (s *Server) LastMetadataQuery() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMetadataQuery
}

// SubmittedSingles returns the uids that arrived on the single-record
// endpoint, in order.
func (s *Server) SubmittedSingles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.submittedSingles...)
}

// BatchCalls returns how many batch submissions arrived.
func (s *Server) BatchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchCalls
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")

	s.mu.Lock()
	s.lastMetadataQuery = r.URL.Query()
	records := s.collections[resource]
	serverTime := s.serverTime
	s.mu.Unlock()

	if !serverTime.IsZero() {
		w.Header().Set("Date", serverTime.UTC().Format(http.TimeFormat))
	}
	w.Header().Set("Content-Type", "application/json")

	payload := map[string][]json.RawMessage{resource: records}
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "malformed body", http.StatusBadRequest)
		return
	}

	// A body wrapping the collection key is a batch submission.
	if raw, ok := body[resource]; ok {
		s.handleBatch(w, r, raw)
		return
	}

	uid := uidOf(body)

	s.mu.Lock()
	s.submittedSingles = append(s.submittedSingles, uid)
	summary := s.verdictFor(uid)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request, raw json.RawMessage) {
	s.mu.Lock()
	s.batchCalls++
	fail := s.failBatch
	s.mu.Unlock()

	if fail {
		// Kill the connection without a response so the client sees a
		// transport error rather than an HTTP status.
		hj, ok := w.(http.Hijacker)
		if !ok {
			panic("apitest: response writer is not hijackable")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			panic(err)
		}
		conn.Close()
		return
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		http.Error(w, "malformed collection", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	summaries := make([]models.ImportSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, s.verdictFor(uidOf(item)))
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.ImportResponse{ImportSummaries: summaries})
}

// verdictFor must be called with the mutex held.
func (s *Server) verdictFor(uid string) models.ImportSummary {
	if summary, ok := s.verdicts[uid]; ok {
		if summary.Reference == "" {
			summary.Reference = uid
		}
		return summary
	}
	return models.ImportSummary{Status: models.ImportStatusSuccess, Reference: uid}
}

func uidOf(body map[string]json.RawMessage) string {
	var uid string
	if raw, ok := body["id"]; ok {
		_ = json.Unmarshal(raw, &uid)
	}
	return uid
}
