// Package httpapi wires the scanner into the two endpoints the service
// exposes: GET/POST /scan per the invocation contract, and GET /healthz for
// liveness. Handlers are plain net/http.HandlerFunc, no framework.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coldharbor-labs/suppression-screen/internal/assembler"
	"github.com/coldharbor-labs/suppression-screen/internal/build"
	"github.com/coldharbor-labs/suppression-screen/internal/domain"
	"github.com/coldharbor-labs/suppression-screen/internal/metadata"
	"github.com/coldharbor-labs/suppression-screen/internal/scanner"
)

type scanRequestBody struct {
	URL      string            `json:"url"`
	Baseline *baselineRequest  `json:"baseline"`
}

type baselineRequest struct {
	RiskLevel domain.RiskLevel `json:"risk_level"`
	ScanDate  string           `json:"scan_date"`
	P0        int              `json:"p0"`
	P1        int              `json:"p1"`
	P2        int              `json:"p2"`
	P3        int              `json:"p3"`
}

func (b *baselineRequest) toDomain() *domain.Baseline {
	if b == nil {
		return nil
	}
	baseline := domain.NewBaseline(b.RiskLevel, b.ScanDate, b.P0, b.P1, b.P2, b.P3)
	return &baseline
}

// Handler bundles the scanner behind the two exposed routes.
type Handler struct {
	scanner *scanner.Scanner
	sink    metadata.Sink
}

func NewHandler(s *scanner.Scanner, sink metadata.Sink) *Handler {
	return &Handler{scanner: s, sink: sink}
}

// Routes registers the handler's endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/scan", h.handleScan)
	mux.HandleFunc("/healthz", h.handleHealthz)
}

// handleScan accepts GET or POST. The query parameter url wins over the
// body when both are present, per the invocation contract.
func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	var baseline *domain.Baseline

	if r.Method == http.MethodPost && r.Body != nil {
		var body scanRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			if rawURL == "" {
				rawURL = body.URL
			}
			baseline = body.Baseline.toDomain()
		}
	}

	if rawURL == "" {
		h.logScanFailure(rawURL, assembler.ErrorInvalidURL, "missing url parameter")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		assembler.WriteError(w, assembler.ErrorInvalidURL, "missing url parameter")
		return
	}

	result := h.scanner.Scan(r.Context(), rawURL, baseline)

	w.Header().Set("Content-Type", "application/json")
	if result.Report == nil {
		h.logScanFailure(rawURL, result.ErrorType, result.ErrorMsg)
		w.WriteHeader(http.StatusBadRequest)
		assembler.WriteError(w, result.ErrorType, result.ErrorMsg)
		return
	}

	w.WriteHeader(http.StatusOK)
	assembler.WriteReport(w, *result.Report)
}

// logScanFailure records the request-level outcome through the same
// structured sink every other pipeline event goes through. The scanner
// records its own stage-level events (normalize or guard errors, each
// fetch); this entry carries the caller-facing error type.
func (h *Handler) logScanFailure(rawURL string, errType assembler.ErrorType, msg string) {
	cause := metadata.CauseUnknown
	switch errType {
	case assembler.ErrorInvalidURL:
		cause = metadata.CauseContentInvalid
	case assembler.ErrorInsufficientData:
		cause = metadata.CauseUpstreamStatus
	}
	h.sink.RecordError("", "httpapi", "handleScan", cause, errors.New(msg),
		metadata.NewAttr(metadata.AttrURL, rawURL),
		metadata.NewAttr(metadata.AttrErrorType, string(errType)))
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(build.Current())
}
