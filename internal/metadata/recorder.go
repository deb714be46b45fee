// Package metadata is the structured, per-scan observability sink. It
// records fetch attempts, rule firings, and error causes purely for logging
// and audit; nothing in here is read back by the pipeline to make a
// decision; see the ErrorCause rules in data.go.
package metadata

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Sink is the interface pipeline stages depend on, so tests can swap in a
// no-op or buffering implementation without a real zerolog writer.
type Sink interface {
	RecordFetch(scanID string, event FetchEvent, attrs ...Attribute)
	RecordError(scanID, stage, action string, cause ErrorCause, err error, attrs ...Attribute)
	RecordRuleFired(scanID, rootCause, severity string)
	RecordFinalStats(scanID string, pagesAnalyzed int, findingCount int, duration time.Duration)
}

// ZerologSink is the real Sink, backed by a zerolog.Logger writing
// structured, one-line-per-event JSON (or console output when built with a
// zerolog.ConsoleWriter).
type ZerologSink struct {
	logger zerolog.Logger
}

func NewZerologSink(w io.Writer) *ZerologSink {
	return &ZerologSink{logger: zerolog.New(w).With().Timestamp().Logger()}
}

func (s *ZerologSink) RecordFetch(scanID string, event FetchEvent, attrs ...Attribute) {
	e := s.logger.Info().
		Str(string(AttrScanID), scanID).
		Str(string(AttrURL), event.url).
		Int(string(AttrHTTPStatus), event.httpStatus).
		Dur("duration", event.duration).
		Str("content_type", event.contentType)
	applyAttrs(e, attrs)
	e.Msg("fetch")
}

func (s *ZerologSink) RecordError(scanID, stage, action string, cause ErrorCause, err error, attrs ...Attribute) {
	e := s.logger.Warn().
		Str(string(AttrScanID), scanID).
		Str(string(AttrStage), stage).
		Str("action", action).
		Str("cause", cause.String()).
		Err(err)
	applyAttrs(e, attrs)
	e.Msg("stage error")
}

func (s *ZerologSink) RecordRuleFired(scanID, rootCause, severity string) {
	s.logger.Info().
		Str(string(AttrScanID), scanID).
		Str(string(AttrRootCause), rootCause).
		Str(string(AttrSeverity), severity).
		Msg("rule fired")
}

func (s *ZerologSink) RecordFinalStats(scanID string, pagesAnalyzed, findingCount int, duration time.Duration) {
	s.logger.Info().
		Str(string(AttrScanID), scanID).
		Int("pages_analyzed", pagesAnalyzed).
		Int("finding_count", findingCount).
		Dur("duration", duration).
		Msg("scan complete")
}

func applyAttrs(e *zerolog.Event, attrs []Attribute) {
	for _, a := range attrs {
		e.Str(string(a.Key), a.Value)
	}
}

// NoopSink discards every event. Used by tests that assert on pipeline
// behavior rather than log output.
type NoopSink struct{}

func (NoopSink) RecordFetch(string, FetchEvent, ...Attribute)                   {}
func (NoopSink) RecordError(string, string, string, ErrorCause, error, ...Attribute) {}
func (NoopSink) RecordRuleFired(string, string, string)                        {}
func (NoopSink) RecordFinalStats(string, int, int, time.Duration)              {}
