package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/replay"
)

// ReportWriter is the interface for writing reports to output.
// Implementations handle different output formats (text, JSON).
type ReportWriter interface {
	// WriteReport writes a single position report.
	WriteReport(r *Report) error

	// WriteReplay writes a single replay result.
	WriteReplay(res replay.Result) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewWriter returns the writer selected by cfg.JSONFormat.
func NewWriter(w io.Writer, cfg *config.Config) ReportWriter {
	if cfg.JSONFormat {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w)
}

// TextWriter writes reports as plain text.
type TextWriter struct {
	w             io.Writer
	maxLineLength int
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w, maxLineLength: 80}
}

// WriteReport writes a report immediately.
func (tw *TextWriter) WriteReport(r *Report) error {
	writeReportText(tw.w, r, tw.maxLineLength)
	return nil
}

// WriteReplay writes a replay result immediately.
func (tw *TextWriter) WriteReplay(res replay.Result) error {
	writeReplayText(tw.w, res)
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes reports in JSON format.
// It buffers output and writes one JSON document on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	cfg    *config.Config
	out    JSONOutput
	single bool // If true, write each item immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches items and writes them as one object on Close().
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:   w,
		cfg: cfg,
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each item immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:      w,
		cfg:    cfg,
		single: true,
	}
}

func (jw *JSONWriter) encode(v interface{}) error {
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteReport buffers a report (or writes it immediately in single mode).
func (jw *JSONWriter) WriteReport(r *Report) error {
	jr := ReportToJSON(r, jw.cfg.Rules.WireFormat)
	if jw.single {
		return jw.encode(jr)
	}
	jw.out.Reports = append(jw.out.Reports, jr)
	return nil
}

// WriteReplay buffers a replay result (or writes it immediately in single mode).
func (jw *JSONWriter) WriteReplay(res replay.Result) error {
	jr := ReplayToJSON(res)
	if jw.single {
		return jw.encode(jr)
	}
	jw.out.Replays = append(jw.out.Replays, jr)
	return nil
}

// Flush writes all buffered items as one JSON object.
func (jw *JSONWriter) Flush() error {
	if jw.single || (len(jw.out.Reports) == 0 && len(jw.out.Replays) == 0) {
		return nil
	}
	err := jw.encode(&jw.out)

	// Clear buffer after writing
	jw.out = JSONOutput{}

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
