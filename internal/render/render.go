// Package render writes the message page. The same lines are produced for
// every medium; only the line-break marker and escaping differ.
package render

import (
	"html"
	"io"
	"strings"

	"github.com/Shugur-Network/podreader/internal/constants"
	"github.com/Shugur-Network/podreader/internal/domain"
)

// Medium selects how line breaks are marked.
type Medium int

const (
	// HTML marks breaks with <br> and escapes values.
	HTML Medium = iota
	// Text marks breaks with newlines and writes values verbatim.
	Text
)

func (m Medium) String() string {
	if m == Text {
		return "text"
	}
	return "html"
}

// ContentType is the response content type for the medium.
func (m Medium) ContentType() string {
	if m == Text {
		return "text/plain; charset=UTF-8"
	}
	return constants.PageContentType
}

// Line prefixes.
const (
	MessagePrefix       = "Message: "
	NoResults           = "0 results"
	PodPrefix           = "Data Was Read From Pod: "
	NodePrefix          = "Pod is located on Node: "
	ConnectFailedPrefix = "Failed to connect to MySQL: "
)

// Writer emits page lines. The first write error sticks and turns later
// writes into no-ops, like bufio.Writer.
type Writer struct {
	w      io.Writer
	medium Medium
	err    error
}

// NewWriter returns a page writer for the given medium.
func NewWriter(w io.Writer, medium Medium) *Writer {
	return &Writer{w: w, medium: medium}
}

// Message writes one row followed by three breaks.
func (pw *Writer) Message(m domain.Message) {
	pw.line(MessagePrefix+pw.value(m.Name), constants.MessageTrailingBreaks)
}

// NoResults writes the empty-table line. The HTML page has no break after
// it; text output ends the line.
func (pw *Writer) NoResults() {
	pw.line(NoResults, 0)
	pw.endTextLine()
}

// Identity writes the pod and node lines.
func (pw *Writer) Identity(id domain.PodIdentity) {
	pw.line(PodPrefix+pw.value(id.Hostname), constants.IdentityTrailingBreaks)
	pw.line(NodePrefix+pw.value(id.NodeName), constants.IdentityTrailingBreaks)
}

// ConnectFailed writes the single failure line. Nothing else belongs on a
// page that contains it.
func (pw *Writer) ConnectFailed(detail string) {
	pw.line(ConnectFailedPrefix+pw.value(detail), 0)
	pw.endTextLine()
}

// Err returns the first write error.
func (pw *Writer) Err() error { return pw.err }

func (pw *Writer) line(s string, breaks int) {
	if pw.err != nil {
		return
	}
	_, pw.err = io.WriteString(pw.w, s+strings.Repeat(pw.lineBreak(), breaks))
}

func (pw *Writer) endTextLine() {
	if pw.medium == Text && pw.err == nil {
		_, pw.err = io.WriteString(pw.w, constants.TextLineBreak)
	}
}

func (pw *Writer) lineBreak() string {
	if pw.medium == Text {
		return constants.TextLineBreak
	}
	return constants.HTMLLineBreak
}

func (pw *Writer) value(s string) string {
	if pw.medium == Text {
		return s
	}
	return html.EscapeString(s)
}
