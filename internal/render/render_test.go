package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/Shugur-Network/podreader/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestWriter_HTMLPage(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b, HTML)

	w.Message(domain.Message{Name: "a"})
	w.Message(domain.Message{Name: "b"})
	w.Identity(domain.PodIdentity{Hostname: "podreader-1", NodeName: "node-eu"})

	want := "Message: a<br><br><br>" +
		"Message: b<br><br><br>" +
		"Data Was Read From Pod: podreader-1<br><br>" +
		"Pod is located on Node: node-eu<br><br>"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
	assert.NoError(t, w.Err())
}

func TestWriter_HTMLNoResults(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b, HTML)

	w.NoResults()
	w.Identity(domain.PodIdentity{Hostname: "h", NodeName: "n"})

	want := "0 results" +
		"Data Was Read From Pod: h<br><br>" +
		"Pod is located on Node: n<br><br>"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_TextPage(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b, Text)

	w.NoResults()
	w.Identity(domain.PodIdentity{Hostname: "h", NodeName: "n"})

	want := "0 results\n" +
		"Data Was Read From Pod: h\n\n" +
		"Pod is located on Node: n\n\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_ConnectFailed(t *testing.T) {
	var html, text strings.Builder

	NewWriter(&html, HTML).ConnectFailed("dial tcp 10.0.0.9:3306: connect: connection refused")
	NewWriter(&text, Text).ConnectFailed("dial tcp 10.0.0.9:3306: connect: connection refused")

	assert.Equal(t, "Failed to connect to MySQL: dial tcp 10.0.0.9:3306: connect: connection refused", html.String())
	assert.Equal(t, "Failed to connect to MySQL: dial tcp 10.0.0.9:3306: connect: connection refused\n", text.String())
}

func TestWriter_HTMLEscapesValuesTextDoesNot(t *testing.T) {
	var html, text strings.Builder
	msg := domain.Message{Name: `<script>alert("x")</script>`}

	NewWriter(&html, HTML).Message(msg)
	NewWriter(&text, Text).Message(msg)

	assert.Equal(t, "Message: &lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;<br><br><br>", html.String())
	assert.Equal(t, "Message: <script>alert(\"x\")</script>\n\n\n", text.String())
}

func TestWriter_EmptyName(t *testing.T) {
	var b strings.Builder
	NewWriter(&b, HTML).Message(domain.Message{})
	assert.Equal(t, "Message: <br><br><br>", b.String())
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("broken pipe")
}

func TestWriter_StickyError(t *testing.T) {
	fw := &failingWriter{}
	w := NewWriter(fw, Text)

	w.Message(domain.Message{Name: "a"})
	w.NoResults()
	w.Identity(domain.PodIdentity{})

	assert.EqualError(t, w.Err(), "broken pipe")
	assert.Equal(t, 1, fw.n)
}

func TestMedium(t *testing.T) {
	assert.Equal(t, "html", HTML.String())
	assert.Equal(t, "text", Text.String())
	assert.Equal(t, "text/html; charset=UTF-8", HTML.ContentType())
	assert.Equal(t, "text/plain; charset=UTF-8", Text.ContentType())
}
