package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/dalemusser/portfolio/internal/app/system/htmlsanitize"
)

func TestSanitize_PreservesMarkdownOutput(t *testing.T) {
	tests := []string{
		"",
		"Hello, World!",
		"<p><strong>Bold</strong> and <em>italic</em></p>",
		"<ul><li>Item 1</li><li>Item 2</li></ul>",
		"<ol><li>First</li><li>Second</li></ol>",
		"<blockquote>A quote</blockquote>",
		"<h1>Heading 1</h1><h2>Heading 2</h2>",
		"<pre><code>func main() {}</code></pre>",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if got := htmlsanitize.Sanitize(in); got != in {
				t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
			}
		})
	}
}

func TestSanitize_RemovesDangerousContent(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		forbidden string
	}{
		{"script", "<p>Hello</p><script>alert('xss')</script>", "<script"},
		{"onclick", `<button onclick="alert('xss')">Click</button>`, "onclick"},
		{"javascript href", `<a href="javascript:alert('xss')">Click</a>`, "javascript:"},
		{"iframe", `<p>Content</p><iframe src="https://evil.com"></iframe>`, "iframe"},
		{"style tag", `<style>body { color: red; }</style><p>Text</p>`, "<style>"},
		{"onerror", `<img src="x" onerror="alert('xss')">`, "onerror"},
		{"data url", `<img src="data:text/html,<script>alert('xss')</script>">`, "data:text/html"},
		{"form", `<form action="/submit"><input type="text" name="data"></form>`, "<input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := htmlsanitize.Sanitize(tt.input)
			if strings.Contains(got, tt.forbidden) {
				t.Errorf("Sanitize(%q) = %q, still contains %q", tt.input, got, tt.forbidden)
			}
		})
	}
}

func TestSanitize_KeepsCodeLanguageClass(t *testing.T) {
	in := `<pre><code class="language-go">x := 1</code></pre>`
	got := htmlsanitize.Sanitize(in)
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("expected language class preserved, got %q", got)
	}
}

func TestSanitize_AllowsSafeLinksAndImages(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com">Link</a><img src="https://example.com/a.png" alt="A">`)
	for _, want := range []string{"https://example.com", "src=", "alt="} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}

func TestSanitizeToHTML(t *testing.T) {
	got := htmlsanitize.SanitizeToHTML("<p>Hello</p><script>alert('xss')</script>")
	if got != template.HTML("<p>Hello</p>") {
		t.Errorf("SanitizeToHTML() = %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Hello, World!", true},
		{"5 < 10", true},
		{"5 > 3", true},
		{"<p>Hello</p>", false},
	}
	for _, tt := range tests {
		if got := htmlsanitize.IsPlainText(tt.in); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPrepareForDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want template.HTML
	}{
		{"", ""},
		{"Hello, World!", "<p>Hello, World!</p>"},
		{"Line 1\nLine 2", "<p>Line 1<br>Line 2</p>"},
		{"A & B", "<p>A &amp; B</p>"},
		{"<p>Hello</p>", "<p>Hello</p>"},
		{"<p>Hello</p><script>alert('xss')</script>", "<p>Hello</p>"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.PrepareForDisplay(tt.in); got != tt.want {
			t.Errorf("PrepareForDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
