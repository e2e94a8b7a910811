package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := RenderMarkdown("**bold** <script>alert(1)</script>")
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("markdown not rendered: %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("script tag survived sanitization: %q", out)
	}
}

func TestRenderMarkdownImageAttrs(t *testing.T) {
	out := RenderMarkdown("![pic](https://example.com/a.png)")
	if !strings.Contains(out, `loading="lazy"`) || !strings.Contains(out, `referrerpolicy="no-referrer"`) {
		t.Fatalf("image attrs missing: %q", out)
	}
}

func TestRandStringLengthAndCharset(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := RandStringBytesMaskImpr(8)
		if len(s) != 8 {
			t.Fatalf("len = %d, want 8", len(s))
		}
		for _, r := range s {
			if !strings.ContainsRune(letterBytes, r) {
				t.Fatalf("unexpected rune %q in %q", r, s)
			}
		}
		seen[s] = true
	}
	if len(seen) < 45 {
		t.Fatalf("too many collisions: %d unique of 50", len(seen))
	}
}
