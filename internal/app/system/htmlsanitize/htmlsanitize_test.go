package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/rfs/internal/app/system/htmlsanitize"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"plain", "Blue mug, 350ml", "Blue mug, 350ml"},
		{"formatting kept", "<p><strong>Bold</strong> and <em>italic</em></p>", "<p><strong>Bold</strong> and <em>italic</em></p>"},
		{"list kept", "<ul><li>Dishwasher safe</li></ul>", "<ul><li>Dishwasher safe</li></ul>"},
		{"script removed", "<p>Mug</p><script>alert(1)</script>", "<p>Mug</p>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := htmlsanitize.Sanitize(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSanitize_RemovesHandlersAndJavascriptLinks(t *testing.T) {
	out := htmlsanitize.Sanitize(`<a href="javascript:alert(1)" onclick="x()">buy</a>`)
	if strings.Contains(out, "javascript:") || strings.Contains(out, "onclick") {
		t.Errorf("unsafe attributes survived: %q", out)
	}
}

func TestSanitize_KeepsTableClass(t *testing.T) {
	out := htmlsanitize.Sanitize(`<table class="specs"><tr><td>Weight</td></tr></table>`)
	if !strings.Contains(out, `class="specs"`) {
		t.Errorf("class dropped: %q", out)
	}
}

func TestToHTML(t *testing.T) {
	if got := htmlsanitize.ToHTML("<p>ok</p><iframe src=x></iframe>"); string(got) != "<p>ok</p>" {
		t.Errorf("got %q", got)
	}
}

func TestPlainText(t *testing.T) {
	if got := htmlsanitize.PlainText("  <p>Big <b>mug</b></p> "); got != "Big mug" {
		t.Errorf("got %q", got)
	}
}
