package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shroud/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.InputKind
	}{
		{"https url", "https://example.com", domain.InputURL},
		{"http url with path and query", "http://a.com/x?q=1#frag", domain.InputURL},
		{"uppercase scheme", "HTTPS://EXAMPLE.COM/", domain.InputURL},
		{"url with port", "http://localhost:8080/", domain.InputURL},
		{"plain words", "hello world", domain.InputSearchTerm},
		{"empty", "", domain.InputSearchTerm},
		{"bare domain", "example.com", domain.InputSearchTerm},
		{"relative path", "/etc/passwd", domain.InputSearchTerm},
		{"file scheme", "file:///etc/passwd", domain.InputSearchTerm},
		{"javascript scheme", "javascript:alert(1)", domain.InputSearchTerm},
		{"mailto", "mailto:someone@example.com", domain.InputSearchTerm},
		{"ftp", "ftp://example.com/file", domain.InputSearchTerm},
		{"opaque http", "http:example.com", domain.InputURL},
		{"opaque https", "https:example.com", domain.InputURL},
		{"opaque single word", "http:foo", domain.InputURL},
		{"hostless path", "http:/example.com", domain.InputURL},
		{"unparsable", "http://[::1", domain.InputSearchTerm},
		{"control characters", "https://exa\x7fmple.com", domain.InputSearchTerm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.input, got.Value, "value must be kept verbatim")
		})
	}
}
