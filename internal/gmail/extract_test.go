package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func textPart(mime, content string) *gmail.MessagePart {
	return &gmail.MessagePart{
		MimeType: mime,
		Body:     &gmail.MessagePartBody{Data: b64(content)},
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name     string
		part     *gmail.MessagePart
		expected string
	}{
		{
			name:     "nil payload",
			part:     nil,
			expected: "",
		},
		{
			name:     "plain text body",
			part:     textPart("text/plain", "Riunione lunedì alle 10"),
			expected: "Riunione lunedì alle 10",
		},
		{
			name:     "html body is stripped",
			part:     textPart("text/html", "<p>Riunione</p><p>alle <b>10</b></p>"),
			expected: "Riunione\n\nalle 10",
		},
		{
			name: "multipart joins children in order",
			part: &gmail.MessagePart{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					textPart("text/plain", "prima parte"),
					textPart("text/plain", "seconda parte"),
				},
			},
			expected: "prima parte\nseconda parte",
		},
		{
			name: "nested multipart",
			part: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "multipart/alternative",
						Parts: []*gmail.MessagePart{
							textPart("text/plain", "testo annidato"),
						},
					},
				},
			},
			expected: "testo annidato",
		},
		{
			name: "empty children are skipped",
			part: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					textPart("text/plain", ""),
					textPart("text/plain", "solo questa"),
				},
			},
			expected: "solo questa",
		},
		{
			name: "no data anywhere",
			part: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Parts:    []*gmail.MessagePart{{MimeType: "image/png"}},
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractText(tt.part))
		})
	}
}

func TestDecodeBase64(t *testing.T) {
	t.Run("url encoding", func(t *testing.T) {
		assert.Equal(t, "ciao", decodeBase64(b64("ciao")))
	})

	t.Run("unpadded url encoding", func(t *testing.T) {
		raw := base64.RawURLEncoding.EncodeToString([]byte("ciao!"))
		assert.Equal(t, "ciao!", decodeBase64(raw))
	})

	t.Run("standard encoding fallback", func(t *testing.T) {
		raw := base64.StdEncoding.EncodeToString([]byte{0xfb, 0xff, 0x61})
		decoded := decodeBase64(raw)
		// Invalid UTF-8 bytes become replacement characters, not an error.
		assert.Contains(t, decoded, "�")
		assert.Contains(t, decoded, "a")
	})

	t.Run("garbage input", func(t *testing.T) {
		assert.Equal(t, "", decodeBase64("!!!not-base64!!!"))
	})
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "entities",
			input:    "Rossi&nbsp;&amp;&nbsp;Bianchi &#39;srl&#39;",
			expected: "Rossi & Bianchi 'srl'",
		},
		{
			name:     "script and style removed",
			input:    "<style>p{color:red}</style><p>testo</p><script>alert(1)</script>",
			expected: "testo",
		},
		{
			name:     "line breaks preserved",
			input:    "riga uno<br>riga due",
			expected: "riga uno\nriga due",
		},
		{
			name:     "list items become bullets",
			input:    "<ul><li>uno</li><li>due</li></ul>",
			expected: "- uno\n- due",
		},
		{
			name:     "whitespace collapsed",
			input:    "<div>a</div><div></div><div></div><div>b</div>",
			expected: "a\n\nb",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTMLToText(tt.input))
		})
	}
}
