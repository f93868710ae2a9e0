package gmail

import (
	"encoding/base64"
	"strings"

	"google.golang.org/api/gmail/v1"
)

// ExtractText flattens a message payload into plain text. A part that carries
// inline data is decoded (HTML parts are stripped to text); a container part is
// walked recursively and the non-empty child results are joined with newlines
// in document order. The result may be empty but extraction never fails.
func ExtractText(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}

	if part.Body != nil && part.Body.Data != "" {
		raw := decodeBase64(part.Body.Data)
		if strings.Contains(strings.ToLower(part.MimeType), "html") {
			return HTMLToText(raw)
		}
		return raw
	}

	var texts []string
	for _, child := range part.Parts {
		if text := ExtractText(child); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n")
}

// decodeBase64 decodes base64 URL-encoded data. Content that is not valid
// UTF-8 after decoding is kept with replacement characters instead of being
// dropped.
func decodeBase64(data string) string {
	if data == "" {
		return ""
	}
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		// Gmail omits padding on some parts; other senders use standard base64.
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			decoded, err = base64.StdEncoding.DecodeString(data)
			if err != nil {
				return ""
			}
		}
	}
	return strings.ToValidUTF8(string(decoded), "�")
}
