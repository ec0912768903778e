package hateoas

import (
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// Marshal encodes v as compact JSON. Encoder failures are returned as EncodingError.
// Invalid UTF-8 in strings is not a failure: each bad byte becomes U+FFFD.
func Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, EncodingError{Err: err}
	}
	return b, nil
}

// Path joins segments into an absolute path. Each segment is escaped so that it
// stays exactly one path segment, whatever characters it contains.
func Path(segments ...string) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteByte('/')
		b.WriteString(escapeSegment(segment))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func escapeSegment(segment string) string {
	switch segment {
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return url.PathEscape(segment)
}

func NewLink(rel string, segments ...string) Link {
	return Link{
		Rel:  rel,
		Href: Path(segments...),
	}
}
