package invoice

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// lenientNumber accepts a JSON number or a string. Clinic forms send "2",
// "1,250.00" or "" interchangeably.
type lenientNumber string

func (n *lenientNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*n = lenientNumber(s)

		return nil
	}

	*n = lenientNumber(b)

	return nil
}

// refParam returns the invoice ref from the path. Refs contain ':' which some
// clients percent-encode.
func refParam(r *http.Request) string {
	ref := chi.URLParam(r, "ref")

	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}

	return strings.TrimSpace(ref)
}
