package telemetry

import (
	"net/http"
	"strings"
)

// GASession holds the Google Analytics identifiers found in the visitor's
// cookies. Missing identifiers are nil.
type GASession struct {
	ClientID  *string `json:"clientId"`
	SessionID *string `json:"sessionId"`
}

// SessionFromRequest derives the GA identifiers from the _ga and
// _ga_<container> cookies. measurementID is the GA4 id ("G-XXXX"); when it is
// empty the first _ga_ cookie is used.
func SessionFromRequest(r *http.Request, measurementID string) GASession {
	var s GASession
	if c, err := r.Cookie("_ga"); err == nil {
		s.ClientID = parseClientID(c.Value)
	}

	if measurementID != "" {
		name := "_ga_" + strings.TrimPrefix(measurementID, "G-")
		if c, err := r.Cookie(name); err == nil {
			s.SessionID = parseSessionID(c.Value)
		}
		return s
	}
	for _, c := range r.Cookies() {
		if strings.HasPrefix(c.Name, "_ga_") {
			s.SessionID = parseSessionID(c.Value)
			break
		}
	}
	return s
}

// parseClientID turns "GA1.1.123.456" into "123.456".
func parseClientID(v string) *string {
	parts := strings.Split(v, ".")
	if len(parts) < 4 || parts[2] == "" || parts[3] == "" {
		return nil
	}
	id := parts[2] + "." + parts[3]
	return &id
}

// parseSessionID extracts the session from "GS1.1.<session>.<n>..." or the
// newer "GS2.1.s<session>$o1$g0...".
func parseSessionID(v string) *string {
	parts := strings.Split(v, ".")
	if len(parts) < 3 {
		return nil
	}
	id := parts[2]
	if strings.HasPrefix(parts[0], "GS2") {
		id, _, _ = strings.Cut(strings.TrimPrefix(id, "s"), "$")
	}
	if id == "" {
		return nil
	}
	return &id
}

// ParamValue converts an optional identifier into an event parameter.
func ParamValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
