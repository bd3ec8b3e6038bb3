package telemetry

import (
	"net/http"
	"time"
)

// Consent values persisted in the consent cookie. Anything other than
// ConsentAccepted, including no cookie at all, denies telemetry.
const (
	ConsentAccepted = "accepted"
	ConsentDeclined = "declined"
)

const consentMaxAge = 365 * 24 * time.Hour

// ConsentValue returns the raw consent value, or "" when the visitor has not
// chosen yet.
func ConsentValue(r *http.Request, cookieName string) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// HasConsent reports whether the visitor accepted analytics.
func HasConsent(r *http.Request, cookieName string) bool {
	return ConsentValue(r, cookieName) == ConsentAccepted
}

// SetConsent persists the visitor's choice. Values other than
// ConsentAccepted are stored as ConsentDeclined.
func SetConsent(w http.ResponseWriter, cookieName, value string, secure bool) {
	if value != ConsentAccepted {
		value = ConsentDeclined
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(consentMaxAge.Seconds()),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
