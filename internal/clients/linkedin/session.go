package linkedin

import "strings"

// SessionCookieName is the cookie LinkedIn issues for an authenticated session.
const SessionCookieName = "li_at"

// ExtractSessionToken pulls the session token out of a raw Cookie header.
// Malformed input is tolerated; a missing cookie is reported via ok=false,
// never as an error.
func ExtractSessionToken(cookieHeader string) (token string, ok bool) {
	for _, pair := range strings.Split(cookieHeader, ";") {
		pair = strings.TrimSpace(pair)
		if value, found := strings.CutPrefix(pair, SessionCookieName+"="); found {
			return value, true
		}
	}
	return "", false
}
