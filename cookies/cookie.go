// Package cookies builds and removes the session identifying cookies with
// explicit security attributes. Every cookie is HttpOnly and scoped to "/".
package cookies

import (
	"net/http"
	"time"
)

const (
	// AuthTokenName holds the short lived auth token.
	AuthTokenName = "auth_token"
	// RefreshTokenName holds the long lived refresh token keying a session row.
	RefreshTokenName = "refresh_token"
	// OAuthStateName holds the signed OAuth state (csrf, PKCE verifier, redirect) during a provider round trip.
	OAuthStateName = "oauth_state"
)

// WellKnown returns the names of the cookies owned by the auth layer.
func WellKnown() []string {
	return []string{AuthTokenName, RefreshTokenName, OAuthStateName}
}

// removalTTL is how long a removal cookie lives before the browser drops it.
const removalTTL = time.Second

// Build creates a cookie whose transport rules follow the deployment mode:
// Secure and SameSite=Strict in production, plain and SameSite=Lax in dev.
func Build(key, value string, ttl time.Duration, dev bool) *http.Cookie {
	return BuildExplicit(key, value, ttl, !dev, !dev)
}

// BuildExplicit creates a cookie with Secure and SameSite chosen by the caller.
// SameSite is Strict when strictSameSite is set and Lax otherwise.
func BuildExplicit(key, value string, ttl time.Duration, tlsOnly, strictSameSite bool) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if strictSameSite {
		sameSite = http.SameSiteStrictMode
	}
	return &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge(ttl),
		HttpOnly: true,
		Secure:   tlsOnly,
		SameSite: sameSite,
	}
}

// maxAge truncates ttl to whole seconds. http.Cookie treats MaxAge 0 as
// "unspecified" and negative as "delete now" (Max-Age=0 on the wire), so a
// ttl under one second maps to -1 rather than becoming a browser session cookie.
func maxAge(ttl time.Duration) int {
	if secs := int(ttl / time.Second); secs > 0 {
		return secs
	}
	return -1
}

// Remove overwrites key with an empty, short lived cookie if the jar has it.
//
// Browsers do not always drop a Secure or SameSite=Strict cookie when asked
// to with matching attributes, so the replacement is deliberately downgraded
// (not Secure, SameSite=Lax) and expires after one second.
//
// It reports false only when the jar was already written and the removal
// could not be sent.
func Remove(jar *Jar, key string) bool {
	if jar.Get(key) == nil {
		return true
	}
	return jar.Add(Build(key, "", removalTTL, true))
}

// RemoveAll removes every well known auth cookie present in the jar. It
// reports whether every removal was queued.
func RemoveAll(jar *Jar) bool {
	ok := true
	for _, key := range WellKnown() {
		ok = Remove(jar, key) && ok
	}
	return ok
}
