package credentials

import (
	"net/http"
	"net/url"
	"time"
)

// TokenCookieName is the cookie that carries the access token, matching the
// name the blog frontend historically used.
const TokenCookieName = "token"

// CookieMirror mirrors the access token into an http.CookieJar so that plain
// HTTP clients sharing the jar send it automatically. It is written only by
// the session manager; everything else reads.
type CookieMirror struct {
	jar    http.CookieJar
	origin *url.URL
}

func NewCookieMirror(jar http.CookieJar, origin *url.URL) *CookieMirror {
	return &CookieMirror{jar: jar, origin: origin}
}

// Set writes the access token cookie for the origin. An empty token clears it.
func (cm *CookieMirror) Set(accessToken string) {
	if accessToken == "" {
		cm.Clear()
		return
	}
	cm.jar.SetCookies(cm.origin, []*http.Cookie{{
		Name:   TokenCookieName,
		Value:  accessToken,
		Path:   "/",
		Secure: cm.origin.Scheme == "https",
	}})
}

// Get returns the mirrored access token, or empty when no cookie is present.
func (cm *CookieMirror) Get() string {
	for _, cookie := range cm.jar.Cookies(cm.origin) {
		if cookie.Name == TokenCookieName {
			return cookie.Value
		}
	}
	return ""
}

// Clear expires the cookie, which removes it from the jar.
func (cm *CookieMirror) Clear() {
	cm.jar.SetCookies(cm.origin, []*http.Cookie{{
		Name:    TokenCookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	}})
}
