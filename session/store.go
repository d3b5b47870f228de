package session

import (
	"net/http"
)

// Store is a request-scoped cookie jar.
type Store interface {
	Get(name string) (string, bool)
	Set(name, value string, maxAge int)
	Delete(name string)
}

// CookieStore reads cookies from the inbound request and writes Set-Cookie
// headers on the response. Writes are visible to later Gets on the same store.
type CookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	secure  bool
	written map[string]*string
}

var _ Store = (*CookieStore)(nil)

func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{
		w:       w,
		r:       r,
		secure:  secure,
		written: make(map[string]*string),
	}
}

func (s *CookieStore) Get(name string) (string, bool) {
	if v, ok := s.written[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c, err := s.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) Set(name, value string, maxAge int) {
	// A zero max-age would make net/http omit the attribute and leave a
	// session cookie behind, so an already expired token is deleted instead.
	if maxAge <= 0 {
		s.Delete(name)
		return
	}
	s.written[name] = &value
	http.SetCookie(s.w, s.cookie(name, value, maxAge))
}

func (s *CookieStore) Delete(name string) {
	s.written[name] = nil
	http.SetCookie(s.w, s.cookie(name, "", -1))
}

func (s *CookieStore) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	}
}
