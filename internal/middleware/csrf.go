// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	// csrfTokenLength is the byte length of CSRF tokens (32 bytes = 64 hex chars).
	csrfTokenLength = 32

	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "ew_csrf"

	// CSRFHeaderName is the header scripted clients send the token in.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden form field name for plain HTML forms.
	CSRFFormField = "csrf_token"

	csrfKey contextKey = "csrf"
)

// csrfState is the per-request token and the cookie flags needed to
// reissue it.
type csrfState struct {
	token  string
	secure bool
}

// CSRF provides double-submit cookie protection. Every response carries a
// token cookie; POST, PUT, PATCH and DELETE requests must echo the same
// token in the X-CSRF-Token header or the csrf_token form field.
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(CSRFCookieName); err == nil {
				token = cookie.Value
			}
			if token == "" {
				var err error
				token, err = generateCSRFToken()
				if err != nil {
					writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
					return
				}
				setCSRFCookie(w, token, secure)
			}

			r = r.WithContext(context.WithValue(r.Context(), csrfKey, &csrfState{token: token, secure: secure}))

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			submitted := r.Header.Get(CSRFHeaderName)
			if submitted == "" {
				submitted = r.PostFormValue(CSRFFormField)
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
				writeJSONError(w, http.StatusForbidden, "CSRF token mismatch")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CSRFTokenFromCtx returns the token for the current request, including
// one freshly issued on this response. Used to fill hidden form fields.
func CSRFTokenFromCtx(ctx context.Context) string {
	if st, ok := ctx.Value(csrfKey).(*csrfState); ok {
		return st.token
	}
	return ""
}

// RotateCSRFToken replaces the request's token with a fresh one and sets
// it as the new cookie. Called when a session is established, so a token
// seen before sign-in stops working. A request that did not pass through
// CSRF is left alone.
func RotateCSRFToken(w http.ResponseWriter, r *http.Request) error {
	st, ok := r.Context().Value(csrfKey).(*csrfState)
	if !ok {
		return nil
	}
	token, err := generateCSRFToken()
	if err != nil {
		return err
	}
	setCSRFCookie(w, token, st.secure)
	st.token = token
	return nil
}

func setCSRFCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false, // The editor script reads it for fetch headers
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// generateCSRFToken creates a cryptographically random token.
func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
