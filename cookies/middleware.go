package cookies

import (
	"context"
	"net/http"

	autherrors "github.com/jrsteele09/go-auth-policy/internal/errors"
	"github.com/rs/zerolog/log"
)

type contextKey struct{}

// Middleware installs a Jar on the request context and writes its queued
// cookies just before the response header goes out.
func Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jar := NewJar(r)
		jw := &jarWriter{ResponseWriter: w, jar: jar}
		next(jw, r.WithContext(WithJar(r.Context(), jar)))
		jw.flush()
	}
}

// WithJar returns a copy of ctx carrying jar.
func WithJar(ctx context.Context, jar *Jar) context.Context {
	return context.WithValue(ctx, contextKey{}, jar)
}

// FromRequest returns the jar installed by Middleware.
func FromRequest(r *http.Request) (*Jar, error) {
	if jar, ok := r.Context().Value(contextKey{}).(*Jar); ok && jar != nil {
		return jar, nil
	}
	log.Error().Str("path", r.URL.Path).Msg("Failed to get cookies")
	return nil, autherrors.Internal("cookie error")
}

type jarWriter struct {
	http.ResponseWriter
	jar     *Jar
	flushed bool
}

func (w *jarWriter) flush() {
	if w.flushed {
		return
	}
	w.flushed = true
	w.jar.WriteTo(w.ResponseWriter.Header())
}

func (w *jarWriter) WriteHeader(statusCode int) {
	w.flush()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *jarWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *jarWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
