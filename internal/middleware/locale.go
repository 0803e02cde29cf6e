package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

var supportedLocales = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Indonesian,
	language.Japanese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Locale picks the badge number format from ?locale= or Accept-Language,
// falling back to defaultLocale.
func Locale(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale)
			ctx := context.WithValue(r.Context(), localeContextKey{}, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string) string {
	if v := r.URL.Query().Get("locale"); v != "" {
		if tag, err := language.Parse(v); err == nil {
			return matchLocale(tag)
		}
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil && len(tags) > 0 {
			return matchLocale(tags...)
		}
	}
	if fallback != "" {
		return fallback
	}
	return language.English.String()
}

func matchLocale(tags ...language.Tag) string {
	_, idx, _ := localeMatcher.Match(tags...)
	return supportedLocales[idx].String()
}

// LocaleFromContext returns the locale chosen by Locale.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(localeContextKey{}).(string); ok {
		return v
	}
	return language.English.String()
}
