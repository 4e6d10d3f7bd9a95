package main

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"studylist/internal/app/likes"
	"studylist/internal/app/playlists"
	"studylist/internal/app/users"
	"studylist/internal/auth"
	"studylist/internal/httpapi"
	"studylist/internal/middleware"
	"studylist/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store, logger zerolog.Logger) http.Handler {
	playlistSvc := playlists.New(dataStore)
	userSvc := users.New(dataStore)
	likeSvc := likes.New(dataStore)
	verifier := auth.NewVerifier(cfg.TokenSecret, cfg.AllowedEmailDomain)

	handler := httpapi.New(playlistSvc, userSvc, likeSvc, verifier).Routes()
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	return withCORS(cfg.AllowedOrigins, handler)
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
