package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors lets browser clients reach the API. Any origin is accepted in
// development; otherwise cross-origin requests get no CORS headers.
func Cors(development bool) Middleware {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			return development
		},
	}
	return cors.New(options).Handler
}
