//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger serves the Swagger UI at /_sw/swagger/. The OpenAPI document is
// generated by `swag init -g cmd/offlined/docs.go` into /_sw/swagger/doc.json.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(adminPrefix+"/swagger/doc.json"),
	))
}
