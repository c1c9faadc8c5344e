package httpapi

import (
	"embed"
	"net/http"
)

//go:embed openapi.yaml docs.html
var docsFS embed.FS

// OpenAPI serves the embedded OpenAPI 3 document.
func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	http.ServeFileFS(w, r, docsFS, "openapi.yaml")
}

// SwaggerUI serves a Swagger UI page that loads /openapi.yaml.
func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFileFS(w, r, docsFS, "docs.html")
}
