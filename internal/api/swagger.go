package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/swaggo/swag"
)

// SwaggerUIHandler returns a handler for Swagger UI, collapsed by tag.
func SwaggerUIHandler() http.HandlerFunc {
	return httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DocExpansion("none"),
	)
}

// OpenAPISpecHandler serves the registered swagger document as JSON.
func OpenAPISpecHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "API documentation not registered"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	}
}
