package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/telemetry"
)

// NewRouter mounts both façades. Every request gets an X-Request-Id that is
// echoed back and forwarded to the backends as gRPC metadata.
func NewRouter(rest *RESTHandler, graphQL http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(attachRequestID)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.TagChiRoute)

	r.Route("/products", func(r chi.Router) {
		r.Post("/", rest.CreateProduct)
		r.Get("/", rest.ListProducts)
		r.Get("/{id}", rest.GetProduct)
	})
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", rest.CreateOrder)
		r.Get("/{id}", rest.GetOrder)
	})
	r.Route("/users", func(r chi.Router) {
		r.Post("/", rest.CreateUser)
		r.Get("/", rest.ListUsers)
		r.Get("/{id}", rest.GetUser)
		r.Get("/{id}/orders", rest.ListOrdersByUser)
	})
	r.Post("/payments", rest.ProcessPayment)
	r.Handle("/graphql", graphQL)

	return r
}

func attachRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		w.Header().Set(middleware.RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(rpc.WithRequestID(r.Context(), requestID)))
	})
}
