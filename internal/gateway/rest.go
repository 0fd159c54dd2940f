package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type RESTHandler struct {
	ops    *Operations
	logger *slog.Logger
}

func NewRESTHandler(ops *Operations, logger *slog.Logger) *RESTHandler {
	return &RESTHandler{
		ops:    ops,
		logger: logger,
	}
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type createOrderRequest struct {
	UserID     string   `json:"userId"`
	ProductIDs []string `json:"productIds"`
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type processPaymentRequest struct {
	OrderID string          `json:"orderId"`
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method"`
}

func (h *RESTHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.ops.CreateProduct(r.Context(), CreateProductInput(req))
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, product)
}

func (h *RESTHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.ops.ListProducts(r.Context())
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, products)
}

func (h *RESTHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.ops.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	writeFound(h, w, product)
}

func (h *RESTHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.ops.CreateOrder(r.Context(), CreateOrderInput(req))
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *RESTHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.ops.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	writeFound(h, w, order)
}

func (h *RESTHandler) ListOrdersByUser(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ops.ListOrdersByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, orders)
}

func (h *RESTHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.ops.CreateUser(r.Context(), CreateUserInput(req))
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

func (h *RESTHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.ops.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	writeFound(h, w, user)
}

func (h *RESTHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.ops.ListUsers(r.Context())
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}

func (h *RESTHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req processPaymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	payment, err := h.ops.ProcessPayment(r.Context(), ProcessPaymentInput(req))
	if err != nil {
		h.backendError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, payment)
}

func (h *RESTHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeFound answers with the entity, or an empty object when it does not exist.
func writeFound[T any](h *RESTHandler, w http.ResponseWriter, v *T) {
	if v == nil {
		h.writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

func (h *RESTHandler) backendError(w http.ResponseWriter, r *http.Request, err error) {
	code := httpStatus(err)
	h.logger.ErrorContext(r.Context(), "backend call failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"status", code,
	)
	h.writeError(w, code, err.Error())
}

func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *RESTHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
