package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// CreateOrder handles POST /api/cinema/orders (protected)
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
		return
	}

	var req request.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create order")
		return
	}

	utils.ResponseCreated(w, "success", order)
}

// ListOrders handles GET /api/cinema/orders (protected)
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
		return
	}

	orders, err := h.service.ListOrders(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}
