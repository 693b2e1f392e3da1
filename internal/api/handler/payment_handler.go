package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// PaymentHandler handles HTTP requests for payment operations.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// List returns payments, latest due date first.
//
// @Summary      List payments
// @Tags         pagamentos
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id  query     string  false  "Client ID"
// @Param        status      query     string  false  "pendente, pago, atrasado or cancelado"
// @Param        mes         query     string  false  "Due month, YYYY-MM"
// @Success      200         {array}   domain.Payment
// @Failure      400         {object}  errorResponse
// @Router       /api/pagamentos [get]
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.service.List(c.Request().Context(), ports.ListPaymentsInput{
		ClientID: c.QueryParam("cliente_id"),
		Status:   c.QueryParam("status"),
		Month:    c.QueryParam("mes"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNilPayments(payments))
}

// Create records a pending payment for a client.
//
// @Summary      Create payment
// @Tags         pagamentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Payment"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/pagamentos [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	due, err := domain.ParseDate(req.DueDate)
	if err != nil {
		return err
	}

	payment, err := h.service.Create(c.Request().Context(), actor, ports.CreatePaymentInput{
		ClientID:    req.ClientID,
		Amount:      req.Amount,
		DueDate:     due,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Success: true, Message: "Pagamento criado com sucesso", ID: payment.ID})
}

// Pay marks a payment as settled today.
//
// @Summary      Register payment
// @Tags         pagamentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true   "Payment ID"
// @Param        body  body      payRequest  false  "Payment method"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/pagamentos/{id}/pagar [post]
func (h *PaymentHandler) Pay(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	var req payRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Payload inválido")
		}
	}

	if err := h.service.Pay(c.Request().Context(), actor, c.Param("id"), req.Method); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Pagamento registrado com sucesso"})
}

// Cancel cancels an open payment.
//
// @Summary      Cancel payment
// @Tags         pagamentos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/pagamentos/{id}/cancelar [post]
func (h *PaymentHandler) Cancel(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	if err := h.service.Cancel(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Pagamento cancelado com sucesso"})
}

// Delete permanently removes a payment.
//
// @Summary      Delete payment
// @Tags         pagamentos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/pagamentos/{id} [delete]
func (h *PaymentHandler) Delete(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Pagamento excluído com sucesso"})
}

// ClientHistory returns every payment of a client.
//
// @Summary      Client payment history
// @Tags         historico
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id  path      string  true  "Client ID"
// @Success      200         {array}   domain.Payment
// @Failure      404         {object}  errorResponse
// @Router       /api/historico/{cliente_id} [get]
func (h *PaymentHandler) ClientHistory(c echo.Context) error {
	payments, err := h.service.ClientHistory(c.Request().Context(), c.Param("cliente_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNilPayments(payments))
}

func nonNilPayments(p []*domain.Payment) []*domain.Payment {
	if p == nil {
		return []*domain.Payment{}
	}
	return p
}
