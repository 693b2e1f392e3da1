package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// ClientHandler handles HTTP requests for client operations.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List returns active clients, optionally filtered by name or CPF.
//
// @Summary      List clients
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        busca  query     string  false  "Partial name or CPF"
// @Success      200    {array}   domain.Client
// @Failure      401    {object}  errorResponse
// @Router       /api/clientes [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.List(c.Request().Context(), c.QueryParam("busca"))
	if err != nil {
		return err
	}
	if clients == nil {
		clients = []*domain.Client{}
	}
	return c.JSON(http.StatusOK, clients)
}

// Create registers a client.
//
// @Summary      Create client
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/clientes [post]
func (h *ClientHandler) Create(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	fields, err := bindClient(c)
	if err != nil {
		return err
	}

	client, err := h.service.Create(c.Request().Context(), actor, fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Success: true, Message: "Cliente cadastrado com sucesso", ID: client.ID})
}

// Get returns a client together with its payment statistics.
//
// @Summary      Get client
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  domain.Client
// @Failure      404  {object}  errorResponse
// @Router       /api/clientes/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Update replaces a client's editable fields.
//
// @Summary      Update client
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client ID"
// @Param        body  body      clientRequest  true  "Client"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/clientes/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	fields, err := bindClient(c)
	if err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), actor, c.Param("id"), fields); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Cliente atualizado com sucesso"})
}

// Delete deactivates a client. Its payments are kept.
//
// @Summary      Deactivate client
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/clientes/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	if err := h.service.Deactivate(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Cliente removido com sucesso"})
}

func bindClient(c echo.Context) (domain.ClientFields, error) {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return domain.ClientFields{}, echo.NewHTTPError(http.StatusBadRequest, "Payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ClientFields{}, err
	}
	return domain.ClientFields{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		CPF:     req.CPF,
		Address: req.Address,
		Notes:   req.Notes,
	}, nil
}
