package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestaocontabil/backend/internal/core/ports"
)

type ClientHandler struct {
	clients ports.ClientService
}

func NewClientHandler(clients ports.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type createClientRequest struct {
	Name      string `json:"name"       validate:"required"`
	TradeName string `json:"trade_name"`
	CNPJ      string `json:"cnpj"       validate:"required,cnpj"`
	Email     string `json:"email"      validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Regime    string `json:"regime"     validate:"required,oneof=simples presumido real"`
}

type updateClientRequest struct {
	Name      *string `json:"name"`
	TradeName *string `json:"trade_name"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	Regime    *string `json:"regime"     validate:"omitempty,oneof=simples presumido real"`
	Active    *bool   `json:"active"`
}

// Create registers a new client company.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clients.Create(c.Request().Context(), ports.CreateClientInput{
		Name:      req.Name,
		TradeName: req.TradeName,
		CNPJ:      req.CNPJ,
		Email:     req.Email,
		Phone:     req.Phone,
		Regime:    req.Regime,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// Get returns one client by id.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  domain.Client
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.clients.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Update applies a partial update to a client.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Client id"
// @Param        body  body      updateClientRequest  true  "Fields to update"
// @Success      200   {object}  domain.Client
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clients.Update(c.Request().Context(), c.Param("id"), ports.UpdateClientInput{
		Name:      req.Name,
		TradeName: req.TradeName,
		Email:     req.Email,
		Phone:     req.Phone,
		Regime:    req.Regime,
		Active:    req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Delete removes a client.
//
// @Summary      Delete a client
// @Tags         clients
// @Security     BearerAuth
// @Param        id  path  string  true  "Client id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.clients.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns a page of clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on name, trade name, or CNPJ"
// @Param        regime  query     string  false  "Tax regime filter"
// @Param        active  query     bool    false  "Active filter"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  paginatedResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	page, limit := parsePage(c.QueryParam("page"), c.QueryParam("limit"))
	filter := ports.ListClientsFilter{
		Search: c.QueryParam("search"),
		Regime: c.QueryParam("regime"),
		Page:   page,
		Limit:  limit,
	}
	switch c.QueryParam("active") {
	case "true":
		active := true
		filter.Active = &active
	case "false":
		active := false
		filter.Active = &active
	}

	result, err := h.clients.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginatedResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
