package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestaocontabil/backend/internal/core/ports"
)

type ObligationHandler struct {
	obligations ports.ObligationService
}

func NewObligationHandler(obligations ports.ObligationService) *ObligationHandler {
	return &ObligationHandler{obligations: obligations}
}

type createObligationRequest struct {
	ClientID   string    `json:"client_id"  validate:"required"`
	Title      string    `json:"title"      validate:"required"`
	Kind       string    `json:"kind"       validate:"required"`
	Competence string    `json:"competence"`
	DueDate    time.Time `json:"due_date"   validate:"required"`
	AssignedTo string    `json:"assigned_to"`
	Notes      string    `json:"notes"`
}

type updateObligationRequest struct {
	Title      *string    `json:"title"`
	Kind       *string    `json:"kind"`
	Competence *string    `json:"competence"`
	DueDate    *time.Time `json:"due_date"`
	AssignedTo *string    `json:"assigned_to"`
	Notes      *string    `json:"notes"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required,oneof=pendente em_andamento concluida cancelada"`
	Notes  string `json:"notes"`
}

// Create registers a fiscal obligation for a client.
//
// @Summary      Create an obligation
// @Tags         obligations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createObligationRequest  true  "Obligation details"
// @Success      201   {object}  domain.Obligation
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /obligations [post]
func (h *ObligationHandler) Create(c echo.Context) error {
	var req createObligationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	obligation, err := h.obligations.Create(c.Request().Context(), ports.CreateObligationInput{
		ClientID:   req.ClientID,
		Title:      req.Title,
		Kind:       req.Kind,
		Competence: req.Competence,
		DueDate:    req.DueDate,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, obligation)
}

// Get returns one obligation by id.
//
// @Summary      Get an obligation
// @Tags         obligations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Obligation id"
// @Success      200  {object}  domain.Obligation
// @Failure      404  {object}  map[string]string
// @Router       /obligations/{id} [get]
func (h *ObligationHandler) Get(c echo.Context) error {
	obligation, err := h.obligations.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, obligation)
}

// Update applies a partial update. Status is not updatable here; it moves
// only through the transition endpoint.
//
// @Summary      Update an obligation
// @Tags         obligations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Obligation id"
// @Param        body  body      updateObligationRequest  true  "Fields to update"
// @Success      200   {object}  domain.Obligation
// @Failure      404   {object}  map[string]string
// @Router       /obligations/{id} [put]
func (h *ObligationHandler) Update(c echo.Context) error {
	var req updateObligationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	obligation, err := h.obligations.Update(c.Request().Context(), c.Param("id"), ports.UpdateObligationInput{
		Title:      req.Title,
		Kind:       req.Kind,
		Competence: req.Competence,
		DueDate:    req.DueDate,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, obligation)
}

// Transition moves an obligation to a new status. Invalid moves (e.g. out of
// a terminal status) fail with 422.
//
// @Summary      Change obligation status
// @Tags         obligations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Obligation id"
// @Param        body  body      transitionRequest  true  "Target status"
// @Success      200   {object}  domain.Obligation
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /obligations/{id}/status [put]
func (h *ObligationHandler) Transition(c echo.Context) error {
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	obligation, err := h.obligations.Transition(c.Request().Context(), c.Param("id"), ports.TransitionInput{
		Status:    req.Status,
		ChangedBy: identity.AccountID,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, obligation)
}

// Delete removes an obligation.
//
// @Summary      Delete an obligation
// @Tags         obligations
// @Security     BearerAuth
// @Param        id  path  string  true  "Obligation id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /obligations/{id} [delete]
func (h *ObligationHandler) Delete(c echo.Context) error {
	if err := h.obligations.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns a page of obligations.
//
// @Summary      List obligations
// @Tags         obligations
// @Produce      json
// @Security     BearerAuth
// @Param        client_id    query     string  false  "Client filter"
// @Param        status       query     string  false  "Status filter"
// @Param        kind         query     string  false  "Kind filter (DAS, DCTF, ...)"
// @Param        assigned_to  query     string  false  "Assignee filter"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200          {object}  paginatedResponse
// @Router       /obligations [get]
func (h *ObligationHandler) List(c echo.Context) error {
	page, limit := parsePage(c.QueryParam("page"), c.QueryParam("limit"))
	filter := ports.ListObligationsFilter{
		ClientID:   c.QueryParam("client_id"),
		Status:     c.QueryParam("status"),
		Kind:       c.QueryParam("kind"),
		AssignedTo: c.QueryParam("assigned_to"),
		Page:       page,
		Limit:      limit,
	}
	if from := c.QueryParam("due_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.DueFrom = t
		}
	}
	if to := c.QueryParam("due_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.DueTo = t
		}
	}

	result, err := h.obligations.List(c.Request().Context(), filter)
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
