package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/opsdesk/opsdesk/internal/core/ports"
)

// ClientHandler handles HTTP requests for the client directory.
type ClientHandler struct {
	clients ports.ClientService
	reports ports.ReportService
}

func NewClientHandler(clients ports.ClientService, reports ports.ReportService) *ClientHandler {
	return &ClientHandler{clients: clients, reports: reports}
}

// Create handles POST /v1/clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clients.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toClientResponse(client))
}

// List handles GET /v1/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        include_archived  query     bool  false  "Include archived clients"
// @Success      200               {object}  listClientsResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	includeArchived := c.QueryParam("include_archived") == "true"

	clients, err := h.clients.List(c.Request().Context(), includeArchived)
	if err != nil {
		return err
	}

	out := make([]clientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientResponse(cl))
	}
	return c.JSON(http.StatusOK, listClientsResponse{Data: out})
}

// Archive handles POST /v1/clients/:id/archive.
//
// @Summary      Archive a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id}/archive [post]
func (h *ClientHandler) Archive(c echo.Context) error {
	client, err := h.clients.Archive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Unarchive handles POST /v1/clients/:id/unarchive.
//
// @Summary      Unarchive a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id}/unarchive [post]
func (h *ClientHandler) Unarchive(c echo.Context) error {
	client, err := h.clients.Unarchive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// GetPIN handles GET /v1/clients/:id/pin.
//
// @Summary      Read a client's current PIN
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  pinResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id}/pin [get]
func (h *ClientHandler) GetPIN(c echo.Context) error {
	pin, err := h.clients.GetPIN(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pinResponse{PIN: pin})
}

// RotatePIN handles POST /v1/clients/:id/pin/rotate. The previous PIN stops
// working the moment this returns.
//
// @Summary      Rotate a client's PIN
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  pinResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id}/pin/rotate [post]
func (h *ClientHandler) RotatePIN(c echo.Context) error {
	pin, err := h.clients.RotatePIN(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pinResponse{PIN: pin})
}

// Delete handles DELETE /v1/clients/:id. Removes the client and every one of
// its requests. No undo.
//
// @Summary      Hard-delete a client and its requests
// @Tags         clients
// @Security     BearerAuth
// @Param        id  path  string  true  "Client ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.clients.HardDelete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// WeeklyReport handles GET /v1/clients/:id/report.
//
// @Summary      Weekly activity report for a client
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  ports.WeeklyReport
// @Failure      400  {object}  errorResponse
// @Router       /v1/clients/{id}/report [get]
func (h *ClientHandler) WeeklyReport(c echo.Context) error {
	report, err := h.reports.Weekly(c.Request().Context(), c.Param("id"), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
