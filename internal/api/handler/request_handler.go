package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opsdesk/opsdesk/internal/core/ports"
)

// RequestHandler handles HTTP requests for the request lifecycle.
type RequestHandler struct {
	requests ports.RequestService
}

func NewRequestHandler(requests ports.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// Create handles POST /v1/requests. The created request starts in status
// "new" and records the operator's username as its creator.
//
// @Summary      Create a request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Request details"
// @Success      201   {object}  domain.Request
// @Failure      400   {object}  errorResponse
// @Router       /v1/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	createdBy, _ := c.Get("username").(string)
	request, err := h.requests.Create(c.Request().Context(), ports.CreateRequestInput{
		ClientID:     req.ClientID,
		Title:        req.Title,
		Details:      req.Details,
		CustomerName: req.CustomerName,
		Tags:         req.Tags,
		DueDate:      req.DueDate,
		CreatedBy:    createdBy,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, request)
}

// Edit handles PATCH /v1/requests/:id. Fields absent from the payload stay
// unchanged; an explicit null clears the field. The response body is the
// row as stored after the write, not an echo of the input.
//
// @Summary      Partially edit a request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Request ID"
// @Param        body  body      updateRequestRequest  true  "Fields to change"
// @Success      200   {object}  domain.Request
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/requests/{id} [patch]
func (h *RequestHandler) Edit(c echo.Context) error {
	var req updateRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	request, err := h.requests.Edit(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// Delete handles DELETE /v1/requests/:id.
//
// @Summary      Delete a request
// @Tags         requests
// @Security     BearerAuth
// @Param        id  path  string  true  "Request ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/requests/{id} [delete]
func (h *RequestHandler) Delete(c echo.Context) error {
	if err := h.requests.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/requests?client_id=&status=&q=. Results come back
// newest-updated first with the derived overdue and waiting_stale flags.
//
// @Summary      List a client's requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  true   "Client ID"
// @Param        status     query     string  false  "Status filter (new|doing|waiting|done)"
// @Param        q          query     string  false  "Substring match on title, customer name and tags"
// @Success      200        {object}  listRequestsResponse
// @Failure      400        {object}  errorResponse
// @Router       /v1/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	views, err := h.requests.List(c.Request().Context(), ports.ListRequestsInput{
		ClientID: c.QueryParam("client_id"),
		Status:   c.QueryParam("status"),
		Query:    c.QueryParam("q"),
	})
	if err != nil {
		return err
	}
	if views == nil {
		views = []ports.RequestView{}
	}
	return c.JSON(http.StatusOK, listRequestsResponse{Data: views})
}
