package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opsdesk/opsdesk/internal/core/ports"
)

// PublicHandler serves the unauthenticated intake surface. Everything here
// is reachable by anyone who knows a submission code.
type PublicHandler struct {
	intake ports.IntakeService
}

func NewPublicHandler(intake ports.IntakeService) *PublicHandler {
	return &PublicHandler{intake: intake}
}

// Resolve handles GET /public/:code. Unknown and archived codes answer
// identically with 404 so the response never reveals that a client exists.
//
// @Summary      Resolve a submission code
// @Tags         public
// @Produce      json
// @Param        code  path      string  true  "Submission code"
// @Success      200   {object}  domain.PublicClient
// @Failure      404   {object}  errorResponse
// @Router       /public/{code} [get]
func (h *PublicHandler) Resolve(c echo.Context) error {
	client, err := h.intake.Resolve(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Submit handles POST /public/:code/requests. Rate limited per caller
// address before any lookup happens.
//
// @Summary      Submit a request through a public intake link
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        code  path      string               true  "Submission code"
// @Param        body  body      publicSubmitRequest  true  "Submission"
// @Success      201   {object}  domain.Request
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /public/{code}/requests [post]
func (h *PublicHandler) Submit(c echo.Context) error {
	var req publicSubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	request, err := h.intake.Submit(c.Request().Context(), ports.PublicSubmitInput{
		SubmissionCode: c.Param("code"),
		PIN:            req.PIN,
		Title:          req.Title,
		Details:        req.Details,
		CustomerName:   req.CustomerName,
		DueDate:        req.DueDate,
		CallerAddr:     c.RealIP(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, request)
}
