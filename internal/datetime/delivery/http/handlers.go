package http

import (
	"github.com/gin-gonic/gin"

	"task-reminder-bot/pkg/response"
)

// Parse godoc
// @Summary     Parse a deadline expression
// @Description Resolves an isolated Russian date/time expression ("завтра в 16:00", "15.02.2026", "через неделю").
// @Tags        DateTime
// @Accept      json
// @Produce     json
// @Param       body body parseReq true "Expression and optional reference"
// @Success     200  {object} parseResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     422  {object} response.Resp "Expression not recognized"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/datetime/parse [POST]
func (h *handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processParseReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Parse(ctx, req.toInput())
	if err != nil {
		h.l.Debugf(ctx, "uc.Parse: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newParseResp(output))
}

// Extract godoc
// @Summary     Extract a deadline from free text
// @Description Finds a deadline inside a task description and returns the remaining title.
// @Tags        DateTime
// @Accept      json
// @Produce     json
// @Param       body body extractReq true "Text and optional reference"
// @Success     200  {object} extractResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/datetime/extract [POST]
func (h *handler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processExtractReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Extract(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Extract: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newExtractResp(output))
}

// Reminder godoc
// @Summary     Compute a reminder time
// @Description Resolves "за час", "через 30 минут" or an absolute expression, relative to an optional deadline.
// @Tags        DateTime
// @Accept      json
// @Produce     json
// @Param       body body reminderReq true "Reminder expression, optional deadline and reference"
// @Success     200  {object} reminderResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     422  {object} response.Resp "Expression not recognized"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/datetime/reminder [POST]
func (h *handler) Reminder(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processReminderReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Reminder(ctx, req.toInput())
	if err != nil {
		h.l.Debugf(ctx, "uc.Reminder: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newReminderResp(output))
}

// Normalize godoc
// @Summary     Normalize spoken text
// @Description Rewrites colloquial date/time phrasing into the canonical forms the parser understands.
// @Tags        DateTime
// @Accept      json
// @Produce     json
// @Param       body body normalizeReq true "Text"
// @Success     200  {object} normalizeResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/datetime/normalize [POST]
func (h *handler) Normalize(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processNormalizeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Normalize(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Normalize: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, normalizeResp{Text: output.Text})
}
