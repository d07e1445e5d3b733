package http

import (
	"time"

	"task-reminder-bot/internal/datetime"
	"task-reminder-bot/pkg/response"
)

// --- Request DTOs ---

type referenceReq struct {
	Now      *time.Time `json:"now"      example:"2026-02-10T10:00:00+03:00"`
	Timezone string     `json:"timezone" example:"Europe/Moscow"`
}

func (r referenceReq) validate() error {
	if r.Timezone == "" {
		return nil
	}
	if _, err := time.LoadLocation(r.Timezone); err != nil {
		return errInvalidTimezone
	}
	return nil
}

func (r referenceReq) toReference() datetime.Reference {
	return datetime.Reference{Now: r.Now, Timezone: r.Timezone}
}

type parseReq struct {
	Text string `json:"text" binding:"required,max=500" example:"завтра в 16:00"`
	referenceReq
}

func (r parseReq) toInput() datetime.ParseInput {
	return datetime.ParseInput{Text: r.Text, Reference: r.toReference()}
}

type extractReq struct {
	Text string `json:"text" binding:"required,max=2000" example:"Собрание завтра в 16:00"`
	referenceReq
}

func (r extractReq) toInput() datetime.ExtractInput {
	return datetime.ExtractInput{Text: r.Text, Reference: r.toReference()}
}

type reminderReq struct {
	Text     string     `json:"text"     binding:"required,max=500" example:"за час"`
	Deadline *time.Time `json:"deadline" example:"2026-02-11T16:00:00+03:00"`
	referenceReq
}

func (r reminderReq) toInput() datetime.ReminderInput {
	return datetime.ReminderInput{Text: r.Text, Deadline: r.Deadline, Reference: r.toReference()}
}

type normalizeReq struct {
	Text string `json:"text" binding:"required,max=2000" example:"встреча завтра в 3 часа дня"`
}

func (r normalizeReq) toInput() datetime.NormalizeInput {
	return datetime.NormalizeInput{Text: r.Text}
}

// --- Response DTOs ---

type parseResp struct {
	Time     time.Time         `json:"time"`
	Local    response.DateTime `json:"local" swaggertype:"string" example:"2026-02-11 16:00:00"`
	Rule     string            `json:"rule"`
	DateOnly bool              `json:"date_only"`
	Display  string            `json:"display"`
}

func newParseResp(out datetime.ParseOutput) parseResp {
	return parseResp{
		Time:     out.Time,
		Local:    response.DateTime(out.Time),
		Rule:     out.Rule,
		DateOnly: out.DateOnly,
		Display:  out.Display,
	}
}

type extractResp struct {
	Title    string             `json:"title"`
	Found    bool               `json:"found"`
	Deadline *time.Time         `json:"deadline,omitempty"`
	Local    *response.DateTime `json:"local,omitempty" swaggertype:"string"`
	Rule     string             `json:"rule,omitempty"`
	Span     string             `json:"span,omitempty"`
	Display  string             `json:"display,omitempty"`
}

func newExtractResp(out datetime.ExtractOutput) extractResp {
	resp := extractResp{Title: out.Title, Found: out.Found}
	if !out.Found {
		return resp
	}
	local := response.DateTime(out.Deadline)
	resp.Deadline = &out.Deadline
	resp.Local = &local
	resp.Rule = out.Rule
	resp.Span = out.Span
	resp.Display = out.Display
	return resp
}

type reminderResp struct {
	Time    time.Time         `json:"time"`
	Local   response.DateTime `json:"local" swaggertype:"string"`
	Display string            `json:"display"`
}

func newReminderResp(out datetime.ReminderOutput) reminderResp {
	return reminderResp{Time: out.Time, Local: response.DateTime(out.Time), Display: out.Display}
}

type normalizeResp struct {
	Text string `json:"text"`
}
