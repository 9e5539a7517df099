package handlers

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/morgansundqvist/minicopilot/internal/domain"
	"github.com/morgansundqvist/minicopilot/internal/render"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Copilot is the part of the application service the handlers need.
type Copilot interface {
	Generate(ctx context.Context, req domain.PromptRequest) (domain.CompletionResult, error)
	Status(ctx context.Context) domain.Status
}

type CopilotHandler struct {
	Svc    Copilot
	Logger *slog.Logger
}

func NewCopilotHandler(svc Copilot, logger *slog.Logger) *CopilotHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CopilotHandler{Svc: svc, Logger: logger}
}

// Routes mounts the page and the JSON API on app.
func (h *CopilotHandler) Routes(app *fiber.App) {
	app.Get("/", h.ShowForm)
	app.Post("/", h.SubmitForm)

	api := app.Group("/api")
	api.Get("/health", h.Health)
	api.Get("/tasks", h.ListTasks)
	api.Get("/status", h.GetStatus)
	api.Get("/schema", h.GetSchema)
	api.Post("/generate", h.Generate)
}

type GenerateRequest struct {
	Task string `json:"task" jsonschema:"required,enum=Explain Code,enum=Add Comments to Code,enum=Write Test Cases,enum=Generate Documentation,enum=Ask Anything"`
	Text string `json:"text" jsonschema:"required" jsonschema_description:"Code or question; must not be blank."`
}

type GenerateResponse struct {
	ID         string `json:"id"`
	Task       string `json:"task"`
	Model      string `json:"model"`
	Text       string `json:"text" jsonschema_description:"First choice content, verbatim."`
	HTML       string `json:"html" jsonschema_description:"Text rendered from markdown."`
	DurationMS int64  `json:"duration_ms"`
}

type ErrorResponse struct {
	Error   string `json:"error" jsonschema_description:"One of ConfigMissing, ProviderUnavailable, EmptyInput, ProviderError, BadRequest."`
	Details string `json:"details"`
}

func (h *CopilotHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *CopilotHandler) ListTasks(c *fiber.Ctx) error {
	return c.JSON(taskLabels())
}

func (h *CopilotHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(h.Svc.Status(c.UserContext()))
}

func (h *CopilotHandler) GetSchema(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"request":  domain.GenerateSchema[GenerateRequest](),
		"response": domain.GenerateSchema[GenerateResponse](),
		"error":    domain.GenerateSchema[ErrorResponse](),
	})
}

func (h *CopilotHandler) Generate(c *fiber.Ctx) error {
	var body GenerateRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "BadRequest",
			Details: "cannot parse JSON: " + err.Error(),
		})
	}
	task, err := domain.ParseTask(body.Task)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "BadRequest", Details: err.Error()})
	}

	res, err := h.Svc.Generate(c.UserContext(), domain.PromptRequest{Task: task, RawText: body.Text})
	if errors.Is(err, domain.ErrInvalidTask) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "BadRequest", Details: err.Error()})
	}
	if err != nil {
		kind, msg := domain.Describe(err)
		return c.Status(statusFor(kind)).JSON(ErrorResponse{Error: string(kind), Details: msg})
	}

	html, err := render.Markdown(res.Text)
	if err != nil {
		h.Logger.Warn("markdown render failed", "interaction", res.ID, "error", err)
	}
	return c.JSON(GenerateResponse{
		ID:         res.ID,
		Task:       res.Task.String(),
		Model:      res.Model,
		Text:       res.Text,
		HTML:       string(html),
		DurationMS: res.Duration.Milliseconds(),
	})
}

type alert struct {
	Class   string
	Title   string
	Message string
}

// resultView carries the completion exactly as the model returned it;
// the template escapes it into a code block.
type resultView struct {
	Text string
}

type pageData struct {
	Tasks    []string
	Selected string
	Text     string
	Status   *domain.Status
	Alert    *alert
	Result   *resultView
}

func (h *CopilotHandler) ShowForm(c *fiber.Ctx) error {
	st := h.Svc.Status(c.UserContext())
	data := pageData{
		Tasks:    taskLabels(),
		Selected: domain.TaskExplainCode.String(),
		Status:   &st,
	}
	code := fiber.StatusOK
	if st.Error != "" {
		kind := domain.ErrorKind(st.ErrorKind)
		data.Alert = alertFor(kind, st.Error)
		code = statusFor(kind)
	}
	return h.renderPage(c, code, data)
}

func (h *CopilotHandler) SubmitForm(c *fiber.Ctx) error {
	label := c.FormValue("task")
	text := c.FormValue("text")
	st := h.Svc.Status(c.UserContext())
	data := pageData{Tasks: taskLabels(), Selected: label, Text: text, Status: &st}

	task, err := domain.ParseTask(label)
	if err != nil {
		data.Selected = domain.TaskExplainCode.String()
		data.Alert = &alert{Class: "warning", Title: "Warning:", Message: "Please choose one of the listed tasks."}
		return h.renderPage(c, fiber.StatusBadRequest, data)
	}

	res, err := h.Svc.Generate(c.UserContext(), domain.PromptRequest{Task: task, RawText: text})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTask) {
			data.Alert = &alert{Class: "warning", Title: "Warning:", Message: "Please choose one of the listed tasks."}
			return h.renderPage(c, fiber.StatusBadRequest, data)
		}
		kind, msg := domain.Describe(err)
		data.Alert = alertFor(kind, msg)
		return h.renderPage(c, statusFor(kind), data)
	}

	data.Result = &resultView{Text: res.Text}
	return h.renderPage(c, fiber.StatusOK, data)
}

func (h *CopilotHandler) renderPage(c *fiber.Ctx, code int, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.Logger.Error("page render failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Status(code).Send(buf.Bytes())
}

func taskLabels() []string {
	tasks := domain.Tasks()
	labels := make([]string, 0, len(tasks))
	for _, t := range tasks {
		labels = append(labels, t.String())
	}
	return labels
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindEmptyInput:
		return fiber.StatusBadRequest
	case domain.KindConfigMissing, domain.KindProviderUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}

func alertFor(kind domain.ErrorKind, msg string) *alert {
	switch kind {
	case domain.KindEmptyInput, domain.KindProviderUnavailable:
		return &alert{Class: "warning", Title: "Warning:", Message: msg}
	default:
		return &alert{Class: "error", Title: "Error:", Message: msg}
	}
}
