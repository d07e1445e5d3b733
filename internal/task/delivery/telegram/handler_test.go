package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
	"task-reminder-bot/internal/task/delivery/telegram"
	"task-reminder-bot/pkg/datemath"
	pkgLog "task-reminder-bot/pkg/log"
	pkgTelegram "task-reminder-bot/pkg/telegram"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockTaskUseCase struct {
	createOutput   task.CreateOutput
	createErr      error
	deadlineErr    error
	reminderErr    error
	listOutput     []model.Task
	completeOutput model.Task
	completeErr    error

	createInputs   []task.CreateInput
	deadlineInputs []task.SetDeadlineInput
	reminderInputs []task.SetReminderInput
}

var (
	tomorrow16 = time.Date(2030, 2, 11, 16, 0, 0, 0, time.UTC)
	reminder15 = time.Date(2030, 2, 11, 15, 0, 0, 0, time.UTC)
)

func (m *mockTaskUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) (task.CreateOutput, error) {
	m.createInputs = append(m.createInputs, input)
	return m.createOutput, m.createErr
}

func (m *mockTaskUseCase) SetDeadline(ctx context.Context, sc model.Scope, input task.SetDeadlineInput) (model.Task, error) {
	m.deadlineInputs = append(m.deadlineInputs, input)
	if m.deadlineErr != nil {
		return model.Task{}, m.deadlineErr
	}
	d := tomorrow16
	return model.Task{ID: input.TaskID, Deadline: &d}, nil
}

func (m *mockTaskUseCase) SetReminder(ctx context.Context, sc model.Scope, input task.SetReminderInput) (model.Task, error) {
	m.reminderInputs = append(m.reminderInputs, input)
	if m.reminderErr != nil {
		return model.Task{}, m.reminderErr
	}
	r := reminder15
	return model.Task{ID: input.TaskID, Reminder: &r}, nil
}

func (m *mockTaskUseCase) List(ctx context.Context, sc model.Scope, input task.ListInput) ([]model.Task, error) {
	return m.listOutput, nil
}

func (m *mockTaskUseCase) Complete(ctx context.Context, sc model.Scope, input task.CompleteInput) (model.Task, error) {
	return m.completeOutput, m.completeErr
}

func (m *mockTaskUseCase) DueReminders(ctx context.Context, now time.Time, limit int) ([]model.Task, error) {
	return nil, nil
}

func (m *mockTaskUseCase) MarkReminded(ctx context.Context, id string) error {
	return nil
}

// ── Test Helpers ───────────────────────────────────────────────────────────

type testEnv struct {
	engine *gin.Engine
	muc    *mockTaskUseCase

	mu       sync.Mutex
	messages []string
}

func (e *testEnv) last() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.messages) == 0 {
		return ""
	}
	return e.messages[len(e.messages)-1]
}

func newTestEnv(t *testing.T, cfg telegram.Config) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{muc: &mockTaskUseCase{}}

	tgServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/sendMessage") {
			var payload pkgTelegram.SendMessageRequest
			json.NewDecoder(r.Body).Decode(&payload)
			env.mu.Lock()
			env.messages = append(env.messages, payload.Text)
			env.mu.Unlock()
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(tgServer.Close)

	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(tgServer.URL)

	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)

	env.engine = gin.New()
	h := telegram.New(pkgLog.NewNop(), env.muc, bot, parser, cfg)
	env.engine.POST("/webhook/telegram", h.HandleWebhook)
	return env
}

func (e *testEnv) send(text string, headers ...string) *httptest.ResponseRecorder {
	update := pkgTelegram.Update{
		UpdateID: 1,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			Chat:      &pkgTelegram.Chat{ID: 123},
			From:      &pkgTelegram.User{ID: 456},
			Text:      text,
		},
	}
	body, _ := json.Marshal(update)
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})

	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString("{bad json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleWebhook_SecretToken(t *testing.T) {
	env := newTestEnv(t, telegram.Config{SecretToken: "s3cret"})

	w := env.send("/start")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, env.last())

	w = env.send("/start", pkgTelegram.SecretTokenHeader, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.send("/start", pkgTelegram.SecretTokenHeader, "s3cret")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.last(), "Я помогаю")
}

func TestHandleWebhook_NonMessageUpdate(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})

	body, _ := json.Marshal(pkgTelegram.Update{UpdateID: 1})
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
}

func TestHandleWebhook_RateLimit(t *testing.T) {
	env := newTestEnv(t, telegram.Config{RateLimitPerMin: 6})

	assert.Contains(t, env.send("/help").Body.String(), "processed")
	w := env.send("/help")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rate_limited")
}

func TestAddDialog(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})
	env.muc.createOutput = task.CreateOutput{Task: model.Task{ID: "t-1", Title: "Купить хлеб"}}

	env.send("/add")
	assert.Equal(t, "Какая задача?", env.last())

	env.send("купить хлеб")
	require.Len(t, env.muc.createInputs, 1)
	assert.Equal(t, "купить хлеб", env.muc.createInputs[0].Text)
	assert.Contains(t, env.last(), "Задача: Купить хлеб")
	assert.Contains(t, env.last(), "Когда?")

	env.muc.deadlineErr = task.ErrInvalidDeadline
	env.send("когда-нибудь")
	assert.Contains(t, env.last(), "Не удалось распознать дату")

	env.muc.deadlineErr = nil
	env.send("завтра в 16:00")
	require.Len(t, env.muc.deadlineInputs, 2)
	assert.Equal(t, task.SetDeadlineInput{TaskID: "t-1", Text: "завтра в 16:00"}, env.muc.deadlineInputs[1])
	assert.Contains(t, env.last(), "Дедлайн: 11 февраля 16:00")
	assert.Contains(t, env.last(), "Напоминание?")

	env.muc.reminderErr = task.ErrReminderAfterDeadline
	env.send("послезавтра")
	assert.Contains(t, env.last(), "не может быть позже дедлайна")

	env.muc.reminderErr = nil
	env.send("за час")
	assert.Equal(t, task.SetReminderInput{TaskID: "t-1", Text: "за час"}, env.muc.reminderInputs[1])
	assert.Contains(t, env.last(), "Готово!")

	// dialog is over: the next text is a new task
	env.send("вынести мусор")
	assert.Len(t, env.muc.createInputs, 2)
}

func TestQuickAddWithDeadline(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})
	d := tomorrow16
	env.muc.createOutput = task.CreateOutput{
		Task:         model.Task{ID: "t-2", Title: "Собрание", Deadline: &d},
		CalendarLink: "https://calendar.google.com/e",
	}

	env.send("/add@reminder_bot Собрание завтра в 16:00")
	require.Len(t, env.muc.createInputs, 1)
	assert.Equal(t, "Собрание завтра в 16:00", env.muc.createInputs[0].Text)
	assert.Contains(t, env.last(), "Дедлайн: 11 февраля 16:00")
	assert.Contains(t, env.last(), "https://calendar.google.com/e")
	assert.Contains(t, env.last(), "Напоминание?")

	env.send("/skip")
	assert.Equal(t, "Готово!", env.last())

	env.send("/skip")
	assert.Equal(t, "Сейчас нечего пропускать.", env.last())
}

func TestSkipDeadline(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})
	env.muc.createOutput = task.CreateOutput{Task: model.Task{ID: "t-3", Title: "Позвонить"}}

	env.send("позвонить")
	env.send("/skip")
	assert.Contains(t, env.last(), "Напоминание?")

	env.send("/cancel")
	assert.Equal(t, "Операция отменена.", env.last())
	assert.Empty(t, env.muc.reminderInputs)
}

func TestEmptyTitle(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})
	env.muc.createErr = task.ErrEmptyInput

	env.send("ну")
	assert.Contains(t, env.last(), "не может быть пустым")
}

func TestListAndDone(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})

	env.send("/list")
	assert.Contains(t, env.last(), "нет задач")

	d := tomorrow16
	env.muc.listOutput = []model.Task{
		{ID: "a", Title: "Собрание", Deadline: &d},
		{ID: "b", Title: "Купить хлеб"},
	}
	env.send("/list")
	assert.Contains(t, env.last(), "1. Собрание — 11 февраля 16:00")
	assert.Contains(t, env.last(), "2. Купить хлеб")

	env.send("/done abc")
	assert.Contains(t, env.last(), "/done 2")

	env.muc.completeOutput = model.Task{ID: "a", Title: "Собрание", Done: true}
	env.send("/done 1")
	assert.Equal(t, "✅ Выполнено: Собрание", env.last())

	env.muc.completeErr = task.ErrNotFound
	env.send("/done 9")
	assert.Equal(t, "Задача не найдена.", env.last())
}

func TestUnknownCommand(t *testing.T) {
	env := newTestEnv(t, telegram.Config{})
	env.send("/weather")
	assert.Contains(t, env.last(), "Неизвестная команда")
	assert.Empty(t, env.muc.createInputs)
}
