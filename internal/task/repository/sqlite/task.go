package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task/repository"
)

const taskColumns = `id, chat_id, title, deadline, reminder, reminder_sent, done, calendar_event_id, created_at`

func (r *implRepository) Create(ctx context.Context, opt repository.CreateOptions) (model.Task, error) {
	t := model.Task{
		ID:              uuid.NewString(),
		ChatID:          opt.ChatID,
		Title:           opt.Title,
		Deadline:        opt.Deadline,
		Reminder:        opt.Reminder,
		CalendarEventID: opt.CalendarEventID,
		CreatedAt:       r.now().In(r.loc).Truncate(time.Second),
	}

	deadline, deadlineUnix := encodeTime(t.Deadline)
	reminder, reminderUnix := encodeTime(t.Reminder)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, chat_id, title, deadline, deadline_unix, reminder, reminder_unix, calendar_event_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ChatID, t.Title, deadline, deadlineUnix, reminder, reminderUnix, t.CalendarEventID,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}
	return t, nil
}

func (r *implRepository) Detail(ctx context.Context, chatID int64, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND chat_id = ?`, id, chatID)
	t, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}
	return t, nil
}

func (r *implRepository) List(ctx context.Context, opt repository.ListOptions) ([]model.Task, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE chat_id = ?`)
	args := []any{opt.ChatID}
	if !opt.IncludeDone {
		b.WriteString(` AND done = 0`)
	}
	// open first, then by deadline with undated tasks last, then insertion order
	b.WriteString(` ORDER BY done, deadline_unix IS NULL, deadline_unix, rowid`)
	if opt.Limit > 0 {
		b.WriteString(` LIMIT ?`)
		args = append(args, opt.Limit)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *implRepository) Update(ctx context.Context, t model.Task) (model.Task, error) {
	deadline, deadlineUnix := encodeTime(t.Deadline)
	reminder, reminderUnix := encodeTime(t.Reminder)
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, deadline = ?, deadline_unix = ?, reminder = ?, reminder_unix = ?,
		 reminder_sent = ?, done = ?, calendar_event_id = ?
		 WHERE id = ? AND chat_id = ?`,
		t.Title, deadline, deadlineUnix, reminder, reminderUnix,
		boolToInt(t.ReminderSent), boolToInt(t.Done), t.CalendarEventID,
		t.ID, t.ChatID,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", repository.ErrFailedToUpdate, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Task{}, repository.ErrNotFound
	}
	return t, nil
}

func (r *implRepository) DueReminders(ctx context.Context, now time.Time, limit int) ([]model.Task, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE reminder_unix IS NOT NULL AND reminder_unix <= ? AND reminder_sent = 0 AND done = 0
		 ORDER BY reminder_unix LIMIT ?`,
		now.Unix(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *implRepository) MarkReminded(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET reminder_sent = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToUpdate, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *implRepository) scan(s scanner) (model.Task, error) {
	var (
		t                  model.Task
		deadline, reminder sql.NullString
		reminderSent, done int
		createdAt          string
	)
	if err := s.Scan(&t.ID, &t.ChatID, &t.Title, &deadline, &reminder, &reminderSent, &done, &t.CalendarEventID, &createdAt); err != nil {
		return model.Task{}, err
	}

	var err error
	if t.Deadline, err = r.decodeTime(deadline); err != nil {
		return model.Task{}, fmt.Errorf("deadline: %w", err)
	}
	if t.Reminder, err = r.decodeTime(reminder); err != nil {
		return model.Task{}, fmt.Errorf("reminder: %w", err)
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("created_at: %w", err)
	}
	t.CreatedAt = created.In(r.loc)
	t.ReminderSent = reminderSent != 0
	t.Done = done != 0
	return t, nil
}

func (r *implRepository) scanAll(rows *sql.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	return tasks, nil
}

// encodeTime stores an instant both as RFC3339 text (keeps the user's offset) and as unix seconds for range queries.
func encodeTime(t *time.Time) (sql.NullString, sql.NullInt64) {
	if t == nil {
		return sql.NullString{}, sql.NullInt64{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true},
		sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func (r *implRepository) decodeTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	t = t.In(r.loc)
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
