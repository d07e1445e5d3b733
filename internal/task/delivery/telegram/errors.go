package telegram

import (
	"errors"

	"task-reminder-bot/internal/task"
)

// errorMessage returns a user-facing error string for the given error.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, task.ErrEmptyInput):
		return "Ошибка: Название задачи не может быть пустым. Попробуйте снова:"
	case errors.Is(err, task.ErrInvalidDeadline):
		return "Не удалось распознать дату. Примеры: завтра, 15 февраля, через 3 дня, в пятницу в 18:00. Или /skip"
	case errors.Is(err, task.ErrDeadlinePassed):
		return "Эта дата уже прошла. Укажите другую или /skip"
	case errors.Is(err, task.ErrInvalidReminder):
		return "Ошибка: Неверный формат напоминания. Попробуйте снова или отправьте /skip:\n\nПримеры: за час, за 2 часа, 25.01.2026 18:00"
	case errors.Is(err, task.ErrReminderAfterDeadline):
		return "Напоминание не может быть позже дедлайна. Попробуйте снова или /skip"
	case errors.Is(err, task.ErrNotFound):
		return "Задача не найдена."
	default:
		return "Произошла ошибка. Попробуйте снова."
	}
}

// isFatal reports whether the dialog cannot continue after err.
func isFatal(err error) bool {
	return errors.Is(err, task.ErrNotFound)
}
