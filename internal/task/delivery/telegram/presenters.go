package telegram

import (
	"fmt"
	"strings"
	"time"

	"task-reminder-bot/internal/model"
	"task-reminder-bot/internal/task"
	"task-reminder-bot/pkg/datemath"
)

const (
	msgHelp = "Я помогаю не забывать о задачах.\n\n" +
		"Просто напишите задачу, например:\n" +
		"• Собрание завтра в 16:00\n" +
		"• Сдать отчёт через 2 дня\n" +
		"• Позвонить маме в пятницу вечером\n\n" +
		"Команды:\n" +
		"/add — новая задача\n" +
		"/list — список задач\n" +
		"/done N — отметить задачу N выполненной\n" +
		"/skip — пропустить вопрос\n" +
		"/cancel — отменить"
	msgAskTitle         = "Какая задача?"
	msgAskDeadline      = "Когда? Например: завтра в 16:00, 15 февраля, через неделю. Или /skip"
	msgAskReminder      = "Напоминание? Например: за час, за 2 часа, завтра в 9 утра. Или /skip"
	msgDone             = "Готово!"
	msgCancelled        = "Операция отменена."
	msgNothingToSkip    = "Сейчас нечего пропускать."
	msgEmptyList        = "У вас пока нет задач.\nИспользуйте /add для добавления задачи."
	msgDoneUsage        = "Укажите номер задачи из /list, например: /done 2"
	msgUnknownCommand   = "Неизвестная команда. /help — список команд."
	msgVoiceUnsupported = "Голосовые сообщения пока не поддерживаются. Повторите текстом:"
)

func (h *handler) presentCreated(out task.CreateOutput) string {
	var b strings.Builder
	b.WriteString("Задача: " + out.Task.Title)
	if out.Task.Deadline != nil {
		b.WriteString("\nДедлайн: " + h.formatDeadline(*out.Task.Deadline))
	}
	if out.CalendarLink != "" {
		b.WriteString("\n📅 " + out.CalendarLink)
	}
	return b.String()
}

func (h *handler) presentList(tasks []model.Task) string {
	if len(tasks) == 0 {
		return msgEmptyList
	}

	var b strings.Builder
	b.WriteString("Ваши задачи:\n")
	for i, t := range tasks {
		fmt.Fprintf(&b, "\n%d. %s", i+1, t.Title)
		if t.Deadline != nil {
			b.WriteString(" — " + h.formatDeadline(*t.Deadline))
		}
		if t.Reminder != nil && !t.ReminderSent {
			b.WriteString(" 🔔 " + h.formatReminder(*t.Reminder))
		}
	}
	return b.String()
}

func (h *handler) formatDeadline(t time.Time) string {
	return datemath.FormatDeadline(t, h.dateMath.Now())
}

func (h *handler) formatReminder(t time.Time) string {
	return datemath.FormatDate(t, h.dateMath.Now()) + " " + t.Format("15:04")
}
