package telegram

type step int

const (
	stepAwaitTitle step = iota + 1
	stepAwaitDeadline
	stepAwaitReminder
)

// conversation is the per-chat state of an /add dialog.
type conversation struct {
	step   step
	taskID string
}

func (h *handler) conversation(chatID int64) (conversation, bool) {
	return h.convs.Get(chatID)
}

func (h *handler) setStep(chatID int64, s step, taskID string) {
	h.convs.Add(chatID, conversation{step: s, taskID: taskID})
}

func (h *handler) endConversation(chatID int64) {
	h.convs.Remove(chatID)
}
