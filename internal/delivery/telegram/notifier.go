package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Takoyaki92/goukaku/internal/service"
)

// Notifier renders quiz screens pushed by the quiz service. Each chat gets a
// single quiz message that is edited in place as the session moves, so the
// countdown does not flood the chat history.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger

	mu         sync.Mutex
	messageIDs map[int64]int // chat ID -> live quiz message
}

func NewNotifier(bot *tgbotapi.BotAPI, logger *zap.Logger) *Notifier {
	return &Notifier{
		bot:        bot,
		logger:     logger,
		messageIDs: make(map[int64]int),
	}
}

func (n *Notifier) ShowQuestion(chatID int64, view service.QuestionView) {
	kb := buildQuestionKeyboard(view)
	n.sendOrEdit(chatID, renderQuestion(view), &kb)
}

func (n *Notifier) UpdateCountdown(chatID int64, view service.QuestionView) {
	kb := buildQuestionKeyboard(view)
	n.sendOrEdit(chatID, renderQuestion(view), &kb)
}

func (n *Notifier) ShowFeedback(chatID int64, view service.FeedbackView) {
	// No keyboard: answers are not accepted while the feedback is up.
	n.sendOrEdit(chatID, renderFeedback(view), nil)
}

func (n *Notifier) ShowResults(chatID int64, summary service.Summary) {
	kb := buildResultsKeyboard(summary)
	n.sendOrEdit(chatID, renderResults(summary), &kb)
}

func (n *Notifier) SendPracticeReminder(chatID int64) error {
	_, err := n.bot.Send(newHTMLMessage(chatID, msgPracticeReminder))
	return err
}

// sendOrEdit edits the chat's quiz message, sending a fresh one when there is
// none yet or the edit is rejected (e.g. the user deleted the message).
func (n *Notifier) sendOrEdit(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	n.mu.Lock()
	messageID, ok := n.messageIDs[chatID]
	n.mu.Unlock()

	if ok {
		edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
		edit.ParseMode = tgbotapi.ModeHTML
		edit.ReplyMarkup = kb

		_, err := n.bot.Send(edit)
		if err == nil {
			return
		}
		n.logger.Debug("quiz message edit failed, sending new",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}

	msg := newHTMLMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = *kb
	}

	sent, err := n.bot.Send(msg)
	if err != nil {
		n.logger.Error("failed to send quiz message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return
	}

	n.mu.Lock()
	n.messageIDs[chatID] = sent.MessageID
	n.mu.Unlock()
}
