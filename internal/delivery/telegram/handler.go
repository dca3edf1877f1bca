package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
)

type QuizService interface {
	Start(chatID int64, rawLevel string)
	SubmitAnswer(chatID int64, questionIndex, choiceIndex int) error
	Abort(chatID int64) bool
	LastResults(chatID int64) []entities.QuestionResult
}

type ReviewService interface {
	Add(ctx context.Context, userID int64, result entities.QuestionResult) error
	List(ctx context.Context, userID int64) ([]entities.QuestionResult, error)
	RemoveByQuestionText(ctx context.Context, userID int64, text string) error
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) error
}

type ReminderService interface {
	Toggle(ctx context.Context, userID, chatID int64) (bool, error)
}

type QuestionCatalog interface {
	Levels() []entities.Level
}

type Handler struct {
	bot             *tgbotapi.BotAPI
	logger          *zap.Logger
	quizService     QuizService
	reviewService   ReviewService
	userService     UserService
	reminderService ReminderService
	catalog         QuestionCatalog
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	reviewService ReviewService,
	userService UserService,
	reminderService ReminderService,
	catalog QuestionCatalog,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		quizService:     quizService,
		reviewService:   reviewService,
		userService:     userService,
		reminderService: reminderService,
		catalog:         catalog,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if err := h.userService.EnsureUser(ctx, from.ID, chatID); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if !update.Message.IsCommand() {
		return
	}

	switch update.Message.Command() {
	case "start":
		msg := newHTMLMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildMenuKeyboard(h.catalog.Levels())
		h.send(msg)

	case "quiz":
		msg := newHTMLMessage(chatID, msgPickLevel)
		msg.ReplyMarkup = buildMenuKeyboard(h.catalog.Levels())
		h.send(msg)

	case "review":
		_ = h.withErrorHandling(h.reviewHandler(from.ID))(ctx, chatID)

	case "remind":
		_ = h.withErrorHandling(h.remindHandler(from.ID))(ctx, chatID)

	case "cancel":
		if h.quizService.Abort(chatID) {
			h.send(newHTMLMessage(chatID, msgQuizCanceled))
		} else {
			h.send(newHTMLMessage(chatID, msgNothingToCancel))
		}

	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))

	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) reviewHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entries, err := h.reviewService.List(ctx, userID)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, renderReviewList(entries))
		if len(entries) > 0 {
			msg.ReplyMarkup = buildReviewKeyboard(len(entries))
		}
		h.send(msg)

		return nil
	}
}

func (h *Handler) remindHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		enabled, err := h.reminderService.Toggle(ctx, userID, chatID)
		if err != nil {
			return err
		}

		if enabled {
			h.send(newHTMLMessage(chatID, msgReminderOn))
		} else {
			h.send(newHTMLMessage(chatID, msgReminderOff))
		}

		return nil
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
