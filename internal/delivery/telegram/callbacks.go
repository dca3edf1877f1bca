package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Takoyaki92/goukaku/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionQuiz:
		h.handleQuizCallback(cb, data)
	case actionReview:
		h.handleReviewCallback(ctx, cb, data)
	case actionMenu:
		h.handleMenuCallback(cb)
	default:
		h.logger.Debug("unknown callback action", zap.String("data", data.Raw))
		h.answerCallback(cb.ID, "")
	}
}

func (h *Handler) handleQuizCallback(cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	if len(data.Params) == 0 {
		h.answerCallback(cb.ID, "")
		return
	}

	switch data.Params[0] {
	case quizStart:
		if len(data.Params) < 2 {
			h.answerCallback(cb.ID, "")
			return
		}
		// The quiz screens arrive through the notifier, not through this
		// callback's reply.
		h.quizService.Start(chatID, data.Params[1])
		h.answerCallback(cb.ID, "")

	case quizAnswer:
		if len(data.Params) < 3 {
			h.answerCallback(cb.ID, "")
			return
		}

		questionIndex, err1 := strconv.Atoi(data.Params[1])
		choiceIndex, err2 := strconv.Atoi(data.Params[2])
		if err1 != nil || err2 != nil {
			h.logger.Debug("malformed answer callback", zap.String("data", data.Raw))
			h.answerCallback(cb.ID, "")
			return
		}

		err := h.quizService.SubmitAnswer(chatID, questionIndex, choiceIndex)
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			h.answerCallback(cb.ID, msgQuizOver)
		case errors.Is(err, service.ErrStaleAnswer), errors.Is(err, service.ErrInvalidChoice):
			// A tap on a screen that has already moved on. Ignore it.
			h.answerCallback(cb.ID, "")
		case err != nil:
			h.logger.Error("submit answer",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.answerCallback(cb.ID, msgInternalError)
		default:
			h.answerCallback(cb.ID, "")
		}

	default:
		h.answerCallback(cb.ID, "")
	}
}

func (h *Handler) handleReviewCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	if len(data.Params) == 0 {
		h.answerCallback(cb.ID, "")
		return
	}

	switch data.Params[0] {
	case reviewOpen:
		h.editToReviewList(ctx, cb, userID)
		h.answerCallback(cb.ID, "")

	case reviewSave:
		if len(data.Params) < 2 {
			h.answerCallback(cb.ID, "")
			return
		}
		index, err := strconv.Atoi(data.Params[1])
		if err != nil {
			h.answerCallback(cb.ID, "")
			return
		}

		results := h.quizService.LastResults(chatID)
		if index < 0 || index >= len(results) {
			h.answerCallback(cb.ID, msgQuizOver)
			return
		}

		switch err := h.reviewService.Add(ctx, userID, results[index]); {
		case errors.Is(err, service.ErrDuplicateEntry):
			h.answerCallback(cb.ID, msgAlreadyInReview)
		case err != nil:
			h.logger.Error("save to review list",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.answerCallback(cb.ID, msgInternalError)
		default:
			h.answerCallback(cb.ID, msgSavedToReview)
		}

	case reviewRemove:
		if len(data.Params) < 2 {
			h.answerCallback(cb.ID, "")
			return
		}
		index, err := strconv.Atoi(data.Params[1])
		if err != nil {
			h.answerCallback(cb.ID, "")
			return
		}

		entries, err := h.reviewService.List(ctx, userID)
		if err != nil {
			h.logger.Error("load review list",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.answerCallback(cb.ID, msgInternalError)
			return
		}
		if index < 0 || index >= len(entries) {
			// The screen is stale, refresh it instead of failing.
			h.editToReviewList(ctx, cb, userID)
			h.answerCallback(cb.ID, "")
			return
		}

		if err := h.reviewService.RemoveByQuestionText(ctx, userID, entries[index].QuestionText); err != nil {
			h.logger.Error("remove from review list",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.answerCallback(cb.ID, msgInternalError)
			return
		}

		h.editToReviewList(ctx, cb, userID)
		h.answerCallback(cb.ID, "")

	default:
		h.answerCallback(cb.ID, "")
	}
}

func (h *Handler) handleMenuCallback(cb *tgbotapi.CallbackQuery) {
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, msgPickLevel)
	edit.ParseMode = tgbotapi.ModeHTML
	kb := buildMenuKeyboard(h.catalog.Levels())
	edit.ReplyMarkup = &kb
	h.send(edit)

	h.answerCallback(cb.ID, "")
}

// editToReviewList rewrites the callback's message into the current review
// screen.
func (h *Handler) editToReviewList(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64) {
	entries, err := h.reviewService.List(ctx, userID)
	if err != nil {
		h.logger.Error("load review list",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}

	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, renderReviewList(entries))
	edit.ParseMode = tgbotapi.ModeHTML
	if len(entries) > 0 {
		kb := buildReviewKeyboard(len(entries))
		edit.ReplyMarkup = &kb
	}
	h.send(edit)
}

// answerCallback acknowledges the callback so the client stops its spinner.
// A non-empty text shows as a toast.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Error("failed to answer callback", zap.Error(err))
	}
}
