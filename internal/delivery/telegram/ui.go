package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
	"github.com/Takoyaki92/goukaku/internal/service"
)

// buildMenuKeyboard builds the main menu: one button per level plus review.
func buildMenuKeyboard(levels []entities.Level) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, level := range levels {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 JLPT "+string(level), buildQuizStartCallback(string(level))),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📚 Review", buildReviewOpenCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuestionKeyboard builds one button per choice, in the authored order.
func buildQuestionKeyboard(view service.QuestionView) tgbotapi.InlineKeyboardMarkup {
	questionIndex := view.Number - 1

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, choice := range view.Question.Choices {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(choice, buildQuizAnswerCallback(questionIndex, i)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildResultsKeyboard builds save buttons for each result plus the
// play-again and menu actions.
func buildResultsKeyboard(summary service.Summary) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	// Save buttons come in rows of five to keep the keyboard compact.
	var row []tgbotapi.InlineKeyboardButton
	for i := range summary.Results {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			"💾 "+strconv.Itoa(i+1), buildReviewSaveCallback(i),
		))
		if len(row) == 5 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Play Again", buildQuizStartCallback(string(summary.Level))),
		tgbotapi.NewInlineKeyboardButtonData("🏠 Main Menu", buildMenuCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildReviewKeyboard builds remove buttons for each review entry.
func buildReviewKeyboard(count int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for i := 0; i < count; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			"🗑 "+strconv.Itoa(i+1), buildReviewRemoveCallback(i),
		))
		if len(row) == 5 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 Main Menu", buildMenuCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
