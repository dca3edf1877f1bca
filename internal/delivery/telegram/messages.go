// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Takoyaki92/goukaku/internal/domain/entities"
	"github.com/Takoyaki92/goukaku/internal/service"
)

const (
	msgWelcome = "<b>合格 (Goukaku!)</b>\n\n" +
		"JLPT practice quizzes. Pick a level to start, beat the clock, " +
		"and save tricky questions for later review."
	msgHelp = "Commands:\n\n" +
		"/quiz — pick a level and start\n" +
		"/review — questions you saved for review\n" +
		"/remind — toggle the daily practice reminder\n" +
		"/cancel — abandon the current quiz"
	msgPickLevel        = "Pick a JLPT level:"
	msgQuizCanceled     = "Quiz canceled. Back to the menu with /quiz."
	msgNothingToCancel  = "No quiz in progress."
	msgSavedToReview    = "Saved to review list! 📚"
	msgAlreadyInReview  = "Already in review list! ❗"
	msgQuizOver         = "This quiz is already over."
	msgReviewEmpty      = "Your review list is empty.\nFinish a quiz and tap 💾 next to a question to save it."
	msgReviewTitle      = "<b>Review Your Answers</b>"
	msgReminderOn       = "Daily practice reminder is on. 🔔"
	msgReminderOff      = "Daily practice reminder is off. 🔕"
	msgPracticeReminder = "⏰ Time to practice! A quick quiz a day keeps 不合格 away — /quiz"
	msgInternalError    = "Something went wrong. Please try again later."
	msgUnknownCommand   = "Unknown command. See /help."
)

// renderQuestion builds the live question screen: countdown and score on
// top, the question itself below, choices as inline buttons.
func renderQuestion(view service.QuestionView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "⏱ %ds    🪙 %d\n", view.TimeRemaining, view.Score)
	fmt.Fprintf(&b, "<b>Question %d/%d</b>\n\n", view.Number, view.Total)
	b.WriteString(html.EscapeString(view.Question.QuestionText))

	return b.String()
}

// renderFeedback builds the transient correct/incorrect overlay.
func renderFeedback(view service.FeedbackView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "⏱ %ds    🪙 %d\n\n", view.TimeRemaining, view.Score)
	if view.Result.IsCorrect {
		b.WriteString("✅ <b>正解！</b>")
	} else {
		b.WriteString("❌ <b>不正解</b>\n")
		fmt.Fprintf(&b, "Correct: %s", html.EscapeString(view.Result.CorrectAnswer))
	}

	return b.String()
}

// renderResults builds the results screen with the rank, score and the
// per-question breakdown.
func renderResults(summary service.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s <b>Rank %s</b>\n", summary.Rank.Emoji(), summary.Rank)
	fmt.Fprintf(&b, "Score: <b>%d</b>\n", summary.FinalScore)
	fmt.Fprintf(&b, "Correct: %d/%d\n", summary.Correct, summary.Total)
	if summary.TimedOut {
		b.WriteString("⏱ Time's up!\n")
	}

	if len(summary.Results) > 0 {
		b.WriteString("\n")
		for i, res := range summary.Results {
			icon := "❌"
			if res.IsCorrect {
				icon = "✅"
			}
			fmt.Fprintf(&b, "%s %d. %s\n", icon, i+1, html.EscapeString(res.QuestionText))
		}
		b.WriteString("\nTap 💾 to save a question for review.")
	}

	return b.String()
}

// renderReviewList builds the review screen from the persisted entries.
func renderReviewList(entries []entities.QuestionResult) string {
	if len(entries) == 0 {
		return msgReviewEmpty
	}

	var b strings.Builder
	b.WriteString(msgReviewTitle)
	b.WriteString("\n")

	for i, entry := range entries {
		icon := "❌"
		if entry.IsCorrect {
			icon = "✅"
		}
		fmt.Fprintf(&b, "\n%s <b>%d.</b> %s\n", icon, i+1, html.EscapeString(entry.QuestionText))
		fmt.Fprintf(&b, "Your answer: %s\n", html.EscapeString(entry.UserAnswer))
		if !entry.IsCorrect {
			fmt.Fprintf(&b, "Correct: %s\n", html.EscapeString(entry.CorrectAnswer))
		}
	}

	return b.String()
}

// newHTMLMessage creates a message with HTML parse mode.
func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}
