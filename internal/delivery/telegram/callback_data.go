package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz   = "quiz"
	actionReview = "review"
	actionMenu   = "menu"
)

// Quiz sub-actions.
const (
	quizStart  = "start"
	quizAnswer = "ans"
)

// Review sub-actions.
const (
	reviewOpen   = "open"
	reviewSave   = "save"
	reviewRemove = "del"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuizStartCallback builds callback data for starting a quiz at a level.
func buildQuizStartCallback(level string) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart, level},
	}.encode()
}

// buildQuizAnswerCallback builds callback data for answering the question at
// questionIndex with the choice at choiceIndex.
func buildQuizAnswerCallback(questionIndex, choiceIndex int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(questionIndex), strconv.Itoa(choiceIndex)},
	}.encode()
}

// buildReviewOpenCallback builds callback data for opening the review list.
func buildReviewOpenCallback() string {
	return callbackData{
		Action: actionReview,
		Params: []string{reviewOpen},
	}.encode()
}

// buildReviewSaveCallback builds callback data for saving the result at index
// from the last finished quiz into the review list.
func buildReviewSaveCallback(index int) string {
	return callbackData{
		Action: actionReview,
		Params: []string{reviewSave, strconv.Itoa(index)},
	}.encode()
}

// buildReviewRemoveCallback builds callback data for removing the review list
// entry at index.
func buildReviewRemoveCallback(index int) string {
	return callbackData{
		Action: actionReview,
		Params: []string{reviewRemove, strconv.Itoa(index)},
	}.encode()
}

// buildMenuCallback builds callback data for returning to the main menu.
func buildMenuCallback() string {
	return actionMenu
}
