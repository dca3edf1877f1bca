package telegram

import (
	"reflect"
	"testing"
)

func TestCallbackDataRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data string
		want callbackData
	}{
		{
			name: "quiz start",
			data: buildQuizStartCallback("N2"),
			want: callbackData{Action: actionQuiz, Params: []string{quizStart, "N2"}, Raw: "quiz:start:N2"},
		},
		{
			name: "quiz answer",
			data: buildQuizAnswerCallback(4, 2),
			want: callbackData{Action: actionQuiz, Params: []string{quizAnswer, "4", "2"}, Raw: "quiz:ans:4:2"},
		},
		{
			name: "review save",
			data: buildReviewSaveCallback(7),
			want: callbackData{Action: actionReview, Params: []string{reviewSave, "7"}, Raw: "review:save:7"},
		},
		{
			name: "review remove",
			data: buildReviewRemoveCallback(0),
			want: callbackData{Action: actionReview, Params: []string{reviewRemove, "0"}, Raw: "review:del:0"},
		},
		{
			name: "review open",
			data: buildReviewOpenCallback(),
			want: callbackData{Action: actionReview, Params: []string{reviewOpen}, Raw: "review:open"},
		},
		{
			name: "menu has no params",
			data: buildMenuCallback(),
			want: callbackData{Action: actionMenu, Params: []string{}, Raw: "menu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeCallback(tt.data)
			if got.Action != tt.want.Action {
				t.Errorf("action = %q, want %q", got.Action, tt.want.Action)
			}
			if !reflect.DeepEqual(got.Params, tt.want.Params) {
				t.Errorf("params = %v, want %v", got.Params, tt.want.Params)
			}
			if got.Raw != tt.want.Raw {
				t.Errorf("raw = %q, want %q", got.Raw, tt.want.Raw)
			}
		})
	}
}
