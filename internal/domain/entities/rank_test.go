package entities

import "testing"

func TestRankFor(t *testing.T) {
	tests := []struct {
		score int
		want  Rank
	}{
		{600, RankS},
		{500, RankS},
		{499, RankA},
		{400, RankA},
		{399, RankB},
		{300, RankB},
		{299, RankC},
		{200, RankC},
		{199, RankD},
		{100, RankD},
		{99, RankF},
		{1, RankF},
		{0, RankF},
		{-30, RankF},
	}

	for _, tt := range tests {
		if got := RankFor(tt.score); got != tt.want {
			t.Errorf("RankFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestParseLevelFallback(t *testing.T) {
	tests := []struct {
		raw  string
		want Level
	}{
		{"N1", LevelN1},
		{"N2", LevelN2},
		{"N3", LevelN3},
		{"n2", DefaultLevel}, // case-sensitive
		{"N4", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.raw); got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}
