package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/quiz"
)

func TestLongestRun(t *testing.T) {
	tests := []struct {
		name string
		days []string
		want int
	}{
		{"empty", nil, 0},
		{"single", []string{"2026-01-01"}, 1},
		{"gap", []string{"2026-01-01", "2026-01-03"}, 1},
		{"run of three", []string{"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-05"}, 3},
		{"across month", []string{"2026-01-30", "2026-01-31", "2026-02-01"}, 3},
		{"garbage entry breaks run", []string{"2026-01-01", "oops", "2026-01-02"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, longestRun(tt.days))
		})
	}
}

func TestStudyStreak(t *testing.T) {
	day := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	s, _ := newTestStore(t, WithClock(func() time.Time { return day }))
	ctx := context.Background()

	for range 7 {
		s.RecordAnswer(ctx, "ana", quiz.AnswerEvent{Correct: true})
		s.RecordAnswer(ctx, "ana", quiz.AnswerEvent{Correct: true})
		day = day.AddDate(0, 0, 1)
	}

	l := s.LoadStudyLog(ctx, "ana")
	assert.Len(t, l.Days, 7)
	assert.Equal(t, 7, l.BestStreak)
	assert.False(t, l.NightOwl)
}

func TestStudyLogIsCapped(t *testing.T) {
	day := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	s, _ := newTestStore(t, WithClock(func() time.Time { return day }))
	ctx := context.Background()

	for range maxLoggedDays + 10 {
		s.RecordVisit(ctx, "ana", "hangul")
		day = day.AddDate(0, 0, 2)
	}
	assert.Len(t, s.LoadStudyLog(ctx, "ana").Days, maxLoggedDays)
}

func achievementDefs() []content.Achievement {
	conds := []string{
		"firstVisit", "hangulVisited", "vocabVisited", "grammarVisited", "cultureVisited",
		"firstQuiz", "perfectScore", "wellnessVisited", "allSections", "streak3", "streak7", "nightOwl",
		"somethingNew",
	}
	out := make([]content.Achievement, len(conds))
	for i, c := range conds {
		out[i] = content.Achievement{ID: c, Condition: c}
	}
	return out
}

func unlockedSet(statuses []AchievementStatus) map[string]bool {
	out := map[string]bool{}
	for _, s := range statuses {
		if s.Unlocked {
			out[s.Condition] = true
		}
	}
	return out
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want []string
	}{
		{
			name: "fresh learner",
			snap: Snapshot{Progress: Record{Visited: map[string]bool{}}},
			want: nil,
		},
		{
			name: "visited hangul",
			snap: Snapshot{Progress: Record{Visited: map[string]bool{"hangul": true}, TotalVisits: 1}},
			want: []string{"firstVisit", "hangulVisited"},
		},
		{
			name: "quiz and streak",
			snap: Snapshot{
				Progress: Record{Visited: map[string]bool{"practice": true}, TotalVisits: 2},
				Stats:    QuizStats{TotalQuizzes: 1, PerfectScores: 1},
				Log:      StudyLog{BestStreak: 3, NightOwl: true},
			},
			want: []string{"firstVisit", "firstQuiz", "perfectScore", "streak3", "nightOwl"},
		},
		{
			name: "everything",
			snap: Snapshot{
				Progress: Record{Visited: map[string]bool{
					"hangul": true, "vocabulary": true, "grammar": true,
					"culture": true, "practice": true, "wellness": true,
				}, TotalVisits: 6},
				Stats: QuizStats{TotalQuizzes: 3, PerfectScores: 2},
				Log:   StudyLog{BestStreak: 9, NightOwl: true},
			},
			want: []string{
				"firstVisit", "hangulVisited", "vocabVisited", "grammarVisited", "cultureVisited",
				"firstQuiz", "perfectScore", "wellnessVisited", "allSections", "streak3", "streak7", "nightOwl",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.snap, testSections, achievementDefs())
			require.Len(t, got, len(achievementDefs()))

			want := map[string]bool{}
			for _, w := range tt.want {
				want[w] = true
			}
			assert.Equal(t, want, unlockedSet(got))
		})
	}
}

func TestAchievementsFromStore(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.RecordVisit(ctx, "ana", "vocabulary")
	s.RecordAnswer(ctx, "ana", quiz.AnswerEvent{Correct: true, Completed: true, Perfect: true})

	got := unlockedSet(s.Achievements(ctx, "ana", achievementDefs()))
	assert.True(t, got["firstVisit"])
	assert.True(t, got["vocabVisited"])
	assert.True(t, got["firstQuiz"])
	assert.True(t, got["perfectScore"])
	assert.False(t, got["allSections"])
}
