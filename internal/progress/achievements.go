package progress

import (
	"context"
	"slices"
	"time"

	"github.com/Z4rru/hangulmastery/internal/content"
)

const (
	dayLayout     = "2006-01-02"
	maxLoggedDays = 60
	nightOwlHour  = 22
)

// StudyLog remembers which days the learner studied.
type StudyLog struct {
	Days       []string `json:"days"`
	BestStreak int      `json:"bestStreak"`
	NightOwl   bool     `json:"nightOwl"`
}

// LoadStudyLog returns the learner's study log.
func (s *Store) LoadStudyLog(ctx context.Context, learnerID string) StudyLog {
	return load[StudyLog](ctx, s, learnerID, StudyLogKey)
}

// touch records activity at the current time. Callers hold s.mu.
func (s *Store) touch(ctx context.Context, learnerID string) {
	now := s.now()
	l := s.LoadStudyLog(ctx, learnerID)
	changed := false

	day := now.Format(dayLayout)
	if !slices.Contains(l.Days, day) {
		l.Days = append(l.Days, day)
		slices.Sort(l.Days)
		if len(l.Days) > maxLoggedDays {
			l.Days = l.Days[len(l.Days)-maxLoggedDays:]
		}
		l.BestStreak = max(l.BestStreak, longestRun(l.Days))
		changed = true
	}
	if !l.NightOwl && now.Hour() >= nightOwlHour {
		l.NightOwl = true
		changed = true
	}
	if changed {
		s.save(ctx, learnerID, StudyLogKey, l)
	}
}

// longestRun returns the longest run of consecutive calendar days in a
// sorted list of dates.
func longestRun(days []string) int {
	best, run := 0, 0
	var prev time.Time
	for _, d := range days {
		t, err := time.Parse(dayLayout, d)
		if err != nil {
			run = 0
			continue
		}
		if run > 0 && t.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		prev = t
		best = max(best, run)
	}
	return best
}

// AchievementStatus pairs an achievement with its unlocked state.
type AchievementStatus struct {
	content.Achievement
	Unlocked bool `json:"unlocked"`
}

// Snapshot is everything the dashboard needs about a learner.
type Snapshot struct {
	Progress Record    `json:"progress"`
	Stats    QuizStats `json:"stats"`
	Log      StudyLog  `json:"study_log"`
	Mastered []string  `json:"mastered"`
}

// Snapshot loads every record for a learner.
func (s *Store) Snapshot(ctx context.Context, learnerID string) Snapshot {
	return Snapshot{
		Progress: s.LoadProgress(ctx, learnerID),
		Stats:    s.LoadQuizStats(ctx, learnerID),
		Log:      s.LoadStudyLog(ctx, learnerID),
		Mastered: s.LoadMastered(ctx, learnerID),
	}
}

// Achievements evaluates defs against the learner's stored records.
func (s *Store) Achievements(ctx context.Context, learnerID string, defs []content.Achievement) []AchievementStatus {
	return Evaluate(s.Snapshot(ctx, learnerID), s.sections, defs)
}

// Evaluate decides which achievements a snapshot unlocks. Unknown
// conditions stay locked.
func Evaluate(snap Snapshot, sections []string, defs []content.Achievement) []AchievementStatus {
	p, st, l := snap.Progress, snap.Stats, snap.Log

	conds := map[string]bool{
		"firstVisit":      p.TotalVisits > 0,
		"hangulVisited":   p.Visited[content.SectionHangul],
		"vocabVisited":    p.Visited[content.SectionVocabulary],
		"grammarVisited":  p.Visited[content.SectionGrammar],
		"cultureVisited":  p.Visited[content.SectionCulture],
		"wellnessVisited": p.Visited[content.SectionWellness],
		"firstQuiz":       st.TotalQuizzes > 0,
		"perfectScore":    st.PerfectScores > 0,
		"allSections":     len(sections) > 0 && p.Explored(sections) == len(sections),
		"streak3":         l.BestStreak >= 3,
		"streak7":         l.BestStreak >= 7,
		"nightOwl":        l.NightOwl,
	}

	out := make([]AchievementStatus, len(defs))
	for i, a := range defs {
		out[i] = AchievementStatus{Achievement: a, Unlocked: conds[a.Condition]}
	}
	return out
}
