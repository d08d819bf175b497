package database

import (
	"github.com/Z4rru/hangulmastery/internal/progress"
)

// Statistics and counting methods

// CountVocabulary returns the number of seeded headwords.
func (r *Repository) CountVocabulary() (int, error) {
	var count int64
	err := r.db.Model(&VocabWord{}).Count(&count).Error
	return int(count), err
}

func (r *Repository) count(model any) (int, error) {
	var count int64
	err := r.db.Model(model).Count(&count).Error
	return int(count), err
}

// GetStatistics returns content totals plus quiz totals aggregated over
// every learner's stored statistics.
func (r *Repository) GetStatistics() (*Statistics, error) {
	stats := &Statistics{}

	var err error
	if stats.TotalCharacters, err = r.count(&Character{}); err != nil {
		return nil, err
	}
	if stats.TotalVocabulary, err = r.CountVocabulary(); err != nil {
		return nil, err
	}
	if stats.TotalGrammarRules, err = r.count(&GrammarRule{}); err != nil {
		return nil, err
	}
	if stats.TotalCultureNotes, err = r.count(&CultureNote{}); err != nil {
		return nil, err
	}

	var learners int64
	err = r.db.Model(&KVEntry{}).Distinct("learner_id").Count(&learners).Error
	if err != nil {
		return nil, err
	}
	stats.TotalLearners = int(learners)

	err = r.db.Table("vocab_categories").
		Select("vocab_categories.key AS key, vocab_categories.label AS label, COUNT(vocab_words.id) AS count").
		Joins("LEFT JOIN vocab_words ON vocab_words.category_key = vocab_categories.key").
		Group("vocab_categories.key").
		Order("vocab_categories.position ASC").
		Scan(&stats.VocabByCategory).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&VocabWord{}).
		Select("level, COUNT(*) AS count").
		Group("level").
		Order("count DESC").
		Scan(&stats.VocabByLevel).Error
	if err != nil {
		return nil, err
	}

	// Quiz statistics live as JSON values; malformed rows count as zero.
	var quiz struct {
		Quizzes  int
		Answered int
		Correct  int
		Perfect  int
	}
	err = r.db.Model(&KVEntry{}).
		Select(`COALESCE(SUM(CASE WHEN json_valid(value) THEN json_extract(value, '$.totalQuizzes') END), 0) AS quizzes,
			COALESCE(SUM(CASE WHEN json_valid(value) THEN json_extract(value, '$.totalAnswered') END), 0) AS answered,
			COALESCE(SUM(CASE WHEN json_valid(value) THEN json_extract(value, '$.totalCorrect') END), 0) AS correct,
			COALESCE(SUM(CASE WHEN json_valid(value) THEN json_extract(value, '$.perfectScores') END), 0) AS perfect`).
		Where("key = ?", progress.StatsKey).
		Scan(&quiz).Error
	if err != nil {
		return nil, err
	}
	stats.QuizzesCompleted = quiz.Quizzes
	stats.AnswersRecorded = quiz.Answered
	stats.CorrectAnswers = quiz.Correct
	stats.PerfectScores = quiz.Perfect

	return stats, nil
}
