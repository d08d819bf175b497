package database

import (
	"time"

	"gorm.io/datatypes"
)

// Metadata is a small key/value table for bookkeeping (schema version,
// seeded content hash).
type Metadata struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Metadata) TableName() string {
	return "metadata"
}

// Character is a seeded alphabet character.
type Character struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Glyph        string    `gorm:"not null;uniqueIndex"     json:"glyph"`
	Romanization string    `gorm:"not null;index"           json:"romanization"`
	Name         string    `                                json:"name"`
	NameKorean   string    `                                json:"name_korean"`
	Sound        string    `                                json:"sound"`
	Hint         string    `                                json:"hint"`
	Category     string    `gorm:"not null;index"           json:"category"`
	Group        *string   `                                json:"group,omitempty"`
	Position     int       `gorm:"not null"                 json:"position"`
	CreatedAt    time.Time `gorm:"autoCreateTime"           json:"created_at"`
}

func (Character) TableName() string {
	return "characters"
}

// VocabCategory is a themed vocabulary list.
type VocabCategory struct {
	Key      string `gorm:"primaryKey"     json:"key"`
	Label    string `gorm:"not null"       json:"label"`
	Emoji    string `                      json:"emoji"`
	Position int    `gorm:"not null"       json:"position"`
}

func (VocabCategory) TableName() string {
	return "vocab_categories"
}

// VocabWord is one seeded vocabulary headword. Example holds the optional
// usage example as JSON.
type VocabWord struct {
	ID           int64          `gorm:"primaryKey;autoIncrement"       json:"id"`
	Korean       string         `gorm:"not null;uniqueIndex"           json:"korean"`
	Romanization string         `gorm:"not null;index"                 json:"romanization"`
	English      string         `gorm:"not null"                       json:"english"`
	Filipino     string         `gorm:"not null"                       json:"filipino"`
	Note         *string        `                                      json:"note,omitempty"`
	Level        string         `gorm:"not null;index"                 json:"level"`
	CategoryKey  string         `gorm:"not null;index"                 json:"category"`
	Category     *VocabCategory `gorm:"foreignKey:CategoryKey;references:Key" json:"-"`
	Example      datatypes.JSON `gorm:"type:json"                      json:"example,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"                 json:"created_at"`
}

func (VocabWord) TableName() string {
	return "vocab_words"
}

// GrammarRule is a seeded grammar guide entry. Examples is a JSON array.
type GrammarRule struct {
	ID               int64          `gorm:"primaryKey"        json:"id"`
	Title            string         `gorm:"not null"          json:"title"`
	TitleKorean      string         `                         json:"title_korean"`
	Explanation      string         `gorm:"not null"          json:"explanation"`
	Structure        string         `                         json:"structure"`
	Examples         datatypes.JSON `gorm:"type:json;not null" json:"examples"`
	FilipinoParallel string         `                         json:"filipino_parallel"`
	Tip              string         `                         json:"tip"`
	Level            string         `gorm:"not null;index"    json:"level"`
}

func (GrammarRule) TableName() string {
	return "grammar_rules"
}

// CultureNote is a seeded culture corner card.
type CultureNote struct {
	ID                 int64  `gorm:"primaryKey" json:"id"`
	Title              string `gorm:"not null"   json:"title"`
	TitleKorean        string `                  json:"title_korean"`
	Emoji              string `                  json:"emoji"`
	Content            string `gorm:"not null"   json:"content"`
	FilipinoConnection string `                  json:"filipino_connection"`
}

func (CultureNote) TableName() string {
	return "culture_notes"
}

// KVEntry is one persisted learner value, keyed by learner and key.
type KVEntry struct {
	LearnerID string         `gorm:"primaryKey;size:64"`
	Key       string         `gorm:"primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"type:json;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// CategoryCount is a vocabulary count for one category.
type CategoryCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LevelCount is a vocabulary count for one difficulty tier.
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// Statistics summarizes the seeded content and stored learner data.
type Statistics struct {
	TotalCharacters   int             `json:"total_characters"`
	TotalVocabulary   int             `json:"total_vocabulary"`
	TotalGrammarRules int             `json:"total_grammar_rules"`
	TotalCultureNotes int             `json:"total_culture_notes"`
	TotalLearners     int             `json:"total_learners"`
	VocabByCategory   []CategoryCount `json:"vocab_by_category"`
	VocabByLevel      []LevelCount    `json:"vocab_by_level"`
	QuizzesCompleted  int             `json:"quizzes_completed"`
	AnswersRecorded   int             `json:"answers_recorded"`
	CorrectAnswers    int             `json:"correct_answers"`
	PerfectScores     int             `json:"perfect_scores"`
}
