package search

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Z4rru/hangulmastery/internal/database"
	"github.com/Z4rru/hangulmastery/internal/hangul"
)

// Engine handles vocabulary search
type Engine struct {
	db *database.DB
}

// NewEngine creates a new search engine
func NewEngine(db *database.DB) *Engine {
	return &Engine{db: db}
}

// SearchType selects which columns a query is matched against
type SearchType string

const (
	SearchTypeAll          SearchType = "all"
	SearchTypeKorean       SearchType = "korean"
	SearchTypeRomanization SearchType = "romanization"
	SearchTypeEnglish      SearchType = "english"
	SearchTypeFilipino     SearchType = "filipino"
)

// ParseSearchType maps a query parameter to a SearchType. Empty means all.
func ParseSearchType(s string) (SearchType, error) {
	switch t := SearchType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return SearchTypeAll, nil
	case SearchTypeAll, SearchTypeKorean, SearchTypeRomanization, SearchTypeEnglish, SearchTypeFilipino:
		return t, nil
	default:
		return "", fmt.Errorf("unknown search type %q", s)
	}
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SearchParams contains search parameters
type SearchParams struct {
	Query      string
	SearchType SearchType
	Category   string
	Level      string
	Page       int
	PageSize   int
}

// SearchResult contains search results
type SearchResult struct {
	Words      []database.VocabWord
	TotalCount int
	HasMore    bool
}

// Search runs a paged LIKE search over the seeded vocabulary. With
// SearchTypeAll, a query that is mostly ASCII letters is treated as
// romanization, English or Filipino; anything else is matched against the
// Hangul headword.
func (e *Engine) Search(params SearchParams) (*SearchResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = DefaultPageSize
	}
	params.PageSize = min(params.PageSize, MaxPageSize)

	query := strings.TrimSpace(params.Query)
	if query == "" {
		return &SearchResult{Words: []database.VocabWord{}}, nil
	}

	offset := (params.Page - 1) * params.PageSize
	pattern := likePattern(query)

	db := e.db.Model(&database.VocabWord{})
	switch params.SearchType {
	case SearchTypeKorean:
		db = db.Where(`korean LIKE ? ESCAPE '\'`, pattern)
	case SearchTypeRomanization:
		db = db.Where(romanizationColumn+` LIKE ? ESCAPE '\'`, likePattern(compactRomanization(query)))
	case SearchTypeEnglish:
		db = db.Where(`english LIKE ? ESCAPE '\'`, pattern)
	case SearchTypeFilipino:
		db = db.Where(`filipino LIKE ? ESCAPE '\'`, pattern)
	default:
		db = e.matchAll(db, query, pattern)
	}

	if params.Category != "" {
		db = db.Where("category_key = ?", params.Category)
	}
	if params.Level != "" {
		db = db.Where("level = ?", params.Level)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}

	words := []database.VocabWord{}
	if err := db.Order("id ASC").Limit(params.PageSize).Offset(offset).Find(&words).Error; err != nil {
		return nil, fmt.Errorf("failed to search vocabulary: %w", err)
	}

	return &SearchResult{
		Words:      words,
		TotalCount: int(total),
		HasMore:    offset+len(words) < int(total),
	}, nil
}

func (e *Engine) matchAll(db *gorm.DB, query, pattern string) *gorm.DB {
	if !hangul.IsRomanized(query) {
		return db.Where(`korean LIKE ? ESCAPE '\'`, pattern)
	}
	roman := likePattern(compactRomanization(query))
	return db.Where(
		romanizationColumn+` LIKE ? ESCAPE '\' OR english LIKE ? ESCAPE '\' OR filipino LIKE ? ESCAPE '\'`,
		roman, pattern, pattern,
	)
}

// romanizationColumn is the stored romanization with the separators
// compactRomanization strips from queries removed as well.
const romanizationColumn = `REPLACE(REPLACE(romanization, ' ', ''), '-', '')`

// compactRomanization drops spaces and hyphens so "annyeong haseyo" finds
// "annyeonghaseyo".
func compactRomanization(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.ToLower(s))
}

// likePattern wraps s in wildcards, escaping LIKE metacharacters.
func likePattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + escaped + "%"
}
