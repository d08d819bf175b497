package database

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/logger"
)

// RepositoryInterface defines the content repository operations.
type RepositoryInterface interface {
	SeedCatalog(cat *content.Catalog, force bool, progress *mpb.Progress) (bool, error)
	CountVocabulary() (int, error)
	ListVocabulary(category, level string, limit, offset int) ([]VocabWord, int, error)
	GetVocabByKorean(korean string) (*VocabWord, error)
	ListCharacters(category string) ([]Character, error)
	GetStatistics() (*Statistics, error)
}

// Repository handles content table operations.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CatalogHash fingerprints a catalog so unchanged content is not re-seeded.
func CatalogHash(cat *content.Catalog) (string, error) {
	raw, err := json.Marshal(cat)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// SeedCatalog replaces the content tables with cat inside one transaction.
// Unless force is set, seeding is skipped when the stored content hash
// matches. It reports whether anything was written.
func (r *Repository) SeedCatalog(cat *content.Catalog, force bool, progress *mpb.Progress) (bool, error) {
	hash, err := CatalogHash(cat)
	if err != nil {
		return false, fmt.Errorf("failed to hash catalog: %w", err)
	}

	if !force {
		stored, err := getMeta(r.db.DB, metaContentHash)
		if err == nil && stored == hash {
			logger.Debug("Content unchanged, skipping seed", zap.String("hash", hash[:12]))
			return false, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to read content hash: %w", err)
		}
	}

	chars := toCharacters(cat)
	cats, words, err := toVocab(cat)
	if err != nil {
		return false, err
	}
	rules, err := toGrammarRules(cat)
	if err != nil {
		return false, err
	}
	notes := toCultureNotes(cat)

	logger.Info("Seeding content",
		zap.Int("characters", len(chars)),
		zap.Int("vocabulary", len(words)),
		zap.Int("grammar_rules", len(rules)),
		zap.Int("culture_notes", len(notes)),
	)

	err = r.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&VocabWord{}, &VocabCategory{}, &Character{}, &GrammarRule{}, &CultureNote{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", m, err)
			}
		}

		if err := insertWithBar(tx, progress, "Characters", chars); err != nil {
			return err
		}
		if err := insertWithBar(tx, progress, "Categories", cats); err != nil {
			return err
		}
		if err := insertWithBar(tx, progress, "Vocabulary", words); err != nil {
			return err
		}
		if err := insertWithBar(tx, progress, "Grammar", rules); err != nil {
			return err
		}
		if err := insertWithBar(tx, progress, "Culture", notes); err != nil {
			return err
		}
		return setMeta(tx, metaContentHash, hash)
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return true, nil
}

const seedBatchSize = 50

// insertWithBar inserts rows in batches, advancing a progress bar when one
// is supplied.
func insertWithBar[T any](tx *gorm.DB, progress *mpb.Progress, name string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	var bar *mpb.Bar
	if progress != nil {
		bar = progress.AddBar(int64(len(rows)),
			mpb.PrependDecorators(
				decor.Name(name+": ", decor.WC{W: 13, C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Percentage(decor.WC{W: 5}),
			),
		)
	}

	for i := 0; i < len(rows); i += seedBatchSize {
		end := min(i+seedBatchSize, len(rows))
		batch := rows[i:end]
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&batch).Error; err != nil {
			if bar != nil {
				bar.Abort(false)
			}
			return fmt.Errorf("failed to insert %s rows %d-%d: %w", name, i, end, err)
		}
		if bar != nil {
			bar.IncrBy(len(batch))
		}
	}
	return nil
}

func toCharacters(cat *content.Catalog) []Character {
	all := cat.Characters()
	out := make([]Character, len(all))
	for i, c := range all {
		out[i] = Character{
			Glyph:        c.Char,
			Romanization: c.Romanization,
			Name:         c.Name,
			NameKorean:   c.NameKorean,
			Sound:        c.Sound,
			Hint:         c.Hint,
			Category:     string(c.Category),
			Position:     i,
		}
		if c.Group != "" {
			g := c.Group
			out[i].Group = &g
		}
	}
	return out
}

func toVocab(cat *content.Catalog) ([]VocabCategory, []VocabWord, error) {
	cats := make([]VocabCategory, len(cat.VocabCategories))
	words := make([]VocabWord, 0, len(cat.Vocabulary()))

	for i, vc := range cat.VocabCategories {
		cats[i] = VocabCategory{Key: vc.Key, Label: vc.Label, Emoji: vc.Emoji, Position: i}
	}

	for _, item := range cat.Vocabulary() {
		w := VocabWord{
			Korean:       item.Korean,
			Romanization: item.Romanization,
			English:      item.English,
			Filipino:     item.Filipino,
			Level:        string(item.Level),
			CategoryKey:  item.Category,
		}
		if item.Note != "" {
			note := item.Note
			w.Note = &note
		}
		if item.Example != nil {
			raw, err := json.Marshal(item.Example)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to encode example for %s: %w", item.Korean, err)
			}
			w.Example = datatypes.JSON(raw)
		}
		words = append(words, w)
	}
	return cats, words, nil
}

func toGrammarRules(cat *content.Catalog) ([]GrammarRule, error) {
	out := make([]GrammarRule, len(cat.GrammarRules))
	for i, g := range cat.GrammarRules {
		raw, err := json.Marshal(g.Examples)
		if err != nil {
			return nil, fmt.Errorf("failed to encode examples for rule %d: %w", g.ID, err)
		}
		out[i] = GrammarRule{
			ID:               int64(g.ID),
			Title:            g.Title,
			TitleKorean:      g.TitleKorean,
			Explanation:      g.Explanation,
			Structure:        g.Structure,
			Examples:         datatypes.JSON(raw),
			FilipinoParallel: g.FilipinoParallel,
			Tip:              g.Tip,
			Level:            string(g.Level),
		}
	}
	return out, nil
}

func toCultureNotes(cat *content.Catalog) []CultureNote {
	out := make([]CultureNote, len(cat.CultureNotes))
	for i, n := range cat.CultureNotes {
		out[i] = CultureNote{
			ID:                 int64(n.ID),
			Title:              n.Title,
			TitleKorean:        n.TitleKorean,
			Emoji:              n.Emoji,
			Content:            n.Content,
			FilipinoConnection: n.FilipinoConnection,
		}
	}
	return out
}

// ListVocabulary returns a page of vocabulary with optional category and
// level filters, plus the total match count.
func (r *Repository) ListVocabulary(category, level string, limit, offset int) ([]VocabWord, int, error) {
	query := r.db.Model(&VocabWord{})
	if category != "" {
		query = query.Where("category_key = ?", category)
	}
	if level != "" {
		query = query.Where("level = ?", level)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var words []VocabWord
	err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&words).Error
	return words, int(total), err
}

// GetVocabByKorean looks up a headword.
func (r *Repository) GetVocabByKorean(korean string) (*VocabWord, error) {
	var w VocabWord
	if err := r.db.First(&w, "korean = ?", korean).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// ListCharacters returns seeded characters in lab order, optionally for one
// category.
func (r *Repository) ListCharacters(category string) ([]Character, error) {
	query := r.db.Model(&Character{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var chars []Character
	err := query.Order("position ASC").Find(&chars).Error
	return chars, err
}
