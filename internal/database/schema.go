package database

const (
	// SchemaVersion is bumped whenever a model changes shape.
	SchemaVersion = 1

	metaSchemaVersion = "schema_version"
	metaContentHash   = "content_hash"
)

var allModels = []any{
	&Metadata{},
	&Character{},
	&VocabCategory{},
	&VocabWord{},
	&GrammarRule{},
	&CultureNote{},
	&KVEntry{},
}

// CreateIndexesSQL holds indexes gorm tags cannot express.
var CreateIndexesSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_vocab_english_nocase ON vocab_words(english COLLATE NOCASE)`,
	`CREATE INDEX IF NOT EXISTS idx_vocab_filipino_nocase ON vocab_words(filipino COLLATE NOCASE)`,
	`CREATE INDEX IF NOT EXISTS idx_kv_key ON kv_entries(key)`,
}
