package search

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/codedocs/pkg/models"
)

// MemoryPath opens an index that lives only as long as the process.
const MemoryPath = ":memory:"

// Index manages the search index
type Index struct {
	db     *sql.DB
	useFTS bool
}

// NewIndex creates a new search index
func NewIndex(dbPath string) (*Index, error) {
	if dbPath == "" {
		dbPath = MemoryPath
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// init creates the database schema
func (idx *Index) init() error {
	idx.useFTS = idx.checkFTS5Support()

	metaSchema := `
	CREATE TABLE IF NOT EXISTS documents_meta (
		path TEXT PRIMARY KEY,
		name TEXT,
		title TEXT,
		content TEXT,
		tags TEXT,
		modified_at TIMESTAMP,
		word_count INTEGER,
		has_todos BOOLEAN
	);

	CREATE INDEX IF NOT EXISTS idx_documents_meta_title ON documents_meta(title);
	`

	if _, err := idx.db.Exec(metaSchema); err != nil {
		return err
	}

	if idx.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			path UNINDEXED,
			title,
			content,
			tokenize = 'porter unicode61'
		);
		`

		if _, err := idx.db.Exec(ftsSchema); err != nil {
			// If FTS creation fails, disable FTS and continue
			idx.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if FTS5 module is available
func (idx *Index) checkFTS5Support() bool {
	_, err := idx.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}

	_, _ = idx.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// Replace drops every indexed document and indexes docs in one transaction.
func (idx *Index) Replace(docs []*models.Document) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM documents_fts"); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("DELETE FROM documents_meta"); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := idx.insert(tx, doc); err != nil {
			return fmt.Errorf("index %s: %w", doc.Path, err)
		}
	}

	return tx.Commit()
}

// IndexDocument indexes or reindexes a document
func (idx *Index) IndexDocument(doc *models.Document) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := idx.delete(tx, doc.Path); err != nil {
		return err
	}
	if err := idx.insert(tx, doc); err != nil {
		return err
	}

	return tx.Commit()
}

func (idx *Index) insert(tx *sql.Tx, doc *models.Document) error {
	if idx.useFTS {
		_, err := tx.Exec(`
			INSERT INTO documents_fts (path, title, content)
			VALUES (?, ?, ?)
		`, doc.Path, doc.Title, doc.Content)
		if err != nil {
			return err
		}
	}

	_, err := tx.Exec(`
		INSERT INTO documents_meta (
			path, name, title, content, tags, modified_at, word_count, has_todos
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.Path, doc.Name, doc.Title, doc.Content, strings.Join(doc.Tags, ","),
		doc.ModifiedAt, doc.WordCount, doc.HasTodos)
	return err
}

func (idx *Index) delete(tx *sql.Tx, path string) error {
	if idx.useFTS {
		if _, err := tx.Exec("DELETE FROM documents_fts WHERE path = ?", path); err != nil {
			return err
		}
	}
	_, err := tx.Exec("DELETE FROM documents_meta WHERE path = ?", path)
	return err
}

// Options for searching
type Options struct {
	Limit int
}

// Search performs a full-text search
func (idx *Index) Search(query string, opts *Options) ([]*models.Document, error) {
	if opts == nil {
		opts = &Options{Limit: 50}
	}
	if opts.Limit == 0 {
		opts.Limit = 50
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Document{}, nil
	}

	if idx.useFTS {
		results, err := idx.searchWithFTS(query, opts)
		if err == nil {
			return results, nil
		}
		// FTS query syntax errors fall back to substring matching.
	}
	return idx.searchWithoutFTS(query, opts)
}

// searchWithFTS performs search using FTS5
func (idx *Index) searchWithFTS(query string, opts *Options) ([]*models.Document, error) {
	rows, err := idx.db.Query(`
		SELECT
			m.path, m.name, m.title, m.tags, m.modified_at, m.word_count, m.has_todos,
			snippet(documents_fts, 2, '<match>', '</match>', '...', 32) as snippet
		FROM documents_fts f
		JOIN documents_meta m ON f.path = m.path
		WHERE documents_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		var tags string
		if err := rows.Scan(
			&doc.Path, &doc.Name, &doc.Title, &tags, &doc.ModifiedAt, &doc.WordCount, &doc.HasTodos,
			&doc.Snippet,
		); err != nil {
			return nil, err
		}
		doc.Tags = splitTags(tags)
		results = append(results, doc)
	}

	return results, rows.Err()
}

// searchWithoutFTS performs search using LIKE queries on metadata table
func (idx *Index) searchWithoutFTS(query string, opts *Options) ([]*models.Document, error) {
	searchPattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"

	rows, err := idx.db.Query(`
		SELECT
			path, name, title, tags, modified_at, word_count, has_todos
		FROM documents_meta
		WHERE title LIKE ? OR content LIKE ?
		ORDER BY path
		LIMIT ?
	`, searchPattern, searchPattern, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []*models.Document{}
	for rows.Next() {
		doc := &models.Document{}
		var tags string
		if err := rows.Scan(
			&doc.Path, &doc.Name, &doc.Title, &tags, &doc.ModifiedAt, &doc.WordCount, &doc.HasTodos,
		); err != nil {
			return nil, err
		}
		doc.Tags = splitTags(tags)
		results = append(results, doc)
	}

	return results, rows.Err()
}

// RemoveDocument removes a document from the index
func (idx *Index) RemoveDocument(path string) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := idx.delete(tx, path); err != nil {
		return err
	}

	return tx.Commit()
}

// Count returns the number of indexed documents.
func (idx *Index) Count() (int, error) {
	var n int
	err := idx.db.QueryRow("SELECT COUNT(*) FROM documents_meta").Scan(&n)
	return n, err
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
