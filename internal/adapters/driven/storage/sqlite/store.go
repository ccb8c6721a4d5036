// Package sqlite provides the persistent workspace store the CLI uses
// between invocations.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/raghuraavi99/annotation-app/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.WorkspaceStore = (*Store)(nil)

// Store is a SQLite-backed workspace store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.annotate/data/workspace.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".annotate", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "workspace.db")

	// WAL keeps the CLI responsive when a watch and a command overlap.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// NextDocID allocates the next doc_%04d sequence identifier.
func (s *Store) NextDocID(ctx context.Context) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var raw string
	if err := tx.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'next_seq'").Scan(&raw); err != nil {
		return "", fmt.Errorf("reading sequence: %w", err)
	}
	seq, err := strconv.Atoi(raw)
	if err != nil || seq < 1 {
		seq = 1
	}

	if _, err := tx.ExecContext(ctx, "UPDATE meta SET value = ? WHERE key = 'next_seq'", strconv.Itoa(seq+1)); err != nil {
		return "", fmt.Errorf("advancing sequence: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing sequence: %w", err)
	}
	return fmt.Sprintf("doc_%04d", seq), nil
}

// AddDocument stores a document. Re-adding an ID replaces its text and
// keeps its position and annotations.
func (s *Store) AddDocument(ctx context.Context, doc domain.Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, text, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM documents))
		ON CONFLICT(id) DO UPDATE SET text = excluded.text
	`, doc.ID, doc.Text)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, text FROM documents WHERE id = ?", id)

	var doc domain.Document
	if err := row.Scan(&doc.ID, &doc.Text); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &doc, nil
}

// ListDocuments returns all documents in insertion order.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, text FROM documents ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.Text); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// RemoveDocument deletes a document; annotations and relations cascade
// through foreign keys. Absent IDs are ignored.
func (s *Store) RemoveDocument(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// AppendAnnotation appends to the document's annotation list.
func (s *Store) AppendAnnotation(ctx context.Context, ann domain.Annotation) error {
	if _, err := s.GetDocument(ctx, ann.DocID); err != nil {
		return err
	}

	attrsJSON, err := json.Marshal(ann.Attrs)
	if err != nil {
		return fmt.Errorf("marshalling attrs: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO annotations (id, doc_id, start_offset, end_offset, text, label, attrs, position)
		VALUES (?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM annotations WHERE doc_id = ?))
	`, ann.ID, ann.DocID, ann.Start, ann.End, ann.Text, ann.Label, string(attrsJSON), ann.DocID)
	if err != nil {
		return fmt.Errorf("saving annotation: %w", err)
	}
	return nil
}

// Annotations returns the document's annotations in insertion order.
func (s *Store) Annotations(ctx context.Context, docID string) ([]domain.Annotation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_id, start_offset, end_offset, text, label, attrs
		FROM annotations WHERE doc_id = ? ORDER BY position
	`, docID)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	var anns []domain.Annotation //nolint:prealloc // size unknown from query
	for rows.Next() {
		var ann domain.Annotation
		var attrsJSON string
		if err := rows.Scan(&ann.ID, &ann.DocID, &ann.Start, &ann.End, &ann.Text, &ann.Label, &attrsJSON); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		if err := json.Unmarshal([]byte(attrsJSON), &ann.Attrs); err != nil {
			return nil, fmt.Errorf("unmarshaling attrs: %w", err)
		}
		anns = append(anns, ann)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}
	return anns, nil
}

// RemoveAnnotation deletes an annotation; relations referencing it
// cascade through foreign keys.
func (s *Store) RemoveAnnotation(ctx context.Context, docID, annID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM annotations WHERE id = ? AND doc_id = ?", annID, docID)
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendRelation appends to the document's relation list.
func (s *Store) AppendRelation(ctx context.Context, rel domain.Relation) error {
	if _, err := s.GetDocument(ctx, rel.DocID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO relations (id, doc_id, head_id, tail_id, label, position)
		VALUES (?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM relations WHERE doc_id = ?))
	`, rel.ID, rel.DocID, rel.HeadID, rel.TailID, rel.Label, rel.DocID)
	if err != nil {
		return fmt.Errorf("saving relation: %w", err)
	}
	return nil
}

// Relations returns the document's relations in insertion order.
func (s *Store) Relations(ctx context.Context, docID string) ([]domain.Relation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_id, head_id, tail_id, label
		FROM relations WHERE doc_id = ? ORDER BY position
	`, docID)
	if err != nil {
		return nil, fmt.Errorf("querying relations: %w", err)
	}
	defer rows.Close()

	var rels []domain.Relation //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rel domain.Relation
		if err := rows.Scan(&rel.ID, &rel.DocID, &rel.HeadID, &rel.TailID, &rel.Label); err != nil {
			return nil, fmt.Errorf("scanning relation: %w", err)
		}
		rels = append(rels, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relations: %w", err)
	}
	return rels, nil
}

// RemoveRelation deletes a relation by ID.
func (s *Store) RemoveRelation(ctx context.Context, docID, relID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM relations WHERE id = ? AND doc_id = ?", relID, docID)
	if err != nil {
		return fmt.Errorf("deleting relation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting relation: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Labels returns the ordered label set.
func (s *Store) Labels(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM labels ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying labels: %w", err)
	}
	defer rows.Close()

	var labels []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning label: %w", err)
		}
		labels = append(labels, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating labels: %w", err)
	}
	return labels, nil
}

// SetLabels replaces the label set.
func (s *Store) SetLabels(ctx context.Context, labels []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceLabels(ctx, tx, labels); err != nil {
		return err
	}
	return tx.Commit()
}

// Snapshot returns a copy of the full store state.
func (s *Store) Snapshot(ctx context.Context) (*domain.Workspace, error) {
	ws := domain.NewWorkspace()

	docs, err := s.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	ws.Documents = docs

	for _, doc := range docs {
		anns, err := s.Annotations(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		if len(anns) > 0 {
			ws.Annotations[doc.ID] = anns
		}
		rels, err := s.Relations(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		if len(rels) > 0 {
			ws.Relations[doc.ID] = rels
		}
	}

	labels, err := s.Labels(ctx)
	if err != nil {
		return nil, err
	}
	ws.Labels = labels

	var raw string
	if err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'next_seq'").Scan(&raw); err != nil {
		return nil, fmt.Errorf("reading sequence: %w", err)
	}
	if seq, err := strconv.Atoi(raw); err == nil {
		ws.NextSeq = seq
	}

	return ws, nil
}

// Replace swaps in a full store state atomically.
func (s *Store) Replace(ctx context.Context, ws *domain.Workspace) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"relations", "annotations", "documents"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for pos, doc := range ws.Documents {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO documents (id, text, position) VALUES (?, ?, ?)",
			doc.ID, doc.Text, pos+1); err != nil {
			return fmt.Errorf("inserting document %s: %w", doc.ID, err)
		}
		for apos, ann := range ws.Annotations[doc.ID] {
			attrsJSON, err := json.Marshal(ann.Attrs)
			if err != nil {
				return fmt.Errorf("marshalling attrs: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO annotations (id, doc_id, start_offset, end_offset, text, label, attrs, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, ann.ID, doc.ID, ann.Start, ann.End, ann.Text, ann.Label, string(attrsJSON), apos+1); err != nil {
				return fmt.Errorf("inserting annotation: %w", err)
			}
		}
		for rpos, rel := range ws.Relations[doc.ID] {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO relations (id, doc_id, head_id, tail_id, label, position)
				VALUES (?, ?, ?, ?, ?, ?)
			`, rel.ID, doc.ID, rel.HeadID, rel.TailID, rel.Label, rpos+1); err != nil {
				return fmt.Errorf("inserting relation: %w", err)
			}
		}
	}

	if err := replaceLabels(ctx, tx, ws.Labels); err != nil {
		return err
	}

	next := nextSeqAfter(ws)
	if _, err := tx.ExecContext(ctx, "UPDATE meta SET value = ? WHERE key = 'next_seq'", strconv.Itoa(next)); err != nil {
		return fmt.Errorf("setting sequence: %w", err)
	}

	return tx.Commit()
}

func replaceLabels(ctx context.Context, tx *sql.Tx, labels []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM labels"); err != nil {
		return fmt.Errorf("clearing labels: %w", err)
	}
	for _, name := range domain.NormaliseLabels(labels) {
		if _, err := tx.ExecContext(ctx, "INSERT INTO labels (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("inserting label %s: %w", name, err)
		}
	}
	return nil
}

// nextSeqAfter keeps the sequence counter ahead of every doc_%04d ID
// already present, so re-loaded workspaces never collide.
func nextSeqAfter(ws *domain.Workspace) int {
	next := ws.NextSeq
	if next < 1 {
		next = 1
	}
	for _, doc := range ws.Documents {
		var n int
		if _, err := fmt.Sscanf(doc.ID, "doc_%d", &n); err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}
