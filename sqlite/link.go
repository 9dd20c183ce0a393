package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/linkstat"
)

// Compile-time interface verification.
var _ linkstat.LinkService = (*LinkService)(nil)

// LinkService implements linkstat.LinkService using SQLite.
type LinkService struct {
	db *DB
}

// NewLinkService creates a new LinkService.
func NewLinkService(db *DB) *LinkService {
	return &LinkService{db: db}
}

// PersistLinks stores one extraction batch for a source URL, one row per
// record, each insert committed individually. Returns the number of rows
// inserted.
//
// Idempotence is decided by the batch's first record only: if a row
// matching its (init_url, anchor_text, href) triple already exists, the
// whole batch is skipped and zero is returned. A batch whose first record
// is new is inserted whole even if later records duplicate stored rows;
// this mirrors the behavior of the data already in production databases
// and is kept as is.
func (s *LinkService) PersistLinks(ctx context.Context, sourceURL string, records []linkstat.LinkRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	first := records[0]
	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM links
		WHERE init_url = ? AND anchor_text = ? AND href = ?
		LIMIT 1
	`, sourceURL, first.AnchorText, first.Href).Scan(&exists)
	if err == nil {
		// Batch already persisted.
		return 0, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	inserted := 0
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return inserted, err
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO links
			(init_url, anchor_text, href, is_visible, tag_name, class, id_attr, title, target)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, sourceURL, rec.AnchorText, rec.Href, boolToInt(rec.IsVisible),
			rec.TagName, rec.CSSClass, rec.ElementID, rec.Title, rec.Target)
		if err != nil {
			// Rows already inserted stay committed; there is no batch
			// transaction to roll back.
			return inserted, err
		}
		inserted++
	}

	return inserted, nil
}

// Aggregates returns ranked aggregate statistics for rows matching the
// filter. Rows carrying the placeholder anchor text are excluded. Grouping
// is by anchor text, which is assumed 1:1 with href within a crawl run.
func (s *LinkService) Aggregates(ctx context.Context, filter linkstat.AggregateFilter) ([]linkstat.AggregateStat, error) {
	query := `
		SELECT init_url, anchor_text, href, COUNT(*) as count
		FROM links
		WHERE init_url = ? AND anchor_text != ?
	`
	args := []any{filter.SourceURL, linkstat.NoTextPlaceholder}

	if filter.AnchorText != nil {
		query += " AND anchor_text = ?"
		args = append(args, *filter.AnchorText)
	}

	query += `
		GROUP BY anchor_text
		ORDER BY count DESC, href ASC
	`

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []linkstat.AggregateStat{}
	for rows.Next() {
		var stat linkstat.AggregateStat
		if err := rows.Scan(&stat.SourceURL, &stat.AnchorText, &stat.Href, &stat.Count); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}

// Reset drops and recreates the links table, discarding all previously
// persisted rows for any source.
func (s *LinkService) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS links"); err != nil {
		return err
	}
	return s.db.createSchema()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
