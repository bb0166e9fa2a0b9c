package correction

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dbsmedya/boardfab/internal/sqlutil"
)

// LoadFromDB reads a correction table from a MySQL table with the columns
// footprint, x, y and rotation. NULL offsets count as zero; a NULL rotation is
// reported when the footprint is looked up.
func LoadFromDB(ctx context.Context, db *sql.DB, table string) (*Table, error) {
	quoted, err := sqlutil.QuoteTableName(table)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT footprint, x, y, rotation FROM %s", quoted)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query correction table %s: %w", table, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var footprint, x, y, rotation sql.NullString
		if err := rows.Scan(&footprint, &x, &y, &rotation); err != nil {
			return nil, fmt.Errorf("failed to scan correction row: %w", err)
		}
		entry, ok, err := entryFromRow(map[string]string{
			ColumnFootprint: footprint.String,
			ColumnX:         x.String,
			ColumnY:         y.String,
			ColumnRotation:  rotation.String,
		})
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate correction rows: %w", err)
	}

	return NewTable(entries...), nil
}
