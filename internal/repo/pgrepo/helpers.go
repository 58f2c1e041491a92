package pgrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/glimpse/internal/domain"
)

// scanner — общий интерфейс pgx.Row и pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// idStrings конвертирует ID в []string для параметров вида ANY($1).
func idStrings(ids []domain.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// nullString возвращает nil для пустой строки.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// purgeIDs физически удаляет записи таблицы, помеченные удалёнными раньше before.
func purgeIDs(ctx context.Context, pool *pgxpool.Pool, table string, before time.Time) ([]domain.ID, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE deleted AND deleted_at < $1 RETURNING id`, table)
	rows, err := pool.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("purge %s: %w", table, err)
	}
	defer rows.Close()

	var ids []domain.ID
	for rows.Next() {
		var id domain.ID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan purged id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// softDelete помечает запись таблицы удалённой.
// Возвращает false, если живой записи нет.
func softDelete(ctx context.Context, pool *pgxpool.Pool, table string, id domain.ID) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted = TRUE, deleted_at = NOW()
		WHERE id = $1 AND NOT deleted
	`, table)
	result, err := pool.Exec(ctx, query, id.String())
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	return result.RowsAffected() > 0, nil
}
