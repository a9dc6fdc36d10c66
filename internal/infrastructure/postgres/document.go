package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain"
)

// docWrite describe una fila de agregado: columnas indexadas más el documento completo en data.
type docWrite struct {
	table     string
	id        string
	version   int64 // versión en memoria antes de guardar
	columns   []string
	values    []any
	doc       any
	createdAt time.Time
	updatedAt time.Time
}

// saveDocument inserta (version 0) o actualiza con comparación de versión. Devuelve la nueva versión.
func saveDocument(ctx context.Context, q Querier, w docWrite) (int64, error) {
	data, err := json.Marshal(w.doc)
	if err != nil {
		return 0, fmt.Errorf("%s: serializar documento: %w", w.table, err)
	}

	if w.version == 0 {
		cols := append([]string{"id"}, w.columns...)
		cols = append(cols, "version", "data", "created_at", "updated_at")
		args := append([]any{w.id}, w.values...)
		args = append(args, 1, data, w.createdAt, w.updatedAt)
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, w.table, strings.Join(cols, ", "), placeholders(1, len(cols)))
		if _, err := q.Exec(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return 0, fmt.Errorf("%s %s: %w", w.table, w.id, domain.ErrConflict)
			}
			return 0, fmt.Errorf("insert %s: %w", w.table, err)
		}
		return 1, nil
	}

	sets := make([]string, 0, len(w.columns)+3)
	args := []any{w.id, w.version}
	for i, c := range w.columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+3))
	}
	args = append(args, w.values...)
	n := len(args)
	sets = append(sets, fmt.Sprintf("data = $%d", n+1), fmt.Sprintf("updated_at = $%d", n+2), "version = version + 1")
	args = append(args, data, w.updatedAt)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1 AND version = $2 RETURNING version`, w.table, strings.Join(sets, ", "))
	var newVersion int64
	err = q.QueryRow(ctx, query, args...).Scan(&newVersion)
	if err == nil {
		return newVersion, nil
	}
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("%s %s: %w", w.table, w.id, domain.ErrConflict)
	}
	if !isNoRows(err) {
		return 0, fmt.Errorf("update %s: %w", w.table, err)
	}
	var exists bool
	if err := q.QueryRow(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, w.table), w.id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check %s: %w", w.table, err)
	}
	if !exists {
		return 0, fmt.Errorf("%s %s: %w", w.table, w.id, domain.ErrNotFound)
	}
	return 0, fmt.Errorf("%s %s versión %d: %w", w.table, w.id, w.version, domain.ErrConcurrencyConflict)
}

// loadDocument lee data y version de una fila y deserializa en dst.
func loadDocument(ctx context.Context, q Querier, table, where string, dst any, args ...any) (int64, error) {
	query := fmt.Sprintf(`SELECT data, version FROM %s WHERE %s`, table, where)
	var (
		data    []byte
		version int64
	)
	if err := q.QueryRow(ctx, query, args...).Scan(&data, &version); err != nil {
		if isNoRows(err) {
			return 0, fmt.Errorf("%s: %w", table, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("get %s: %w", table, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return 0, fmt.Errorf("%s: deserializar documento: %w", table, err)
	}
	return version, nil
}

// listDocuments ejecuta query (que debe seleccionar data, version) y construye un valor por fila.
func listDocuments[T any](ctx context.Context, q Querier, query string, build func(data []byte, version int64) (T, error), args ...any) ([]T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var (
			data    []byte
			version int64
		)
		if err := rows.Scan(&data, &version); err != nil {
			return nil, err
		}
		v, err := build(data, version)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func existsByKey(ctx context.Context, q Querier, table, idType, number string) (bool, error) {
	var ok bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE identification_type = $1 AND identification_number = $2)`, table)
	if err := q.QueryRow(ctx, query, idType, number).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists %s: %w", table, err)
	}
	return ok, nil
}

func placeholders(from, n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(p, ", ")
}
