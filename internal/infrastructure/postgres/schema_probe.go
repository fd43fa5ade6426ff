package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/internal/domain/schema"
)

var _ repository.SchemaProbe = (*SchemaProbe)(nil)

// SchemaProbe descubre qué columnas expone cada tabla consultando
// information_schema y cachea el resultado por tabla durante la vida del
// proceso. No hay invalidación: el esquema se asume estático.
type SchemaProbe struct {
	pool *pgxpool.Pool

	mu    sync.Mutex
	cache map[string]schema.ColumnSet
}

// NewSchemaProbe construye el probe con cache vacío (populate-on-first-use).
func NewSchemaProbe(pool *pgxpool.Pool) *SchemaProbe {
	return &SchemaProbe{
		pool:  pool,
		cache: make(map[string]schema.ColumnSet),
	}
}

// Columns devuelve el conjunto de columnas de la tabla. La primera llamada por
// tabla consulta el catálogo; las siguientes responden desde el cache. Si la
// consulta al catálogo falla, devuelve domain.ErrSchemaProbe: el caller no
// puede saber qué columnas son insertables, así que no hay fallback seguro.
func (p *SchemaProbe) Columns(table string) (schema.ColumnSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cols, ok := p.cache[table]; ok {
		return cols, nil
	}

	rows, err := p.pool.Query(context.Background(),
		`SELECT column_name FROM information_schema.columns WHERE table_name = $1`,
		table,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: columnas de %s: %v", domain.ErrSchemaProbe, table, err)
	}
	defer rows.Close()

	cols := make(schema.ColumnSet)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scan columna de %s: %v", domain.ErrSchemaProbe, table, err)
		}
		cols[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: columnas de %s: %v", domain.ErrSchemaProbe, table, err)
	}

	p.cache[table] = cols
	return cols, nil
}

// HasColumn indica si la tabla tiene la columna (vía el mismo cache).
func (p *SchemaProbe) HasColumn(table, column string) (bool, error) {
	cols, err := p.Columns(table)
	if err != nil {
		return false, err
	}
	return cols.Has(column), nil
}
