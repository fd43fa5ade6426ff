package repository

import "github.com/jhoicas/erp-api/internal/domain/schema"

// SchemaProbe define el puerto para consultar las capacidades del esquema
// desplegado: qué columnas existen por tabla. La implementación consulta el
// catálogo una sola vez por tabla y cachea el resultado durante la vida del
// proceso (el esquema se asume estático). Un fallo del catálogo se reporta
// como domain.ErrSchemaProbe: no hay default seguro.
type SchemaProbe interface {
	Columns(table string) (schema.ColumnSet, error)
	HasColumn(table, column string) (bool, error)
}
