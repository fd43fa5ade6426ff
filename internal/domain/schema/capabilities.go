// Package schema modela las capacidades del esquema relacional desplegado:
// qué columnas opcionales existen y qué expresión usar para el total de una
// orden según las variantes de esquema que la aplicación tolera.
package schema

// ColumnSet conjunto de nombres de columna presentes en una tabla.
type ColumnSet map[string]struct{}

// NewColumnSet construye un ColumnSet a partir de nombres.
func NewColumnSet(names ...string) ColumnSet {
	s := make(ColumnSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has indica si la columna existe en el conjunto.
func (s ColumnSet) Has(column string) bool {
	_, ok := s[column]
	return ok
}

// ResolveOrderTotalExpression devuelve la expresión SQL para el total de una
// orden según las columnas disponibles, en orden de prioridad fijo:
// total, total_amount, grand_total, amount, subtotal+tax, subtotal, y 0 como
// último recurso. alias antepone el prefijo de tabla (vacío = sin prefijo).
// La resolución es determinista: el mismo conjunto produce siempre la misma
// expresión.
func ResolveOrderTotalExpression(columns ColumnSet, alias string) string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	switch {
	case columns.Has("total"):
		return prefix + "total"
	case columns.Has("total_amount"):
		return prefix + "total_amount"
	case columns.Has("grand_total"):
		return prefix + "grand_total"
	case columns.Has("amount"):
		return prefix + "amount"
	case columns.Has("subtotal") && columns.Has("tax"):
		return prefix + "subtotal + " + prefix + "tax"
	case columns.Has("subtotal"):
		return prefix + "subtotal"
	default:
		return "0"
	}
}

// ResolveActorColumn devuelve la columna donde registrar el usuario que genera
// un movimiento de inventario: user_id preferida, created_by como fallback,
// cadena vacía si el esquema no tiene ninguna.
func ResolveActorColumn(columns ColumnSet) string {
	switch {
	case columns.Has("user_id"):
		return "user_id"
	case columns.Has("created_by"):
		return "created_by"
	default:
		return ""
	}
}
