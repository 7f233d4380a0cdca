package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation erkennt eine Unique-Constraint-Verletzung (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation erkennt eine Fremdschlüssel-Verletzung (23503),
// z.B. das Löschen eines noch referenzierten Katalogeintrags (restrict).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return strings.Contains(err.Error(), "23503")
}

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeEscape entschärft die LIKE-Metazeichen, damit Suchbegriffe wie "50%"
// oder "K_1" wörtlich als Teilstring matchen. Die Abfragen tragen dazu
// ESCAPE '\'.
func likeEscape(s string) string {
	return likeReplacer.Replace(s)
}
