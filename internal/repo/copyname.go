package repo

import (
	"context"
	"fmt"
	"strings"
)

// CopyName returns the first unused copy name for base: "<base> (copia)"
// when free, otherwise "<base> (copia 2)", "<base> (copia 3)" and so on.
func CopyName(base string, taken map[string]bool) string {
	candidate := fmt.Sprintf("%s (copia)", base)
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s (copia %d)", base, n)
	}
	return candidate
}

// nextCopyName loads the currently persisted names that could collide
// with a copy of base and feeds them to CopyName. The check and the
// subsequent insert are separate operations; Duplicate handles the race
// by retrying on conflict.
func (r *RoutineRepo) nextCopyName(ctx context.Context, base string) (string, error) {
	pattern := escapeLike(base) + " (copia%"
	query, args, err := psql.Select("nombre").
		From("rutinas").
		Where("nombre LIKE ?", pattern).
		ToSql()
	if err != nil {
		return "", err
	}

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return "", err
	}

	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}
	return CopyName(base, taken), nil
}

// escapeLike neutralizes LIKE wildcards so base is matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
