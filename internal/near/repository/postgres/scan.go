package postgres

import (
	"fmt"
	"strings"

	"github.com/goodnatureofminers/nearinsight-backend/pkg/pagination"
	"github.com/goodnatureofminers/nearinsight-backend/pkg/safe"
)

// keysetQuery renders the windowed keyset part shared by all list queries.
type keysetQuery struct {
	args  []any
	where []string
}

func (q *keysetQuery) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *keysetQuery) filter(cond string, v any) {
	q.where = append(q.where, fmt.Sprintf(cond, q.arg(v)))
}

// render appends the window, the cursor predicate, the ordering and the limit.
// key names the (timestamp, shard, position) columns in that order.
func (q *keysetQuery) render(base string, scan pagination.Scan, key [3]string) (string, []any) {
	q.where = append(q.where,
		fmt.Sprintf("%s >= %s", key[0], q.arg(safe.MustInt64(scan.Range.Start))),
		fmt.Sprintf("%s < %s", key[0], q.arg(safe.MustInt64(scan.Range.End))),
	)

	cmp, dir := "<", "DESC"
	if scan.Order == pagination.Asc {
		cmp, dir = ">", "ASC"
	}
	if scan.After != nil {
		q.where = append(q.where, fmt.Sprintf("(%s, %s, %s) %s (%s, %s, %s)",
			key[0], key[1], key[2], cmp,
			q.arg(safe.MustInt64(scan.After.Timestamp)), q.arg(scan.After.ShardID), q.arg(scan.After.Index)))
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\nWHERE ")
	b.WriteString(strings.Join(q.where, "\n  AND "))
	fmt.Fprintf(&b, "\nORDER BY %s %s, %s %s, %s %s", key[0], dir, key[1], dir, key[2], dir)
	fmt.Fprintf(&b, "\nLIMIT %s", q.arg(scan.Limit))
	return b.String(), q.args
}
