package sqlstore

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	itemdomain "github.com/ghuser/itemsvc/services/item/domain"
	"github.com/ghuser/itemsvc/services/item/domain/repositories"
)

// likeEscaper escapes LIKE wildcards so q is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListQuery translates q into a single SELECT. Filters are ANDed,
// ordering uses a whitelisted column with id as the tie-break, and LIMIT/OFFSET
// are applied last. lower names the case-folding SQL function for the dialect.
func buildListQuery(sb sq.StatementBuilderType, lower string, q repositories.ListQuery) (string, []any, error) {
	column, err := sortColumn(q.OrderBy)
	if err != nil {
		return "", nil, err
	}
	direction, err := sortDirection(q.Direction)
	if err != nil {
		return "", nil, err
	}

	sel := sb.Select(itemColumns...).From(itemsTable)

	if q.MinPrice != nil {
		sel = sel.Where(sq.GtOrEq{"price": *q.MinPrice})
	}
	if q.MaxPrice != nil {
		sel = sel.Where(sq.LtOrEq{"price": *q.MaxPrice})
	}
	if q.NameQuery != nil {
		pattern := "%" + likeEscaper.Replace(*q.NameQuery) + "%"
		sel = sel.Where(lower+`(name) LIKE `+lower+`(?) ESCAPE '\'`, pattern)
	}

	orderBy := []string{column + " " + direction}
	if column != "id" {
		orderBy = append(orderBy, "id ASC")
	}

	query, args, err := sel.
		OrderBy(orderBy...).
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build list query: %w", err)
	}
	return query, args, nil
}

// sortColumn maps the closed set of sort keys onto column names.
func sortColumn(k repositories.SortKey) (string, error) {
	switch k {
	case repositories.SortByID:
		return "id", nil
	case repositories.SortByName:
		return "name", nil
	case repositories.SortByPrice:
		return "price", nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q", itemdomain.ErrInvalidListQuery, k)
	}
}

func sortDirection(d repositories.SortDirection) (string, error) {
	switch d {
	case repositories.SortAsc:
		return "ASC", nil
	case repositories.SortDesc:
		return "DESC", nil
	default:
		return "", fmt.Errorf("%w: unknown sort direction %q", itemdomain.ErrInvalidListQuery, d)
	}
}
