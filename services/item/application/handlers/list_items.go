package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/ghuser/itemsvc/pkg/errhttp"
	"github.com/ghuser/itemsvc/pkg/httpx"
	pkgvalidator "github.com/ghuser/itemsvc/pkg/validator"
	appsvcs "github.com/ghuser/itemsvc/services/item/application/services"
	"github.com/ghuser/itemsvc/services/item/domain/repositories"
)

// ListItemsParams are the query parameters of GET /items.
type ListItemsParams struct {
	MinPrice  *float64 `json:"min_price" validate:"omitnil,gte=0"`
	MaxPrice  *float64 `json:"max_price" validate:"omitnil,gte=0"`
	Q         *string  `json:"q"         validate:"omitnil,min=1"`
	Limit     int      `json:"limit"     validate:"gte=1,lte=200"`
	Offset    int      `json:"offset"    validate:"gte=0"`
	OrderBy   string   `json:"order_by"  validate:"oneof=id name price"`
	Direction string   `json:"direction" validate:"oneof=asc desc"`
}

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, errs *errhttp.Writer) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, errs: errs}
}

// Execute returns one page of items.
//
//	@Summary		List items
//	@Description	Filters are conjunctive. An inverted price range returns an empty list.
//	@Tags			items
//	@Produce		json
//	@Security		BearerAuth
//	@Param			min_price	query		number	false	"Minimum price (inclusive)"	minimum(0)
//	@Param			max_price	query		number	false	"Maximum price (inclusive)"	minimum(0)
//	@Param			q			query		string	false	"Case-insensitive name substring"
//	@Param			limit		query		int		false	"Page size"		default(50)	minimum(1)	maximum(200)
//	@Param			offset		query		int		false	"Items to skip"	default(0)	minimum(0)
//	@Param			order_by	query		string	false	"Sort key"		Enums(id, name, price)	default(id)
//	@Param			direction	query		string	false	"Sort direction"	Enums(asc, desc)	default(asc)
//	@Success		200			{array}		ItemResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		422			{object}	ValidationErrorResponse
//	@Router			/api/v1/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	params, fields := parseListItemsParams(r.URL.Query())
	if len(fields) > 0 {
		pkgvalidator.WriteValidationError(w, fields)
		return
	}
	if err := pkgvalidator.Validate(&params); err != nil {
		pkgvalidator.WriteValidationError(w, pkgvalidator.FormatValidationErrors(err))
		return
	}

	items, err := h.svc.Item.List(r.Context(), params.toListQuery())
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// parseListItemsParams fills defaults and converts the raw values. Values
// that do not parse are reported per field; range checks are left to Validate.
func parseListItemsParams(v url.Values) (ListItemsParams, map[string]string) {
	params := ListItemsParams{
		Limit:     repositories.DefaultLimit,
		OrderBy:   string(repositories.SortByID),
		Direction: string(repositories.SortAsc),
	}
	fields := map[string]string{}

	parseFloat := func(key string) *float64 {
		if !v.Has(key) {
			return nil
		}
		f, err := strconv.ParseFloat(v.Get(key), 64)
		if err != nil {
			fields[key] = "Must be a number"
			return nil
		}
		return &f
	}
	parseInt := func(key string, dst *int) {
		if !v.Has(key) {
			return
		}
		n, err := strconv.Atoi(v.Get(key))
		if err != nil {
			fields[key] = "Must be an integer"
			return
		}
		*dst = n
	}

	params.MinPrice = parseFloat("min_price")
	params.MaxPrice = parseFloat("max_price")
	parseInt("limit", &params.Limit)
	parseInt("offset", &params.Offset)

	if v.Has("q") {
		q := v.Get("q")
		params.Q = &q
	}
	if v.Has("order_by") {
		params.OrderBy = v.Get("order_by")
	}
	if v.Has("direction") {
		params.Direction = v.Get("direction")
	}

	return params, fields
}

func (p ListItemsParams) toListQuery() repositories.ListQuery {
	return repositories.ListQuery{
		MinPrice:  p.MinPrice,
		MaxPrice:  p.MaxPrice,
		NameQuery: p.Q,
		Limit:     p.Limit,
		Offset:    p.Offset,
		OrderBy:   repositories.SortKey(p.OrderBy),
		Direction: repositories.SortDirection(p.Direction),
	}
}
