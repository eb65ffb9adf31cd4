package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pkgvalidator "github.com/ghuser/itemsvc/pkg/validator"
	"github.com/ghuser/itemsvc/services/item/domain/models"
)

// ItemResponse is the JSON shape of an item.
type ItemResponse struct {
	ID    int64   `json:"id"    example:"1"`
	Name  string  `json:"name"  example:"apple"`
	Price float64 `json:"price" example:"1.5"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"Item not found"`
} // @name ErrorResponse

// ValidationErrorResponse is returned when request fields fail validation.
type ValidationErrorResponse struct {
	Error  string            `json:"error"  example:"Validation failed"`
	Fields map[string]string `json:"fields"`
} // @name ValidationErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:    item.ID,
		Name:  item.Name.String(),
		Price: item.Price.Float64(),
	}
}

// itemIDParam reads the {id} path segment. On failure it writes a 422 and
// returns false.
func itemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		pkgvalidator.WriteValidationError(w, map[string]string{"id": "Must be a positive integer"})
		return 0, false
	}
	return id, true
}
