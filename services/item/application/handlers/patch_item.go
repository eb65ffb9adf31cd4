package handlers

import (
	"net/http"

	"github.com/ghuser/itemsvc/pkg/errhttp"
	"github.com/ghuser/itemsvc/pkg/httpx"
	pkgvalidator "github.com/ghuser/itemsvc/pkg/validator"
	appsvcs "github.com/ghuser/itemsvc/services/item/application/services"
)

// UpdateItemRequest is the request body for PATCH /items/{id}. Absent and
// null fields are left unchanged.
type UpdateItemRequest struct {
	Name  *string  `json:"name"  validate:"omitnil,min=1,max=128" example:"pear"`
	Price *float64 `json:"price" validate:"omitnil,gte=0"         example:"2.25"`
} // @name UpdateItemRequest

// PatchItemHandler handles PATCH /items/{id} requests.
type PatchItemHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewPatchItemHandler returns a PatchItemHandler backed by the given services.
func NewPatchItemHandler(svc *appsvcs.Services, errs *errhttp.Writer) *PatchItemHandler {
	return &PatchItemHandler{svc: svc, errs: errs}
}

// Execute partially updates an item.
//
//	@Summary		Update item
//	@Description	Updates the supplied fields. A rename is checked for uniqueness.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int					true	"Item ID"
//	@Param			request	body		UpdateItemRequest	true	"Fields to change"
//	@Success		200		{object}	ItemResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ValidationErrorResponse
//	@Router			/api/v1/items/{id} [patch]
func (h *PatchItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Update(r.Context(), id, req.Name, req.Price)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
