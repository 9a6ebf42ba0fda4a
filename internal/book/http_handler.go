package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"bookshelf/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Routes registers the /books collection and item routes on r.
func (h *HTTPHandler) Routes(r chi.Router) {
	r.Get("/books", h.List)
	r.Post("/books", h.Create)
	r.Get("/books/{id}", h.Get)
	r.Put("/books/{id}", h.Update)
	r.Patch("/books/{id}", h.Update)
	r.Delete("/books/{id}", h.Delete)
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, r, http.StatusOK, books)
}

// Get handles GET /books/{id}
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, ErrNotFound)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, r, http.StatusOK, b)
}

// Create handles POST /books
// @Summary Create book
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	in := CreateInput{Title: fields.Title, ISBN: fields.ISBN}
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			err = mergeFieldErrors(verr, in.Validate())
		}
		writeError(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/books/%d", b.ID))
	httpx.JSON(w, r, http.StatusCreated, b)
}

// Update handles PUT and PATCH /books/{id}. Both apply only the supplied fields.
// @Summary Update book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id} [patch]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, ErrNotFound)
		return
	}

	fields, err := decodeFields(r)
	if err != nil {
		// An unknown id wins over any problem with the body.
		if _, findErr := h.service.Get(r.Context(), id); findErr != nil {
			writeError(w, r, findErr)
			return
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			in := UpdateInput{Title: fields.Title, ISBN: fields.ISBN}
			err = mergeFieldErrors(verr, in.Validate())
		}
		writeError(w, r, err)
		return
	}

	b, err := h.service.Update(r.Context(), id, UpdateInput{Title: fields.Title, ISBN: fields.ISBN})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSON(w, r, http.StatusOK, b)
}

// Delete handles DELETE /books/{id}
// @Summary Delete book
// @Tags books
// @Param id path int true "Book ID"
// @Success 204 "No Content"
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, ErrNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.NoContent(w)
}

// pathID parses the {id} segment. Only the canonical decimal form of a
// positive integer names a stored book, so signs and leading zeros are
// rejected.
func pathID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" || raw[0] < '1' || raw[0] > '9' {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// requestError is a body problem that is not tied to a single field.
type requestError struct {
	status  int
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(message string) *requestError {
	return &requestError{status: http.StatusBadRequest, code: httpx.CodeBadRequest, message: message}
}

type bookFields struct {
	Title *string
	ISBN  *string
}

// decodeFields reads a JSON object body and extracts the writable fields.
// Unknown keys are ignored. A writable key holding anything other than a
// string yields a *ValidationError for that key; the well-typed fields are
// still returned alongside it.
func decodeFields(r *http.Request) (bookFields, error) {
	var raw map[string]json.RawMessage

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&raw); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &maxErr):
			return bookFields{}, &requestError{
				status:  http.StatusRequestEntityTooLarge,
				code:    httpx.CodePayloadTooLarge,
				message: "Request body too large",
			}
		case errors.Is(err, io.EOF):
			return bookFields{}, badRequest("Request body is required")
		case errors.As(err, &typeErr):
			return bookFields{}, badRequest("Request body must be a JSON object")
		default:
			return bookFields{}, badRequest("Request body is not valid JSON")
		}
	}
	if raw == nil {
		return bookFields{}, badRequest("Request body must be a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return bookFields{}, badRequest("Request body must contain a single JSON object")
	}

	invalid := map[string]string{}
	fields := bookFields{
		Title: stringField(raw, "title", invalid),
		ISBN:  stringField(raw, "isbn", invalid),
	}
	if len(invalid) > 0 {
		return fields, NewValidationError(invalid)
	}
	return fields, nil
}

// mergeFieldErrors folds the rule failures of the well-typed fields into the
// type errors so one response lists every bad field. Type errors win.
func mergeFieldErrors(typeErr *ValidationError, ruleErr error) *ValidationError {
	fields := make(map[string]string, len(typeErr.Fields))
	var verr *ValidationError
	if errors.As(ruleErr, &verr) {
		for k, v := range verr.Fields {
			fields[k] = v
		}
	}
	for k, v := range typeErr.Fields {
		fields[k] = v
	}
	return NewValidationError(fields)
}

func stringField(raw map[string]json.RawMessage, key string, invalid map[string]string) *string {
	msg, ok := raw[key]
	if !ok {
		return nil
	}

	var s string
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) || json.Unmarshal(msg, &s) != nil {
		invalid[key] = key + " must be a string"
		return nil
	}
	return &s
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	var rerr *requestError
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, httpx.CodeNotFound, "Book not found", nil)
	case errors.As(err, &verr):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, httpx.CodeValidationFailed, "Validation failed", verr.Fields)
	case errors.As(err, &rerr):
		httpx.JSONError(w, r, rerr.status, rerr.code, rerr.message, nil)
	default:
		httpx.InternalError(w, r, err)
	}
}
