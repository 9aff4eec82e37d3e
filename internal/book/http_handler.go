package book

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"bookcrud/internal/httpx"
)

const (
	msgCreated       = "Book added successfully"
	msgUpdated       = "Book updated successfully"
	msgDeleted       = "Book deleted successfully"
	msgNoSearchTerm  = "Please provide a search term"
	msgNoSearchMatch = "No books found matching the search criteria"
)

// MutationResponse is the body of successful create and update calls.
type MutationResponse struct {
	Message string `json:"message"`
	Book    Book   `json:"book"`
}

type HTTPHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewHTTPHandler(service *Service, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{service: service, logger: logger}
}

// Register mounts the book routes on mux. The method-less patterns only catch
// methods the specific routes do not serve.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("GET /books/{id}", h.Get)
	mux.HandleFunc("PUT /books/{id}", h.Update)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
	mux.HandleFunc("GET /search", h.Search)

	mux.Handle("/books", httpx.MethodNotAllowed(http.MethodGet, http.MethodPost))
	mux.Handle("/books/{id}", httpx.MethodNotAllowed(http.MethodGet, http.MethodPut, http.MethodDelete))
	mux.Handle("/search", httpx.MethodNotAllowed(http.MethodGet))
}

// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Param book body Input true "Title and author"
// @Success 201 {object} MutationResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	b, err := h.service.Create(r.Context(), in.Title, in.Author)
	if err != nil {
		h.internalError(w, r, "create book", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, MutationResponse{Message: msgCreated, Book: b})
}

// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.internalError(w, r, "list books", err)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSON(w, http.StatusOK, books)
}

// @Summary Get a book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.lookupError(w, r, id, "get book", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// @Summary Replace title and author of a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param book body Input true "Title and author"
// @Success 200 {object} MutationResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	b, err := h.service.Update(r.Context(), id, in.Title, in.Author)
	if err != nil {
		h.lookupError(w, r, id, "update book", err)
		return
	}
	httpx.JSON(w, http.StatusOK, MutationResponse{Message: msgUpdated, Book: b})
}

// @Summary Delete a book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.lookupError(w, r, id, "delete book", err)
		return
	}
	httpx.Message(w, http.StatusOK, msgDeleted)
}

// @Summary Search books by title or author
// @Tags books
// @Produce json
// @Param search query string true "Case-insensitive substring"
// @Success 200 {array} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.MessageResponse
// @Router /search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	if term == "" {
		httpx.Error(w, http.StatusBadRequest, msgNoSearchTerm)
		return
	}

	books, err := h.service.Search(r.Context(), term)
	if err != nil {
		h.internalError(w, r, "search books", err)
		return
	}
	if len(books) == 0 {
		httpx.Message(w, http.StatusNotFound, msgNoSearchMatch)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

func (h *HTTPHandler) decodeInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var in Input
	if err := httpx.DecodeJSON(r.Body, &in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return Input{}, false
		}
		httpx.InvalidBody(w)
		return Input{}, false
	}
	if details := httpx.ValidateStruct(in); details != nil {
		httpx.ValidationFailed(w, details)
		return Input{}, false
	}
	return in, true
}

// parseID accepts non-negative integers only. Anything else cannot name a book, so it is a 404.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		httpx.NotFound(w, fmt.Sprintf("invalid book id %q", raw))
		return 0, false
	}
	return int64(id), true
}

func (h *HTTPHandler) lookupError(w http.ResponseWriter, r *http.Request, id int64, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.NotFound(w, fmt.Sprintf("book %d not found", id))
		return
	}
	h.internalError(w, r, op, err)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.ErrorContext(r.Context(), op+" failed",
		"error", err,
		"request_id", httpx.RequestIDFrom(r),
	)
	httpx.InternalError(w)
}
