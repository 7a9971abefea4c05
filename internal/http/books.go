package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booktracker/internal/audit"
	"github.com/mrlokans/booktracker/internal/services"
)

type BooksController struct {
	library Library
	auditor *audit.Service
}

func NewBooksController(library Library, auditor *audit.Service) *BooksController {
	return &BooksController{
		library: library,
		auditor: auditor,
	}
}

// AddBook adds a book to the shelf or updates the status of a known one.
// POST /api/books
func (controller *BooksController) AddBook(c *gin.Context) {
	var input services.AddBookInput
	if !bindOptionalJSON(c, &input) {
		return
	}

	userID := GetUserID(c)
	tracked, err := controller.library.AddOrTrackBook(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	controller.auditor.LogBookTracked(userID, tracked.Book.ID, tracked.Book.Title, tracked.Status.Status, GetRequestID(c))
	c.JSON(http.StatusCreated, newBookResponse(*tracked))
}

// ListBooks returns the user's tracked books.
// GET /api/books?status=read
func (controller *BooksController) ListBooks(c *gin.Context) {
	tracked, err := controller.library.ListTrackedBooks(c.Request.Context(), GetUserID(c), c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookListResponse(tracked))
}

// GetBook returns one book; reading_status is null when the user does not track it.
// GET /api/books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tracked, err := controller.library.GetBook(c.Request.Context(), GetUserID(c), bookID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookResponse(*tracked))
}

// UpdateBook applies a partial update to the user's reading status.
// PUT /api/books/:id
func (controller *BooksController) UpdateBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch services.ReadingStatusPatch
	if !bindOptionalJSON(c, &patch) {
		return
	}

	userID := GetUserID(c)
	tracked, err := controller.library.UpdateReadingStatus(c.Request.Context(), userID, bookID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	controller.auditor.LogStatusUpdated(userID, bookID, patchFields(patch), GetRequestID(c))
	c.JSON(http.StatusOK, newBookResponse(*tracked))
}

// DeleteBook removes the book from the user's shelf. The book itself is kept.
// DELETE /api/books/:id
func (controller *BooksController) DeleteBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := GetUserID(c)
	if err := controller.library.DeleteTrackedBook(c.Request.Context(), userID, bookID); err != nil {
		respondServiceError(c, err)
		return
	}

	controller.auditor.LogBookRemoved(userID, bookID, GetRequestID(c))
	c.JSON(http.StatusOK, MessageResponse{Message: "Book reading status deleted successfully"})
}

func patchFields(p services.ReadingStatusPatch) []string {
	var fields []string
	for name, set := range map[string]bool{
		"status":       p.Status.Set,
		"current_page": p.CurrentPage.Set,
		"rating":       p.Rating.Set,
		"start_date":   p.StartDate.Set,
		"finish_date":  p.FinishDate.Set,
		"notes":        p.Notes.Set,
	} {
		if set {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}
