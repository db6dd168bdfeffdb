package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/domain/sqlite/repository"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type NoteService interface {
	GetUserNotes(actor *entity.User, filter *repository.NoteFilter) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetNote(actor *entity.User, noteId int) (*contract.NoteResponse, apierror.ErrorResponse)
	CreateNote(actor *entity.User, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	UpdateNote(actor *entity.User, noteId int, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	DeleteNote(actor *entity.User, noteId int) apierror.ErrorResponse
	TogglePin(actor *entity.User, noteId int) (*contract.NoteResponse, apierror.ErrorResponse)
	BulkCreate(actor *entity.User, req *contract.BulkCreateNotesRequest) (*contract.BulkCreateResult, apierror.ErrorResponse)
	BulkUpdate(actor *entity.User, req *contract.BulkUpdateNotesRequest) (*contract.BulkUpdateResult, apierror.ErrorResponse)
	BulkDelete(actor *entity.User, req *contract.BulkDeleteNotesRequest) (*contract.BulkDeleteResult, apierror.ErrorResponse)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	filter, apierr := parseNoteFilter(c)
	if apierr != nil {
		return fail(c, apierr)
	}

	notes, apierr := n.NoteService.GetUserNotes(user, filter)
	if apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Notes retrieved successfully", echo.Map{"notes": notes})
}

func (n *DefaultNoteRoute) GetNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, apierror.NewInvalidParamTypeError("id", "int"))
	}

	note, apierr := n.NoteService.GetNote(user, id)
	if apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Note retrieved successfully", echo.Map{"note": note})
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	var req contract.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	note, apierr := n.NoteService.CreateNote(user, &req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusCreated, "Note created successfully", echo.Map{"note": note})
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, apierror.NewInvalidParamTypeError("id", "int"))
	}

	var req contract.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	note, apierr := n.NoteService.UpdateNote(user, id, &req)
	if apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Note updated successfully", echo.Map{"note": note})
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, apierror.NewInvalidParamTypeError("id", "int"))
	}

	if apierr := n.NoteService.DeleteNote(user, id); apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Note deleted successfully", nil)
}

func (n *DefaultNoteRoute) TogglePin(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, apierror.NewInvalidParamTypeError("id", "int"))
	}

	note, apierr := n.NoteService.TogglePin(user, id)
	if apierr != nil {
		return fail(c, apierr)
	}
	return respond(c, http.StatusOK, "Note pin status updated successfully", echo.Map{"note": note})
}

func (n *DefaultNoteRoute) BulkCreate(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	var req contract.BulkCreateNotesRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	result, apierr := n.NoteService.BulkCreate(user, &req)
	if apierr != nil {
		return fail(c, apierr)
	}

	msg := fmt.Sprintf("Bulk create completed: %d created, %d failed", result.CreatedCount, result.ErrorCount)
	return c.JSON(bulkStatus(result.ErrorCount, http.StatusCreated), &contract.Envelope{
		Success: result.ErrorCount == 0,
		Message: msg,
		Data:    result,
	})
}

func (n *DefaultNoteRoute) BulkUpdate(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	var req contract.BulkUpdateNotesRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	result, apierr := n.NoteService.BulkUpdate(user, &req)
	if apierr != nil {
		return fail(c, apierr)
	}

	msg := fmt.Sprintf("Bulk update completed: %d updated, %d failed", result.UpdatedCount, result.ErrorCount)
	return c.JSON(bulkStatus(result.ErrorCount, http.StatusOK), &contract.Envelope{
		Success: result.ErrorCount == 0,
		Message: msg,
		Data:    result,
	})
}

func (n *DefaultNoteRoute) BulkDelete(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return fail(c, cerr)
	}

	var req contract.BulkDeleteNotesRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, apierror.MalformedJSONError)
	}

	result, apierr := n.NoteService.BulkDelete(user, &req)
	if apierr != nil {
		return fail(c, apierr)
	}

	msg := fmt.Sprintf("Bulk delete completed: %d deleted, %d failed", result.DeletedCount, result.ErrorCount)
	return c.JSON(bulkStatus(result.ErrorCount, http.StatusOK), &contract.Envelope{
		Success: result.ErrorCount == 0,
		Message: msg,
		Data:    result,
	})
}

// bulkStatus maps a batch outcome to its status code: the full-success
// code when nothing failed, 207 Multi-Status otherwise.
func bulkStatus(errorCount, successStatus int) int {
	if errorCount > 0 {
		return http.StatusMultiStatus
	}
	return successStatus
}

func parseNoteFilter(c echo.Context) (*repository.NoteFilter, apierror.ErrorResponse) {
	filter := &repository.NoteFilter{
		Search: strings.TrimSpace(c.QueryParam("search")),
	}

	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("category_id", "int")
		}
		filter.CategoryID = &id
	}

	if raw := c.QueryParam("is_pinned"); raw != "" {
		pinned, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("is_pinned", "bool")
		}
		filter.IsPinned = &pinned
	}
	return filter, nil
}
