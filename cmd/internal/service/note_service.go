package service

import (
	"net/http"

	"notehub/cmd/internal/contract"
	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/domain/sqlite/repository"
	"notehub/cmd/internal/utils"
	"notehub/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	FindAllByOwner(ownerID int64, filter *repository.NoteFilter) ([]*entity.Note, error)
	FindByIDAndOwner(ownerID int64, id int) (*entity.Note, error)
	Insert(note *entity.Note, opts repository.WriteOptions) error
	UpdateFields(note *entity.Note, fields map[string]any, opts repository.WriteOptions) error
	Delete(note *entity.Note) error
}

type NoteService struct {
	NoteRepo NoteRepository
	Validate *validator.Validate
}

func NewNoteService(noteRepo NoteRepository, validate *validator.Validate) *NoteService {
	return &NoteService{
		NoteRepo: noteRepo,
		Validate: validate,
	}
}

// GetUserNotes lists the actor's notes, pinned first, newest first.
func (n *NoteService) GetUserNotes(actor *entity.User, filter *repository.NoteFilter) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindAllByOwner(actor.ID, filter)
	if err != nil {
		log.Errorf("failed to fetch notes for user %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

// GetNote resolves the note only if the actor owns it. A note owned by
// another user is reported as not found, same as an absent one.
func (n *NoteService) GetNote(actor *entity.User, noteId int) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return nil, apierr
	}
	return toNoteResponse(note), nil
}

func (n *NoteService) CreateNote(actor *entity.User, req *contract.CreateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note := &entity.Note{
		UserID:     actor.ID,
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}

	if err := n.NoteRepo.Insert(note, repository.WriteOptions{}); err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.NewInternal(err)
	}
	return toNoteResponse(note), nil
}

func (n *NoteService) UpdateNote(actor *entity.User, noteId int, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	// An explicit empty content would leave the note without its one
	// required field; absent content is still fine.
	if req.Content != nil && *req.Content == "" {
		return nil, blankContentError()
	}

	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return nil, apierr
	}

	fields := updateColumns(req)
	if len(fields) == 0 {
		return toNoteResponse(note), nil
	}

	if err := n.NoteRepo.UpdateFields(note, fields, repository.WriteOptions{}); err != nil {
		log.Errorf("failed to update note %d: %v", noteId, err)
		return nil, apierror.NewInternal(err)
	}
	return toNoteResponse(note), nil
}

func (n *NoteService) DeleteNote(actor *entity.User, noteId int) apierror.ErrorResponse {
	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return apierr
	}

	if err := n.NoteRepo.Delete(note); err != nil {
		log.Errorf("failed to delete note %d: %v", noteId, err)
		return apierror.NewInternal(err)
	}
	return nil
}

// TogglePin flips is_pinned and persists; applying it twice brings the
// note back to where it started.
func (n *NoteService) TogglePin(actor *entity.User, noteId int) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchOwned(actor, noteId)
	if apierr != nil {
		return nil, apierr
	}

	fields := map[string]any{"is_pinned": !note.IsPinned}
	if err := n.NoteRepo.UpdateFields(note, fields, repository.WriteOptions{}); err != nil {
		log.Errorf("failed to toggle pin on note %d: %v", noteId, err)
		return nil, apierror.NewInternal(err)
	}
	return toNoteResponse(note), nil
}

const (
	errNotOwned     = "Note not found or does not belong to user"
	errBlankContent = "Each note must have content"
)

// BulkCreate persists each candidate independently: one malformed or
// failing item is reported by input index and never aborts the rest.
// There is no batch transaction and no rollback of earlier successes.
func (n *NoteService) BulkCreate(actor *entity.User, req *contract.BulkCreateNotesRequest) (*contract.BulkCreateResult, apierror.ErrorResponse) {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	result := &contract.BulkCreateResult{
		Created: []*contract.NoteResponse{},
		Errors:  []*contract.BulkError{},
	}

	for i := range req.Notes {
		item := &req.Notes[i]
		utils.Sanitize(item)

		if item.Content == nil || *item.Content == "" {
			result.Errors = append(result.Errors, &contract.BulkError{
				Index: i,
				Error: errBlankContent,
			})
			continue
		}

		note := &entity.Note{
			UserID:     actor.ID,
			Title:      item.Title,
			Content:    *item.Content,
			CategoryID: item.CategoryID,
		}
		if item.IsPinned != nil {
			note.IsPinned = *item.IsPinned
		}

		opts, terr := applyItemTimestamps(note, item.CreatedAt, item.UpdatedAt)
		if terr != nil {
			result.Errors = append(result.Errors, &contract.BulkError{
				Index: i,
				Error: terr.Error(),
			})
			continue
		}

		if err := n.NoteRepo.Insert(note, opts); err != nil {
			log.Errorf("bulk create: failed to save item %d: %v", i, err)
			result.Errors = append(result.Errors, &contract.BulkError{
				Index: i,
				Error: err.Error(),
			})
			continue
		}

		result.Created = append(result.Created, toNoteResponse(note))
	}

	result.CreatedCount = len(result.Created)
	result.ErrorCount = len(result.Errors)
	return result, nil
}

// BulkUpdate applies each partial update independently. An id the actor
// does not own yields an error entry carrying that id; explicit
// created_at/updated_at values are written literally and disable
// auto-stamping for both columns on that write.
func (n *NoteService) BulkUpdate(actor *entity.User, req *contract.BulkUpdateNotesRequest) (*contract.BulkUpdateResult, apierror.ErrorResponse) {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	result := &contract.BulkUpdateResult{
		Updated: []*contract.NoteResponse{},
		Errors:  []*contract.BulkError{},
	}

	for i := range req.Notes {
		item := &req.Notes[i]
		utils.Sanitize(item)
		id := item.ID

		if item.Content != nil && *item.Content == "" {
			result.Errors = append(result.Errors, newBulkError(i, id, errBlankContent))
			continue
		}

		note, err := n.NoteRepo.FindByIDAndOwner(actor.ID, id)
		if err != nil {
			log.Errorf("bulk update: failed to fetch note %d: %v", id, err)
			result.Errors = append(result.Errors, newBulkError(i, id, err.Error()))
			continue
		}

		if note == nil {
			result.Errors = append(result.Errors, newBulkError(i, id, errNotOwned))
			continue
		}

		fields := map[string]any{}
		if item.Title != nil {
			fields["title"] = *item.Title
		}
		if item.Content != nil {
			fields["content"] = *item.Content
		}
		if item.CategoryID != nil {
			fields["category_id"] = *item.CategoryID
		}
		if item.IsPinned != nil {
			fields["is_pinned"] = *item.IsPinned
		}

		opts, terr := collectTimestampColumns(fields, item.CreatedAt, item.UpdatedAt)
		if terr != nil {
			result.Errors = append(result.Errors, newBulkError(i, id, terr.Error()))
			continue
		}

		if len(fields) == 0 {
			result.Updated = append(result.Updated, toNoteResponse(note))
			continue
		}

		if err := n.NoteRepo.UpdateFields(note, fields, opts); err != nil {
			log.Errorf("bulk update: failed to save note %d: %v", id, err)
			result.Errors = append(result.Errors, newBulkError(i, id, err.Error()))
			continue
		}

		result.Updated = append(result.Updated, toNoteResponse(note))
	}

	result.UpdatedCount = len(result.Updated)
	result.ErrorCount = len(result.Errors)
	return result, nil
}

// BulkDelete removes each id independently; misses are reported with
// the index and id of the failed item.
func (n *NoteService) BulkDelete(actor *entity.User, req *contract.BulkDeleteNotesRequest) (*contract.BulkDeleteResult, apierror.ErrorResponse) {
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	result := &contract.BulkDeleteResult{
		Deleted: []int{},
		Errors:  []*contract.BulkError{},
	}

	for i, id := range req.NoteIDs {
		note, err := n.NoteRepo.FindByIDAndOwner(actor.ID, id)
		if err != nil {
			log.Errorf("bulk delete: failed to fetch note %d: %v", id, err)
			result.Errors = append(result.Errors, newBulkError(i, id, err.Error()))
			continue
		}

		if note == nil {
			result.Errors = append(result.Errors, newBulkError(i, id, errNotOwned))
			continue
		}

		if err := n.NoteRepo.Delete(note); err != nil {
			log.Errorf("bulk delete: failed to delete note %d: %v", id, err)
			result.Errors = append(result.Errors, newBulkError(i, id, err.Error()))
			continue
		}

		result.Deleted = append(result.Deleted, id)
	}

	result.DeletedCount = len(result.Deleted)
	result.ErrorCount = len(result.Errors)
	return result, nil
}

func (n *NoteService) fetchOwned(actor *entity.User, noteId int) (*entity.Note, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindByIDAndOwner(actor.ID, noteId)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", noteId, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NoteNotFoundError
	}
	return note, nil
}

// applyItemTimestamps writes explicit create-time values onto the
// candidate and reports which columns the store must not stamp.
func applyItemTimestamps(note *entity.Note, createdAt, updatedAt *string) (repository.WriteOptions, error) {
	var opts repository.WriteOptions

	if createdAt != nil {
		ts, err := utils.ParseEpoch(*createdAt)
		if err != nil {
			return opts, err
		}
		note.CreatedAt = ts
		opts.OverrideCreatedAt = true
	}

	if updatedAt != nil {
		ts, err := utils.ParseEpoch(*updatedAt)
		if err != nil {
			return opts, err
		}
		note.UpdatedAt = ts
		opts.OverrideUpdatedAt = true
	}
	return opts, nil
}

// collectTimestampColumns adds explicit timestamp values to the update
// column set. Presence of either disables auto-stamping for both.
func collectTimestampColumns(fields map[string]any, createdAt, updatedAt *string) (repository.WriteOptions, error) {
	var opts repository.WriteOptions

	if createdAt != nil {
		ts, err := utils.ParseEpoch(*createdAt)
		if err != nil {
			return opts, err
		}
		fields["created_at"] = ts
		opts.OverrideCreatedAt = true
	}

	if updatedAt != nil {
		ts, err := utils.ParseEpoch(*updatedAt)
		if err != nil {
			return opts, err
		}
		fields["updated_at"] = ts
		opts.OverrideUpdatedAt = true
	}
	return opts, nil
}

func blankContentError() *apierror.StructuredError {
	return &apierror.StructuredError{
		Errors: map[string][]string{"content": {"This field is required"}},
		Status: http.StatusBadRequest,
	}
}

func newBulkError(index, id int, msg string) *contract.BulkError {
	return &contract.BulkError{Index: index, ID: &id, Error: msg}
}

func updateColumns(req *contract.UpdateNoteRequest) map[string]any {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}
	if req.IsPinned != nil {
		fields["is_pinned"] = *req.IsPinned
	}
	return fields
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:         note.ID,
		UserID:     note.UserID,
		Title:      note.Title,
		Content:    note.Content,
		CategoryID: note.CategoryID,
		IsPinned:   note.IsPinned,
		CreatedAt:  utils.FormatEpoch(note.CreatedAt),
		UpdatedAt:  utils.FormatEpoch(note.UpdatedAt),
	}
}
