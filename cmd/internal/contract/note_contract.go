package contract

type NoteResponse struct {
	ID         int     `json:"id"`
	UserID     int64   `json:"user_id"`
	Title      *string `json:"title"`
	Content    string  `json:"content"`
	CategoryID *int    `json:"category_id"`
	IsPinned   bool    `json:"is_pinned"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=255"`
	Content    string  `json:"content" validate:"required"`
	CategoryID *int    `json:"category_id" validate:"omitempty,min=1"`
	IsPinned   *bool   `json:"is_pinned"`
}

// UpdateNoteRequest applies partial-update semantics: a nil pointer is
// "leave untouched", a set pointer is "write this value".
type UpdateNoteRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=255"`
	Content    *string `json:"content"`
	CategoryID *int    `json:"category_id" validate:"omitempty,min=1"`
	IsPinned   *bool   `json:"is_pinned"`
}

// BulkNoteItem is one candidate note in a bulk create. Explicit
// created_at/updated_at values override store stamping for that item.
type BulkNoteItem struct {
	Title      *string `json:"title" validate:"omitempty,max=255"`
	Content    *string `json:"content"`
	CategoryID *int    `json:"category_id"`
	IsPinned   *bool   `json:"is_pinned"`
	CreatedAt  *string `json:"created_at"`
	UpdatedAt  *string `json:"updated_at"`
}

type BulkCreateNotesRequest struct {
	Notes []BulkNoteItem `json:"notes" validate:"required,min=1,dive"`
}

type BulkUpdateNoteItem struct {
	ID         int     `json:"id" validate:"required,min=1"`
	Title      *string `json:"title" validate:"omitempty,max=255"`
	Content    *string `json:"content"`
	CategoryID *int    `json:"category_id"`
	IsPinned   *bool   `json:"is_pinned"`
	CreatedAt  *string `json:"created_at"`
	UpdatedAt  *string `json:"updated_at"`
}

type BulkUpdateNotesRequest struct {
	Notes []BulkUpdateNoteItem `json:"notes" validate:"required,min=1,dive"`
}

type BulkDeleteNotesRequest struct {
	NoteIDs []int `json:"note_ids" validate:"required,min=1,nodupes,dive,min=1"`
}

// BulkError correlates a failure back to the submitted item by its
// input index (and id, where the item carried one).
type BulkError struct {
	Index int    `json:"index"`
	ID    *int   `json:"id,omitempty"`
	Error string `json:"error"`
}

type BulkCreateResult struct {
	Created      []*NoteResponse `json:"created"`
	CreatedCount int             `json:"created_count"`
	Errors       []*BulkError    `json:"errors"`
	ErrorCount   int             `json:"error_count"`
}

type BulkUpdateResult struct {
	Updated      []*NoteResponse `json:"updated"`
	UpdatedCount int             `json:"updated_count"`
	Errors       []*BulkError    `json:"errors"`
	ErrorCount   int             `json:"error_count"`
}

type BulkDeleteResult struct {
	Deleted      []int        `json:"deleted"`
	DeletedCount int          `json:"deleted_count"`
	Errors       []*BulkError `json:"errors"`
	ErrorCount   int          `json:"error_count"`
}
