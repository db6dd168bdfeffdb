package repository

import (
	"errors"
	"strings"

	"notehub/cmd/internal/domain/entity"
	"notehub/cmd/internal/utils"

	"gorm.io/gorm"
)

// NoteFilter narrows a listing. Nil/empty fields are ignored; set fields
// are combined with AND.
type NoteFilter struct {
	CategoryID *int
	IsPinned   *bool
	Search     string
}

// WriteOptions controls timestamp stamping for a single write. Insert
// stamps both created_at and updated_at with the current time unless the
// matching override is set. UpdateFields stamps updated_at unless either
// override is set: a caller supplying explicit timestamps takes over
// stamping entirely for that write.
type WriteOptions struct {
	OverrideCreatedAt bool
	OverrideUpdatedAt bool
}

func (o WriteOptions) overridesAny() bool {
	return o.OverrideCreatedAt || o.OverrideUpdatedAt
}

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// FindAllByOwner returns the owner's notes, pinned first, newest first
// within each group.
func (d *DefaultNoteRepository) FindAllByOwner(ownerID int64, filter *NoteFilter) ([]*entity.Note, error) {
	q := d.db.Where("user_id = ?", ownerID)
	if filter != nil {
		if filter.CategoryID != nil {
			q = q.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.IsPinned != nil {
			q = q.Where("is_pinned = ?", *filter.IsPinned)
		}
		if filter.Search != "" {
			pattern := "%" + strings.ToLower(filter.Search) + "%"
			q = q.Where(
				d.db.Where("LOWER(title) LIKE ?", pattern).
					Or("LOWER(content) LIKE ?", pattern),
			)
		}
	}

	var notes []*entity.Note
	err := q.Order("is_pinned DESC").Order("created_at DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindByIDAndOwner resolves a note only if it belongs to ownerID. A note
// owned by someone else yields (nil, nil), same as an absent one, so
// callers cannot tell other users' notes exist.
func (d *DefaultNoteRepository) FindByIDAndOwner(ownerID int64, id int) (*entity.Note, error) {
	var note entity.Note
	err := d.db.Where("id = ? AND user_id = ?", id, ownerID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) Insert(note *entity.Note, opts WriteOptions) error {
	now := utils.NowUTC()
	if !opts.OverrideCreatedAt {
		note.CreatedAt = now
	}
	if !opts.OverrideUpdatedAt {
		note.UpdatedAt = now
	}
	return d.db.Create(note).Error
}

// UpdateFields applies only the given columns and refreshes the entity.
func (d *DefaultNoteRepository) UpdateFields(note *entity.Note, fields map[string]any, opts WriteOptions) error {
	if !opts.overridesAny() {
		fields["updated_at"] = utils.NowUTC()
	}

	if err := d.db.Model(note).Updates(fields).Error; err != nil {
		return err
	}
	return d.db.First(note, note.ID).Error
}

func (d *DefaultNoteRepository) Delete(note *entity.Note) error {
	return d.db.Delete(note).Error
}
