package note

import (
	"errors"
	"strings"

	"github.com/inknote/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// untitledPlaceholder replaces a blank title at creation time.
const untitledPlaceholder = "未命名笔记"

const defaultRecentLimit = 5

var (
	// ErrNoteNotFound covers both "does not exist" and "owned by another
	// user"; the two cases are deliberately indistinguishable.
	ErrNoteNotFound = errors.New("笔记未找到")

	// ErrVersionNotFound is returned when the note exists but the requested
	// history entry does not belong to it.
	ErrVersionNotFound = errors.New("版本未找到")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// scoped returns the owner-filtered base query. Every read and write goes
// through an owner filter; cross-user rows behave exactly like absent rows.
func (s *Service) scoped(tx *gorm.DB, ownerID string) *gorm.DB {
	return tx.Where("owner_id = ?", ownerID)
}

// lockForUpdate adds a row lock on dialects that support it. SQLite
// serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (s *Service) List(ownerID string) ([]models.NoteModel, error) {
	var notes []models.NoteModel
	err := s.scoped(s.db, ownerID).
		Preload("Category").
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, s.populateTagsAll(notes)
}

func (s *Service) ListRecent(ownerID string, limit int) ([]models.NoteModel, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	var notes []models.NoteModel
	err := s.scoped(s.db, ownerID).
		Preload("Category").
		Order("updated_at DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, s.populateTagsAll(notes)
}

// Search matches a case-insensitive substring against title or content. An
// empty query matches every note, which is what the legacy API's empty $regex
// filter did.
func (s *Service) Search(ownerID, query string) ([]models.NoteModel, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var notes []models.NoteModel
	err := s.scoped(s.db, ownerID).
		Where(s.db.
			Where("LOWER(title) LIKE ? ESCAPE '\\'", pattern).
			Or("LOWER(content) LIKE ? ESCAPE '\\'", pattern)).
		Preload("Category").
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, s.populateTagsAll(notes)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *Service) GetByID(ownerID, id string) (*models.NoteModel, error) {
	var note models.NoteModel
	err := s.scoped(s.db, ownerID).
		Preload("Category").
		Preload("History", func(tx *gorm.DB) *gorm.DB { return tx.Order("version ASC") }).
		First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, s.populateTags([]*models.NoteModel{&note})
}

// Create publishes a new note. A blank title falls back to the placeholder,
// history starts empty, and any existing draft of the owner is removed in the
// same transaction (publishing always leaves the owner draft-free).
func (s *Service) Create(ownerID string, dto *NoteInputDTO) (*models.NoteModel, error) {
	title := strings.TrimSpace(dto.Title)
	if title == "" {
		title = untitledPlaceholder
	}

	note := models.NoteModel{
		OwnerID:    ownerID,
		Title:      title,
		Content:    dto.Content,
		CategoryID: categoryRef(dto.Category),
		TagIDs:     tagRefs(dto.Tags),
		IsDraft:    false,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return s.scoped(tx, ownerID).
			Where("is_draft = ? AND id <> ?", true, note.ID).
			Delete(&models.NoteModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ownerID, note.ID)
}

// Update publishes new content onto an existing note. Inside one transaction
// it snapshots the pre-update content into history, applies the new fields
// with IsDraft=false, and finally removes the owner's draft. The ordering is
// deliberate: a partial failure can lose the draft cleanup but never the
// history entry.
func (s *Service) Update(ownerID, id string, dto *NoteInputDTO) (*models.NoteModel, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var note models.NoteModel
		err := s.scoped(lockForUpdate(tx), ownerID).First(&note, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoteNotFound
			}
			return err
		}

		if err := appendHistory(tx, note.ID, note.Content); err != nil {
			return err
		}

		note.Title = dto.Title
		note.Content = dto.Content
		note.CategoryID = categoryRef(dto.Category)
		note.TagIDs = tagRefs(dto.Tags)
		note.IsDraft = false
		if err := tx.Model(&note).
			Select("Title", "Content", "CategoryID", "TagIDs", "IsDraft").
			Updates(&note).Error; err != nil {
			return err
		}

		return s.scoped(tx, ownerID).
			Where("is_draft = ? AND id <> ?", true, note.ID).
			Delete(&models.NoteModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ownerID, id)
}

// SaveDraft upserts the owner's single draft: overwrite in place when one
// exists (no history append), create it otherwise. Concurrent autosaves
// resolve to last-write-wins; the row lock keeps a second draft from ever
// being created.
func (s *Service) SaveDraft(ownerID string, dto *NoteInputDTO) (*models.NoteModel, error) {
	var draftID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var draft models.NoteModel
		err := s.scoped(lockForUpdate(tx), ownerID).
			Where("is_draft = ?", true).
			Order("updated_at DESC").
			First(&draft).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			draft = models.NoteModel{
				OwnerID:    ownerID,
				Title:      dto.Title,
				Content:    dto.Content,
				CategoryID: categoryRef(dto.Category),
				TagIDs:     tagRefs(dto.Tags),
				IsDraft:    true,
			}
			if err := tx.Create(&draft).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			draft.Title = dto.Title
			draft.Content = dto.Content
			draft.CategoryID = categoryRef(dto.Category)
			draft.TagIDs = tagRefs(dto.Tags)
			if err := tx.Model(&draft).
				Select("Title", "Content", "CategoryID", "TagIDs").
				Updates(&draft).Error; err != nil {
				return err
			}
		}
		draftID = draft.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ownerID, draftID)
}

// GetDraft returns the owner's draft, or (nil, nil) when none exists; the
// handler turns the latter into the empty template. This read never mutates
// the draft.
func (s *Service) GetDraft(ownerID string) (*models.NoteModel, error) {
	var draft models.NoteModel
	err := s.scoped(s.db, ownerID).
		Where("is_draft = ?", true).
		Order("updated_at DESC").
		Preload("Category").
		First(&draft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &draft, s.populateTags([]*models.NoteModel{&draft})
}

func (s *Service) Delete(ownerID, id string) error {
	res := s.scoped(s.db, ownerID).Delete(&models.NoteModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// GetHistory returns the note's snapshots in chronological order.
func (s *Service) GetHistory(ownerID, id string) ([]models.NoteHistoryModel, error) {
	var count int64
	if err := s.scoped(s.db.Model(&models.NoteModel{}), ownerID).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoteNotFound
	}

	var history []models.NoteHistoryModel
	err := s.db.Where("note_id = ?", id).Order("version ASC").Find(&history).Error
	return history, err
}

// RestoreVersion sets the note content back to a historical snapshot and
// appends a new history entry recording the restoration, so restoring never
// discards information and is itself auditable.
func (s *Service) RestoreVersion(ownerID, id, versionID string) (*models.NoteModel, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var note models.NoteModel
		err := s.scoped(lockForUpdate(tx), ownerID).First(&note, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoteNotFound
			}
			return err
		}

		var snapshot models.NoteHistoryModel
		err = tx.Where("id = ? AND note_id = ?", versionID, note.ID).First(&snapshot).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVersionNotFound
			}
			return err
		}

		if err := appendHistory(tx, note.ID, snapshot.Content); err != nil {
			return err
		}

		note.Content = snapshot.Content
		return tx.Model(&note).Select("Content").Updates(&note).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ownerID, id)
}

// CountNotes backs the updatedStats payload of the delete response.
func (s *Service) CountNotes(ownerID string) (int64, error) {
	var count int64
	err := s.scoped(s.db.Model(&models.NoteModel{}), ownerID).Count(&count).Error
	return count, err
}

// appendHistory adds the next snapshot row for a note. Versions are a dense
// per-note sequence assigned inside the caller's transaction, so history
// order is deterministic even when entries share a timestamp.
func appendHistory(tx *gorm.DB, noteID, content string) error {
	var count int64
	if err := tx.Model(&models.NoteHistoryModel{}).
		Where("note_id = ?", noteID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Create(&models.NoteHistoryModel{
		NoteID:  noteID,
		Version: int(count) + 1,
		Content: content,
	}).Error
}

// populateTags resolves the opaque tag id lists into tag rows, dropping
// dangling references the way mongoose populate did.
func (s *Service) populateTags(notes []*models.NoteModel) error {
	idSet := map[string]struct{}{}
	for i := range notes {
		for _, id := range notes[i].TagIDs {
			idSet[id] = struct{}{}
		}
	}

	byID := map[string]models.TagModel{}
	if len(idSet) > 0 {
		ids := make([]string, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		var tags []models.TagModel
		if err := s.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
			return err
		}
		for _, t := range tags {
			byID[t.ID] = t
		}
	}

	for i := range notes {
		resolved := make([]models.TagModel, 0, len(notes[i].TagIDs))
		for _, id := range notes[i].TagIDs {
			if t, ok := byID[id]; ok {
				resolved = append(resolved, t)
			}
		}
		notes[i].Tags = resolved
	}
	return nil
}

func (s *Service) populateTagsAll(notes []models.NoteModel) error {
	ptrs := make([]*models.NoteModel, len(notes))
	for i := range notes {
		ptrs[i] = &notes[i]
	}
	return s.populateTags(ptrs)
}

func categoryRef(category string) *string {
	if strings.TrimSpace(category) == "" {
		return nil
	}
	return &category
}

func tagRefs(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
