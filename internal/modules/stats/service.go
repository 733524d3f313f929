package stats

import (
	"time"

	"github.com/inknote/core/internal/models"
	"github.com/inknote/core/internal/modules/note"
	"gorm.io/gorm"
)

// NameCount is one per-category or per-tag usage counter.
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DayCount is the number of notes touched on one calendar day.
type DayCount struct {
	Date  string `json:"date" gorm:"column:date"`
	Count int64  `json:"count" gorm:"column:count"`
}

// Overview aggregates every per-user counter the dashboard shows.
type Overview struct {
	TotalNotes      int64              `json:"totalNotes"`
	TotalCategories int64              `json:"totalCategories"`
	TotalTags       int64              `json:"totalTags"`
	RecentNotes     []models.NoteModel `json:"recentNotes"`
	CategoryStats   []NameCount        `json:"categoryStats"`
	TagStats        []NameCount        `json:"tagStats"`
	ActivityStats   []DayCount         `json:"activityStats"`
}

// NoteOverview is the notes-only slice of the dashboard.
type NoteOverview struct {
	TotalNotes  int64              `json:"totalNotes"`
	RecentNotes []models.NoteModel `json:"recentNotes"`
}

type Service struct {
	db    *gorm.DB
	notes *note.Service
}

func NewService(db *gorm.DB, notes *note.Service) *Service {
	return &Service{db: db, notes: notes}
}

func (s *Service) Overview(ownerID string) (*Overview, error) {
	var o Overview
	var err error

	if err = s.db.Model(&models.NoteModel{}).
		Where("owner_id = ?", ownerID).Count(&o.TotalNotes).Error; err != nil {
		return nil, err
	}
	if err = s.db.Model(&models.CategoryModel{}).
		Where("owner_id = ?", ownerID).Count(&o.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err = s.db.Model(&models.TagModel{}).
		Where("owner_id = ?", ownerID).Count(&o.TotalTags).Error; err != nil {
		return nil, err
	}

	if o.RecentNotes, err = s.notes.ListRecent(ownerID, 0); err != nil {
		return nil, err
	}
	if o.CategoryStats, err = s.CategoryStats(ownerID); err != nil {
		return nil, err
	}
	if o.TagStats, err = s.TagStats(ownerID); err != nil {
		return nil, err
	}
	if o.ActivityStats, err = s.ActivityStats(ownerID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Service) NoteStats(ownerID string) (*NoteOverview, error) {
	var o NoteOverview
	if err := s.db.Model(&models.NoteModel{}).
		Where("owner_id = ?", ownerID).Count(&o.TotalNotes).Error; err != nil {
		return nil, err
	}
	recent, err := s.notes.ListRecent(ownerID, 0)
	if err != nil {
		return nil, err
	}
	o.RecentNotes = recent
	return &o, nil
}

func (s *Service) CategoryStats(ownerID string) ([]NameCount, error) {
	var categories []models.CategoryModel
	if err := s.db.Where("owner_id = ?", ownerID).Find(&categories).Error; err != nil {
		return nil, err
	}

	out := make([]NameCount, 0, len(categories))
	for _, category := range categories {
		var count int64
		err := s.db.Model(&models.NoteModel{}).
			Where("owner_id = ? AND category_id = ?", ownerID, category.ID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		out = append(out, NameCount{Name: category.Name, Count: count})
	}
	return out, nil
}

// TagStats counts notes per tag by matching the quoted id inside the JSON
// tag_ids column. Ids are uuids, so the substring match cannot false-positive.
func (s *Service) TagStats(ownerID string) ([]NameCount, error) {
	var tags []models.TagModel
	if err := s.db.Where("owner_id = ?", ownerID).Find(&tags).Error; err != nil {
		return nil, err
	}

	out := make([]NameCount, 0, len(tags))
	for _, tag := range tags {
		var count int64
		err := s.db.Model(&models.NoteModel{}).
			Where("owner_id = ? AND tag_ids LIKE ?", ownerID, `%"`+tag.ID+`"%`).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		out = append(out, NameCount{Name: tag.Name, Count: count})
	}
	return out, nil
}

// ActivityStats buckets the owner's notes updated in the last seven days by
// calendar day. DATE() exists in both MySQL and SQLite.
func (s *Service) ActivityStats(ownerID string) ([]DayCount, error) {
	oneWeekAgo := time.Now().AddDate(0, 0, -7)

	var out []DayCount
	err := s.db.Model(&models.NoteModel{}).
		Select("DATE(updated_at) AS date, COUNT(*) AS count").
		Where("owner_id = ? AND updated_at >= ?", ownerID, oneWeekAgo).
		Group("DATE(updated_at)").
		Order("date ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []DayCount{}
	}
	return out, nil
}
