package models

// NoteModel is a user-owned note. Category and tags are weak references:
// deleting a category or tag never touches the notes pointing at it.
type NoteModel struct {
	Base
	OwnerID    string             `json:"-"        gorm:"index;not null"`
	Title      string             `json:"title"`
	Content    string             `json:"content"  gorm:"type:longtext"`
	CategoryID *string            `json:"-"        gorm:"index"`
	Category   *CategoryModel     `json:"category" gorm:"foreignKey:CategoryID"`
	TagIDs     []string           `json:"-"        gorm:"serializer:json;column:tag_ids"`
	Tags       []TagModel         `json:"tags"     gorm:"-"`
	IsDraft    bool               `json:"isDraft"  gorm:"index;default:false"`
	History    []NoteHistoryModel `json:"history,omitempty" gorm:"foreignKey:NoteID"`
}

func (NoteModel) TableName() string { return "notes" }

// NoteHistoryModel is one content snapshot of a note. Rows are append-only;
// the restore operation appends a new row instead of rewriting old ones.
// The row's uuid is the version id exposed over the API (the legacy store
// used the history subdocument _id).
type NoteHistoryModel struct {
	Base
	NoteID  string `json:"-"       gorm:"index;not null"`
	Version int    `json:"version" gorm:"not null"` // per-note sequence, assigned in the mutation transaction
	Content string `json:"content" gorm:"type:longtext"`
}

func (NoteHistoryModel) TableName() string { return "note_histories" }
