package models

// CategoryModel groups notes for one owner. Name collisions per owner are
// allowed, matching the legacy schema.
type CategoryModel struct {
	Base
	OwnerID string `json:"-"    gorm:"index;not null"`
	Name    string `json:"name" gorm:"not null"`
}

func (CategoryModel) TableName() string { return "categories" }

// TagModel labels notes for one owner.
type TagModel struct {
	Base
	OwnerID string `json:"-"    gorm:"index;not null"`
	Name    string `json:"name" gorm:"not null"`
}

func (TagModel) TableName() string { return "tags" }
