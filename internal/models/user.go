package models

// UserModel is the ownership anchor for notes, categories and tags.
type UserModel struct {
	Base
	Name        string            `json:"name"`
	Username    string            `json:"username" gorm:"uniqueIndex;not null"`
	Email       string            `json:"email"    gorm:"uniqueIndex;not null"`
	Password    string            `json:"-"        gorm:"not null"` // bcrypt, never exposed
	Avatar      string            `json:"avatar"`
	Bio         string            `json:"bio"`
	Location    string            `json:"location"`
	Website     string            `json:"website"`
	SocialLinks map[string]string `json:"socialLinks,omitempty" gorm:"serializer:json"`
}

func (UserModel) TableName() string { return "users" }
