// internal/models/category.go
package models

import "github.com/google/uuid"

// Category is a node in the catalog hierarchy. The parent link is an id
// reference only; the tree is assembled on demand by the category service.
type Category struct {
	BaseModel
	Name            string     `json:"name" gorm:"size:255;not null"`
	Description     string     `json:"description" gorm:"type:text"`
	Slug            string     `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Image           string     `json:"image,omitempty" gorm:"size:512"`
	ParentID        *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	DisplayOrder    int        `json:"display_order" gorm:"default:0"`
	IsActive        bool       `json:"is_active" gorm:"default:true"`
	MetaTitle       string     `json:"meta_title,omitempty" gorm:"size:255"`
	MetaDescription string     `json:"meta_description,omitempty" gorm:"size:512"`
	MetaKeywords    string     `json:"meta_keywords,omitempty" gorm:"size:255"`
}

// CategoryNode is the lightweight view node returned by tree assembly.
type CategoryNode struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Slug         string          `json:"slug"`
	Image        string          `json:"image,omitempty"`
	ParentID     *uuid.UUID      `json:"parent_id,omitempty"`
	DisplayOrder int             `json:"display_order"`
	IsActive     bool            `json:"is_active"`
	Children     []*CategoryNode `json:"children"`
}
