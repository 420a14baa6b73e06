package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ComponentCategoryLayout     = "layout"
	ComponentCategoryUI         = "ui"
	ComponentCategoryForms      = "forms"
	ComponentCategoryNavigation = "navigation"
)

// ComponentCode is the source text of a component plus its prop defaults.
type ComponentCode struct {
	Source string         `json:"source"`
	Props  map[string]any `json:"props,omitempty"`
}

// PropSpec declares one component prop.
type PropSpec struct {
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

type ComponentConfig struct {
	Props   map[string]PropSpec `json:"props,omitempty"`
	Styling map[string]any      `json:"styling,omitempty"`
}

type Component struct {
	ID           string                              `gorm:"type:varchar(36);primarykey" json:"id"`
	Name         string                              `gorm:"type:varchar(255);not null" json:"name"`
	Category     string                              `gorm:"type:varchar(50);not null;index" json:"category"`
	Code         datatypes.JSONType[ComponentCode]   `json:"code"`
	Config       datatypes.JSONType[ComponentConfig] `json:"config"`
	PreviewImage string                              `gorm:"type:varchar(512)" json:"previewImage"`
	IsPublic     bool                                `gorm:"not null;index" json:"isPublic"`
	CreatedAt    time.Time                           `json:"createdAt"`
}
