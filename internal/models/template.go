package models

import (
	"time"

	"gorm.io/datatypes"
)

// Template categories shipped with the gallery. Other categories are accepted.
const (
	TemplateCategoryLanding   = "landing"
	TemplateCategoryPortfolio = "portfolio"
	TemplateCategoryEcommerce = "ecommerce"
	TemplateCategoryBlog      = "blog"
	TemplateCategoryDashboard = "dashboard"
	TemplateCategoryTodo      = "todo"
)

// TemplateCategories lists the built-in categories in gallery order.
var TemplateCategories = []string{
	TemplateCategoryLanding,
	TemplateCategoryPortfolio,
	TemplateCategoryEcommerce,
	TemplateCategoryBlog,
	TemplateCategoryDashboard,
	TemplateCategoryTodo,
}

type Template struct {
	ID           string                             `gorm:"type:varchar(36);primarykey" json:"id"`
	Name         string                             `gorm:"type:varchar(255);not null" json:"name"`
	Description  string                             `gorm:"type:text" json:"description"`
	Category     string                             `gorm:"type:varchar(50);not null;index" json:"category"`
	Components   datatypes.JSONType[[]ComponentRef] `json:"components"`
	Config       datatypes.JSONMap                  `json:"config"`
	SourceFile   string                             `gorm:"type:varchar(255)" json:"sourceFile"`
	SourceCode   string                             `gorm:"type:text" json:"-"`
	PreviewImage string                             `gorm:"type:varchar(512)" json:"previewImage"`
	IsPublic     bool                               `gorm:"not null;index" json:"isPublic"`
	CreatedAt    time.Time                          `json:"createdAt"`
}
