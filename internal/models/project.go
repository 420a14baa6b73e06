package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectStatusDraft    ProjectStatus = "draft"
	ProjectStatusLive     ProjectStatus = "live"
	ProjectStatusBuilding ProjectStatus = "building"
)

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusLive, ProjectStatusBuilding:
		return true
	}
	return false
}

type Project struct {
	ID            string                             `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        string                             `gorm:"type:varchar(36);not null;index" json:"userId"`
	Name          string                             `gorm:"type:varchar(255);not null" json:"name"`
	Description   *string                            `gorm:"type:text" json:"description"`
	Components    datatypes.JSONType[[]ComponentRef] `json:"components"`
	Config        datatypes.JSONType[ProjectConfig]  `json:"config"`
	IsPublic      bool                               `gorm:"not null" json:"isPublic"`
	Status        ProjectStatus                      `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	DeploymentURL *string                            `gorm:"type:varchar(512)" json:"deploymentUrl"`
	CreatedAt     time.Time                          `json:"createdAt"`
	UpdatedAt     time.Time                          `json:"updatedAt"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ComponentRef is an ordered snapshot of a component placed in a project or template.
type ComponentRef struct {
	ID          string         `json:"id"`
	ComponentID string         `json:"componentId,omitempty"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Props       map[string]any `json:"props,omitempty"`
	Style       map[string]any `json:"style,omitempty"`
}

type ProjectStructure struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
	Database []string `json:"database"`
}

type ProjectDependencies struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
}

// ProjectConfig holds the known parts of a project's configuration.
// Top-level keys it does not know about are kept in Extra and written back
// out flat, so builder state survives a round trip.
type ProjectConfig struct {
	Files        map[string]string    `json:"files,omitempty"`
	Structure    *ProjectStructure    `json:"structure,omitempty"`
	Dependencies *ProjectDependencies `json:"dependencies,omitempty"`
	Extra        map[string]any       `json:"-"`
}

func (c ProjectConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+3)
	for k, v := range c.Extra {
		out[k] = v
	}
	if c.Files != nil {
		out["files"] = c.Files
	}
	if c.Structure != nil {
		out["structure"] = c.Structure
	}
	if c.Dependencies != nil {
		out["dependencies"] = c.Dependencies
	}
	return json.Marshal(out)
}

func (c *ProjectConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = ProjectConfig{}
	if v, ok := raw["files"]; ok {
		if err := json.Unmarshal(v, &c.Files); err != nil {
			return err
		}
		delete(raw, "files")
	}
	if v, ok := raw["structure"]; ok {
		if err := json.Unmarshal(v, &c.Structure); err != nil {
			return err
		}
		delete(raw, "structure")
	}
	if v, ok := raw["dependencies"]; ok {
		if err := json.Unmarshal(v, &c.Dependencies); err != nil {
			return err
		}
		delete(raw, "dependencies")
	}

	if len(raw) > 0 {
		c.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			var value any
			if err := json.Unmarshal(v, &value); err != nil {
				return err
			}
			c.Extra[k] = value
		}
	}
	return nil
}
