package models

import (
	"maps"
	"slices"

	"gorm.io/datatypes"
)

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	out := u
	if u.Email != nil {
		email := *u.Email
		out.Email = &email
	}
	out.Projects = nil
	return out
}

// Clone returns a deep copy of the project, including its JSON columns.
func (p Project) Clone() Project {
	out := p
	out.Description = cloneStringPtr(p.Description)
	out.DeploymentURL = cloneStringPtr(p.DeploymentURL)
	out.Components = datatypes.NewJSONType(cloneComponentRefs(p.Components.Data()))
	out.Config = datatypes.NewJSONType(p.Config.Data().Clone())
	out.User = nil
	return out
}

// Clone returns a deep copy of the configuration.
func (c ProjectConfig) Clone() ProjectConfig {
	out := ProjectConfig{
		Files: maps.Clone(c.Files),
		Extra: cloneMap(c.Extra),
	}
	if c.Structure != nil {
		out.Structure = &ProjectStructure{
			Frontend: slices.Clone(c.Structure.Frontend),
			Backend:  slices.Clone(c.Structure.Backend),
			Database: slices.Clone(c.Structure.Database),
		}
	}
	if c.Dependencies != nil {
		out.Dependencies = &ProjectDependencies{
			Frontend: slices.Clone(c.Dependencies.Frontend),
			Backend:  slices.Clone(c.Dependencies.Backend),
		}
	}
	return out
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	out := t
	out.Components = datatypes.NewJSONType(cloneComponentRefs(t.Components.Data()))
	out.Config = datatypes.JSONMap(cloneMap(t.Config))
	return out
}

// Clone returns a deep copy of the component.
func (c Component) Clone() Component {
	out := c

	code := c.Code.Data()
	code.Props = cloneMap(code.Props)
	out.Code = datatypes.NewJSONType(code)

	cfg := c.Config.Data()
	if cfg.Props != nil {
		props := make(map[string]PropSpec, len(cfg.Props))
		for k, v := range cfg.Props {
			v.Default = cloneValue(v.Default)
			props[k] = v
		}
		cfg.Props = props
	}
	cfg.Styling = cloneMap(cfg.Styling)
	out.Config = datatypes.NewJSONType(cfg)
	return out
}

func cloneComponentRefs(refs []ComponentRef) []ComponentRef {
	if refs == nil {
		return nil
	}
	out := make([]ComponentRef, len(refs))
	for i, r := range refs {
		r.Props = cloneMap(r.Props)
		r.Style = cloneMap(r.Style)
		out[i] = r
	}
	return out
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return slices.Clone(val)
	default:
		return val
	}
}
