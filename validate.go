package apiclient

import "strings"

// Validate checks the instance against its declared rules: required
// attributes must hold a non-empty value, required relations must hold
// a model, and every declared validator runs against the non-nil scalar
// it guards. Required relations validate their contents recursively,
// depth-first; optional relations are not descended into. The walk
// fails fast on the first violation; nested failures propagate
// unchanged, so the error always names the owning model type and
// attribute.
func (m *Model) Validate() error {
	for _, a := range m.typ.attrs {
		v := m.values[a.Name]
		if a.Required() && blank(v) {
			return NewRequiredError(m.typ.Name, a.Name)
		}
		if v == nil {
			continue
		}
		if err := a.Validate(v); err != nil {
			return NewValidationError(m.typ.Name, a.Name, err)
		}
	}
	for _, r := range m.typ.rels {
		switch v := m.values[r.Name].(type) {
		case *Model:
			if !r.Required {
				continue
			}
			if err := v.Validate(); err != nil {
				return err
			}
		case *List:
			if !r.Required {
				continue
			}
			if v.Len() == 0 {
				return NewRequiredError(m.typ.Name, r.Name)
			}
			for _, child := range v.Models() {
				if err := child.Validate(); err != nil {
					return err
				}
			}
		case nil:
			if r.Required {
				return NewRequiredError(m.typ.Name, r.Name)
			}
		}
	}
	return nil
}

// blank reports if v counts as missing for a required rule: nil, or a
// string that trims to empty.
func blank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
