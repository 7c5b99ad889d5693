// Package model defines the core domain types for the capflow application.
package model

// CapInfo holds the monthly ceiling and expense-type classification for a
// single spending category.
type CapInfo struct {
	Cap  float64 `json:"cap"`
	Type string  `json:"type"`
}

// Caps maps a category name to its cap info. The category name is the
// primary key; renaming a category means removing the old key and
// inserting the new one.
type Caps map[string]CapInfo

// Clone returns a deep copy of the mapping.
func (c Caps) Clone() Caps {
	if c == nil {
		return nil
	}
	out := make(Caps, len(c))
	for name, info := range c {
		out[name] = info
	}
	return out
}

// Categories returns the category names in the mapping, unordered.
func (c Caps) Categories() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	return names
}
