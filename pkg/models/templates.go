package models

import "sort"

// Template is a named snippet that can be appended to the editor buffer.
type Template struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Body  string `json:"body"`
}

// DefaultTemplates are always available; configuration may add more or
// override a body by name.
var DefaultTemplates = []Template{
	{
		Name:  "api",
		Label: "API Doc",
		Body:  "# Endpoint\n\n**GET** `/api/v1/resource`\n",
	},
	{
		Name:  "note",
		Label: "Quick Note",
		Body:  "> [!NOTE]\n> \n",
	},
	{
		Name:  "checklist",
		Label: "Checklist",
		Body:  "- [ ] Task 1\n- [ ] Task 2\n",
	},
}

// MergeTemplates returns the default templates with overrides applied.
// Unknown names are appended in name order so the result is stable.
func MergeTemplates(overrides map[string]string) []Template {
	merged := make([]Template, len(DefaultTemplates))
	copy(merged, DefaultTemplates)

	index := make(map[string]int, len(merged))
	for i, t := range merged {
		index[t.Name] = i
	}

	var extra []string
	for name := range overrides {
		if i, ok := index[name]; ok {
			merged[i].Body = overrides[name]
			continue
		}
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		merged = append(merged, Template{Name: name, Label: name, Body: overrides[name]})
	}
	return merged
}

// FindTemplate returns the template with the given name.
func FindTemplate(templates []Template, name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}
