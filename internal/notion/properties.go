package notion

import (
	"github.com/jomei/notionapi"
)

// Title returns the plain text of the first fragment of a title property,
// or "" if the property is missing or empty.
func Title(page notionapi.Page, name string) string {
	prop, ok := page.Properties[name].(*notionapi.TitleProperty)
	if !ok || len(prop.Title) == 0 {
		return ""
	}
	return prop.Title[0].PlainText
}

// SelectName returns the selected option name of a select property.
func SelectName(page notionapi.Page, name string) string {
	prop, ok := page.Properties[name].(*notionapi.SelectProperty)
	if !ok {
		return ""
	}
	return prop.Select.Name
}

// FirstRelation returns the id of the first page in a relation property.
func FirstRelation(page notionapi.Page, name string) string {
	prop, ok := page.Properties[name].(*notionapi.RelationProperty)
	if !ok || len(prop.Relation) == 0 {
		return ""
	}
	return string(prop.Relation[0].ID)
}

// Checkbox reports whether a checkbox property is ticked. Missing properties
// read as unticked.
func Checkbox(page notionapi.Page, name string) bool {
	prop, ok := page.Properties[name].(*notionapi.CheckboxProperty)
	if !ok {
		return false
	}
	return prop.Checkbox
}
