package notion

import (
	"encoding/json"
	"sort"
	"strings"
)

// Record is one page returned by a database query. Properties stay raw until
// a field is asked for, so a single badly shaped column never spoils the page.
type Record struct {
	ID             string                     `json:"id"`
	CreatedTime    string                     `json:"created_time"`
	LastEditedTime string                     `json:"last_edited_time"`
	URL            string                     `json:"url"`
	Properties     map[string]json.RawMessage `json:"properties"`
}

// Property returns the decoded property called name, or nil when the field is
// absent or cannot be decoded.
func (r Record) Property(name string) *Property {
	raw, ok := r.Properties[name]
	if !ok || len(raw) == 0 {
		return nil
	}
	var p Property
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}

// PropertyNames lists the field names present on the record, sorted.
func (r Record) PropertyNames() []string {
	names := make([]string, 0, len(r.Properties))
	for k := range r.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Property is one tagged column value. Only the member matching Type is set.
type Property struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Files       []File         `json:"files,omitempty"`
}

// RichText is a single run of a title or rich_text value.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is a select or multi_select label.
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue is the body of a date property.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// File is one entry of a files property, hosted by Notion or external.
type File struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	File     *FileLink `json:"file,omitempty"`
	External *FileLink `json:"external,omitempty"`
}

// FileLink holds an attachment URL.
type FileLink struct {
	URL string `json:"url"`
}

// is reports whether p carries the given tag. Untagged payloads are accepted
// and read through whichever value member is set.
func (p *Property) is(tag string) bool {
	return p != nil && (p.Type == tag || p.Type == "")
}

// Text joins the plain text runs of a title or rich_text property.
func (p *Property) Text() string {
	var runs []RichText
	switch {
	case p.is("title") && len(p.Title) > 0:
		runs = p.Title
	case p.is("rich_text"):
		runs = p.RichText
	}
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}
	return strings.TrimSpace(b.String())
}

func (p *Property) Checked() bool {
	return p.is("checkbox") && p.Checkbox != nil && *p.Checkbox
}

func (p *Property) SelectName() string {
	if !p.is("select") || p.Select == nil {
		return ""
	}
	return strings.TrimSpace(p.Select.Name)
}

func (p *Property) MultiSelectNames() []string {
	if !p.is("multi_select") {
		return nil
	}
	out := make([]string, 0, len(p.MultiSelect))
	for _, o := range p.MultiSelect {
		if name := strings.TrimSpace(o.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func (p *Property) DateStart() string {
	if !p.is("date") || p.Date == nil {
		return ""
	}
	return strings.TrimSpace(p.Date.Start)
}

// URLish returns a url property's value, falling back to the property's text
// for columns that hold one or more typed URLs.
func (p *Property) URLish() string {
	if p.is("url") && p.URL != nil {
		if u := strings.TrimSpace(*p.URL); u != "" {
			return u
		}
	}
	return p.Text()
}

// FileURLs returns the external or hosted URL of each attachment in order.
func (p *Property) FileURLs() []string {
	if !p.is("files") {
		return nil
	}
	out := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		var u string
		if f.External != nil {
			u = strings.TrimSpace(f.External.URL)
		}
		if u == "" && f.File != nil {
			u = strings.TrimSpace(f.File.URL)
		}
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
