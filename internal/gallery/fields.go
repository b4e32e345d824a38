package gallery

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fields names the Notion properties each card field is read from. Editors
// can rename columns, so the names are configurable.
type Fields struct {
	Name        string `yaml:"name"`
	PublishDate string `yaml:"publish_date"`
	ImageSource string `yaml:"image_source"`
	Attachment  string `yaml:"attachment"`
	Link        string `yaml:"link"`
	CanvaLink   string `yaml:"canva_link"`
	Pinned      string `yaml:"pinned"`
	Hide        string `yaml:"hide"`
	Platform    string `yaml:"platform"`
}

func DefaultFields() Fields {
	return Fields{
		Name:        "Name",
		PublishDate: "Publish Date",
		ImageSource: "Image Source",
		Attachment:  "Attachment",
		Link:        "Link",
		CanvaLink:   "Canva Link",
		Pinned:      "Pinned",
		Hide:        "Hide",
		Platform:    "Platform",
	}
}

// LoadFields reads a YAML field map from path. Keys left out keep their
// default property names. An empty path returns the defaults.
func LoadFields(path string) (Fields, error) {
	fields := DefaultFields()
	if path == "" {
		return fields, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Fields{}, fmt.Errorf("failed to read schema file: %w", err)
	}
	var override Fields
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Fields{}, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	fields.merge(override)
	return fields, nil
}

func (f *Fields) merge(o Fields) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&f.Name, o.Name)
	set(&f.PublishDate, o.PublishDate)
	set(&f.ImageSource, o.ImageSource)
	set(&f.Attachment, o.Attachment)
	set(&f.Link, o.Link)
	set(&f.CanvaLink, o.CanvaLink)
	set(&f.Pinned, o.Pinned)
	set(&f.Hide, o.Hide)
	set(&f.Platform, o.Platform)
}

// Hint describes the expected database layout, for error responses.
func (f Fields) Hint() string {
	return fmt.Sprintf("Open your DB and confirm the property names exactly: "+
		"%s (Title), %s (Date), %s (Select), %s (Files & media), %s (URL or Text), "+
		"%s (URL), %s (Checkbox), %s (Checkbox), %s (Select). Also confirm integration access.",
		f.Name, f.PublishDate, f.ImageSource, f.Attachment, f.Link,
		f.CanvaLink, f.Pinned, f.Hide, f.Platform)
}
