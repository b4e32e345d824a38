package gallery

import (
	"sort"
	"strings"
	"time"

	"cardsapi/internal/notion"
)

// Resolver turns raw database records into ordered cards. It holds no state
// beyond the field names and is safe for concurrent use.
type Resolver struct {
	fields Fields
}

func NewResolver(f Fields) *Resolver {
	return &Resolver{fields: f}
}

type resolved struct {
	item      Item
	hidden    bool
	published time.Time
}

// Resolve assembles, filters and sorts records. An empty platform or "All"
// disables platform filtering.
func (r *Resolver) Resolve(records []notion.Record, platform string) Batch {
	platform = strings.TrimSpace(platform)
	filterPlatform := platform != "" && platform != AllPlatforms

	var b Batch
	kept := make([]resolved, 0, len(records))
	for _, rec := range records {
		res := r.assemble(rec)
		switch {
		case res.hidden:
			b.Hidden++
			continue
		case len(res.item.Media) == 0:
			b.NoMedia++
			continue
		case filterPlatform && !contains(res.item.Platforms, platform):
			b.OtherPlatform++
			continue
		}
		kept = append(kept, res)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].item.Pinned != kept[j].item.Pinned {
			return kept[i].item.Pinned
		}
		return kept[i].published.After(kept[j].published)
	})

	b.Items = make([]Item, 0, len(kept))
	for _, k := range kept {
		b.Items = append(b.Items, k.item)
	}
	return b
}

func (r *Resolver) assemble(rec notion.Record) resolved {
	f := r.fields

	name := rec.Property(f.Name).Text()
	if name == "" {
		name = untitled
	}
	publishDate := rec.Property(f.PublishDate).DateStart()
	imageSource := rec.Property(f.ImageSource).SelectName()

	platforms := platformNames(rec.Property(f.Platform))
	platform := unspecified
	if len(platforms) > 0 {
		platform = strings.Join(platforms, platformJoinSep)
	}

	candidates := mediaCandidates{
		attachments: rec.Property(f.Attachment).FileURLs(),
		links:       splitLines(rec.Property(f.Link).URLish()),
	}
	if canva := splitLines(rec.Property(f.CanvaLink).URLish()); len(canva) > 0 {
		candidates.canva = canva[0]
	}
	media := resolveMedia(candidates.ordered(imageSource))

	item := Item{
		ID:          rec.ID,
		Name:        name,
		PublishDate: publishDate,
		Platform:    platform,
		Platforms:   platforms,
		Pinned:      rec.Property(f.Pinned).Checked(),
		ImageSource: imageSource,
		Media:       media,
	}
	if len(media) > 0 {
		item.Cover = media[0].URL
	}
	return resolved{
		item:      item,
		hidden:    rec.Property(f.Hide).Checked(),
		published: parseDate(publishDate),
	}
}

// platformNames reads Platform as either a single or a multi select.
func platformNames(p *notion.Property) []string {
	if name := p.SelectName(); name != "" {
		return []string{name}
	}
	if names := p.MultiSelectNames(); len(names) > 0 {
		return names
	}
	return nil
}

// dateLayouts are tried in order. Fractional seconds after the seconds field
// are accepted by each layout that has one.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseDate accepts RFC 3339 timestamps, offset-less ISO datetimes and plain
// dates. Anything else is the zero time, which sorts after every real date.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func contains(arr []string, v string) bool {
	for _, s := range arr {
		if s == v {
			return true
		}
	}
	return false
}
