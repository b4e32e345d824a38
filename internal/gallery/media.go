package gallery

import (
	"net/url"
	"path"
	"strings"
)

type mediaSlot int

const (
	slotAttachment mediaSlot = iota
	slotLink
	slotCanva
)

// mediaPriority is the order media fields are consulted in, keyed by the
// record's Image Source. Anything not listed uses fallbackPriority.
var mediaPriority = map[string][]mediaSlot{
	SourceAttachment: {slotAttachment, slotLink},
	SourceLink:       {slotLink, slotAttachment},
	SourceCanva:      {slotCanva, slotAttachment, slotLink},
}

var fallbackPriority = []mediaSlot{slotCanva, slotAttachment, slotLink}

type mediaCandidates struct {
	attachments []string
	links       []string
	canva       string
}

func (c mediaCandidates) slot(s mediaSlot) []string {
	switch s {
	case slotAttachment:
		return c.attachments
	case slotLink:
		return c.links
	case slotCanva:
		if c.canva != "" {
			return []string{c.canva}
		}
	}
	return nil
}

func (c mediaCandidates) ordered(imageSource string) []string {
	order, ok := mediaPriority[imageSource]
	if !ok {
		order = fallbackPriority
	}
	out := make([]string, 0, len(c.attachments)+len(c.links)+1)
	for _, s := range order {
		out = append(out, c.slot(s)...)
	}
	return out
}

// resolveMedia keeps absolute http(s) URLs, drops repeats while preserving
// first occurrence, and tags each with a kind.
func resolveMedia(candidates []string) []Media {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Media, 0, len(candidates))
	for _, u := range candidates {
		u = strings.TrimSpace(u)
		if !isHTTPURL(u) {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, Media{URL: u, Kind: classify(u)})
	}
	return out
}

func isHTTPURL(s string) bool {
	l := strings.ToLower(s)
	return (strings.HasPrefix(l, "http://") && len(l) > len("http://")) ||
		(strings.HasPrefix(l, "https://") && len(l) > len("https://"))
}

func classify(raw string) MediaKind {
	u, err := url.Parse(raw)
	if err != nil {
		return KindImage
	}
	host := strings.ToLower(u.Hostname())
	switch path.Ext(strings.ToLower(u.Path)) {
	case ".mp4", ".mov":
		return KindVideo
	}
	if strings.Contains(host, "video") {
		return KindVideo
	}
	if strings.Contains(host, "canva.com") || strings.Contains(host, "canva.link") {
		return KindCanva
	}
	return KindImage
}

// splitLines breaks a typed URL list on line breaks, trimming each entry and
// dropping blanks.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
