package gallery

const (
	SourceAttachment = "Image Attachment"
	SourceLink       = "Link"
	SourceCanva      = "Canva Design"

	untitled        = "(Untitled)"
	unspecified     = "Unspecified"
	AllPlatforms    = "All"
	platformJoinSep = ", "
)

type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
	KindCanva MediaKind = "canva"
)

type Media struct {
	URL  string    `json:"url"`
	Kind MediaKind `json:"kind"`
}

// Item is one display-ready card.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PublishDate string   `json:"publishDate,omitempty"`
	Platform    string   `json:"platform"`
	Platforms   []string `json:"platforms,omitempty"`
	Pinned      bool     `json:"pinned"`
	ImageSource string   `json:"imageSource,omitempty"`
	Cover       string   `json:"cover,omitempty"`
	Media       []Media  `json:"media"`
}

// Batch is the outcome of resolving one page of records.
type Batch struct {
	Items         []Item
	Hidden        int
	NoMedia       int
	OtherPlatform int
}

type Query struct {
	Platform string
	Debug    bool
}

type Result struct {
	Items            []Item
	DatabaseID       string
	PropertyKeysSeen []string
	HasMore          bool
}
