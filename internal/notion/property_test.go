package notion_test

import (
	"encoding/json"
	"testing"

	"cardsapi/internal/notion"

	"github.com/stretchr/testify/require"
)

func recordFrom(t *testing.T, props string) notion.Record {
	t.Helper()
	var r notion.Record
	require.NoError(t, json.Unmarshal([]byte(`{"id":"page-1","properties":`+props+`}`), &r))
	return r
}

func TestText(t *testing.T) {
	r := recordFrom(t, `{
		"Name": {"type":"title","title":[{"plain_text":"  Summer "},{"plain_text":"Launch  "}]},
		"Notes": {"type":"rich_text","rich_text":[{"plain_text":"a"},{"plain_text":"b"}]},
		"Empty": {"type":"title","title":[]},
		"Tick": {"type":"checkbox","checkbox":true}
	}`)

	require.Equal(t, "Summer Launch", r.Property("Name").Text())
	require.Equal(t, "ab", r.Property("Notes").Text())
	require.Equal(t, "", r.Property("Empty").Text())
	require.Equal(t, "", r.Property("Tick").Text())
	require.Equal(t, "", r.Property("Missing").Text())
}

func TestChecked(t *testing.T) {
	r := recordFrom(t, `{
		"Yes": {"type":"checkbox","checkbox":true},
		"No": {"type":"checkbox","checkbox":false},
		"Wrong": {"type":"rich_text","rich_text":[{"plain_text":"true"}]},
		"Garbage": {"type":"checkbox","checkbox":"yes"}
	}`)

	require.True(t, r.Property("Yes").Checked())
	require.False(t, r.Property("No").Checked())
	require.False(t, r.Property("Wrong").Checked())
	require.False(t, r.Property("Garbage").Checked())
	require.False(t, r.Property("Missing").Checked())
}

func TestSelectNames(t *testing.T) {
	r := recordFrom(t, `{
		"Platform": {"type":"select","select":{"name":"Instagram"}},
		"Unset": {"type":"select","select":null},
		"Multi": {"type":"multi_select","multi_select":[{"name":"TikTok"},{"name":" "},{"name":"Instagram"}]}
	}`)

	require.Equal(t, "Instagram", r.Property("Platform").SelectName())
	require.Equal(t, "", r.Property("Unset").SelectName())
	require.Equal(t, "", r.Property("Multi").SelectName())
	require.Equal(t, []string{"TikTok", "Instagram"}, r.Property("Multi").MultiSelectNames())
	require.Empty(t, r.Property("Platform").MultiSelectNames())
	require.Empty(t, r.Property("Missing").MultiSelectNames())
}

func TestDateStart(t *testing.T) {
	r := recordFrom(t, `{
		"Publish Date": {"type":"date","date":{"start":"2024-05-01","end":null}},
		"Blank": {"type":"date","date":null}
	}`)

	require.Equal(t, "2024-05-01", r.Property("Publish Date").DateStart())
	require.Equal(t, "", r.Property("Blank").DateStart())
	require.Equal(t, "", r.Property("Missing").DateStart())
}

func TestURLish(t *testing.T) {
	r := recordFrom(t, `{
		"Canva Link": {"type":"url","url":" https://canva.com/design/X/view "},
		"Null": {"type":"url","url":null},
		"Link": {"type":"rich_text","rich_text":[{"plain_text":"https://a.example/1\nhttps://"},{"plain_text":"b.example/2"}]}
	}`)

	require.Equal(t, "https://canva.com/design/X/view", r.Property("Canva Link").URLish())
	require.Equal(t, "", r.Property("Null").URLish())
	require.Equal(t, "https://a.example/1\nhttps://b.example/2", r.Property("Link").URLish())
	require.Equal(t, "", r.Property("Missing").URLish())
}

func TestFileURLs(t *testing.T) {
	r := recordFrom(t, `{
		"Attachment": {"type":"files","files":[
			{"name":"a.png","type":"file","file":{"url":"https://s3.example/a.png","expiry_time":"2024-01-01T00:00:00.000Z"}},
			{"name":"broken","type":"file"},
			{"name":"b.png","type":"external","external":{"url":"https://cdn.example/b.png"}}
		]},
		"Text": {"type":"rich_text","rich_text":[{"plain_text":"https://x.example"}]}
	}`)

	require.Equal(t, []string{"https://s3.example/a.png", "https://cdn.example/b.png"}, r.Property("Attachment").FileURLs())
	require.Empty(t, r.Property("Text").FileURLs())
	require.Empty(t, r.Property("Missing").FileURLs())
}

func TestUntaggedProperty(t *testing.T) {
	r := recordFrom(t, `{
		"Hide": {"checkbox":true},
		"Name": {"rich_text":[{"plain_text":"loose"}]}
	}`)

	require.True(t, r.Property("Hide").Checked())
	require.Equal(t, "loose", r.Property("Name").Text())
}

func TestMalformedPropertyIsAbsent(t *testing.T) {
	r := recordFrom(t, `{"Name": "not an object", "Pinned": [1,2]}`)

	require.Nil(t, r.Property("Name"))
	require.Nil(t, r.Property("Pinned"))
	require.Equal(t, "", r.Property("Name").Text())
}

func TestPropertyNames(t *testing.T) {
	r := recordFrom(t, `{"Pinned":{},"Name":{},"Hide":{}}`)
	require.Equal(t, []string{"Hide", "Name", "Pinned"}, r.PropertyNames())
}
