package weather

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Message identifies a user-facing status or notification text.
type Message string

const (
	MsgSearching  Message = "searching"
	MsgFetching   Message = "fetching"
	MsgNotFound   Message = "not_found"
	MsgLoadFailed Message = "load_failed"
)

type texts struct {
	kinds      map[Kind]string
	severities map[Severity]string
	weekdays   [7]string
	messages   map[Message]string
}

var supported = []language.Tag{language.Indonesian, language.English}

// catalogs is indexed in the same order as supported.
var catalogs = []*texts{
	{
		kinds: map[Kind]string{
			KindClear:        "Cerah",
			KindMainlyClear:  "Cerah Berawan",
			KindPartlyCloudy: "Berawan",
			KindOvercast:     "Mendung",
			KindFog:          "Berkabut",
			KindDrizzle:      "Gerimis",
			KindRain:         "Hujan",
			KindThunderstorm: "Badai Petir",
		},
		severities: map[Severity]string{
			SeverityLow:      "Rendah",
			SeverityModerate: "Sedang",
			SeverityHigh:     "Tinggi",
			SeverityVeryHigh: "Sgt Tinggi",
			SeverityExtreme:  "Ekstrem",
		},
		weekdays: [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"},
		messages: map[Message]string{
			MsgSearching:  "Mencari lokasi...",
			MsgFetching:   "Mengambil data...",
			MsgNotFound:   "Lokasi tidak ditemukan.",
			MsgLoadFailed: "Gagal memuat data.",
		},
	},
	{
		kinds: map[Kind]string{
			KindClear:        "Clear",
			KindMainlyClear:  "Mainly Clear",
			KindPartlyCloudy: "Cloudy",
			KindOvercast:     "Overcast",
			KindFog:          "Foggy",
			KindDrizzle:      "Drizzle",
			KindRain:         "Rain",
			KindThunderstorm: "Thunderstorm",
		},
		severities: map[Severity]string{
			SeverityLow:      "Low",
			SeverityModerate: "Moderate",
			SeverityHigh:     "High",
			SeverityVeryHigh: "Very High",
			SeverityExtreme:  "Extreme",
		},
		weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		messages: map[Message]string{
			MsgSearching:  "Searching location...",
			MsgFetching:   "Fetching data...",
			MsgNotFound:   "Location not found.",
			MsgLoadFailed: "Failed to load data.",
		},
	},
}

var matcher = language.NewMatcher(supported)

// Catalog resolves localized labels for classifications and UI messages.
// It is immutable and safe for concurrent use.
type Catalog struct {
	tag  language.Tag
	text *texts
}

// NewCatalog picks the closest supported language for a BCP 47 tag. Unknown
// or empty tags resolve to Indonesian.
func NewCatalog(tag string) *Catalog {
	desired, err := language.Parse(tag)
	if err != nil {
		desired = language.Und
	}
	_, idx, _ := matcher.Match(desired)
	return &Catalog{tag: supported[idx], text: catalogs[idx]}
}

var defaultCatalog = NewCatalog("id")

// DefaultCatalog is the Indonesian catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Tag reports the language the catalog resolved to.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Weekday returns the localized weekday name.
func (c *Catalog) Weekday(day time.Weekday) string {
	return c.text.weekdays[day]
}

// Message returns a localized UI text.
func (c *Catalog) Message(msg Message) string {
	return c.text.messages[msg]
}

// Upper applies locale-aware upper casing.
func (c *Catalog) Upper(s string) string {
	// Casers are stateful, so one is built per call.
	return cases.Upper(c.tag).String(s)
}
