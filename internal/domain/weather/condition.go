package weather

// Kind is the closed set of conditions the dashboard knows how to draw.
type Kind string

const (
	KindClear        Kind = "clear"
	KindMainlyClear  Kind = "mainly_clear"
	KindPartlyCloudy Kind = "partly_cloudy"
	KindOvercast     Kind = "overcast"
	KindFog          Kind = "fog"
	KindDrizzle      Kind = "drizzle"
	KindRain         Kind = "rain"
	KindThunderstorm Kind = "thunderstorm"
)

// Condition is the classification of a WMO weather code.
type Condition struct {
	Code        int    `json:"code"`
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
	// Icon is a lucide icon identifier in kebab-case.
	Icon string `json:"icon"`
}

type conditionEntry struct {
	kind Kind
	icon string
}

// conditions holds the explicitly mapped WMO codes.
var conditions = map[int]conditionEntry{
	0:  {kind: KindClear, icon: "sun"},
	1:  {kind: KindMainlyClear, icon: "cloud-sun"},
	2:  {kind: KindPartlyCloudy, icon: "cloud"},
	3:  {kind: KindOvercast, icon: "cloud-fog"},
	45: {kind: KindFog, icon: "align-justify"},
	51: {kind: KindDrizzle, icon: "cloud-drizzle"},
	61: {kind: KindRain, icon: "cloud-rain"},
	95: {kind: KindThunderstorm, icon: "cloud-lightning"},
}

// fallbackCode picks the mapped code used for an unmapped one. The order of
// the checks matters: anything above 90 is a storm before it is rain.
func fallbackCode(code int) int {
	switch {
	case code > 90:
		return 95
	case code > 50:
		return 61
	default:
		return 0
	}
}

// ClassifyWeather maps any WMO code to a condition using the default catalog.
func ClassifyWeather(code int) Condition {
	return DefaultCatalog().ClassifyWeather(code)
}

// ClassifyWeather maps any WMO code to a localized condition. Total over int.
func (c *Catalog) ClassifyWeather(code int) Condition {
	entry, ok := conditions[code]
	if !ok {
		entry = conditions[fallbackCode(code)]
	}
	return Condition{
		Code:        code,
		Kind:        entry.kind,
		Description: c.text.kinds[entry.kind],
		Icon:        entry.icon,
	}
}
