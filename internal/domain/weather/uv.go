package weather

// Severity names one of the five UV index bands.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityVeryHigh Severity = "very_high"
	SeverityExtreme  Severity = "extreme"
)

// UVBand is the classification of a UV index value.
type UVBand struct {
	Value    float64  `json:"value"`
	Severity Severity `json:"severity"`
	Label    string   `json:"label"`
	// Tone is the visual tier used to colour the value.
	Tone string `json:"tone"`
}

type uvThreshold struct {
	max      float64
	severity Severity
	tone     string
}

// uvThresholds are inclusive upper bounds; anything above the last is extreme.
var uvThresholds = []uvThreshold{
	{max: 2, severity: SeverityLow, tone: "green"},
	{max: 5, severity: SeverityModerate, tone: "yellow"},
	{max: 7, severity: SeverityHigh, tone: "orange"},
	{max: 10, severity: SeverityVeryHigh, tone: "red"},
}

// ClassifyUV places a UV index into its band using the default catalog.
func ClassifyUV(value float64) UVBand {
	return DefaultCatalog().ClassifyUV(value)
}

// ClassifyUV places a UV index into its band with a localized label.
func (c *Catalog) ClassifyUV(value float64) UVBand {
	severity, tone := SeverityExtreme, "purple"
	for _, th := range uvThresholds {
		if value <= th.max {
			severity, tone = th.severity, th.tone
			break
		}
	}
	return UVBand{
		Value:    value,
		Severity: severity,
		Label:    c.text.severities[severity],
		Tone:     tone,
	}
}

// UVTier is the coarse three-level colouring used in the hourly table.
type UVTier string

const (
	UVTierLow    UVTier = "low"
	UVTierMedium UVTier = "medium"
	UVTierHigh   UVTier = "high"
)

// HourlyUVTier classifies an hourly value: above 6 high, above 2 medium, otherwise low.
func HourlyUVTier(value float64) UVTier {
	switch {
	case value > 6:
		return UVTierHigh
	case value > 2:
		return UVTierMedium
	default:
		return UVTierLow
	}
}
