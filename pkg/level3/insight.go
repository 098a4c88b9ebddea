package level3

// Band names a temperature interval.
type Band string

const (
	Frozen      Band = "frozen"
	VeryCold    Band = "very_cold"
	Cold        Band = "cold"
	Cool        Band = "cool"
	Neutral     Band = "neutral"
	Warm        Band = "warm"
	Hot         Band = "hot"
	Overheating Band = "overheating"
)

// Insight is the factory-floor report for a temperature.
type Insight struct {
	Temperature int    `json:"temperature"`
	Band        Band   `json:"band"`
	Message     string `json:"message"`
}

// bands are ordered by upper bound; a temperature belongs to the first band
// whose bound it is below. The seven bounds at 5, 10, ..., 35 split the range
// into eight bands, the last being Overheating at 35 and above.
var bands = []struct {
	below   int
	band    Band
	message string
}{
	{5, Frozen, "The factory is freezing. Balloons stretch much further than usual before popping."},
	{10, VeryCold, "Very cold on the floor. Balloons hold noticeably more air, so bolder strategies pay off."},
	{15, Cold, "It's cold. Balloons can take a few extra pumps."},
	{20, Cool, "A little cool. Balloons are slightly more forgiving than usual."},
	{25, Neutral, "Comfortable conditions. Balloons behave normally."},
	{30, Warm, "Getting warm. Balloons pop a bit earlier, consider easing off."},
	{35, Hot, "It's hot. Balloons are fragile, cautious strategies are safer."},
}

// InsightFor maps a temperature to its band and message.
func InsightFor(t int) Insight {
	for _, b := range bands {
		if t < b.below {
			return Insight{Temperature: t, Band: b.band, Message: b.message}
		}
	}
	return Insight{
		Temperature: t,
		Band:        Overheating,
		Message:     "The factory is overheating! Balloons burst at the slightest push, pump very conservatively.",
	}
}
