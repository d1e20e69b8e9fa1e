package widget

import "strings"

// Symbol is an icon shown next to a condition or temperature
type Symbol string

const (
	SymbolNone    Symbol = ""
	SymbolClear   Symbol = "☀️"
	SymbolClouds  Symbol = "☁️"
	SymbolRain    Symbol = "🌧️"
	SymbolDrizzle Symbol = "🌦️"
	SymbolMist    Symbol = "🌫️"
	SymbolSnow    Symbol = "❄️"

	SymbolCold        Symbol = "🥶"
	SymbolHot         Symbol = "🔥"
	SymbolThermometer Symbol = "🌡️"
)

// InitialBackground is shown until the first weather result arrives
const InitialBackground = "images/clear1.gif"

// DefaultBackground is shown for unmapped conditions
const DefaultBackground = "images/BK.jpeg"

var conditionIcons = map[string]Symbol{
	"clear":   SymbolClear,
	"clouds":  SymbolClouds,
	"rain":    SymbolRain,
	"drizzle": SymbolDrizzle,
	"mist":    SymbolMist,
	"fog":     SymbolMist,
	"snow":    SymbolSnow,
}

var conditionBackgrounds = map[string]string{
	"clear":   "images/clear1.gif",
	"clouds":  "images/cloudy1.gif",
	"rain":    "images/rain.gif",
	"drizzle": "images/driz.gif",
	"mist":    "images/mist.gif",
	"fog":     "images/mist.gif",
	"snow":    "images/snow.gif",
}

// IconFor returns the icon for a condition code, ignoring case.
// Unknown conditions get SymbolNone.
func IconFor(condition string) Symbol {
	return conditionIcons[strings.ToLower(condition)]
}

// BackgroundFor returns the background asset for a lower-cased
// condition code. Unknown conditions get DefaultBackground.
func BackgroundFor(condition string) string {
	if bg, ok := conditionBackgrounds[condition]; ok {
		return bg
	}
	return DefaultBackground
}

// TemperatureIcon annotates a Celsius temperature. 0 and 30 are neutral.
func TemperatureIcon(celsius float64) Symbol {
	switch {
	case celsius < 0:
		return SymbolCold
	case celsius > 30:
		return SymbolHot
	default:
		return SymbolThermometer
	}
}
