package weather

// Info pairs a human description with an icon glyph for a WMO weather code
type Info struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var unknownInfo = Info{Description: "Unknown", Icon: "🌡️"}

var weatherCodes = map[int]Info{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Foggy", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Moderate drizzle", "🌦️"},
	55: {"Dense drizzle", "🌧️"},
	61: {"Slight rain", "🌧️"},
	63: {"Moderate rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	71: {"Slight snow", "🌨️"},
	73: {"Moderate snow", "❄️"},
	75: {"Heavy snow", "❄️"},
	77: {"Snow grains", "🌨️"},
	80: {"Slight rain showers", "🌦️"},
	81: {"Moderate rain showers", "🌧️"},
	82: {"Violent rain showers", "⛈️"},
	85: {"Slight snow showers", "🌨️"},
	86: {"Heavy snow showers", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with slight hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

// Describe maps a WMO weather code to its description and icon. Codes outside
// the known set map to the Unknown default; it never fails.
func Describe(code int) Info {
	if info, ok := weatherCodes[code]; ok {
		return info
	}
	return unknownInfo
}
