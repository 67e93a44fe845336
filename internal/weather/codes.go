// internal/weather/codes.go
package weather

// Description carries the Japanese and English names plus a display
// icon for a WMO weather code.
type Description struct {
	Ja   string `json:"ja"`
	En   string `json:"en"`
	Icon string `json:"icon"`
}

// WMO weather interpretation codes as published by Open-Meteo.
var weatherCodes = map[int]Description{
	0:  {Ja: "快晴", En: "Clear sky", Icon: "☀️"},
	1:  {Ja: "晴れ", En: "Mainly clear", Icon: "🌤️"},
	2:  {Ja: "一部曇り", En: "Partly cloudy", Icon: "⛅"},
	3:  {Ja: "曇り", En: "Overcast", Icon: "☁️"},
	45: {Ja: "霧", En: "Fog", Icon: "🌫️"},
	48: {Ja: "着氷性の霧", En: "Depositing rime fog", Icon: "🌫️"},
	51: {Ja: "霧雨（弱）", En: "Light drizzle", Icon: "🌧️"},
	53: {Ja: "霧雨（中）", En: "Moderate drizzle", Icon: "🌧️"},
	55: {Ja: "霧雨（強）", En: "Dense drizzle", Icon: "🌧️"},
	61: {Ja: "雨（弱）", En: "Slight rain", Icon: "🌧️"},
	63: {Ja: "雨（中）", En: "Moderate rain", Icon: "🌧️"},
	65: {Ja: "雨（強）", En: "Heavy rain", Icon: "🌧️"},
	66: {Ja: "着氷性の雨（弱）", En: "Light freezing rain", Icon: "🌨️"},
	67: {Ja: "着氷性の雨（強）", En: "Heavy freezing rain", Icon: "🌨️"},
	71: {Ja: "雪（弱）", En: "Slight snow", Icon: "🌨️"},
	73: {Ja: "雪（中）", En: "Moderate snow", Icon: "🌨️"},
	75: {Ja: "雪（強）", En: "Heavy snow", Icon: "❄️"},
	77: {Ja: "霧雪", En: "Snow grains", Icon: "🌨️"},
	80: {Ja: "にわか雨（弱）", En: "Slight rain showers", Icon: "🌦️"},
	81: {Ja: "にわか雨（中）", En: "Moderate rain showers", Icon: "🌦️"},
	82: {Ja: "にわか雨（強）", En: "Violent rain showers", Icon: "⛈️"},
	85: {Ja: "にわか雪（弱）", En: "Slight snow showers", Icon: "🌨️"},
	86: {Ja: "にわか雪（強）", En: "Heavy snow showers", Icon: "🌨️"},
	95: {Ja: "雷雨", En: "Thunderstorm", Icon: "⛈️"},
	96: {Ja: "雷雨（雹あり）", En: "Thunderstorm with slight hail", Icon: "⛈️"},
	99: {Ja: "雷雨（激しい雹）", En: "Thunderstorm with heavy hail", Icon: "⛈️"},
}

// Describe resolves a WMO code to its display names. Unknown codes get
// an explicit unknown marker rather than an error.
func Describe(code int) Description {
	if d, ok := weatherCodes[code]; ok {
		return d
	}
	return Description{Ja: "不明", En: "Unknown", Icon: "❓"}
}
