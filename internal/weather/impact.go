// internal/weather/impact.go
package weather

import "math"

// DemandImpact holds per-category demand multipliers. 1.0 means no
// change from a normal hour.
type DemandImpact struct {
	TrafficImpact   float64 `json:"traffic_impact"`
	HotFoodDemand   float64 `json:"hot_food_demand"`
	ColdDrinkDemand float64 `json:"cold_drink_demand"`
	UmbrellaDemand  float64 `json:"umbrella_demand"`
}

var heavyPrecipCodes = map[int]bool{65: true, 75: true, 82: true, 86: true, 95: true, 96: true, 99: true}

var moderatePrecipCodes = map[int]bool{63: true, 73: true, 81: true, 85: true}

// CalculateDemandImpact derives store demand multipliers from one hour
// of forecast. Temperature bands are checked hottest first, so 31°C
// matches only the >30 band.
func CalculateDemandImpact(tempC, precipitationMm float64, weatherCode int) DemandImpact {
	traffic := 1.0
	hotFood := 1.0
	coldDrink := 1.0
	umbrella := 1.0

	switch {
	case tempC > 30:
		traffic *= 0.85
		hotFood *= 0.5
		coldDrink *= 1.6
	case tempC > 25:
		traffic *= 0.95
		hotFood *= 0.7
		coldDrink *= 1.4
	case tempC < 5:
		traffic *= 0.85
		hotFood *= 1.3
		coldDrink *= 0.6
	case tempC < 10:
		hotFood *= 1.15
		coldDrink *= 0.8
	}

	if precipitationMm > 0 {
		umbrella *= 2.0
		if precipitationMm > 5 {
			traffic *= 0.7
			umbrella *= 1.5
		} else if precipitationMm > 1 {
			traffic *= 0.85
		}
	}

	if heavyPrecipCodes[weatherCode] {
		traffic *= 0.6
	} else if moderatePrecipCodes[weatherCode] {
		traffic *= 0.75
	}

	return DemandImpact{
		TrafficImpact:   round2(traffic),
		HotFoodDemand:   round2(hotFood),
		ColdDrinkDemand: round2(coldDrink),
		UmbrellaDemand:  round2(umbrella),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
