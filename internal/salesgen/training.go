// internal/salesgen/training.go
package salesgen

import (
	"math"
	"math/rand"
)

// trainingItems is the category taxonomy the demand model is trained on.
var trainingItems = []string{
	"からあげクン",
	"Lチキ",
	"おにぎり",
	"サンドイッチ",
	"弁当",
	"パン",
	"冷やし麺",
	"アイスクリーム",
	"冷たい飲料",
	"温かい飲料",
	"コーヒー",
	"サラダ",
	"おでん",
	"肉まん",
	"カップ麺",
	"スイーツ",
}

var baseDemand = map[string]int{
	"からあげクン":  80,
	"Lチキ":     40,
	"おにぎり":    150,
	"サンドイッチ":  60,
	"弁当":      70,
	"パン":      50,
	"冷やし麺":    30,
	"アイスクリーム": 40,
	"冷たい飲料":   100,
	"温かい飲料":   80,
	"コーヒー":    90,
	"サラダ":     35,
	"おでん":     50,
	"肉まん":     45,
	"カップ麺":    25,
	"スイーツ":    40,
}

// TrainingItems returns the taxonomy in training order.
func TrainingItems() []string {
	return append([]string(nil), trainingItems...)
}

// BaseDemand returns the per-category reference demand table.
func BaseDemand() map[string]int {
	out := make(map[string]int, len(baseDemand))
	for k, v := range baseDemand {
		out[k] = v
	}
	return out
}

func in(item string, set ...string) bool {
	for _, s := range set {
		if item == s {
			return true
		}
	}
	return false
}

// demandMultiplier encodes the weather and temperature demand rules the
// model is trained to recover.
func demandMultiplier(item, weather string, temperature, humidity float64) float64 {
	multiplier := 1.0

	switch weather {
	case "sunny":
		if in(item, "アイスクリーム", "冷たい飲料", "冷やし麺", "サラダ") {
			multiplier *= 1.3
		} else if in(item, "おでん", "肉まん", "温かい飲料") {
			multiplier *= 0.8
		}
	case "rainy":
		if in(item, "おでん", "肉まん", "カップ麺", "温かい飲料") {
			multiplier *= 1.3
		} else if in(item, "アイスクリーム", "冷やし麺", "サラダ") {
			multiplier *= 0.7
		}
		if in(item, "からあげクン", "Lチキ") {
			multiplier *= 0.85
		}
	}

	switch {
	case temperature >= 30:
		if in(item, "アイスクリーム", "冷たい飲料", "冷やし麺") {
			multiplier *= 1.0 + (temperature-30)*0.05
		} else if in(item, "おでん", "肉まん", "温かい飲料") {
			multiplier *= 0.6
		}
	case temperature <= 10:
		if in(item, "おでん", "肉まん", "温かい飲料", "カップ麺") {
			multiplier *= 1.0 + (10-temperature)*0.05
		} else if in(item, "アイスクリーム", "冷たい飲料", "冷やし麺") {
			multiplier *= 0.5
		}
	default:
		tempFactor := (temperature - 20) / 20
		if in(item, "アイスクリーム", "冷たい飲料", "冷やし麺") {
			multiplier *= 1.0 + tempFactor*0.3
		} else if in(item, "おでん", "肉まん", "温かい飲料") {
			multiplier *= 1.0 - tempFactor*0.3
		}
	}

	if temperature >= 25 && humidity >= 70 {
		if in(item, "冷たい飲料", "アイスクリーム") {
			multiplier *= 1.1
		}
	}

	return multiplier
}

// TrainingRow is one sample of the synthetic training set.
type TrainingRow struct {
	Weather     string
	Temperature float64
	Humidity    float64
	DayOfWeek   int
	IsWeekend   int
	Hour        int
	Item        string
	Demand      int
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GenerateTrainingRows produces samples*len(items) rows of synthetic
// training data. Deterministic per seed.
func GenerateTrainingRows(seed int64, samples int) []TrainingRow {
	r := rand.New(rand.NewSource(seed))
	weathers := []string{"sunny", "cloudy", "rainy"}
	weatherWeights := []float64{0.4, 0.35, 0.25}
	seasons := []string{"spring", "summer", "autumn", "winter"}

	rows := make([]TrainingRow, 0, samples*len(trainingItems))
	for i := 0; i < samples; i++ {
		weather := pickWeighted(r, weathers, weatherWeights)

		var temperature float64
		switch seasons[r.Intn(len(seasons))] {
		case "summer":
			temperature = r.NormFloat64()*4 + 28
		case "winter":
			temperature = r.NormFloat64()*4 + 8
		default:
			temperature = r.NormFloat64()*5 + 18
		}
		temperature = clampFloat(temperature, -5, 40)

		var humidity float64
		if weather == "rainy" {
			humidity = r.NormFloat64()*10 + 80
		} else {
			humidity = r.NormFloat64()*15 + 60
		}
		humidity = clampFloat(humidity, 20, 100)

		dayOfWeek := r.Intn(7)
		isWeekend := 0
		if dayOfWeek >= 5 {
			isWeekend = 1
		}
		hour := 6 + r.Intn(18)

		for _, item := range trainingItems {
			base := baseDemand[item]
			multiplier := demandMultiplier(item, weather, temperature, humidity)

			noise := clampFloat(r.NormFloat64()*0.15+1.0, 0.5, 1.5)
			demand := int(float64(base) * multiplier * noise)
			if demand < 1 {
				demand = 1
			}

			if isWeekend == 1 {
				demand = int(float64(demand) * 1.15)
			}
			if (hour >= 11 && hour <= 13) || (hour >= 17 && hour <= 19) {
				demand = int(float64(demand) * 1.2)
			}

			rows = append(rows, TrainingRow{
				Weather:     weather,
				Temperature: round1(temperature),
				Humidity:    round1(humidity),
				DayOfWeek:   dayOfWeek,
				IsWeekend:   isWeekend,
				Hour:        hour,
				Item:        item,
				Demand:      demand,
			})
		}
	}
	return rows
}

func pickWeighted(r *rand.Rand, values []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	pick := r.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if pick <= cumulative {
			return values[i]
		}
	}
	return values[len(values)-1]
}
