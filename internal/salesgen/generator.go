// internal/salesgen/generator.go
package salesgen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
)

// masterItem is one product of the synthetic sales master.
type masterItem struct {
	itemID   string
	itemName string
	category string
	price    int
}

var items = []masterItem{
	{"K001", "からあげクン レギュラー", "ホットスナック", 238},
	{"K002", "からあげクン レッド", "ホットスナック", 238},
	{"K003", "からあげクン チーズ", "ホットスナック", 238},
	{"L001", "Lチキ", "ホットスナック", 210},
	{"L002", "Lチキ 旨辛", "ホットスナック", 210},
	{"O001", "おにぎり 鮭", "おにぎり", 140},
	{"O002", "おにぎり ツナマヨ", "おにぎり", 130},
	{"O003", "おにぎり 明太子", "おにぎり", 150},
	{"O004", "おにぎり 梅", "おにぎり", 120},
	{"B001", "幕の内弁当", "弁当", 498},
	{"B002", "のり弁当", "弁当", 398},
	{"B003", "チキン南蛮弁当", "弁当", 548},
	{"S001", "サンドイッチ たまご", "サンドイッチ", 298},
	{"S002", "サンドイッチ ハムチーズ", "サンドイッチ", 328},
	{"D001", "お茶 500ml", "飲料", 150},
	{"D002", "コーヒー 缶", "飲料", 130},
	{"D003", "スポーツドリンク", "飲料", 160},
	{"D004", "コーラ 500ml", "飲料", 170},
	{"I001", "アイスクリーム バニラ", "アイス", 180},
	{"I002", "アイスクリーム チョコ", "アイス", 180},
	{"N001", "肉まん", "中華まん", 150},
	{"N002", "ピザまん", "中華まん", 150},
	{"OD01", "おでん 大根", "おでん", 90},
	{"OD02", "おでん たまご", "おでん", 100},
	{"OD03", "おでん ちくわ", "おでん", 110},
	{"C001", "カップ麺 醤油", "カップ麺", 220},
	{"C002", "カップ麺 味噌", "カップ麺", 220},
	{"SW01", "シュークリーム", "スイーツ", 150},
	{"SW02", "プリン", "スイーツ", 180},
}

// Skewed toward fair weather, matching a Tokyo winter month.
var weatherPatterns = []string{"sunny", "sunny", "sunny", "cloudy", "cloudy", "rainy"}

// itemWeight biases item selection by weather, temperature, and hour.
func itemWeight(item masterItem, weather string, temperature float64, hour int) float64 {
	weight := 1.0

	if weather == "sunny" && temperature > 15 {
		switch item.category {
		case "アイス":
			weight *= 2.0
		case "飲料":
			weight *= 1.5
		case "中華まん", "おでん":
			weight *= 0.5
		}
	} else if weather == "rainy" || temperature < 10 {
		switch item.category {
		case "中華まん", "おでん", "カップ麺":
			weight *= 2.0
		case "アイス":
			weight *= 0.3
		}
	}

	switch {
	case hour >= 7 && hour <= 9:
		if item.category == "おにぎり" || item.category == "サンドイッチ" || item.category == "飲料" {
			weight *= 1.5
		}
	case hour >= 11 && hour <= 13:
		if item.category == "弁当" || item.category == "おにぎり" || item.category == "サンドイッチ" {
			weight *= 1.8
		}
	case hour >= 15 && hour <= 17:
		if item.category == "スイーツ" || item.category == "アイス" {
			weight *= 1.5
		}
	case hour >= 20:
		if item.category == "弁当" || item.category == "カップ麺" {
			weight *= 1.3
		}
	}

	if strings.Contains(item.itemName, "からあげクン") {
		weight *= 1.5
	}

	return weight
}

func selectItem(r *rand.Rand, weather string, temperature float64, hour int) masterItem {
	weights := make([]float64, len(items))
	total := 0.0
	for i, item := range items {
		weights[i] = itemWeight(item, weather, temperature, hour)
		total += weights[i]
	}

	pick := r.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if pick <= cumulative {
			return items[i]
		}
	}
	return items[0]
}

// Generate produces a deterministic synthetic sales history ending on
// endDate, inclusive. The same seed always yields the same rows.
func Generate(seed int64, days int, endDate time.Time) ([]domain.SaleRecord, []domain.DailySummary) {
	r := rand.New(rand.NewSource(seed))

	var sales []domain.SaleRecord
	var dailies []domain.DailySummary
	saleSeq := 1

	for daysAgo := days; daysAgo >= 0; daysAgo-- {
		date := endDate.AddDate(0, 0, -daysAgo)
		dayOfWeek := (int(date.Weekday()) + 6) % 7
		isWeekend := dayOfWeek >= 5

		weather := weatherPatterns[r.Intn(len(weatherPatterns))]
		baseTemp := 10.0
		var temperature float64
		switch weather {
		case "sunny":
			temperature = baseTemp + 3 + r.Float64()*5
		case "rainy":
			temperature = baseTemp - 2 + r.Float64()*4
		default:
			temperature = baseTemp + r.Float64()*5
		}
		temperature = float64(int(temperature*10)) / 10

		dailyTotal := 0
		dailyItems := 0

		for hour := 6; hour < 24; hour++ {
			hourWeight := 1.0
			switch {
			case hour >= 7 && hour <= 9:
				hourWeight = 1.5
			case hour >= 11 && hour <= 13:
				hourWeight = 2.0
			case hour >= 17 && hour <= 19:
				hourWeight = 1.8
			case hour >= 21:
				hourWeight = 0.6
			}
			if isWeekend {
				hourWeight *= 1.2
			}

			transactions := int((r.NormFloat64()*3 + 10) * hourWeight)
			if transactions < 1 {
				transactions = 1
			}

			for t := 0; t < transactions; t++ {
				item := selectItem(r, weather, temperature, hour)
				quantity := 1
				if r.Float64() >= 0.85 {
					quantity = 2 + r.Intn(2)
				}
				total := item.price * quantity

				sales = append(sales, domain.SaleRecord{
					SaleID:      fmt.Sprintf("S%08d", saleSeq),
					SaleDate:    date.Format("2006-01-02"),
					SaleHour:    hour,
					ItemID:      item.itemID,
					ItemName:    item.itemName,
					Category:    item.category,
					Quantity:    quantity,
					UnitPrice:   item.price,
					TotalAmount: total,
					Weather:     weather,
					Temperature: temperature,
					DayOfWeek:   dayOfWeek,
				})

				saleSeq++
				dailyTotal += total
				dailyItems += quantity
			}
		}

		dailies = append(dailies, domain.DailySummary{
			Date:          date.Format("2006-01-02"),
			TotalSales:    dailyTotal,
			TotalItems:    dailyItems,
			Weather:       weather,
			Temperature:   temperature,
			CustomerCount: int(float64(dailyItems) * 0.7),
		})
	}

	return sales, dailies
}
