// internal/optimizer/optimizer.go
package optimizer

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/forecast"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/timeutil"
)

// Input normalization defaults. Invalid or missing numeric inputs fall
// back silently; LLM callers routinely omit arguments and the tool must
// still answer.
const (
	defaultTemperature = 20.0
	defaultHumidity    = 60.0
	defaultSafetyDays  = 1.0
	minSafetyDays      = 0.5
	maxSafetyDays      = 3.0
)

// DemandPredictor is the forecast dependency.
type DemandPredictor interface {
	Predict(c forecast.Conditions) ([]domain.DemandPrediction, string, error)
}

// InventorySnapshotter supplies current stock grouped by category.
type InventorySnapshotter interface {
	Snapshot(ctx context.Context) (map[string][]domain.InventoryItem, error)
}

// Service turns a demand forecast and the inventory snapshot into
// per-item order recommendations.
type Service struct {
	predictor DemandPredictor
	inventory InventorySnapshotter
	now       func() time.Time
}

func NewService(predictor DemandPredictor, inventory InventorySnapshotter) *Service {
	return &Service{predictor: predictor, inventory: inventory, now: timeutil.NowJST}
}

// WithClock overrides the service clock. Test use.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Params are the raw optimizer inputs before normalization. Nil numeric
// fields mean "not supplied".
type Params struct {
	Weather         string
	Temperature     *float64
	Humidity        *float64
	SafetyStockDays *float64
}

func normalize(p Params) domain.OptimizeConditions {
	weather := strings.ToLower(strings.TrimSpace(p.Weather))
	if weather == "" {
		weather = "sunny"
	}

	temperature := defaultTemperature
	if p.Temperature != nil {
		temperature = *p.Temperature
	}
	humidity := defaultHumidity
	if p.Humidity != nil {
		humidity = *p.Humidity
	}

	safetyDays := defaultSafetyDays
	if p.SafetyStockDays != nil {
		safetyDays = math.Max(minSafetyDays, math.Min(*p.SafetyStockDays, maxSafetyDays))
	}

	return domain.OptimizeConditions{
		Weather:         weather,
		Temperature:     temperature,
		Humidity:        humidity,
		SafetyStockDays: safetyDays,
	}
}

// Optimize runs the full pipeline: forecast, inventory snapshot, per-item
// order calculation, category roll-ups. All-or-nothing: any dependency
// failure fails the whole call.
func (s *Service) Optimize(ctx context.Context, params Params) (*domain.OptimizeResult, error) {
	now := s.now()
	conditions := normalize(params)

	predictions, weatherWarning, err := s.predictor.Predict(forecast.Conditions{
		Weather:     conditions.Weather,
		Temperature: conditions.Temperature,
		Humidity:    conditions.Humidity,
		DayOfWeek:   mondayWeekday(now),
		IsWeekend:   mondayWeekday(now) >= 5,
		Hour:        now.Hour(),
	})
	if err != nil {
		return nil, err
	}

	byCategory, err := s.inventory.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	recommendations := calculateOrders(predictions, byCategory, conditions.SafetyStockDays)

	categorySummary := map[string]domain.OptimizeCategorySummary{}
	totalOrderQuantity := 0
	itemsToOrder := 0
	for _, rec := range recommendations {
		cs, ok := categorySummary[rec.Category]
		if !ok {
			cs = domain.OptimizeCategorySummary{DemandRatio: rec.DemandRatio}
		}
		cs.OrderQuantity += rec.RecommendedOrderQuantity
		categorySummary[rec.Category] = cs

		totalOrderQuantity += rec.RecommendedOrderQuantity
		if rec.RecommendedOrderQuantity > 0 {
			itemsToOrder++
		}
	}

	return &domain.OptimizeResult{
		CurrentTime:     now,
		Conditions:      conditions,
		DemandForecast:  predictions,
		Recommendations: recommendations,
		CategorySummary: categorySummary,
		Summary: domain.OptimizeSummary{
			TotalItems:         len(recommendations),
			ItemsToOrder:       itemsToOrder,
			TotalOrderQuantity: totalOrderQuantity,
		},
		WeatherWarning: weatherWarning,
	}, nil
}

type demandInfo struct {
	ratio         float64
	changePercent float64
}

// calculateOrders applies the numeric policy. Quantities are clamped to
// zero before any division, so truncation and floor agree everywhere.
func calculateOrders(
	predictions []domain.DemandPrediction,
	byCategory map[string][]domain.InventoryItem,
	safetyStockDays float64,
) []domain.OrderRecommendation {
	ratios := map[string]demandInfo{}
	for _, pred := range predictions {
		ratio := 1.0
		if pred.BaseDemand > 0 {
			ratio = float64(pred.PredictedDemand) / float64(pred.BaseDemand)
		}
		ratios[pred.Item] = demandInfo{ratio: ratio, changePercent: pred.ChangePercent}
	}

	recommendations := []domain.OrderRecommendation{}

	for category, items := range byCategory {
		// Categories without a forecast entry get ratio 1.0: no adjustment.
		info, ok := ratios[category]
		if !ok {
			info = demandInfo{ratio: 1.0}
		}

		for _, item := range items {
			adjustedTarget := int(float64(item.ReorderPoint) * info.ratio * safetyStockDays)
			baseOrder := adjustedTarget - item.Quantity
			if baseOrder < 0 {
				baseOrder = 0
			}

			var orderQty int
			var note string
			switch {
			case item.RemainingHours < 4:
				orderQty = 0
				note = "期限切れ間近のため発注見送り"
			case item.RemainingHours < 8:
				orderQty = baseOrder / 2
				note = "期限が近いため少量発注推奨"
			case info.ratio > 1.2:
				orderQty = baseOrder
				note = fmt.Sprintf("需要増加見込み（+%.0f%%）", info.changePercent)
			case info.ratio < 0.8:
				orderQty = baseOrder / 2
				note = fmt.Sprintf("需要減少見込み（%.0f%%）→ 控えめ発注", info.changePercent)
			default:
				orderQty = baseOrder
				note = "通常発注"
			}

			recommendations = append(recommendations, domain.OrderRecommendation{
				ItemID:                    item.ItemID,
				ItemName:                  item.ItemName,
				Category:                  category,
				CurrentQuantity:           item.Quantity,
				ReorderPoint:              item.ReorderPoint,
				AdjustedTarget:            adjustedTarget,
				DemandRatio:               math.Round(info.ratio*100) / 100,
				RecommendedOrderQuantity:  orderQty,
				RemainingHoursUntilExpiry: item.RemainingHours,
				Note:                      note,
			})
		}
	}

	// Largest orders first; category then item name break ties so repeated
	// runs produce identical output.
	sort.Slice(recommendations, func(i, j int) bool {
		a, b := recommendations[i], recommendations[j]
		if a.RecommendedOrderQuantity != b.RecommendedOrderQuantity {
			return a.RecommendedOrderQuantity > b.RecommendedOrderQuantity
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.ItemName < b.ItemName
	})

	return recommendations
}

// mondayWeekday converts Go's Sunday=0 weekday to the model's Monday=0.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
