// internal/forecast/model.go
package forecast

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/yoichiojima-2/karaage-tencho-kun/internal/domain"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/timeutil"
)

// fallbackWeather substitutes for weather values outside the trained set.
const fallbackWeather = "cloudy"

const fallbackBaseDemand = 50

// Model predicts per-category demand from weather and time features. The
// artifact is loaded once and cached for the process lifetime; Reset is
// the only invalidation.
type Model struct {
	path string

	mu       sync.Mutex
	artifact *Artifact
}

func NewModel(path string) *Model {
	return &Model{path: path}
}

func (m *Model) load() (*Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.artifact != nil {
		return m.artifact, nil
	}
	a, err := loadArtifact(m.path)
	if err != nil {
		return nil, domain.NewModelUnavailableError(err)
	}
	m.artifact = a
	return a, nil
}

// Reset drops the cached artifact. Test/administrative use.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifact = nil
}

// Conditions are the prediction inputs. DayOfWeek is Monday=0, matching
// the training features.
type Conditions struct {
	Weather     string
	Temperature float64
	Humidity    float64
	DayOfWeek   int
	IsWeekend   bool
	Hour        int
}

// Output is one prediction run together with the version of the artifact
// that produced it.
type Output struct {
	Predictions  []domain.DemandPrediction
	Warning      string
	ModelVersion string
}

// Run evaluates the model from a single artifact load, so the reported
// version always belongs to the artifact the predictions came from.
func (m *Model) Run(c Conditions) (*Output, error) {
	a, err := m.load()
	if err != nil {
		return nil, err
	}

	predictions, warning, err := predict(a, c)
	if err != nil {
		return nil, err
	}
	return &Output{Predictions: predictions, Warning: warning, ModelVersion: a.Version}, nil
}

// Predict is the forecast surface the optimizer depends on; it has no use
// for the artifact metadata.
func (m *Model) Predict(c Conditions) ([]domain.DemandPrediction, string, error) {
	out, err := m.Run(c)
	if err != nil {
		return nil, "", err
	}
	return out.Predictions, out.Warning, nil
}

// predict returns one prediction per trained category, sorted by absolute
// change percent descending (largest swings first, original category order
// as the stable tie-break), plus a non-fatal warning when the weather
// value fell back to cloudy.
func predict(a *Artifact, c Conditions) ([]domain.DemandPrediction, string, error) {
	weather := strings.ToLower(strings.TrimSpace(c.Weather))
	warning := ""
	weatherIdx := indexOf(a.WeatherClasses, weather)
	if weatherIdx < 0 {
		warning = fmt.Sprintf("'%s' は未対応です（対応: %s）。%s として予測します",
			weather, strings.Join(a.WeatherClasses, ", "), fallbackWeather)
		weatherIdx = indexOf(a.WeatherClasses, fallbackWeather)
		if weatherIdx < 0 {
			return nil, "", domain.NewModelUnavailableError(
				fmt.Errorf("artifact weather classes lack the %q fallback", fallbackWeather))
		}
	}

	isWeekend := 0.0
	if c.IsWeekend {
		isWeekend = 1.0
	}

	predictions := make([]domain.DemandPrediction, 0, len(a.Items))
	for _, item := range a.Items {
		itemIdx := indexOf(a.ItemClasses, item)
		if itemIdx < 0 {
			return nil, "", domain.NewModelUnavailableError(
				fmt.Errorf("item %q missing from artifact encoder classes", item))
		}

		features := []float64{
			float64(weatherIdx),
			c.Temperature,
			c.Humidity,
			float64(c.DayOfWeek),
			isWeekend,
			float64(c.Hour),
			float64(itemIdx),
		}

		sum := 0.0
		for i := range a.Trees {
			sum += a.Trees[i].Predict(features)
		}
		predicted := int(sum / float64(len(a.Trees)))
		if predicted < 0 {
			predicted = 0
		}

		base := fallbackBaseDemand
		if b, ok := a.BaseDemand[item]; ok {
			base = b
		}
		changePct := timeutil.Round1((float64(predicted)/float64(base) - 1) * 100)

		predictions = append(predictions, domain.DemandPrediction{
			Item:            item,
			PredictedDemand: predicted,
			BaseDemand:      base,
			ChangePercent:   changePct,
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return abs(predictions[i].ChangePercent) > abs(predictions[j].ChangePercent)
	})

	return predictions, warning, nil
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
