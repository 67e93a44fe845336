// internal/weather/client.go
package weather

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/timeutil"
)

const (
	defaultBaseURL  = "https://api.open-meteo.com"
	forecastPath    = "/v1/forecast"
	defaultHours    = 24
	maxHours        = 168
	hourlyVariables = "temperature_2m,precipitation,weathercode,relative_humidity_2m,wind_speed_10m"
)

// Client fetches hourly forecasts from Open-Meteo. The API is free and
// unauthenticated.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(1).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{http: httpClient}
}

// openMeteoResponse mirrors the hourly block of the Open-Meteo payload.
type openMeteoResponse struct {
	Hourly struct {
		Time             []string  `json:"time"`
		Temperature2m    []float64 `json:"temperature_2m"`
		Precipitation    []float64 `json:"precipitation"`
		WeatherCode      []int     `json:"weathercode"`
		RelativeHumidity []float64 `json:"relative_humidity_2m"`
		WindSpeed10m     []float64 `json:"wind_speed_10m"`
	} `json:"hourly"`
}

// HourEntry is one hour of forecast annotated with demand multipliers.
type HourEntry struct {
	Time            string       `json:"time"`
	TemperatureC    float64      `json:"temperature_c"`
	PrecipitationMm float64      `json:"precipitation_mm"`
	HumidityPercent *float64     `json:"humidity_percent"`
	WindSpeedKmh    *float64     `json:"wind_speed_kmh"`
	WeatherCode     int          `json:"weather_code"`
	WeatherJa       string       `json:"weather_ja"`
	WeatherEn       string       `json:"weather_en"`
	WeatherIcon     string       `json:"weather_icon"`
	DemandImpact    DemandImpact `json:"demand_impact"`
}

// Location echoes the requested coordinates.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Summary aggregates the forecast window.
type Summary struct {
	ForecastHours        int     `json:"forecast_hours"`
	AverageTemperatureC  float64 `json:"average_temperature_c"`
	TotalPrecipitationMm float64 `json:"total_precipitation_mm"`
	AverageTrafficImpact float64 `json:"average_traffic_impact"`
}

// ForecastResult is the hourly weather response.
type ForecastResult struct {
	Location       Location    `json:"location"`
	Summary        Summary     `json:"summary"`
	HourlyForecast []HourEntry `json:"hourly_forecast"`
}

// HourlyForecast fetches up to a week of hourly weather for the given
// coordinates and annotates each hour with demand multipliers.
func (c *Client) HourlyForecast(ctx context.Context, latitude, longitude float64, hours int) (*ForecastResult, error) {
	if hours <= 0 {
		hours = defaultHours
	}
	if hours > maxHours {
		hours = maxHours
	}
	forecastDays := hours/24 + 1

	var payload openMeteoResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":      strconv.FormatFloat(latitude, 'f', -1, 64),
			"longitude":     strconv.FormatFloat(longitude, 'f', -1, 64),
			"hourly":        hourlyVariables,
			"timezone":      "Asia/Tokyo",
			"forecast_days": strconv.Itoa(forecastDays),
		}).
		SetResult(&payload).
		Get(forecastPath)
	if err != nil {
		return nil, fmt.Errorf("天気データの取得に失敗: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("天気データの取得に失敗: %s", resp.Status())
	}

	hourly := payload.Hourly
	n := len(hourly.Time)
	if n > hours {
		n = hours
	}

	entries := make([]HourEntry, 0, n)
	sumTemp := 0.0
	totalPrecip := 0.0
	sumTraffic := 0.0
	for i := 0; i < n; i++ {
		temp := valueAt(hourly.Temperature2m, i)
		precip := valueAt(hourly.Precipitation, i)
		code := 0
		if i < len(hourly.WeatherCode) {
			code = hourly.WeatherCode[i]
		}

		desc := Describe(code)
		impact := CalculateDemandImpact(temp, precip, code)

		entries = append(entries, HourEntry{
			Time:            hourly.Time[i],
			TemperatureC:    temp,
			PrecipitationMm: precip,
			HumidityPercent: optionalAt(hourly.RelativeHumidity, i),
			WindSpeedKmh:    optionalAt(hourly.WindSpeed10m, i),
			WeatherCode:     code,
			WeatherJa:       desc.Ja,
			WeatherEn:       desc.En,
			WeatherIcon:     desc.Icon,
			DemandImpact:    impact,
		})

		sumTemp += temp
		totalPrecip += precip
		sumTraffic += impact.TrafficImpact
	}

	summary := Summary{ForecastHours: len(entries), AverageTrafficImpact: 1.0}
	if len(entries) > 0 {
		summary.AverageTemperatureC = timeutil.Round1(sumTemp / float64(len(entries)))
		summary.TotalPrecipitationMm = timeutil.Round1(totalPrecip)
		summary.AverageTrafficImpact = round2(sumTraffic / float64(len(entries)))
	}

	return &ForecastResult{
		Location:       Location{Latitude: latitude, Longitude: longitude},
		Summary:        summary,
		HourlyForecast: entries,
	}, nil
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func optionalAt(values []float64, i int) *float64 {
	if i < len(values) {
		v := values[i]
		return &v
	}
	return nil
}
