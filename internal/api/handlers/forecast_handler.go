// internal/api/handlers/forecast_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/forecast"
	"github.com/yoichiojima-2/karaage-tencho-kun/internal/timeutil"
)

type ForecastHandler struct {
	model *forecast.Model
	now   func() time.Time
}

func NewForecastHandler(model *forecast.Model) *ForecastHandler {
	return &ForecastHandler{model: model, now: timeutil.NowJST}
}

// WithClock overrides the handler clock. Test use.
func (h *ForecastHandler) WithClock(now func() time.Time) *ForecastHandler {
	h.now = now
	return h
}

type demandRequest struct {
	Weather     string `json:"weather"`
	Temperature any    `json:"temperature"`
	Humidity    any    `json:"humidity"`
}

// PredictDemand runs the demand model for the current hour. Weekday and
// hour come from the store clock, not the caller.
func (h *ForecastHandler) PredictDemand(c *gin.Context) {
	var req demandRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	weather := strings.ToLower(strings.TrimSpace(req.Weather))
	if weather == "" {
		weather = "sunny"
	}
	temperature := 20.0
	if v := coerceFloat(req.Temperature); v != nil {
		temperature = *v
	}
	humidity := 60.0
	if v := coerceFloat(req.Humidity); v != nil {
		humidity = *v
	}

	now := h.now()
	dayOfWeek := (int(now.Weekday()) + 6) % 7

	out, err := h.model.Run(forecast.Conditions{
		Weather:     weather,
		Temperature: temperature,
		Humidity:    humidity,
		DayOfWeek:   dayOfWeek,
		IsWeekend:   dayOfWeek >= 5,
		Hour:        now.Hour(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	result := gin.H{
		"input": gin.H{
			"weather":     weather,
			"temperature": temperature,
			"humidity":    humidity,
			"day_of_week": dayOfWeek,
			"hour":        now.Hour(),
		},
		"predictions": out.Predictions,
		"model_info": gin.H{
			"type":    "random_forest",
			"version": out.ModelVersion,
		},
	}
	if out.Warning != "" {
		result["warning"] = out.Warning
	}
	c.JSON(http.StatusOK, result)
}
