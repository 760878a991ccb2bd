package types

// DayStats are the dashboard KPIs for the current day.
type DayStats struct {
	Executions  int     `json:"executions"`
	Kcal        int     `json:"kcal"`
	DistanceKm  float64 `json:"distanceKm"`
	DurationSec int64   `json:"durationSec"`
}

// StatPoint is one sample of an evolution series, already collapsed to the
// single numeric value of the requested metric.
type StatPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
