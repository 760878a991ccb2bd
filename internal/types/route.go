package types

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Route struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Start      LatLng  `json:"start"`
	End        LatLng  `json:"end"`
	DistanceKm float64 `json:"distanceKm,omitempty"`
}
