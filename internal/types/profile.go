package types

// Profile is the onboarding profile owned by the backend. GoalKcalDaily is
// optional: the bonus narrative is only evaluated when it is present and
// positive.
type Profile struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	BirthDate     string  `json:"birthDate,omitempty"`
	HeightCm      float64 `json:"heightCm,omitempty"`
	WeightKg      float64 `json:"weightKg,omitempty"`
	GoalKcalDaily *int    `json:"goalKcalDaily,omitempty"`
}
