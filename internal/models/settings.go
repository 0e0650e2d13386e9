package models

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// AppSettings is owned by the application shell and handed to the
// calculators read-only.
type AppSettings struct {
	PetrolRate   float64 `json:"petrolRate"`   // currency per litre
	Mileage      float64 `json:"mileage"`      // km per litre
	TankCapacity float64 `json:"tankCapacity"` // litres
	Theme        Theme   `json:"theme"`
}

// DefaultSettings mirrors the values a fresh install starts with.
func DefaultSettings() AppSettings {
	return AppSettings{
		PetrolRate:   101.42,
		Mileage:      55,
		TankCapacity: 5.25,
		Theme:        ThemeSystem,
	}
}
