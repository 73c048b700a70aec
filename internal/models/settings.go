package models

import "time"

// Settings holds a user's travel and application preferences
type Settings struct {
	// Travel preferences
	PreferredAirline string `json:"preferredAirline" validate:"max=100"`
	SeatPreference   string `json:"seatPreference" validate:"omitempty,oneof=window aisle middle"`
	MealPreference   string `json:"mealPreference" validate:"omitempty,oneof=regular vegetarian vegan halal kosher gluten-free"`
	ClassPreference  string `json:"classPreference" validate:"omitempty,oneof=economy premium business first"`

	// Notifications
	FlightUpdates    bool `json:"flightUpdates"`
	BaggageAlerts    bool `json:"baggageAlerts"`
	CheckinReminders bool `json:"checkinReminders"`

	// Privacy & security
	DataSharing bool `json:"dataSharing"`
	TwoFactor   bool `json:"twoFactor"`

	// App preferences
	Theme    string `json:"theme" validate:"omitempty,oneof=light dark"`
	Units    string `json:"units" validate:"omitempty,oneof=metric imperial"`
	Language string `json:"language" validate:"omitempty,bcp47_language_tag"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// DefaultSettings returns the settings a new user starts with
func DefaultSettings() Settings {
	return Settings{
		FlightUpdates:    true,
		BaggageAlerts:    true,
		CheckinReminders: true,
		Theme:            "light",
		Units:            "metric",
		Language:         "en",
	}
}
