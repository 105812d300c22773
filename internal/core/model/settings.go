package model

// Settings defines editable user preferences.
type Settings struct {
	DefaultMode    string
	NotifyOnFinish bool
	LogLevel       string
}

// DefaultSettings returns default settings for the timer.
func DefaultSettings() Settings {
	return Settings{
		DefaultMode:    ModeTask1,
		NotifyOnFinish: true,
		LogLevel:       "info",
	}
}

// StartMode returns the configured mode when the catalog knows it, otherwise
// the catalog default.
func (settings Settings) StartMode(catalog Catalog) string {
	if catalog.Has(settings.DefaultMode) {
		return settings.DefaultMode
	}
	return catalog.Default()
}
