package config

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultConsentCookie = "cookie_consent"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:           ":8080",
		BaseURL:        "https://ivmanto.com",
		SiteName:       "ivmanto.com",
		DataDir:        "data",
		LogLevel:       "info",
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		Gemini: GeminiConfig{
			Model:             DefaultGeminiModel,
			BaseURL:           DefaultGeminiBaseURL,
			RequestsPerMinute: 30,
		},
		Analytics: AnalyticsConfig{
			ConsentCookie: DefaultConsentCookie,
		},
	}
}
