package config

// Config is the top-level site configuration, corresponding to ivmanto.yml.
type Config struct {
	Addr           string          `yaml:"addr" koanf:"addr"`
	BaseURL        string          `yaml:"base_url" koanf:"base_url"`
	SiteName       string          `yaml:"site_name" koanf:"site_name"`
	BackendURL     string          `yaml:"backend_url" koanf:"backend_url"`
	DataDir        string          `yaml:"data_dir" koanf:"data_dir"`
	LogLevel       string          `yaml:"log_level" koanf:"log_level"`
	AllowedOrigins []string        `yaml:"allowed_origins" koanf:"allowed_origins"`
	Gemini         GeminiConfig    `yaml:"gemini" koanf:"gemini"`
	Analytics      AnalyticsConfig `yaml:"analytics" koanf:"analytics"`
}

// GeminiConfig configures the generative-language gateway.
type GeminiConfig struct {
	APIKey            string `yaml:"api_key,omitempty" koanf:"api_key"`
	Model             string `yaml:"model" koanf:"model"`
	BaseURL           string `yaml:"base_url" koanf:"base_url"`
	RequestsPerMinute int    `yaml:"requests_per_minute" koanf:"requests_per_minute"`
}

// AnalyticsConfig holds the tag-manager and consent settings.
type AnalyticsConfig struct {
	GTMContainerID string `yaml:"gtm_container_id" koanf:"gtm_container_id"`
	MeasurementID  string `yaml:"measurement_id" koanf:"measurement_id"`
	APISecret      string `yaml:"api_secret,omitempty" koanf:"api_secret"`
	ConsentCookie  string `yaml:"consent_cookie" koanf:"consent_cookie"`
	// EventsToken guards GET /api/telemetry/events. Empty disables the
	// endpoint.
	EventsToken string `yaml:"events_token,omitempty" koanf:"events_token"`
}

// Configured reports whether a Gemini API key is present.
func (g GeminiConfig) Configured() bool {
	return g.APIKey != ""
}

// ForwardingEnabled reports whether events can be sent to the GA4
// Measurement Protocol.
func (a AnalyticsConfig) ForwardingEnabled() bool {
	return a.APISecret != "" && a.MeasurementID != ""
}
