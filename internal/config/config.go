// internal/config/config.go
package config

// Well-known controller driver ports. Only the state port is served here.
const (
	TCPPortMotion = 50240
	TCPPortState  = 50241
	TCPPortIO     = 50242
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STATESERVER_"

type Config struct {
	Server     ServerConfig     `yaml:"server" envPrefix:"SERVER_"`
	Controller ControllerConfig `yaml:"controller" envPrefix:"CONTROLLER_"`
	IO         IOConfig         `yaml:"io" envPrefix:"IO_"`
	Log        LogConfig        `yaml:"log" envPrefix:"LOG_"`
	Metrics    MetricsConfig    `yaml:"metrics" envPrefix:"METRICS_"`
}

// ---- SERVER ----

type ServerConfig struct {
	Listen        string `yaml:"listen" env:"LISTEN"`
	MaxClients    int    `yaml:"max_clients" env:"MAX_CLIENTS"`
	SendTimeoutMs int    `yaml:"send_timeout_ms" env:"SEND_TIMEOUT_MS"`
}

// ---- CONTROLLER ----

type ControllerConfig struct {
	Variant               string `yaml:"variant" env:"VARIANT"`
	InterpolationPeriodMs int    `yaml:"interpolation_period_ms" env:"INTERPOLATION_PERIOD_MS"`
	StatusPollMs          int    `yaml:"status_poll_ms" env:"STATUS_POLL_MS"`

	// StatusBase is the discrete input address of the first status kind.
	// One input per kind, in status.Kind order.
	StatusBase uint16 `yaml:"status_base"`

	// AlarmBase is the first of 4 holding registers:
	// alarm status word, alarm code (hi, lo), axis configuration fault.
	AlarmBase uint16 `yaml:"alarm_base"`

	Groups []GroupConfig `yaml:"groups"`
}

// GroupConfig is one control group's feedback geometry.
// Input registers from FeedbackBase: Axes positions, then Axes velocities,
// each a float32 register pair.
type GroupConfig struct {
	No           int    `yaml:"no"`
	Axes         int    `yaml:"axes"`
	FeedbackBase uint16 `yaml:"feedback_base"`
}

// ---- IO LINK ----

type IOConfig struct {
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT"`
	UnitID    uint8  `yaml:"unit_id" env:"UNIT_ID"`
	TimeoutMs int    `yaml:"timeout_ms" env:"TIMEOUT_MS"`

	// FeedbackCoilBase is the coil address of the first feedback output (11120).
	FeedbackCoilBase uint16 `yaml:"feedback_coil_base"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level      string `yaml:"level" env:"LEVEL"`
	Format     string `yaml:"format" env:"FORMAT"`
	File       string `yaml:"file" env:"FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Listen string `yaml:"listen" env:"LISTEN"`
}
