package config

import "time"

// AgentConfig is the configuration of the field-device agent. The agent is
// headless and deployed via provisioning scripts, so it is configured from
// environment variables only.
type AgentConfig struct {
	// ServerAddress is the base URL of the central server
	// (e.g. "http://central.local:5000").
	// Env: AGENT_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// DeviceID identifies this device in sync pushes and realtime rooms.
	// Env: AGENT_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// Username and Password are the device account credentials used to
	// obtain a token at startup.
	// Env: AGENT_USERNAME / AGENT_PASSWORD
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// QueuePath is the path of the local SQLite database holding queued
	// offline operations.
	// Env: AGENT_QUEUE_PATH
	QueuePath string `env:"QUEUE_PATH"`

	// SyncInterval is the period of the queue drain job. Defaults to one
	// minute.
	// Env: AGENT_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// RequestTimeout bounds each HTTP call to the central server.
	// Env: AGENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetAgentConfig loads and validates the agent configuration from the
// environment (AGENT_-prefixed variables).
func GetAgentConfig() (*AgentConfig, error) {
	cfg := &AgentConfig{}
	if err := parseEnvPrefixed(cfg, "AGENT_"); err != nil {
		return nil, err
	}

	if cfg.SyncInterval == 0 {
		cfg.SyncInterval = time.Minute
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.QueuePath == "" {
		cfg.QueuePath = "propass-agent.db"
	}

	return cfg, cfg.validate()
}

func (cfg *AgentConfig) validate() error {
	if cfg.ServerAddress == "" || cfg.DeviceID == "" {
		return ErrInvalidAgentConfigs
	}

	return nil
}
