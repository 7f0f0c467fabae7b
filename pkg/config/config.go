package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial   SerialConfig   `yaml:"serial"`
	Sampling SamplingConfig `yaml:"sampling"`
	Console  ConsoleConfig  `yaml:"console"`
	Mock     MockConfig     `yaml:"mock"`
}

// SerialConfig contains serial port configuration for the ADC board.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// SamplingConfig contains the sampling schedule and batch size.
type SamplingConfig struct {
	Period   time.Duration `yaml:"period"`    // Interval between ADC reads
	SlotSize int           `yaml:"slot_size"` // Readings per buffer slot before handoff
}

// ConsoleConfig contains interactive console parameters.
type ConsoleConfig struct {
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // Bounded wait for the shared average lock
	PollInterval time.Duration `yaml:"poll_interval"` // Sleep between input polls when idle
}

// MockConfig contains mock ADC source configuration.
type MockConfig struct {
	Bias       int           `yaml:"bias"`        // Center of the simulated waveform (counts)
	Amplitude  int           `yaml:"amplitude"`   // Waveform swing (counts)
	NoiseLevel int           `yaml:"noise_level"` // Noise amplitude (counts)
	WavePeriod time.Duration `yaml:"wave_period"` // Full waveform cycle duration
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0",
			BaudRate: 115200,
		},
		Sampling: SamplingConfig{
			Period:   100 * time.Millisecond,
			SlotSize: 10,
		},
		Console: ConsoleConfig{
			ReadTimeout:  50 * time.Millisecond,
			PollInterval: 10 * time.Millisecond,
		},
		Mock: MockConfig{
			Bias:       2048,
			Amplitude:  1024,
			NoiseLevel: 16,
			WavePeriod: 20 * time.Second,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Sampling.Period == 0 {
		c.Sampling.Period = def.Sampling.Period
	}
	if c.Sampling.SlotSize <= 0 {
		c.Sampling.SlotSize = def.Sampling.SlotSize
	}

	if c.Console.ReadTimeout == 0 {
		c.Console.ReadTimeout = def.Console.ReadTimeout
	}
	if c.Console.PollInterval == 0 {
		c.Console.PollInterval = def.Console.PollInterval
	}

	if c.Mock.Bias == 0 {
		c.Mock.Bias = def.Mock.Bias
	}
	if c.Mock.Amplitude == 0 {
		c.Mock.Amplitude = def.Mock.Amplitude
	}
	if c.Mock.WavePeriod == 0 {
		c.Mock.WavePeriod = def.Mock.WavePeriod
	}
}
