package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the optional configuration file checked by Load.
const DefaultFile = "config.yaml"

// Load merges Baseline() defaults + optional config.yaml + VCC_* env overrides.
// Environment variables win over the file so a deployment can pin single
// values without editing the file.
func Load() (*Config, error) {
	cfg := Baseline()

	if _, err := os.Stat(DefaultFile); err == nil {
		if err := loadFromFile(DefaultFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", DefaultFile, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadFile behaves like Load but reads the given YAML file unconditionally.
func LoadFile(path string) (*Config, error) {
	cfg := Baseline()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile decodes YAML over the current config so absent keys keep
// their defaults.
func loadFromFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, cfg)
}

// applyEnvOverrides applies VCC_* environment variables to the config.
func applyEnvOverrides(cfg *Config) {
	cfg.MQTT.BrokerHost = GetEnvVar("VCC_MQTT_BROKER_HOST", cfg.MQTT.BrokerHost)
	cfg.MQTT.BrokerPort = GetEnvInt("VCC_MQTT_BROKER_PORT", cfg.MQTT.BrokerPort)
	cfg.MQTT.Username = GetEnvVar("VCC_MQTT_USERNAME", cfg.MQTT.Username)
	cfg.MQTT.Password = GetEnvVar("VCC_MQTT_PASSWORD", cfg.MQTT.Password)
	cfg.MQTT.PublishTopic = GetEnvVar("VCC_MQTT_PUBLISH_TOPIC", cfg.MQTT.PublishTopic)
	cfg.MQTT.SubscribeTopic = GetEnvVar("VCC_MQTT_SUBSCRIBE_TOPIC", cfg.MQTT.SubscribeTopic)
	cfg.MQTT.UseTLS = GetEnvBool("VCC_MQTT_USE_TLS", cfg.MQTT.UseTLS)

	cfg.API.Addr = GetEnvVar("VCC_API_ADDR", cfg.API.Addr)
	cfg.API.ReadTimeout = GetEnvDuration("VCC_API_READ_TIMEOUT", cfg.API.ReadTimeout)
	cfg.API.WriteTimeout = GetEnvDuration("VCC_API_WRITE_TIMEOUT", cfg.API.WriteTimeout)
	cfg.API.IdleTimeout = GetEnvDuration("VCC_API_IDLE_TIMEOUT", cfg.API.IdleTimeout)

	cfg.Publish.Interval = GetEnvDuration("VCC_PUBLISH_INTERVAL", cfg.Publish.Interval)
	cfg.Publish.MinSleep = GetEnvDuration("VCC_PUBLISH_MIN_SLEEP", cfg.Publish.MinSleep)

	cfg.Sensors.FastTimeout = GetEnvDuration("VCC_SENSOR_FAST_TIMEOUT", cfg.Sensors.FastTimeout)
	cfg.Sensors.SlowTimeout = GetEnvDuration("VCC_SENSOR_SLOW_TIMEOUT", cfg.Sensors.SlowTimeout)
	cfg.Sensors.W1DevicesDir = GetEnvVar("VCC_SENSOR_W1_DEVICES_DIR", cfg.Sensors.W1DevicesDir)
	cfg.Sensors.GPSSerialPort = GetEnvVar("VCC_SENSOR_GPS_SERIAL_PORT", cfg.Sensors.GPSSerialPort)
	cfg.Sensors.TPMSSensorID = GetEnvVar("VCC_SENSOR_TPMS_ID", cfg.Sensors.TPMSSensorID)
	cfg.Sensors.TPMSCaptureWindow = GetEnvDuration("VCC_SENSOR_TPMS_CAPTURE_WINDOW", cfg.Sensors.TPMSCaptureWindow)
	cfg.Sensors.BatteryADCChannel = GetEnvInt("VCC_SENSOR_BATTERY_ADC_CHANNEL", cfg.Sensors.BatteryADCChannel)
	cfg.Sensors.ADCMaxValue = GetEnvFloat("VCC_SENSOR_ADC_MAX_VALUE", cfg.Sensors.ADCMaxValue)
	cfg.Sensors.ADCRefVoltage = GetEnvFloat("VCC_SENSOR_ADC_REF_VOLTAGE", cfg.Sensors.ADCRefVoltage)
	cfg.Sensors.VoltageDividerRatio = GetEnvFloat("VCC_SENSOR_VOLTAGE_DIVIDER_RATIO", cfg.Sensors.VoltageDividerRatio)
	cfg.Sensors.MotionThresholdG = GetEnvFloat("VCC_SENSOR_MOTION_THRESHOLD_G", cfg.Sensors.MotionThresholdG)

	cfg.Relay.GPIOPin = GetEnvInt("VCC_RELAY_GPIO_PIN", cfg.Relay.GPIOPin)
	cfg.Relay.GPIOBaseDir = GetEnvVar("VCC_RELAY_GPIO_BASE_DIR", cfg.Relay.GPIOBaseDir)

	cfg.Audit.Dir = GetEnvVar("VCC_AUDIT_DIR", cfg.Audit.Dir)
}

// GetEnvVar returns the value of an environment variable with a default.
func GetEnvVar(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvDuration returns the value of an environment variable as a duration with a default.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvFloat returns the value of an environment variable as a float64 with a default.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// GetEnvInt returns the value of an environment variable as an int with a default.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// GetEnvBool returns the value of an environment variable as a bool with a default.
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
