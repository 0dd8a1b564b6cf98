//
//
package config

import (
	"fmt"
)

// Validate enforces structural constraints before any worker starts.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validatePublish(cfg); err != nil {
		return fmt.Errorf("publish validation failed: %w", err)
	}

	if err := validateSensors(cfg); err != nil {
		return fmt.Errorf("sensor validation failed: %w", err)
	}

	if err := validateChannels(cfg); err != nil {
		return fmt.Errorf("channel validation failed: %w", err)
	}

	return nil
}

// validatePublish validates publish loop cadence parameters.
func validatePublish(cfg *Config) error {
	if cfg.Publish.Interval <= 0 {
		return fmt.Errorf("publish interval must be positive, got %v", cfg.Publish.Interval)
	}
	if cfg.Publish.MinSleep <= 0 {
		return fmt.Errorf("publish min sleep must be positive, got %v", cfg.Publish.MinSleep)
	}
	if cfg.Publish.MinSleep > cfg.Publish.Interval {
		return fmt.Errorf("publish min sleep %v exceeds interval %v", cfg.Publish.MinSleep, cfg.Publish.Interval)
	}
	return nil
}

// validateSensors validates sensor timeouts and calibration constants.
func validateSensors(cfg *Config) error {
	if cfg.Sensors.FastTimeout <= 0 {
		return fmt.Errorf("sensor fast timeout must be positive, got %v", cfg.Sensors.FastTimeout)
	}
	if cfg.Sensors.SlowTimeout <= 0 {
		return fmt.Errorf("sensor slow timeout must be positive, got %v", cfg.Sensors.SlowTimeout)
	}
	if cfg.Sensors.SlowTimeout < cfg.Sensors.FastTimeout {
		return fmt.Errorf("sensor slow timeout %v must be >= fast timeout %v", cfg.Sensors.SlowTimeout, cfg.Sensors.FastTimeout)
	}
	if cfg.Sensors.TPMSCaptureWindow <= 0 {
		return fmt.Errorf("TPMS capture window must be positive, got %v", cfg.Sensors.TPMSCaptureWindow)
	}
	if cfg.Sensors.TPMSCaptureWindow > cfg.Sensors.SlowTimeout {
		return fmt.Errorf("TPMS capture window %v exceeds slow timeout %v", cfg.Sensors.TPMSCaptureWindow, cfg.Sensors.SlowTimeout)
	}
	if cfg.Sensors.ADCMaxValue <= 0 {
		return fmt.Errorf("ADC max value must be positive, got %v", cfg.Sensors.ADCMaxValue)
	}
	if cfg.Sensors.ADCRefVoltage <= 0 {
		return fmt.Errorf("ADC reference voltage must be positive, got %v", cfg.Sensors.ADCRefVoltage)
	}
	if cfg.Sensors.VoltageDividerRatio <= 0 {
		return fmt.Errorf("voltage divider ratio must be positive, got %v", cfg.Sensors.VoltageDividerRatio)
	}
	if cfg.Sensors.MotionThresholdG <= 0 {
		return fmt.Errorf("motion threshold must be positive, got %v", cfg.Sensors.MotionThresholdG)
	}
	return nil
}

// validateChannels validates the MQTT and HTTP channel settings.
func validateChannels(cfg *Config) error {
	if cfg.MQTT.BrokerHost == "" {
		return fmt.Errorf("MQTT broker host must not be empty")
	}
	if cfg.MQTT.BrokerPort <= 0 || cfg.MQTT.BrokerPort > 65535 {
		return fmt.Errorf("MQTT broker port out of range: %d", cfg.MQTT.BrokerPort)
	}
	if cfg.MQTT.PublishTopic == "" {
		return fmt.Errorf("MQTT publish topic must not be empty")
	}
	if cfg.MQTT.SubscribeTopic == "" {
		return fmt.Errorf("MQTT subscribe topic must not be empty")
	}
	if cfg.API.Addr == "" {
		return fmt.Errorf("API listen address must not be empty")
	}
	return nil
}
