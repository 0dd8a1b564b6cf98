package config

import (
	"testing"
	"time"
)

func TestValidateNil(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"zero publish interval", func(c *Config) { c.Publish.Interval = 0 }},
		{"negative min sleep", func(c *Config) { c.Publish.MinSleep = -time.Second }},
		{"min sleep exceeds interval", func(c *Config) { c.Publish.MinSleep = 20 * time.Second }},
		{"zero fast timeout", func(c *Config) { c.Sensors.FastTimeout = 0 }},
		{"slow timeout below fast", func(c *Config) { c.Sensors.SlowTimeout = 100 * time.Millisecond }},
		{"zero capture window", func(c *Config) { c.Sensors.TPMSCaptureWindow = 0 }},
		{"capture window exceeds slow timeout", func(c *Config) { c.Sensors.TPMSCaptureWindow = time.Minute }},
		{"zero ADC max", func(c *Config) { c.Sensors.ADCMaxValue = 0 }},
		{"negative reference voltage", func(c *Config) { c.Sensors.ADCRefVoltage = -3.3 }},
		{"zero divider ratio", func(c *Config) { c.Sensors.VoltageDividerRatio = 0 }},
		{"zero motion threshold", func(c *Config) { c.Sensors.MotionThresholdG = 0 }},
		{"empty broker host", func(c *Config) { c.MQTT.BrokerHost = "" }},
		{"broker port out of range", func(c *Config) { c.MQTT.BrokerPort = 70000 }},
		{"empty publish topic", func(c *Config) { c.MQTT.PublishTopic = "" }},
		{"empty subscribe topic", func(c *Config) { c.MQTT.SubscribeTopic = "" }},
		{"empty API address", func(c *Config) { c.API.Addr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Baseline()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("Expected validation to fail")
			}
		})
	}
}
