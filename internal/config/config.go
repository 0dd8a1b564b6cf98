package config

import "time"

// Config holds the full runtime configuration of the container.
type Config struct {
	MQTT    MQTTConfig    `yaml:"mqtt"`
	API     APIConfig     `yaml:"api"`
	Publish PublishConfig `yaml:"publish"`
	Sensors SensorConfig  `yaml:"sensors"`
	Relay   RelayConfig   `yaml:"relay"`
	Audit   AuditConfig   `yaml:"audit"`
}

// MQTTConfig describes the broker session and the two fixed topics.
type MQTTConfig struct {
	BrokerHost     string `yaml:"broker_host"`
	BrokerPort     int    `yaml:"broker_port"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	UseTLS         bool   `yaml:"use_tls"`
	PublishTopic   string `yaml:"publish_topic"`
	SubscribeTopic string `yaml:"subscribe_topic"`
}

// APIConfig describes the local HTTP interface.
type APIConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// PublishConfig describes the telemetry publish loop cadence.
type PublishConfig struct {
	Interval time.Duration `yaml:"interval"`
	// MinSleep is the floor of the inter-cycle sleep so a slow cycle can
	// compress the schedule but never spin with zero delay.
	MinSleep time.Duration `yaml:"min_sleep"`
}

// SensorConfig describes sensor handles, timeouts and calibration constants.
type SensorConfig struct {
	// FastTimeout bounds the bus/file-backed sources.
	FastTimeout time.Duration `yaml:"fast_timeout"`
	// SlowTimeout bounds the tire pressure receiver, the slowest source.
	SlowTimeout time.Duration `yaml:"slow_timeout"`

	W1DevicesDir  string `yaml:"w1_devices_dir"`
	GPSSerialPort string `yaml:"gps_serial_port"`

	TPMSSensorID      string        `yaml:"tpms_sensor_id"`
	TPMSCaptureWindow time.Duration `yaml:"tpms_capture_window"`

	BatteryADCChannel   int     `yaml:"battery_adc_channel"`
	ADCMaxValue         float64 `yaml:"adc_max_value"`
	ADCRefVoltage       float64 `yaml:"adc_ref_voltage"`
	VoltageDividerRatio float64 `yaml:"voltage_divider_ratio"`

	MotionThresholdG float64 `yaml:"motion_threshold_g"`
}

// RelayConfig describes the engine kill relay output.
type RelayConfig struct {
	GPIOPin     int    `yaml:"gpio_pin"`
	GPIOBaseDir string `yaml:"gpio_base_dir"`
}

// AuditConfig describes the append-only actuation audit log.
type AuditConfig struct {
	Dir string `yaml:"dir"`
}

// Baseline returns the built-in default configuration.
func Baseline() *Config {
	return &Config{
		MQTT: MQTTConfig{
			BrokerHost:     "localhost",
			BrokerPort:     8883,
			UseTLS:         true,
			PublishTopic:   "bike/data/1",
			SubscribeTopic: "bike/commands/1",
		},
		API: APIConfig{
			Addr:         ":5000",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Publish: PublishConfig{
			Interval: 15 * time.Second,
			MinSleep: 1 * time.Second,
		},
		Sensors: SensorConfig{
			FastTimeout:         800 * time.Millisecond,
			SlowTimeout:         8 * time.Second,
			W1DevicesDir:        "/sys/bus/w1/devices",
			GPSSerialPort:       "/dev/ttyAMA1",
			TPMSSensorID:        "12345",
			TPMSCaptureWindow:   5 * time.Second,
			BatteryADCChannel:   0,
			ADCMaxValue:         1023.0,
			ADCRefVoltage:       3.3,
			VoltageDividerRatio: 2.0,
			MotionThresholdG:    0.15,
		},
		Relay: RelayConfig{
			GPIOPin:     21,
			GPIOBaseDir: "/sys/class/gpio",
		},
		Audit: AuditConfig{
			Dir: "logs",
		},
	}
}
