// Package main implements the Vehicle Control Container entry point.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vehicle-control/vcc/internal/actuation"
	"github.com/vehicle-control/vcc/internal/api"
	"github.com/vehicle-control/vcc/internal/audit"
	"github.com/vehicle-control/vcc/internal/command"
	"github.com/vehicle-control/vcc/internal/config"
	"github.com/vehicle-control/vcc/internal/metrics"
	"github.com/vehicle-control/vcc/internal/mqtt"
	"github.com/vehicle-control/vcc/internal/publish"
	"github.com/vehicle-control/vcc/internal/relay"
	"github.com/vehicle-control/vcc/internal/sensor"
	"github.com/vehicle-control/vcc/internal/status"
)

const Version = "1.0.0"

func main() {
	log.Printf("Starting Vehicle Control Container v%s", Version)

	// Step 1: Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully")

	// Step 2: Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Step 3: Audit logger
	auditLogger, err := audit.NewLogger(cfg.Audit.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize audit logger: %v", err)
	}
	log.Println("Audit logger initialized")

	// Step 4: Engine kill relay. A missing GPIO sysfs tree (dev box, CI)
	// degrades to a no-op output rather than aborting.
	var killRelay relay.Relay
	gpioRelay, err := relay.NewGPIORelay(cfg.Relay.GPIOBaseDir, cfg.Relay.GPIOPin)
	if err != nil {
		log.Printf("GPIO relay unavailable, running with no-op relay: %v", err)
		killRelay = relay.Noop{}
	} else {
		killRelay = gpioRelay
	}

	// Step 5: Sensor sources and collector
	motion := sensor.NewMotionSource(accelHandle(), cfg.Sensors.MotionThresholdG, cfg.Sensors.FastTimeout)
	collector := sensor.NewCollector(
		sensor.NewEngineTempSource(cfg.Sensors.W1DevicesDir, cfg.Sensors.FastTimeout),
		sensor.NewBatteryVoltageSource(adcHandle(), cfg.Sensors.BatteryADCChannel,
			cfg.Sensors.ADCMaxValue, cfg.Sensors.ADCRefVoltage, cfg.Sensors.VoltageDividerRatio,
			cfg.Sensors.FastTimeout),
		sensor.NewTirePressureSource(cfg.Sensors.TPMSSensorID, cfg.Sensors.TPMSCaptureWindow,
			cfg.Sensors.SlowTimeout, nil),
		gpsSource(cfg),
		motion,
	)
	collector.OnError = func(name string, err error) {
		m.SensorAbsent(name)
		log.Printf("Sensor %s unavailable: %v", name, err)
	}
	log.Println("Sensor collector initialized")

	// Step 6: Status store and actuation gate
	store := status.NewStore()
	gate := actuation.NewGate(killRelay, motion, store)

	// Step 7: Command arbiter
	arbiter := command.NewArbiter(gate)
	arbiter.SetAuditLogger(auditLogger)
	arbiter.SetMetrics(m)

	// Step 8: MQTT channel
	client := mqtt.NewClient(cfg.MQTT, arbiter)
	if err := client.Connect(); err != nil {
		// Retry runs in the background; start degraded rather than abort.
		log.Printf("MQTT broker not reachable yet: %v", err)
	}

	// Step 9: Publish loop
	loop := publish.NewLoop(collector, store, client, cfg.Publish.Interval, cfg.Publish.MinSleep)
	loop.SetMetrics(m)

	loopCtx, cancelLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(loopCtx)
	}()

	// Step 10: HTTP API server
	server := api.NewServer(store, arbiter, client,
		cfg.API.ReadTimeout, cfg.API.WriteTimeout, cfg.API.IdleTimeout)
	server.SetMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(cfg.API.Addr); err != nil {
			serverErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	log.Printf("Vehicle Control Container started successfully")
	log.Printf("Health endpoint: http://localhost%s/api/v1/health", cfg.API.Addr)
	log.Printf("API base URL: http://localhost%s/api/v1", cfg.API.Addr)

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		log.Printf("Received signal %v, initiating graceful shutdown...", sig)
	case err := <-serverErr:
		log.Printf("Server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop the publish loop first so no cycle races the teardown below.
	cancelLoop()
	select {
	case <-loopDone:
		log.Println("Publish loop stopped")
	case <-ctx.Done():
		log.Println("Publish loop did not stop in time")
	}

	// Both command channels drain before the audit log closes so every
	// arbitrated request still gets its audit record.
	if err := server.Stop(ctx); err != nil {
		log.Printf("Error stopping HTTP server: %v", err)
	} else {
		log.Println("HTTP server stopped gracefully")
	}

	// The relay keeps its last commanded state across restarts. An
	// immobilized vehicle must not free itself because the service cycled.
	client.Close()
	log.Println("MQTT client closed")

	if err := auditLogger.Close(); err != nil {
		log.Printf("Error closing audit logger: %v", err)
	}
	log.Println("Audit logger closed")

	log.Println("Vehicle Control Container shutdown complete")
}

// adcHandle returns the battery ADC handle. No converter driver is wired on
// this build; the reading reports absent until one is.
func adcHandle() sensor.ADC {
	return nil
}

// accelHandle returns the accelerometer handle. No IMU driver is wired on
// this build; motion reads absent until one is.
func accelHandle() sensor.Accelerometer {
	return nil
}

// gpsSource opens the serial NMEA feed, degrading to an absent position
// when the device node is missing.
func gpsSource(cfg *config.Config) sensor.Source {
	line, err := sensor.OpenSerialLine(cfg.Sensors.GPSSerialPort)
	if err != nil {
		log.Printf("GPS serial port unavailable: %v", err)
		return sensor.NewPositionSource(nil, cfg.Sensors.FastTimeout)
	}
	return sensor.NewPositionSource(line, cfg.Sensors.FastTimeout)
}
