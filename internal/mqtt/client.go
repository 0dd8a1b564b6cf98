package mqtt

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/vehicle-control/vcc/internal/command"
	"github.com/vehicle-control/vcc/internal/config"
)

// connectTimeout bounds the initial broker handshake; afterwards the client
// reconnects on its own.
const connectTimeout = 10 * time.Second

// publishTimeout bounds one telemetry publish so a dead broker cannot stall
// the publish loop past its own cycle.
const publishTimeout = 5 * time.Second

// CommandSink defines the minimal interface the inbound channel needs from
// the command arbiter.
type CommandSink interface {
	Submit(ctx context.Context, req command.Request) command.Result
}

// Client wraps the broker session for both channel directions.
type Client struct {
	cli  paho.Client
	cfg  config.MQTTConfig
	sink CommandSink
}

// NewClient creates the broker client. The subscription is (re)established
// on every successful connect so command delivery survives reconnects.
func NewClient(cfg config.MQTTConfig, sink CommandSink) *Client {
	c := &Client{cfg: cfg, sink: sink}

	scheme := "tcp"
	opts := paho.NewClientOptions()
	if cfg.UseTLS {
		scheme = "ssl"
		// System CA store; broker certificates are expected to be public-CA
		// signed like any other fleet endpoint.
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.BrokerHost, cfg.BrokerPort))
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(10 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetOnConnectHandler(c.onConnect)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.Printf("MQTT connection lost: %v", err)
	})

	c.cli = paho.NewClient(opts)
	return c
}

// tokenErr normalizes a broker operation outcome, distinguishing a deadline
// miss (token.Error is typically still nil then) from a broker-reported
// error.
func tokenErr(token paho.Token, timeout time.Duration) error {
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("timed out after %v", timeout)
	}
	return token.Error()
}

// Connect establishes the broker session and the command subscription. A
// timeout here is not fatal: retry is enabled, so the session comes up in
// the background once the broker is reachable.
func (c *Client) Connect() error {
	if err := tokenErr(c.cli.Connect(), connectTimeout); err != nil {
		return fmt.Errorf("MQTT connect failed: %w", err)
	}
	return nil
}

// onConnect subscribes to the command topic. Runs on first connect and every
// reconnect.
func (c *Client) onConnect(cli paho.Client) {
	log.Printf("Connected to MQTT broker %s:%d", c.cfg.BrokerHost, c.cfg.BrokerPort)

	token := cli.Subscribe(c.cfg.SubscribeTopic, 1, c.onCommand)
	if err := tokenErr(token, connectTimeout); err != nil {
		log.Printf("Failed to subscribe to %s: %v", c.cfg.SubscribeTopic, err)
		return
	}
	log.Printf("Subscribed to %s", c.cfg.SubscribeTopic)
}

// onCommand handles one inbound command message. Fire-and-forget: there is
// no response path, so every outcome is only logged.
func (c *Client) onCommand(_ paho.Client, msg paho.Message) {
	var payload struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		log.Printf("Ignoring malformed command on %s: %v", msg.Topic(), err)
		return
	}

	action := command.Action(payload.Command)
	if action != command.ActionImmobilize && action != command.ActionResume {
		log.Printf("Ignoring unknown command %q on %s", payload.Command, msg.Topic())
		return
	}

	result := c.sink.Submit(context.Background(), command.Request{
		Action: action,
		Origin: command.OriginMQTT,
	})
	log.Printf("Command %s via MQTT: %s (%s)", action, result.Code, result.CorrelationID)
}

// PublishTelemetry publishes one aggregated record to the data topic at
// QoS 1.
func (c *Client) PublishTelemetry(payload []byte) error {
	token := c.cli.Publish(c.cfg.PublishTopic, 1, false, payload)
	if err := tokenErr(token, publishTimeout); err != nil {
		return fmt.Errorf("publish to %s failed: %w", c.cfg.PublishTopic, err)
	}
	return nil
}

// Connected reports whether the broker session is currently up.
func (c *Client) Connected() bool {
	return c.cli.IsConnectionOpen()
}

// Close disconnects from the broker, allowing a short drain for in-flight
// messages.
func (c *Client) Close() {
	c.cli.Disconnect(250)
}
