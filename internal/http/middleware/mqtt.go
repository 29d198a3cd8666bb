package middleware

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/model"
)

var (
	mqttClient mqtt.Client
	brokerURL  = "tcp://0.0.0.0:1883" // Default MQTT broker URL
)

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// Initialize MQTT client
func CreateMQTTClient(clientName string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	mqttClient = mqtt.NewClient(opts)
	if token := mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}

	log.Info().Str("client", clientName).Msg("MQTT client initialized")
	return mqttClient, nil
}

// SetBrokerURL allows configuration of the MQTT broker URL
func SetBrokerURL(url string) {
	brokerURL = url
}

// StateTopic is where displays listen for phase updates of their mosque.
func StateTopic(mosqueKey string) string {
	return fmt.Sprintf("mosque/%s/state", mosqueKey)
}

// MQTTPublisher pushes phase-state changes to every display of a mosque.
// The message is retained so a display that (re)connects between sweeps
// immediately sees the current phase.
type MQTTPublisher struct {
	client mqtt.Client
}

func NewMQTTPublisher(client mqtt.Client) *MQTTPublisher {
	return &MQTTPublisher{client: client}
}

func (p *MQTTPublisher) PublishState(mosqueKey string, state model.PhaseState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	token := p.client.Publish(StateTopic(mosqueKey), 1, true, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish state for mosque %s: %v", mosqueKey, token.Error())
	}
	return nil
}

// CleanupMQTT disconnects the main MQTT client
func CleanupMQTT() {
	if mqttClient != nil {
		mqttClient.Disconnect(250)
		log.Info().Msg("MQTT client disconnected")
	}
}
