// Package publish sends planned paths to an MQTT broker.
package publish

import (
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/labstack/gommon/log"
)

var Logger = log.New("publish")

var ErrNotConnected = errors.New("publish: mqtt client is not connected")

const (
	connectTimeout = 5 * time.Second
	publishTimeout = 5 * time.Second
	reconnectWait  = 5 * time.Second
)

// Publisher is an MQTT client bound to one topic.
type Publisher struct {
	Mu     sync.Mutex
	Broker string
	Topic  string

	client mqtt.Client
	opts   *mqtt.ClientOptions
}

// NewPublisher connects to broker with the given client id.
func NewPublisher(broker, topic, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)
	p := &Publisher{Broker: broker, Topic: topic, opts: opts}
	if err := p.connect(); err != nil {
		return nil, err
	}
	Logger.Infof("connected mqtt broker [%s] as %s", broker, clientID)
	return p, nil
}

func (p *Publisher) connect() error {
	clt := mqtt.NewClient(p.opts)
	token := clt.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("connect %s: timeout", p.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect %s: %w", p.Broker, err)
	}
	p.client = clt
	return nil
}

// ReconnectClient drops the current client, waits and connects again.
func (p *Publisher) ReconnectClient() error {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	if p.client != nil {
		p.client.Disconnect(250)
		p.client = nil
		Logger.Warn("mqtt client reset")
	}
	time.Sleep(reconnectWait)
	return p.connect()
}

func (p *Publisher) send(payload []byte) error {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	if p.client == nil || !p.client.IsConnected() {
		return ErrNotConnected
	}
	token := p.client.Publish(p.Topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: timeout", p.Topic)
	}
	return token.Error()
}

// Send publishes payload, reconnecting once on failure.
func (p *Publisher) Send(payload []byte) error {
	err := p.send(payload)
	if err == nil {
		Logger.Infof("send path topic:%s", p.Topic)
		return nil
	}
	Logger.Warnf("send path topic:%s: %v", p.Topic, err)
	if rerr := p.ReconnectClient(); rerr != nil {
		return errors.Join(err, rerr)
	}
	return p.send(payload)
}

func (p *Publisher) Close() {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	if p.client != nil {
		p.client.Disconnect(250)
		p.client = nil
	}
}
