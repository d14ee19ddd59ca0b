/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package mqttclient connects the update manager to an MQTT broker.
package mqttclient

import (
	"fmt"
	"sync/atomic"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/UpdateHub/mqtt-ota/ota"
)

// Handler receives the transport events
type Handler interface {
	HandleConnect(s ota.Subscriber)
	HandleMessage(p ota.Publisher, msg ota.Message)
	HandleConnectionLost(err error)
}

type Options struct {
	BrokerAddress string
	ClientID      string
	Username      string
	Password      string
	KeepAlive     time.Duration
	Timeout       time.Duration
	CleanSession  bool
	// FragmentSize is the largest payload delivered to the handler at once
	FragmentSize int
}

// Client delivers inbound publishes to a Handler as ordered fragments
// and implements ota.Publisher and ota.Subscriber on top of paho
type Client struct {
	client       paho.Client
	handler      Handler
	timeout      time.Duration
	fragmentSize int
	lastID       uint64
}

func New(o Options, h Handler) *Client {
	c := &Client{
		handler:      h,
		timeout:      o.Timeout,
		fragmentSize: o.FragmentSize,
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(o.BrokerAddress)
	opts.SetClientID(o.ClientID)
	opts.SetUsername(o.Username)
	opts.SetPassword(o.Password)
	opts.SetKeepAlive(o.KeepAlive)
	opts.SetCleanSession(o.CleanSession)
	opts.SetAutoReconnect(true)
	// handlers run concurrently, ota.Manager serializes them
	opts.SetOrderMatters(false)
	opts.SetOnConnectHandler(func(paho.Client) {
		log.Info("connected to ", o.BrokerAddress)
		c.handler.HandleConnect(c)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		c.handler.HandleConnectionLost(err)
	})

	c.client = paho.NewClient(opts)

	return c
}

func (c *Client) wait(t paho.Token, what string) error {
	if c.timeout > 0 {
		if !t.WaitTimeout(c.timeout) {
			return fmt.Errorf("%s timed out after %s", what, c.timeout)
		}
	} else {
		t.Wait()
	}

	return t.Error()
}

// Connect connects to the broker. Later reconnections are automatic.
func (c *Client) Connect() error {
	return c.wait(c.client.Connect(), "connect")
}

// Disconnect waits up to "quiesce" for pending work and disconnects
func (c *Client) Disconnect(quiesce time.Duration) {
	c.client.Disconnect(uint(quiesce / time.Millisecond))
}

func (c *Client) Subscribe(topic string, qos byte) error {
	return c.wait(c.client.Subscribe(topic, qos, c.onMessage), "subscribe to "+topic)
}

func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	return c.wait(c.client.Publish(topic, qos, retained, payload), "publish to "+topic)
}

func (c *Client) onMessage(_ paho.Client, m paho.Message) {
	id := atomic.AddUint64(&c.lastID, 1)

	log.Debugf("message %d on '%s' with %d bytes", id, m.Topic(), len(m.Payload()))

	for _, fragment := range Fragment(id, m.Topic(), m.Payload(), c.fragmentSize) {
		c.handler.HandleMessage(c, fragment)
	}
}
