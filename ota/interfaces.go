/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package ota

// MQTT delivery levels
const (
	QoSAtMostOnce  byte = 0
	QoSAtLeastOnce byte = 1
	QoSExactlyOnce byte = 2
)

// Message is a fragment of an inbound publish. Fragments of the same
// publish share ID; only the first one carries Topic.
type Message struct {
	Topic       string
	ID          uint64
	Payload     []byte
	Offset      int64
	TotalLength int64
}

type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

type Subscriber interface {
	Subscribe(topic string, qos byte) error
}

// Restarter restarts the device. A successful call is not expected to
// return.
type Restarter interface {
	Reboot() error
}
