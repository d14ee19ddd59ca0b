/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package mqttclient

import (
	"github.com/UpdateHub/mqtt-ota/ota"
)

// Fragment splits an inbound publish into fragments of at most "size"
// bytes. Only the first fragment carries the topic. An empty payload
// yields a single empty fragment.
func Fragment(id uint64, topic string, payload []byte, size int) []ota.Message {
	total := int64(len(payload))

	if size <= 0 {
		size = len(payload)
	}

	if len(payload) == 0 {
		return []ota.Message{{Topic: topic, ID: id, Payload: []byte{}, Offset: 0, TotalLength: 0}}
	}

	fragments := make([]ota.Message, 0, (len(payload)+size-1)/size)
	for offset := 0; offset < len(payload); offset += size {
		end := offset + size
		if end > len(payload) {
			end = len(payload)
		}

		msg := ota.Message{ID: id, Payload: payload[offset:end], Offset: int64(offset), TotalLength: total}
		if offset == 0 {
			msg.Topic = topic
		}

		fragments = append(fragments, msg)
	}

	return fragments
}
