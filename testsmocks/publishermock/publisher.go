/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package publishermock

import "github.com/stretchr/testify/mock"

type PublisherMock struct {
	mock.Mock
}

func (pm *PublisherMock) Publish(topic string, payload []byte, qos byte, retained bool) error {
	args := pm.Called(topic, string(payload), qos, retained)
	return args.Error(0)
}

type SubscriberMock struct {
	mock.Mock
}

func (sm *SubscriberMock) Subscribe(topic string, qos byte) error {
	args := sm.Called(topic, qos)
	return args.Error(0)
}
