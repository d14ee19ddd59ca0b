/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package mqttclient

import (
	"github.com/UpdateHub/mqtt-ota/partition"
)

// failingTarget has no partition available
type failingTarget struct {
	partition.Target
}

func (ft *failingTarget) SelectRegion() (partition.Region, error) {
	return partition.Region{}, partition.ErrRegionNotFound
}
