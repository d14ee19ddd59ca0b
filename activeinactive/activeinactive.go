/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier:     GPL-2.0
 */

package activeinactive

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/UpdateHub/mqtt-ota/utils"
)

const (
	// DefaultGetCommand prints the index of the partition the device
	// booted from
	DefaultGetCommand = "updatehub-active-get"
	// DefaultSetCommand receives the index of the partition to boot
	// next as its only argument
	DefaultSetCommand = "updatehub-active-set"
)

// Interface describes the operations related to the Active-Inactive feature
type Interface interface {
	Active() (int, error)
	SetActive(active int) error
}

// DefaultImpl is the default implementation for Interface. It relies
// on helper commands provided by the board support package.
type DefaultImpl struct {
	utils.CmdLineExecuter
	GetCommand string
	SetCommand string
}

func (i *DefaultImpl) getCommand() string {
	if i.GetCommand == "" {
		return DefaultGetCommand
	}
	return i.GetCommand
}

func (i *DefaultImpl) setCommand() string {
	if i.SetCommand == "" {
		return DefaultSetCommand
	}
	return i.SetCommand
}

// Active returns the current active object number
func (i *DefaultImpl) Active() (int, error) {
	cmd := i.getCommand()

	log.Debugf("Running '%s'", cmd)

	output, err := i.Execute(cmd)
	if err != nil {
		finalErr := fmt.Errorf("failed to execute '%s': %s", cmd, err)
		log.Error(finalErr)
		return 0, finalErr
	}

	activeIndex, err := strconv.ParseInt(strings.TrimSpace(string(output)), 10, 0)
	if err != nil {
		finalErr := fmt.Errorf("failed to parse response from '%s': %s", cmd, err)
		log.Error(finalErr)
		return 0, finalErr
	}

	log.Debug("Active partition: ", int(activeIndex))

	return int(activeIndex), nil
}

// SetActive sets the current active object number to "active"
func (i *DefaultImpl) SetActive(active int) error {
	cmd := i.setCommand()

	log.Debugf("Running '%s' for partition: %d", cmd, active)

	_, err := i.Execute(fmt.Sprintf("%s %d", cmd, active))
	if err != nil {
		finalErr := fmt.Errorf("failed to execute '%s': %s", cmd, err)
		log.Error(finalErr)
		return finalErr
	}

	return nil
}
