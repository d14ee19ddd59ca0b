/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier:     GPL-2.0
 */

package utils

import (
	log "github.com/sirupsen/logrus"
)

// DefaultRebootCommand restarts the whole device
const DefaultRebootCommand = "/sbin/reboot"

type Rebooter interface {
	Reboot() error
}

// RebooterImpl reboots the device by running Command (or
// DefaultRebootCommand when it is empty)
type RebooterImpl struct {
	CmdLineExecuter
	Command string
}

func (r *RebooterImpl) Reboot() error {
	command := r.Command
	if command == "" {
		command = DefaultRebootCommand
	}

	executer := r.CmdLineExecuter
	if executer == nil {
		executer = &CmdLine{}
	}

	log.Info("restarting now: ", command)

	_, err := executer.Execute(command)

	return err
}
