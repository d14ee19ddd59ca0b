/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/UpdateHub/mqtt-ota/activeinactive"
	"github.com/UpdateHub/mqtt-ota/ota"
	"github.com/UpdateHub/mqtt-ota/partition"
	"github.com/UpdateHub/mqtt-ota/utils"
)

const defaultSettingsPath = "/etc/mqtt-ota.conf"

// loadSettings reads the settings file, falling back to the defaults
// when it doesn't exist
func loadSettings(fs afero.Fs, settingsPath string) (*ota.Settings, error) {
	exists, err := afero.Exists(fs, settingsPath)
	if err != nil {
		return nil, err
	}

	if !exists {
		log.Warnf("settings file '%s' not found, using defaults", settingsPath)
		return ota.DefaultSettings(), nil
	}

	file, err := fs.Open(settingsPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ota.LoadSettings(file)
}

func newActiveInactive(fs afero.Fs, cle utils.CmdLineExecuter, s *ota.Settings) activeinactive.Interface {
	if s.ActiveInactiveBackend == ota.ActiveInactiveFile {
		return &activeinactive.FileImpl{FileSystemBackend: fs, Path: s.ActiveStatePath}
	}

	return &activeinactive.DefaultImpl{
		CmdLineExecuter: cle,
		GetCommand:      s.ActiveGetCommand,
		SetCommand:      s.ActiveSetCommand,
	}
}

func newManager(fs afero.Fs, cle utils.CmdLineExecuter, s *ota.Settings) (*ota.Manager, error) {
	magic, err := s.Magic()
	if err != nil {
		return nil, err
	}

	target := &partition.ActiveInactiveTarget{
		FileSystemBackend:     fs,
		ActiveInactiveBackend: newActiveInactive(fs, cle, s),
		Devices:               s.Devices,
		MaxSize:               s.MaxSize,
		ImageMagic:            magic,
	}

	rebooter := &utils.RebooterImpl{CmdLineExecuter: cle, Command: s.RebootCommand}

	m := ota.NewManager(s.TopicPrefix, target, rebooter)
	m.AbortOnDisconnect = s.AbortOnDisconnect

	return m, nil
}
