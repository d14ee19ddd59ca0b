/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier:     GPL-2.0
 */

package ota

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-ini/ini"
)

const (
	// ActiveInactiveCommand selects the helper command backend
	ActiveInactiveCommand = "command"
	// ActiveInactiveFile selects the state file backend
	ActiveInactiveFile = "file"

	defaultFragmentSize = 4096
)

type Settings struct {
	MQTTSettings    `ini:"MQTT" json:"mqtt"`
	StorageSettings `ini:"Storage" json:"storage"`
	SystemSettings  `ini:"System" json:"system"`
	ServerSettings  `ini:"Server" json:"server"`
}

type MQTTSettings struct {
	BrokerAddress string        `ini:"BrokerAddress" json:"broker-address"`
	ClientID      string        `ini:"ClientID" json:"client-id"`
	Username      string        `ini:"Username" json:"username,omitempty"`
	Password      string        `ini:"Password" json:"-"`
	TopicPrefix   string        `ini:"TopicPrefix" json:"topic-prefix"`
	FragmentSize  int           `ini:"FragmentSize" json:"fragment-size"`
	KeepAlive     time.Duration `ini:"KeepAlive" json:"keep-alive"`
	Timeout       time.Duration `ini:"Timeout" json:"timeout"`
	CleanSession  bool          `ini:"CleanSession" json:"clean-session"`
}

type StorageSettings struct {
	Devices               []string `ini:"Devices" json:"devices"`
	MaxSize               int64    `ini:"MaxSize" json:"max-size,omitempty"`
	ImageMagic            string   `ini:"ImageMagic" json:"image-magic,omitempty"`
	ActiveInactiveBackend string   `ini:"ActiveInactiveBackend" json:"active-inactive-backend"`
	ActiveGetCommand      string   `ini:"ActiveGetCommand" json:"active-get-command"`
	ActiveSetCommand      string   `ini:"ActiveSetCommand" json:"active-set-command"`
	ActiveStatePath       string   `ini:"ActiveStatePath" json:"active-state-path"`
}

type SystemSettings struct {
	RebootCommand     string `ini:"RebootCommand" json:"reboot-command"`
	AbortOnDisconnect bool   `ini:"AbortOnDisconnect" json:"abort-on-disconnect"`
}

type ServerSettings struct {
	Address string `ini:"Address" json:"address"`
}

func init() {
	ini.PrettyFormat = false
}

// DefaultSettings returns the settings used for keys absent from the
// configuration file
func DefaultSettings() *Settings {
	return &Settings{
		MQTTSettings: MQTTSettings{
			BrokerAddress: "tcp://localhost:1883",
			ClientID:      "mqtt-ota",
			TopicPrefix:   DefaultTopicPrefix,
			FragmentSize:  defaultFragmentSize,
			KeepAlive:     30 * time.Second,
			Timeout:       10 * time.Second,
			CleanSession:  true,
		},

		StorageSettings: StorageSettings{
			Devices:               []string{},
			ActiveInactiveBackend: ActiveInactiveCommand,
			ActiveGetCommand:      "updatehub-active-get",
			ActiveSetCommand:      "updatehub-active-set",
			ActiveStatePath:       "/var/lib/mqtt-ota/active",
		},

		SystemSettings: SystemSettings{
			RebootCommand:     "/sbin/reboot",
			AbortOnDisconnect: true,
		},

		ServerSettings: ServerSettings{
			Address: "localhost:8080",
		},
	}
}

func LoadSettings(r io.Reader) (*Settings, error) {
	cfg, err := ini.Load(io.NopCloser(r))
	if err != nil || cfg == nil {
		return nil, err
	}

	s := DefaultSettings()

	err = cfg.MapTo(s)
	if err != nil {
		return nil, err
	}

	if err = s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Settings) validate() error {
	if _, err := s.Magic(); err != nil {
		return fmt.Errorf("invalid ImageMagic '%s': %s", s.ImageMagic, err)
	}

	switch s.ActiveInactiveBackend {
	case ActiveInactiveCommand, ActiveInactiveFile:
	default:
		return fmt.Errorf("unsupported ActiveInactiveBackend '%s'", s.ActiveInactiveBackend)
	}

	if s.FragmentSize <= 0 {
		return fmt.Errorf("FragmentSize must be positive, got %d", s.FragmentSize)
	}

	return nil
}

// Magic returns the decoded image magic
func (s *StorageSettings) Magic() ([]byte, error) {
	return hex.DecodeString(s.ImageMagic)
}

func (s *Settings) ToString() string {
	output, _ := json.MarshalIndent(s, "", "    ")
	return string(output)
}
