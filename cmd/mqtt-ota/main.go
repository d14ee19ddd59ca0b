/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier:     GPL-2.0
 */

package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/UpdateHub/mqtt-ota/mqttclient"
	"github.com/UpdateHub/mqtt-ota/ota"
	"github.com/UpdateHub/mqtt-ota/server"
	"github.com/UpdateHub/mqtt-ota/utils"
)

var (
	gitversion = "No version provided"
)

func main() {
	log.SetLevel(log.InfoLevel)

	cmd := &cobra.Command{
		Use:   "mqtt-ota",
		Short: "Receives firmware images over MQTT and installs them on the inactive partition",
		Args:  cobra.NoArgs,
	}

	settingsPath := cmd.PersistentFlags().StringP("config", "c", defaultSettingsPath, "path of the settings file")
	isQuiet := cmd.PersistentFlags().Bool("quiet", false, "sets the log level to 'error'")
	isDebug := cmd.PersistentFlags().Bool("debug", false, "sets the log level to 'debug'")

	cmd.Run = func(cmd *cobra.Command, args []string) {
		if *isQuiet {
			log.SetLevel(log.ErrorLevel)
		}

		if *isDebug {
			log.SetLevel(log.DebugLevel)
		}

		if err := run(afero.NewOsFs(), *settingsPath); err != nil {
			log.Fatal(err)
		}
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
		os.Exit(1)
	}
}

func run(fs afero.Fs, settingsPath string) error {
	settings, err := loadSettings(fs, settingsPath)
	if err != nil {
		return err
	}

	log.Debug("settings: ", settings.ToString())

	manager, err := newManager(fs, &utils.CmdLine{}, settings)
	if err != nil {
		return err
	}

	broker, err := utils.SanitizeBrokerAddress(settings.BrokerAddress)
	if err != nil {
		return err
	}

	client := mqttclient.New(mqttclient.Options{
		BrokerAddress: broker,
		ClientID:      settings.ClientID,
		Username:      settings.Username,
		Password:      settings.Password,
		KeepAlive:     settings.KeepAlive,
		Timeout:       settings.Timeout,
		CleanSession:  settings.CleanSession,
		FragmentSize:  settings.FragmentSize,
	}, manager)

	if settings.ServerSettings.Address != "" {
		router := server.NewBackendRouter(server.NewAgentBackend(gitversion, settings, manager))

		go func() {
			if err := http.ListenAndServe(settings.ServerSettings.Address, router.HTTPRouter); err != nil {
				log.Error("status server stopped: ", err)
			}
		}()
	}

	if err := client.Connect(); err != nil {
		return err
	}

	log.Infof("waiting for firmware on '%s'", ota.FirmwareTopic(settings.TopicPrefix))

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	client.Disconnect(250 * time.Millisecond)

	return nil
}
