/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier:     GPL-2.0
 */

package server

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/UpdateHub/mqtt-ota/ota"
)

// StatusProvider exposes the state of the update manager
type StatusProvider interface {
	Snapshot() ota.Snapshot
}

type AgentBackend struct {
	StatusProvider

	Version  string
	Settings *ota.Settings
}

func NewAgentBackend(version string, settings *ota.Settings, sp StatusProvider) *AgentBackend {
	return &AgentBackend{StatusProvider: sp, Version: version, Settings: settings}
}

func (ab *AgentBackend) Routes() []Route {
	return []Route{
		{Method: "GET", Path: "/info", Handle: ab.info},
		{Method: "GET", Path: "/status", Handle: ab.status},
	}
}

func (ab *AgentBackend) info(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	out := map[string]interface{}{}

	out["version"] = ab.Version
	out["config"] = ab.Settings

	writeJSON(w, http.StatusOK, out)
}

func (ab *AgentBackend) status(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	writeJSON(w, http.StatusOK, ab.StatusProvider.Snapshot())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	outputJSON, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		log.Error("failed to encode response: ", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(outputJSON)
}
