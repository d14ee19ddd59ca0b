/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier:     GPL-2.0
 */

package server

import (
	"github.com/julienschmidt/httprouter"
)

type BackendRouter struct {
	HTTPRouter *httprouter.Router
}

// NewBackendRouter registers the routes of every backend
func NewBackendRouter(backends ...Backend) *BackendRouter {
	r := &BackendRouter{HTTPRouter: httprouter.New()}

	for _, b := range backends {
		for _, route := range b.Routes() {
			r.HTTPRouter.Handle(route.Method, route.Path, route.Handle)
		}
	}

	return r
}
