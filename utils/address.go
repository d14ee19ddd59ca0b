/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier:     GPL-2.0
 */

package utils

import (
	"net/url"
	"strings"
)

// SanitizeBrokerAddress adds the "tcp://" scheme to a broker address
// lacking one and validates the result
func SanitizeBrokerAddress(address string) (string, error) {
	a := address
	if !strings.Contains(a, "://") {
		a = "tcp://" + a
	}

	u, err := url.Parse(a)
	if err != nil {
		return "", err
	}

	return u.String(), nil
}
