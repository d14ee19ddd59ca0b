/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package ota

import "fmt"

// StatusKind is the kind of notification published on the progress topic
type StatusKind int

const (
	StatusAck StatusKind = iota
	StatusProgress
	StatusDone
	StatusError
)

// Reasons carried by StatusError notifications
const (
	ReasonPartitionNotFound = "partition not found"
	ReasonBeginFailed       = "begin failed"
	ReasonImageInvalid      = "image invalid"
	ReasonActivationFailed  = "activation failed"
)

var statusKindNames = map[StatusKind]string{
	StatusAck:      "ack",
	StatusProgress: "progress",
	StatusDone:     "done",
	StatusError:    "error",
}

func (k StatusKind) String() string {
	return statusKindNames[k]
}

// Status is a notification about the transfer
type Status struct {
	Kind    StatusKind
	Offset  int64
	Total   int64
	Percent int64
	Reason  string
}

// QoS returns the delivery level the status is published with. Only
// failures to start a transfer are required to reach the sender.
func (s Status) QoS() byte {
	if s.Kind == StatusError && (s.Reason == ReasonPartitionNotFound || s.Reason == ReasonBeginFailed) {
		return QoSExactlyOnce
	}

	return QoSAtMostOnce
}

// FormatStatus renders "s" the way it goes on the wire
func FormatStatus(s Status) string {
	switch s.Kind {
	case StatusProgress:
		return fmt.Sprintf("%d/%d bytes (%d%%)", s.Offset, s.Total, s.Percent)
	case StatusError:
		return "error: " + s.Reason
	default:
		return s.Kind.String()
	}
}

func progressStatus(offset int64, total int64) Status {
	percent := int64(100)
	if total > 0 {
		percent = offset * 100 / total
	}

	return Status{Kind: StatusProgress, Offset: offset, Total: total, Percent: percent}
}

func errorStatus(reason string) Status {
	return Status{Kind: StatusError, Reason: reason}
}
