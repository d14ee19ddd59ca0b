/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package ota

import (
	"github.com/looplab/fsm"
	log "github.com/sirupsen/logrus"

	"github.com/UpdateHub/mqtt-ota/partition"
)

// Session states
const (
	SessionStateIdle = "idle"
	SessionStateOpen = "open"
)

// Session events. Every event leaving "open" clears the write handle.
const (
	eventBegin      = "begin"
	eventSupersede  = "supersede"
	eventAbort      = "abort"
	eventFinish     = "finish"
	eventFail       = "fail"
	eventDisconnect = "disconnect"
)

// Session is the single in-flight transfer. It is not safe for
// concurrent use; Manager serializes access to it.
type Session struct {
	fsm      *fsm.FSM
	activeID uint64
	handle   partition.WriteHandle
	region   partition.Region
	total    int64
	offset   int64
}

func NewSession() *Session {
	s := &Session{}

	s.fsm = fsm.NewFSM(
		SessionStateIdle,
		fsm.Events{
			{Name: eventBegin, Src: []string{SessionStateIdle}, Dst: SessionStateOpen},
			{Name: eventSupersede, Src: []string{SessionStateOpen}, Dst: SessionStateIdle},
			{Name: eventAbort, Src: []string{SessionStateOpen}, Dst: SessionStateIdle},
			{Name: eventFinish, Src: []string{SessionStateOpen}, Dst: SessionStateIdle},
			{Name: eventFail, Src: []string{SessionStateOpen}, Dst: SessionStateIdle},
			{Name: eventDisconnect, Src: []string{SessionStateOpen}, Dst: SessionStateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				log.Debugf("session %d: %s -> %s (%s)", s.activeID, e.Src, e.Dst, e.Event)
			},
		},
	)

	return s
}

// State returns the current session state name
func (s *Session) State() string {
	return s.fsm.Current()
}

func (s *Session) isOpen() bool {
	return s.handle != nil
}

// accepts reports whether a fragment with "id" belongs to the open transfer
func (s *Session) accepts(id uint64) bool {
	return s.handle != nil && s.activeID == id
}

func (s *Session) open(id uint64, handle partition.WriteHandle, region partition.Region, total int64) {
	s.activeID = id
	s.handle = handle
	s.region = region
	s.total = total
	s.offset = 0

	s.transition(eventBegin)
}

// close clears the handle and the id together and returns the handle,
// whose ownership passes to the caller
func (s *Session) close(event string) partition.WriteHandle {
	handle := s.handle

	s.transition(event)

	s.handle = nil
	s.activeID = 0
	s.region = partition.Region{}

	return handle
}

func (s *Session) transition(event string) {
	if err := s.fsm.Event(event); err != nil {
		log.Errorf("session: unexpected '%s' event in state '%s': %s", event, s.fsm.Current(), err)
	}
}
