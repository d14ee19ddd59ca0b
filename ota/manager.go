/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package ota

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/UpdateHub/mqtt-ota/partition"
)

// DefaultTopicPrefix is the topic prefix used when none is configured
const DefaultTopicPrefix = "mqtt-ota"

// FirmwareTopic returns the topic firmware images are published to
func FirmwareTopic(prefix string) string {
	return prefix + "/firmware"
}

// ProgressTopic returns the topic status notifications are published to
func ProgressTopic(prefix string) string {
	return prefix + "/progress"
}

// Manager receives firmware images from the transport and drives the
// storage target through a single write session. Its handlers may be
// called concurrently; each one runs entirely under the manager lock.
type Manager struct {
	ProgressTracker

	FirmwareTopic string
	ProgressTopic string
	Target        partition.Target
	Restarter     Restarter
	// AbortOnDisconnect discards the open session when the connection
	// drops
	AbortOnDisconnect bool

	session    *Session
	lastStatus string
	mutex      sync.Mutex
}

func NewManager(topicPrefix string, target partition.Target, restarter Restarter) *Manager {
	if topicPrefix == "" {
		topicPrefix = DefaultTopicPrefix
	}

	return &Manager{
		ProgressTracker:   &ProgressTrackerImpl{},
		FirmwareTopic:     FirmwareTopic(topicPrefix),
		ProgressTopic:     ProgressTopic(topicPrefix),
		Target:            target,
		Restarter:         restarter,
		AbortOnDisconnect: true,
		session:           NewSession(),
	}
}

// HandleConnect subscribes to the firmware topic
func (m *Manager) HandleConnect(s Subscriber) {
	if err := s.Subscribe(m.FirmwareTopic, QoSExactlyOnce); err != nil {
		log.Errorf("failed to subscribe to '%s': %s", m.FirmwareTopic, err)
		return
	}

	log.Infof("subscribed to '%s'", m.FirmwareTopic)
}

// HandleMessage processes an inbound fragment. A fragment on the firmware
// topic starts a new transfer; fragments matching the open transfer are
// written. Anything else is ignored.
func (m *Manager) HandleMessage(p Publisher, msg Message) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if msg.Topic == m.FirmwareTopic {
		m.begin(p, msg.ID, msg.TotalLength)
	}

	if m.session.accepts(msg.ID) {
		m.write(p, msg.Payload, msg.Offset, msg.TotalLength)
	}
}

// HandleConnectionLost aborts the open session, if any, when
// AbortOnDisconnect is set
func (m *Manager) HandleConnectionLost(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	log.Warn("connection lost: ", err)

	if !m.AbortOnDisconnect || !m.session.isOpen() {
		return
	}

	id := m.session.activeID
	handle := m.session.close(eventDisconnect)
	if abortErr := m.Target.Abort(handle); abortErr != nil {
		log.Warnf("failed to abort transfer %d: %s", id, abortErr)
	}

	log.Errorf("transfer %d aborted by disconnection", id)
}

func (m *Manager) begin(p Publisher, id uint64, total int64) {
	if m.session.isOpen() {
		old := m.session.activeID
		handle := m.session.close(eventSupersede)

		// the result concerns the superseded transfer only
		if err := m.Target.End(handle); err != nil {
			log.Warnf("superseded transfer %d not finalized: %s", old, err)
		}
	}

	m.notify(p, Status{Kind: StatusAck})

	region, err := m.Target.SelectRegion()
	if err != nil {
		log.Error("passive OTA partition not found: ", err)
		m.notify(p, errorStatus(ReasonPartitionNotFound))
		return
	}

	handle, err := m.Target.Begin(region)
	if err != nil {
		log.Errorf("failed to open partition %d: %s", region.Index, err)
		m.notify(p, errorStatus(ReasonBeginFailed))
		return
	}

	m.session.open(id, handle, region, total)
	m.ProgressTracker.SetProgress(0)

	log.Infof("transfer %d of %d bytes started, waiting for payload", id, total)
}

func (m *Manager) write(p Publisher, data []byte, offset int64, total int64) {
	handle := m.session.handle
	id := m.session.activeID

	if err := m.Target.Write(handle, data); err != nil {
		if abortErr := m.Target.Abort(handle); abortErr != nil {
			log.Warnf("failed to abort transfer %d: %s", id, abortErr)
		}
		m.session.close(eventAbort)

		log.Errorf("write failed on transfer %d at offset %d: %s", id, offset, err)
		return
	}

	newOffset := offset + int64(len(data))
	progress := progressStatus(newOffset, total)

	m.session.offset = newOffset
	m.ProgressTracker.SetProgress(int(progress.Percent))
	m.notify(p, progress)

	log.Info(FormatStatus(progress))

	if newOffset != total {
		return
	}

	region := m.session.region

	if err := m.Target.End(handle); err != nil {
		m.session.close(eventFail)

		log.Errorf("image of transfer %d is invalid: %s", id, err)
		m.notify(p, errorStatus(ReasonImageInvalid))
		return
	}

	m.session.close(eventFinish)

	if err := m.Target.SetActive(region); err != nil {
		log.Errorf("failed to set partition %d as boot target: %s", region.Index, err)
		m.notify(p, errorStatus(ReasonActivationFailed))
		return
	}

	m.notify(p, Status{Kind: StatusDone})

	log.Infof("partition %d set as boot target", region.Index)

	if err := m.Restarter.Reboot(); err != nil {
		log.Error("failed to restart: ", err)
	}
}

func (m *Manager) notify(p Publisher, s Status) {
	payload := FormatStatus(s)
	m.lastStatus = payload

	if err := p.Publish(m.ProgressTopic, []byte(payload), s.QoS(), false); err != nil {
		log.Warnf("failed to publish '%s': %s", payload, err)
	}
}

// Snapshot is a point in time view of the manager
type Snapshot struct {
	State      string            `json:"state"`
	ActiveID   uint64            `json:"active-id,omitempty"`
	Region     *partition.Region `json:"region,omitempty"`
	Offset     int64             `json:"offset"`
	Total      int64             `json:"total"`
	Progress   int               `json:"progress"`
	LastStatus string            `json:"last-status,omitempty"`
}

// Snapshot returns the current transfer status
func (m *Manager) Snapshot() Snapshot {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	s := Snapshot{
		State:      m.session.State(),
		Progress:   m.ProgressTracker.GetProgress(),
		LastStatus: m.lastStatus,
	}

	if m.session.isOpen() {
		region := m.session.region
		s.ActiveID = m.session.activeID
		s.Region = &region
		s.Offset = m.session.offset
		s.Total = m.session.total
	}

	return s
}
