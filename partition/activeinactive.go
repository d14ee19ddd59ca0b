/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package partition

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/UpdateHub/mqtt-ota/activeinactive"
)

// ActiveInactiveTarget writes images to the partition that is not
// currently active. Devices holds the device (or file) path of object 0
// and object 1.
type ActiveInactiveTarget struct {
	FileSystemBackend     afero.Fs
	ActiveInactiveBackend activeinactive.Interface
	Devices               []string
	// MaxSize limits the image size when greater than zero
	MaxSize int64
	// ImageMagic, when set, must prefix every valid image
	ImageMagic []byte
}

type writeSession struct {
	region  Region
	file    afero.File
	written int64
	closed  bool
}

func (s *writeSession) Region() Region {
	return s.region
}

func (s *writeSession) Written() int64 {
	return s.written
}

func (t *ActiveInactiveTarget) session(handle WriteHandle) (*writeSession, error) {
	s, ok := handle.(*writeSession)
	if !ok || s == nil {
		return nil, fmt.Errorf("invalid write handle: %T", handle)
	}

	if s.closed {
		return nil, ErrHandleClosed
	}

	return s, nil
}

// SelectRegion returns the inactive partition
func (t *ActiveInactiveTarget) SelectRegion() (Region, error) {
	if len(t.Devices) != 2 {
		return Region{}, errors.Wrapf(ErrRegionNotFound, "2 devices required, %d configured", len(t.Devices))
	}

	active, err := t.ActiveInactiveBackend.Active()
	if err != nil {
		return Region{}, errors.Wrap(ErrRegionNotFound, err.Error())
	}

	if active != 0 && active != 1 {
		return Region{}, errors.Wrapf(ErrRegionNotFound, "invalid active partition %d", active)
	}

	inactive := (active - 1) * -1
	device := t.Devices[inactive]

	exists, err := afero.Exists(t.FileSystemBackend, device)
	if err != nil || !exists {
		return Region{}, errors.Wrapf(ErrRegionNotFound, "device '%s' not available", device)
	}

	log.Infof("Writing to partition %d at '%s'", inactive, device)

	return Region{Index: inactive, Device: device}, nil
}

// Begin opens the region for writing, discarding its previous content
func (t *ActiveInactiveTarget) Begin(region Region) (WriteHandle, error) {
	file, err := t.FileSystemBackend.OpenFile(region.Device, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open '%s'", region.Device)
	}

	return &writeSession{region: region, file: file}, nil
}

func (t *ActiveInactiveTarget) Write(handle WriteHandle, data []byte) error {
	s, err := t.session(handle)
	if err != nil {
		return err
	}

	if t.MaxSize > 0 && s.written+int64(len(data)) > t.MaxSize {
		return errors.Wrapf(ErrRegionFull, "%d bytes exceed %d", s.written+int64(len(data)), t.MaxSize)
	}

	n, err := s.file.Write(data)
	s.written += int64(n)
	if err != nil {
		return errors.Wrapf(err, "failed to write to '%s'", s.region.Device)
	}

	if n != len(data) {
		return errors.Wrapf(io.ErrShortWrite, "failed to write to '%s'", s.region.Device)
	}

	return nil
}

// End flushes the image and checks it
func (t *ActiveInactiveTarget) End(handle WriteHandle) error {
	s, err := t.session(handle)
	if err != nil {
		return err
	}

	s.closed = true

	if err := s.file.Sync(); err != nil {
		s.file.Close()
		return errors.Wrapf(err, "failed to sync '%s'", s.region.Device)
	}

	if err := s.file.Close(); err != nil {
		return errors.Wrapf(err, "failed to close '%s'", s.region.Device)
	}

	if s.written == 0 {
		return ErrEmptyImage
	}

	return t.checkMagic(s)
}

func (t *ActiveInactiveTarget) checkMagic(s *writeSession) error {
	if len(t.ImageMagic) == 0 {
		return nil
	}

	if s.written < int64(len(t.ImageMagic)) {
		return errors.Wrap(ErrInvalidImage, "image shorter than magic")
	}

	file, err := t.FileSystemBackend.Open(s.region.Device)
	if err != nil {
		return errors.Wrapf(err, "failed to open '%s'", s.region.Device)
	}
	defer file.Close()

	head := make([]byte, len(t.ImageMagic))
	if _, err := io.ReadFull(file, head); err != nil {
		return errors.Wrapf(err, "failed to read back '%s'", s.region.Device)
	}

	if !bytes.Equal(head, t.ImageMagic) {
		return errors.Wrapf(ErrInvalidImage, "magic %x doesn't match %x", head, t.ImageMagic)
	}

	return nil
}

// Abort closes the handle without validating what was written
func (t *ActiveInactiveTarget) Abort(handle WriteHandle) error {
	s, err := t.session(handle)
	if err != nil {
		return err
	}

	s.closed = true

	log.Warnf("Discarding %d bytes written to '%s'", s.written, s.region.Device)

	return s.file.Close()
}

// SetActive makes the region the next boot target
func (t *ActiveInactiveTarget) SetActive(region Region) error {
	return t.ActiveInactiveBackend.SetActive(region.Index)
}
