/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package partition implements the sequential write sink used to store
// a firmware image into the inactive partition of an active-inactive
// setup.
package partition

import (
	"github.com/pkg/errors"
)

var (
	// ErrRegionNotFound is returned when there is no partition that can
	// receive the image
	ErrRegionNotFound = errors.New("passive partition not found")
	// ErrEmptyImage is returned by End when no byte was written
	ErrEmptyImage = errors.New("image is empty")
	// ErrInvalidImage is returned by End when the written image doesn't
	// start with the expected magic
	ErrInvalidImage = errors.New("image is invalid")
	// ErrRegionFull is returned by Write when the data doesn't fit the
	// partition
	ErrRegionFull = errors.New("image doesn't fit the partition")
	// ErrHandleClosed is returned when a handle is used after End or Abort
	ErrHandleClosed = errors.New("write handle already closed")
)

// Region identifies a partition that can be selected as boot target
type Region struct {
	Index  int    `json:"index"`
	Device string `json:"device"`
}

// WriteHandle is an open write session on a Region
type WriteHandle interface {
	Region() Region
	Written() int64
}

// Target is the storage contract the update session drives
type Target interface {
	SelectRegion() (Region, error)
	Begin(region Region) (WriteHandle, error)
	// Write appends all of data or fails
	Write(handle WriteHandle, data []byte) error
	// End finalizes and validates the image, closing the handle
	End(handle WriteHandle) error
	// Abort discards the handle
	Abort(handle WriteHandle) error
	SetActive(region Region) error
}
