/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package targetmock

import (
	"github.com/stretchr/testify/mock"

	"github.com/UpdateHub/mqtt-ota/partition"
)

type TargetMock struct {
	mock.Mock
}

func (tm *TargetMock) SelectRegion() (partition.Region, error) {
	args := tm.Called()
	return args.Get(0).(partition.Region), args.Error(1)
}

func (tm *TargetMock) Begin(region partition.Region) (partition.WriteHandle, error) {
	args := tm.Called(region)
	h, _ := args.Get(0).(partition.WriteHandle)
	return h, args.Error(1)
}

func (tm *TargetMock) Write(handle partition.WriteHandle, data []byte) error {
	args := tm.Called(handle, data)
	return args.Error(0)
}

func (tm *TargetMock) End(handle partition.WriteHandle) error {
	args := tm.Called(handle)
	return args.Error(0)
}

func (tm *TargetMock) Abort(handle partition.WriteHandle) error {
	args := tm.Called(handle)
	return args.Error(0)
}

func (tm *TargetMock) SetActive(region partition.Region) error {
	args := tm.Called(region)
	return args.Error(0)
}

// HandleMock is a WriteHandle without any storage behind it
type HandleMock struct {
	R partition.Region
	N int64
}

func (hm *HandleMock) Region() partition.Region {
	return hm.R
}

func (hm *HandleMock) Written() int64 {
	return hm.N
}
