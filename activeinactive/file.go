/*
 * UpdateHub
 * Copyright (C) 2019
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package activeinactive

import (
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// FileImpl keeps the active object number in a plain file. A missing
// file means the device runs from object 0.
type FileImpl struct {
	FileSystemBackend afero.Fs
	Path              string
}

// Active reads the active object number from the state file
func (f *FileImpl) Active() (int, error) {
	data, err := afero.ReadFile(f.FileSystemBackend, f.Path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read active state from '%s'", f.Path)
	}

	active, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse active state from '%s'", f.Path)
	}

	return active, nil
}

// SetActive atomically replaces the state file content with "active"
func (f *FileImpl) SetActive(active int) error {
	if err := f.FileSystemBackend.MkdirAll(path.Dir(f.Path), 0755); err != nil {
		return errors.Wrap(err, "failed to create active state directory")
	}

	tmp := f.Path + ".tmp"
	if err := afero.WriteFile(f.FileSystemBackend, tmp, []byte(strconv.Itoa(active)+"\n"), 0644); err != nil {
		return errors.Wrap(err, "failed to write active state")
	}

	if err := f.FileSystemBackend.Rename(tmp, f.Path); err != nil {
		return errors.Wrap(err, "failed to commit active state")
	}

	log.Debug("Active partition set to: ", active)

	return nil
}
