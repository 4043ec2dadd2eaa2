// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vfsutil contains building blocks for file system drivers: helpers
// for filling the Direntry record a driver hands back from ReadDir, and a
// NotImplementedInode to embed for capability methods a driver doesn't
// support.
package vfsutil

import (
	"github.com/jacobsa/vfs"
)

// Fill d with the given entry. The name is copied into d's fixed-size
// buffer and NUL-terminated when shorter than the buffer. Returns
// ENAMETOOLONG if the name doesn't fit.
func WriteDirentry(
	d *vfs.Direntry,
	ino vfs.InodeID,
	off uint64,
	name string) error {
	if len(name) > vfs.NameMax {
		return vfs.ENAMETOOLONG
	}

	d.Ino = ino
	d.Off = off
	d.NameLen = uint32(len(name))
	copy(d.Name[:], name)
	if len(name) < len(d.Name) {
		d.Name[len(name)] = 0
	}

	return nil
}

// Return the name carried by d.
func DirentryName(d *vfs.Direntry) string {
	return string(d.Name[:d.NameLen])
}
