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

package vfs

import (
	"fmt"
)

// A distinguishing tag for a registered file system implementation.
type FSType int

const (
	RAMFS FSType = iota
)

func (t FSType) String() string {
	switch t {
	case RAMFS:
		return "RAMFS"
	}

	return fmt.Sprintf("FSType(%d)", int(t))
}

// A number identifying an inode within its file system. Values are unique
// within a mount lifetime and are never reused.
type InodeID uint64

// The type of object an inode represents.
//
// The zero value is IFREG, so metadata constructed without an explicit mode
// describes a regular file.
type INodeType int

const (
	IFREG INodeType = iota
	IFDIR
	IFIFO
	IFCHR
	IFBLK
	IFLNK
	IFSOCK
)

func (t INodeType) String() string {
	switch t {
	case IFREG:
		return "IFREG"
	case IFDIR:
		return "IFDIR"
	case IFIFO:
		return "IFIFO"
	case IFCHR:
		return "IFCHR"
	case IFBLK:
		return "IFBLK"
	case IFLNK:
		return "IFLNK"
	case IFSOCK:
		return "IFSOCK"
	}

	return fmt.Sprintf("INodeType(%d)", int(t))
}

// Open-mode flags accepted by RegisteredFS.Open. The registry checks these
// only by set membership, so each flag is a distinct bit; the values bear no
// relation to the open(2) constants of any particular kernel.
type FileMode uint32

const (
	O_RDONLY FileMode = 1 << iota
	O_WRONLY
	O_RDWR
	O_APPEND
	O_CREAT
	O_DIRECTORY
)

// Contains returns whether every flag in other is set in m.
func (m FileMode) Contains(other FileMode) bool {
	return m&other == other
}

// Flags configuring a single path resolution.
type LookupFlag uint32

const (
	// Follow a terminal symbolic link. Reserved; symlink following is not
	// implemented.
	LOOKUP_FOLLOW LookupFlag = 1 << iota

	// Require the terminal component to be a directory.
	LOOKUP_DIRECTORY

	// Resolve up to but not including the last component.
	LOOKUP_PARENT

	// Bypass the dentry cache and force the driver's Lookup for every
	// component.
	LOOKUP_REVAL
)

// Contains returns whether every flag in other is set in f.
func (f LookupFlag) Contains(other LookupFlag) bool {
	return f&other == other
}
