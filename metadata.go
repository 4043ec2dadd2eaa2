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
	"time"
)

// Attributes describing an inode, owned by the inode's driver. Drivers hand
// out copies; mutation goes through Inode.SetMetadata.
type INodeMetaData struct {
	// The type of the object. The zero value describes a regular file.
	Mode INodeType

	// Ownership information.
	Uid uint32
	Gid uint32

	// The inode's number within its file system.
	Ino InodeID

	// Times, maintained by the driver's clock.
	Atime time.Time
	Mtime time.Time
	Ctime time.Time

	// The number of directory entries referring to this inode.
	Nlink uint64

	// For inodes of mode IFLNK, the target path.
	Link string
}

func (m INodeMetaData) String() string {
	return fmt.Sprintf("ino: %d mode: %v nlink: %d", m.Ino, m.Mode, m.Nlink)
}

// The output record of RegisteredFS.Stat and Inode.GetAttr.
type Stat struct {
	Mode  INodeType
	Uid   uint32
	Gid   uint32
	Ino   InodeID
	Atime time.Time
	Mtime time.Time
	Ctime time.Time
	Nlink uint64
}

// The maximum name length a Direntry can carry.
const NameMax = 255

// A single directory entry as filled in by Inode.ReadDir. The name occupies
// Name[:NameLen] and is NUL-terminated when shorter than the buffer, as
// expected by user-mode readers of the record.
type Direntry struct {
	Ino     InodeID
	Off     uint64
	NameLen uint32
	Name    [NameMax + 1]byte
}
