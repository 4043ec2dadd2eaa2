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

// An open file handle, created by RegisteredFS.Open and destroyed by
// RegisteredFS.Close. While a file is open its inode stays alive even if
// the name it was opened under is removed.
//
// All fields are guarded by the registry lock.
type File struct {
	// The path the file was opened with. Diagnostics only.
	Path string

	// The read/write cursor. For regular files this is a byte offset; for
	// directories it is an entry index into the name-sorted child list.
	//
	// INVARIANT: For files of mode IFREG, Pos never exceeds the data length.
	Pos uint64

	// The open-mode flags the file was opened with.
	Mode FileMode

	// The inode the handle refers to. This reference is what keeps the
	// inode's data alive while the handle is open.
	inode Inode

	refCount int
}

func newFile(path string, inode Inode, mode FileMode) *File {
	return &File{
		Path:     path,
		Mode:     mode,
		inode:    inode,
		refCount: 1,
	}
}

// Return the inode the handle refers to.
func (f *File) Inode() Inode {
	return f.inode
}

func (f *File) String() string {
	return fmt.Sprintf(
		"File {path: %s, pos: %d, inode: {%v}, mode: %#x}",
		f.Path,
		f.Pos,
		f.inode.Metadata(),
		uint32(f.Mode))
}
