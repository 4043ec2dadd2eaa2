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
	"context"
)

// A function that instantiates a file system for the given device name and
// returns it along with a dentry for its root directory. Registered with
// RegisteredFS.Register under an FSType.
type MountFunc func(devName string) (FileSystem, *Dentry, error)

// A mounted file system instance. The object exists to own driver state;
// all per-object operations go through the Inode interface.
type FileSystem interface {
	// Return the preferred I/O transfer size for the file system, in bytes.
	BlockSize() int
}

// The capability contract a driver implements for each of its inodes. The
// registry resolves paths to dentries, then drives the dentry's inode
// through this interface.
//
// Methods that a driver has no use for should return ENOSYS rather than be
// omitted; vfsutil.NotImplementedInode can be embedded for that.
//
// The registry serializes all calls under its own lock, so implementations
// need internal locking only to protect driver state shared beyond the
// registry's reach.
type Inode interface {
	// Return the inode's number within its file system.
	Ino() InodeID

	// Return a copy of the inode's current metadata.
	Metadata() INodeMetaData

	// Replace the inode's metadata.
	SetMetadata(m INodeMetaData)

	// Return the file system that owns the inode.
	FS() FileSystem

	// Return the dentries currently pointing at the inode.
	Dentries() []*Dentry

	// Resolve the named child of the directory dentry dir, whose inode is the
	// receiver. On success the returned dentry is linked into dir's child
	// cache under name. Returns ENOENT if no such child exists.
	Lookup(ctx context.Context, dir *Dentry, name string) (*Dentry, error)

	// Allocate a regular-file inode, link it into the receiver directory
	// under name, and return a dentry for it.
	Create(ctx context.Context, dir *Dentry, name string) (*Dentry, error)

	// Allocate a directory inode, link it into the receiver directory under
	// name, and return a dentry for it.
	MkDir(ctx context.Context, dir *Dentry, name string) (*Dentry, error)

	// Remove name from the receiver directory's child map and from dir's
	// child cache. The inode the name referred to is not reclaimed here:
	// open handles keep it alive, and reclamation is the driver's concern.
	Unlink(ctx context.Context, dir *Dentry, name string) error

	// Copy up to len(p) bytes starting at f.Pos into p, advancing f.Pos by
	// the number of bytes copied. Returns 0 at end of file.
	Read(ctx context.Context, f *File, p []byte) (int, error)

	// Write len(p) bytes at f.Pos, growing the backing data with zero fill
	// as needed and advancing f.Pos. If f.Mode contains O_APPEND, the write
	// starts at end of file regardless of f.Pos.
	Write(ctx context.Context, f *File, p []byte) (int, error)

	// Fill dirs with entries of the receiver directory starting at entry
	// index f.Pos, in name-sorted order, advancing f.Pos by the number of
	// entries written. Returns 0 when the directory is exhausted.
	ReadDir(ctx context.Context, f *File, dirs []Direntry) (int, error)

	// Return a snapshot of the receiver directory's children as a map from
	// name to inode number.
	ReadDirInodes(ctx context.Context, dir *Dentry) (map[string]InodeID, error)

	// Fill st from the inode's metadata.
	GetAttr(ctx context.Context, d *Dentry, st *Stat) error
}
