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

package vfsutil

import (
	"context"

	"github.com/jacobsa/vfs"
)

// An Inode whose operation methods all return ENOSYS. Embed this in a
// driver's inode type to avoid writing methods for capabilities it doesn't
// support; the accessor methods (Ino, Metadata, FS, …) must still be
// supplied by the embedder.
type NotImplementedInode struct {
}

func (in *NotImplementedInode) Lookup(
	ctx context.Context,
	dir *vfs.Dentry,
	name string) (*vfs.Dentry, error) {
	return nil, vfs.ENOSYS
}

func (in *NotImplementedInode) Create(
	ctx context.Context,
	dir *vfs.Dentry,
	name string) (*vfs.Dentry, error) {
	return nil, vfs.ENOSYS
}

func (in *NotImplementedInode) MkDir(
	ctx context.Context,
	dir *vfs.Dentry,
	name string) (*vfs.Dentry, error) {
	return nil, vfs.ENOSYS
}

func (in *NotImplementedInode) Unlink(
	ctx context.Context,
	dir *vfs.Dentry,
	name string) error {
	return vfs.ENOSYS
}

func (in *NotImplementedInode) Read(
	ctx context.Context,
	f *vfs.File,
	p []byte) (int, error) {
	return 0, vfs.ENOSYS
}

func (in *NotImplementedInode) Write(
	ctx context.Context,
	f *vfs.File,
	p []byte) (int, error) {
	return 0, vfs.ENOSYS
}

func (in *NotImplementedInode) ReadDir(
	ctx context.Context,
	f *vfs.File,
	dirs []vfs.Direntry) (int, error) {
	return 0, vfs.ENOSYS
}

func (in *NotImplementedInode) ReadDirInodes(
	ctx context.Context,
	dir *vfs.Dentry) (map[string]vfs.InodeID, error) {
	return nil, vfs.ENOSYS
}

func (in *NotImplementedInode) GetAttr(
	ctx context.Context,
	d *vfs.Dentry,
	st *vfs.Stat) error {
	return vfs.ENOSYS
}
