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

package vfs_test

import (
	"context"
	"testing"

	"github.com/jacobsa/vfs"
	"github.com/jacobsa/vfs/vfsutil"
	. "github.com/jacobsa/ogletest"
)

func TestRegistry(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////

// A driver whose only inode is its root directory and whose operation
// methods are all unimplemented. Exercises the sentinel-error contract: the
// registry propagates ENOSYS unchanged.
type nullFS struct {
}

func (fs *nullFS) BlockSize() int {
	return 0
}

type nullInode struct {
	vfsutil.NotImplementedInode

	md vfs.INodeMetaData
}

func (in *nullInode) Ino() vfs.InodeID {
	return in.md.Ino
}

func (in *nullInode) Metadata() vfs.INodeMetaData {
	return in.md
}

func (in *nullInode) SetMetadata(md vfs.INodeMetaData) {
	in.md = md
}

func (in *nullInode) FS() vfs.FileSystem {
	return &nullFS{}
}

func (in *nullInode) Dentries() []*vfs.Dentry {
	return nil
}

func mountNullFS(devName string) (vfs.FileSystem, *vfs.Dentry, error) {
	root := &nullInode{
		md: vfs.INodeMetaData{
			Mode:  vfs.IFDIR,
			Ino:   1,
			Nlink: 1,
		},
	}

	return &nullFS{}, vfs.NewDentry(nil, "/", root), nil
}

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type RegistryTest struct {
	ctx      context.Context
	registry *vfs.RegisteredFS
}

func init() { RegisterTestSuite(&RegistryTest{}) }

func (t *RegistryTest) SetUp(ti *TestInfo) {
	t.ctx = context.Background()

	t.registry = vfs.New()
	t.registry.Register(vfs.RAMFS, mountNullFS)

	_, rootDentry, err := t.registry.Mount(vfs.RAMFS, "")
	AssertEq(nil, err)
	t.registry.SetRoot(rootDentry)
}

////////////////////////////////////////////////////////////////////////
// Test functions
////////////////////////////////////////////////////////////////////////

func (t *RegistryTest) LookUpRootNeverTouchesDriver() {
	d, err := t.registry.LookUp(t.ctx, "/")

	AssertEq(nil, err)
	ExpectEq(t.registry.Root(), d)
}

func (t *RegistryTest) RelativePathsRejected() {
	_, err := t.registry.LookUp(t.ctx, "foo")
	ExpectEq(vfs.EINVAL, err)

	_, err = t.registry.MkDir(t.ctx, "")
	ExpectEq(vfs.EINVAL, err)
}

func (t *RegistryTest) UnimplementedLookupSurfaces() {
	_, err := t.registry.LookUp(t.ctx, "/foo")
	ExpectEq(vfs.ENOSYS, err)
}

func (t *RegistryTest) UnimplementedMkDirSurfaces() {
	_, err := t.registry.MkDir(t.ctx, "/foo")
	ExpectEq(vfs.ENOSYS, err)
}

func (t *RegistryTest) UnimplementedStatSurfaces() {
	var st vfs.Stat
	ExpectEq(vfs.ENOSYS, t.registry.Stat(t.ctx, "/", &st))
}

func (t *RegistryTest) UnimplementedReadDirSurfaces() {
	f, err := t.registry.Open(t.ctx, "/", vfs.O_RDONLY|vfs.O_DIRECTORY)
	AssertEq(nil, err)

	dirs := make([]vfs.Direntry, 1)
	_, err = t.registry.ReadDir(t.ctx, f, dirs)
	ExpectEq(vfs.ENOSYS, err)

	AssertEq(nil, t.registry.Close(t.ctx, f))
}

func (t *RegistryTest) OpenRootAsDirectory() {
	f, err := t.registry.Open(t.ctx, "/", vfs.O_RDONLY|vfs.O_DIRECTORY)

	AssertEq(nil, err)
	AssertNe(nil, f)
	ExpectEq(nil, t.registry.Close(t.ctx, f))
}

func (t *RegistryTest) ReadOnDirectoryHandle() {
	f, err := t.registry.Open(t.ctx, "/", vfs.O_RDONLY)
	AssertEq(nil, err)

	buf := make([]byte, 4)
	_, err = t.registry.Read(t.ctx, f, buf)
	ExpectEq(vfs.EINVAL, err)

	AssertEq(nil, t.registry.Close(t.ctx, f))
}

func (t *RegistryTest) CloseIsIdempotent() {
	f, err := t.registry.Open(t.ctx, "/", vfs.O_RDONLY)
	AssertEq(nil, err)

	ExpectEq(nil, t.registry.Close(t.ctx, f))
	ExpectEq(nil, t.registry.Close(t.ctx, f))
}

func (t *RegistryTest) ReRegisterOverwrites() {
	called := false
	t.registry.Register(
		vfs.RAMFS,
		func(devName string) (vfs.FileSystem, *vfs.Dentry, error) {
			called = true
			return mountNullFS(devName)
		})

	_, _, err := t.registry.Mount(vfs.RAMFS, "")
	AssertEq(nil, err)
	ExpectTrue(called)
}
