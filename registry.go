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
	"errors"
	"fmt"
	"strings"

	"github.com/jacobsa/reqtrace"
	"github.com/jacobsa/syncutil"
)

type mountInfo struct {
	mount MountFunc

	// File system instances mounted so far for this type.
	mounted []FileSystem
}

// The mount registry and entry point for all top-level operations. Create
// with New, then Register at least one driver, Mount it, and SetRoot with
// the returned root dentry.
//
// Every public operation serializes under the registry lock, so each op is
// atomic with respect to every other. Operations block only on lock
// acquisition; none suspends.
type RegisteredFS struct {
	// When acquiring both, the registry lock is taken strictly before any
	// driver-internal lock.
	mu syncutil.InvariantMutex

	// Registered drivers and their mounted instances, by type.
	//
	// INVARIANT: For all types t, mountInfos[t].mount != nil
	mountInfos map[FSType]*mountInfo // GUARDED_BY(mu)

	// The ambient root for path resolution, or nil before SetRoot.
	//
	// INVARIANT: If non-nil, rootDentry.Parent() == nil
	rootDentry *Dentry // GUARDED_BY(mu)

	// Files created by Open and not yet closed.
	//
	// INVARIANT: For all files f, f.inode != nil
	openedFiles []*File // GUARDED_BY(mu)
}

// Create an empty registry with no drivers and no root.
func New() *RegisteredFS {
	fs := &RegisteredFS{
		mountInfos: make(map[FSType]*mountInfo),
	}

	fs.mu = syncutil.NewInvariantMutex(fs.checkInvariants)
	return fs
}

func (fs *RegisteredFS) checkInvariants() {
	// INVARIANT: For all types t, mountInfos[t].mount != nil
	for t, mi := range fs.mountInfos {
		if mi.mount == nil {
			panic(fmt.Sprintf("Nil mount function for type: %v", t))
		}
	}

	// INVARIANT: If non-nil, rootDentry.Parent() == nil
	if fs.rootDentry != nil && fs.rootDentry.Parent() != nil {
		panic("Root dentry has a parent.")
	}

	// INVARIANT: For all files f, f.inode != nil
	for _, f := range fs.openedFiles {
		if f.inode == nil {
			panic(fmt.Sprintf("Open file without inode: %s", f.Path))
		}
	}
}

// Start a trace span for a top-level op, returning a function to be
// deferred with the op's error result.
func startOp(
	ctx context.Context,
	name string,
	arg string) (context.Context, func(*error)) {
	ctx, report := reqtrace.StartSpan(ctx, name)
	return ctx, func(err *error) {
		report(*err)
		if *err != nil {
			getLogger().Printf("%s(%q): %v", name, arg, *err)
		}
	}
}

// LOCKS_REQUIRED(fs.mu)
func (fs *RegisteredFS) rootOrDie() *Dentry {
	if fs.rootDentry == nil {
		panic(errors.New("rootfs was not set!"))
	}

	return fs.rootDentry
}

////////////////////////////////////////////////////////////////////////
// Registry management
////////////////////////////////////////////////////////////////////////

// Record a constructor for the given file system type. Registering the same
// type again overwrites the previous constructor and forgets its instances.
func (fs *RegisteredFS) Register(t FSType, mount MountFunc) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.mountInfos[t] = &mountInfo{mount: mount}
}

// Instantiate a file system of the given type, recording the instance in
// the registry. Panics if the type was never registered.
func (fs *RegisteredFS) Mount(
	t FSType,
	devName string) (FileSystem, *Dentry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	mi, ok := fs.mountInfos[t]
	if !ok {
		panic(fmt.Errorf("filesystem not found: %v", t))
	}

	getLogger().Printf("Mount(%v, %q)", t, devName)

	mounted, dentry, err := mi.mount(devName)
	if err != nil {
		return nil, nil, err
	}

	mi.mounted = append(mi.mounted, mounted)
	return mounted, dentry, nil
}

// Configure the ambient root used by path resolution.
func (fs *RegisteredFS) SetRoot(d *Dentry) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.rootDentry = d
}

// Return the ambient root. Panics if SetRoot was never called.
func (fs *RegisteredFS) Root() *Dentry {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.rootOrDie()
}

////////////////////////////////////////////////////////////////////////
// Path operations
////////////////////////////////////////////////////////////////////////

// Resolve path to a dentry.
func (fs *RegisteredFS) LookUp(
	ctx context.Context,
	path string) (d *Dentry, err error) {
	ctx, finish := startOp(ctx, "LookUp", path)
	defer finish(&err)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	nd, err := fs.pathLookup(ctx, path, 0)
	if err != nil {
		return nil, err
	}

	return nd.current, nil
}

// Create a directory at path, returning a dentry for it. Returns EEXIST if
// path is the root or already exists.
func (fs *RegisteredFS) MkDir(
	ctx context.Context,
	path string) (d *Dentry, err error) {
	ctx, finish := startOp(ctx, "MkDir", path)
	defer finish(&err)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	nd, err := fs.pathLookup(ctx, path, LOOKUP_PARENT)
	if err != nil {
		return nil, err
	}

	if len(nd.paths) == 0 || fs.lookupLast(ctx, nd, 0) == nil {
		return nil, EEXIST
	}

	parent := nd.current
	parentInode, err := parent.Inode()
	if err != nil {
		return nil, err
	}

	return parentInode.MkDir(ctx, parent, nd.paths[nd.curInd])
}

// Create a regular file at path, returning a dentry for it. A trailing
// slash forces EISDIR; an existing target yields EEXIST.
func (fs *RegisteredFS) Create(
	ctx context.Context,
	path string) (d *Dentry, err error) {
	ctx, finish := startOp(ctx, "Create", path)
	defer finish(&err)

	if strings.HasSuffix(path, "/") {
		return nil, EISDIR
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	nd, err := fs.pathLookup(ctx, path, LOOKUP_PARENT)
	if err != nil {
		return nil, err
	}

	parent := nd.current
	if fs.lookupLast(ctx, nd, 0) == nil {
		return nil, EEXIST
	}

	parentInode, err := parent.Inode()
	if err != nil {
		return nil, err
	}

	return parentInode.Create(ctx, parent, nd.paths[nd.curInd])
}

// Remove the entry at path. The root cannot be unlinked (EINVAL), an inode
// with an open handle is busy (EBUSY), and a directory must be empty
// (ENOTEMPTY).
func (fs *RegisteredFS) Unlink(ctx context.Context, path string) (err error) {
	ctx, finish := startOp(ctx, "Unlink", path)
	defer finish(&err)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	nd, err := fs.pathLookup(ctx, path, LOOKUP_PARENT)
	if err != nil {
		return err
	}

	if len(nd.paths) == 0 {
		return EINVAL
	}

	parent := nd.current
	if err = fs.lookupLast(ctx, nd, 0); err != nil {
		return err
	}

	curInode, err := nd.current.Inode()
	if err != nil {
		return err
	}

	// A file opened by anyone cannot be deleted.
	for _, f := range fs.openedFiles {
		if f.inode == curInode {
			return EBUSY
		}
	}

	// A directory must be empty before deletion.
	if curInode.Metadata().Mode == IFDIR {
		children, err := curInode.ReadDirInodes(ctx, nd.current)
		if err != nil {
			return err
		}

		if len(children) != 0 {
			return ENOTEMPTY
		}
	}

	parentInode, err := parent.Inode()
	if err != nil {
		return err
	}

	return parentInode.Unlink(ctx, parent, nd.paths[nd.curInd-1])
}

////////////////////////////////////////////////////////////////////////
// File operations
////////////////////////////////////////////////////////////////////////

// Open the file or directory at path, returning a handle whose strong
// inode reference keeps the object alive until Close.
func (fs *RegisteredFS) Open(
	ctx context.Context,
	path string,
	mode FileMode) (f *File, err error) {
	ctx, finish := startOp(ctx, "Open", path)
	defer finish(&err)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	nd, err := fs.pathLookup(ctx, path, 0)
	if err != nil {
		return nil, err
	}

	inode, err := nd.current.Inode()
	if err != nil {
		return nil, err
	}

	if mode.Contains(O_DIRECTORY) && inode.Metadata().Mode != IFDIR {
		return nil, ENOTDIR
	}

	f = newFile(path, inode, mode)
	fs.openedFiles = append(fs.openedFiles, f)
	return f, nil
}

// Close the handle, dropping its entry from the open-file list.
func (fs *RegisteredFS) Close(ctx context.Context, f *File) (err error) {
	_, finish := startOp(ctx, "Close", f.Path)
	defer finish(&err)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	for i, of := range fs.openedFiles {
		if of == f {
			f.refCount--
			fs.openedFiles = append(
				fs.openedFiles[:i], fs.openedFiles[i+1:]...)
			break
		}
	}

	return nil
}

// Read up to len(p) bytes from the file at its cursor. The handle must
// refer to a regular file (EINVAL) opened for reading (EBADF).
func (fs *RegisteredFS) Read(
	ctx context.Context,
	f *File,
	p []byte) (n int, err error) {
	ctx, finish := startOp(ctx, "Read", f.Path)
	defer finish(&err)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if f.inode.Metadata().Mode != IFREG {
		return 0, EINVAL
	}

	if !(f.Mode.Contains(O_RDONLY) || f.Mode.Contains(O_RDWR)) {
		return 0, EBADF
	}

	return f.inode.Read(ctx, f, p)
}

// Write len(p) bytes to the file at its cursor. The handle must refer to a
// regular file (EINVAL) opened for writing (EBADF).
func (fs *RegisteredFS) Write(
	ctx context.Context,
	f *File,
	p []byte) (n int, err error) {
	ctx, finish := startOp(ctx, "Write", f.Path)
	defer finish(&err)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if f.inode.Metadata().Mode != IFREG {
		return 0, EINVAL
	}

	if !(f.Mode.Contains(O_WRONLY) ||
		f.Mode.Contains(O_RDWR) ||
		f.Mode.Contains(O_APPEND)) {
		return 0, EBADF
	}

	return f.inode.Write(ctx, f, p)
}

// Fill dirs with entries of the directory the handle refers to, returning
// the number written. Zero signals the end of the directory.
func (fs *RegisteredFS) ReadDir(
	ctx context.Context,
	f *File,
	dirs []Direntry) (n int, err error) {
	ctx, finish := startOp(ctx, "ReadDir", f.Path)
	defer finish(&err)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if f.inode.Metadata().Mode != IFDIR {
		return 0, EINVAL
	}

	if !(f.Mode.Contains(O_RDONLY) || f.Mode.Contains(O_RDWR)) {
		return 0, EBADF
	}

	return f.inode.ReadDir(ctx, f, dirs)
}

// Resolve path and fill st from its inode's metadata.
func (fs *RegisteredFS) Stat(
	ctx context.Context,
	path string,
	st *Stat) (err error) {
	ctx, finish := startOp(ctx, "Stat", path)
	defer finish(&err)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	nd, err := fs.pathLookup(ctx, path, 0)
	if err != nil {
		return err
	}

	inode, err := nd.current.Inode()
	if err != nil {
		return err
	}

	return inode.GetAttr(ctx, nd.current, st)
}

func (fs *RegisteredFS) String() string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "RegisteredFS info: \n")
	for t, mi := range fs.mountInfos {
		fmt.Fprintf(&b, "type: %v mount_times: %d", t, len(mi.mounted))
	}

	return b.String()
}
