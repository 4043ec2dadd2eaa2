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

package ramfs

import (
	"context"
	"fmt"
	"sort"

	"github.com/jacobsa/vfs"
	"github.com/jacobsa/vfs/vfsutil"
)

// An inode object handed to the resolver. The object itself is only a cache
// entry; everything durable about the inode lives in the file system's
// node-data map under its number.
type inode struct {
	/////////////////////////
	// Constant data
	/////////////////////////

	ino vfs.InodeID
	fs  *RamFS

	/////////////////////////
	// Mutable state
	/////////////////////////

	// Dentries currently pointing at this inode.
	dentries []*vfs.Dentry // GUARDED_BY(fs.mu)
}

////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////

// Build a dentry for this inode under the given parent, recording it in the
// inode's dentry list. A nil parent builds a root dentry.
func (in *inode) createDentry(parent *vfs.Dentry, name string) *vfs.Dentry {
	d := vfs.NewDentry(parent, name, in)

	in.fs.mu.Lock()
	in.dentries = append(in.dentries, d)
	in.fs.mu.Unlock()

	return d
}

// Allocate an inode of the given mode and link it into the receiver
// directory under name, returning a dentry for it. Shared implementation of
// Create and MkDir.
func (in *inode) createEntity(
	dir *vfs.Dentry,
	name string,
	mode vfs.INodeType) (*vfs.Dentry, error) {
	if len(name) > vfs.NameMax {
		return nil, vfs.ENAMETOOLONG
	}

	child := in.fs.allocInode(vfs.INodeMetaData{Mode: mode})
	in.fs.linkInode(in, child, name)
	return child.createDentry(dir, name), nil
}

////////////////////////////////////////////////////////////////////////
// Inode methods
////////////////////////////////////////////////////////////////////////

func (in *inode) Ino() vfs.InodeID {
	return in.ino
}

func (in *inode) Metadata() vfs.INodeMetaData {
	in.fs.mu.RLock()
	defer in.fs.mu.RUnlock()

	nd, ok := in.fs.data[in.ino]
	if !ok {
		panic(fmt.Sprintf("Unknown inode: %d", in.ino))
	}

	return nd.metadata
}

func (in *inode) SetMetadata(md vfs.INodeMetaData) {
	in.fs.mu.Lock()
	defer in.fs.mu.Unlock()

	nd, ok := in.fs.data[in.ino]
	if !ok {
		panic(fmt.Sprintf("Unknown inode: %d", in.ino))
	}

	nd.metadata = md
}

func (in *inode) FS() vfs.FileSystem {
	return in.fs
}

func (in *inode) Dentries() []*vfs.Dentry {
	in.fs.mu.RLock()
	defer in.fs.mu.RUnlock()

	dentries := make([]*vfs.Dentry, len(in.dentries))
	copy(dentries, in.dentries)
	return dentries
}

func (in *inode) Lookup(
	ctx context.Context,
	dir *vfs.Dentry,
	name string) (*vfs.Dentry, error) {
	in.fs.mu.RLock()
	nd, ok := in.fs.data[in.ino]

	var childIno vfs.InodeID
	if ok {
		childIno, ok = nd.childrenIno[name]
	}
	in.fs.mu.RUnlock()

	if !ok {
		return nil, vfs.ENOENT
	}

	child, err := in.fs.getInode(childIno)
	if err != nil {
		return nil, err
	}

	// Re-use a cached dentry for this entry if one is still present, rather
	// than growing the inode's dentry list with an equivalent copy.
	if d, ok := dir.Child(name); ok {
		if di, err := d.Inode(); err == nil && di.Ino() == childIno {
			return d, nil
		}
	}

	return child.createDentry(dir, name), nil
}

func (in *inode) Create(
	ctx context.Context,
	dir *vfs.Dentry,
	name string) (*vfs.Dentry, error) {
	return in.createEntity(dir, name, vfs.IFREG)
}

func (in *inode) MkDir(
	ctx context.Context,
	dir *vfs.Dentry,
	name string) (*vfs.Dentry, error) {
	return in.createEntity(dir, name, vfs.IFDIR)
}

func (in *inode) Unlink(
	ctx context.Context,
	dir *vfs.Dentry,
	name string) error {
	in.fs.mu.Lock()

	nd, ok := in.fs.data[in.ino]
	if !ok {
		in.fs.mu.Unlock()
		return vfs.ENOENT
	}

	if _, ok := nd.childrenIno[name]; !ok {
		in.fs.mu.Unlock()
		return vfs.ENOENT
	}

	delete(nd.childrenIno, name)
	nd.metadata.Mtime = in.fs.clock.Now()
	in.fs.mu.Unlock()

	dir.RemoveChild(name)
	return nil
}

func (in *inode) Read(
	ctx context.Context,
	f *vfs.File,
	p []byte) (int, error) {
	in.fs.mu.RLock()
	defer in.fs.mu.RUnlock()

	nd, ok := in.fs.data[in.ino]
	if !ok {
		return 0, vfs.ENOENT
	}

	// End of file.
	if f.Pos >= uint64(len(nd.bytes)) {
		return 0, nil
	}

	n := copy(p, nd.bytes[f.Pos:])
	f.Pos += uint64(n)
	return n, nil
}

func (in *inode) Write(
	ctx context.Context,
	f *vfs.File,
	p []byte) (int, error) {
	in.fs.mu.Lock()
	defer in.fs.mu.Unlock()

	nd, ok := in.fs.data[in.ino]
	if !ok {
		return 0, vfs.ENOENT
	}

	if f.Mode.Contains(vfs.O_APPEND) {
		f.Pos = uint64(len(nd.bytes))
	}

	// Ensure the contents are long enough, zero-filling any gap.
	newLen := int(f.Pos) + len(p)
	if len(nd.bytes) < newLen {
		padding := make([]byte, newLen-len(nd.bytes))
		nd.bytes = append(nd.bytes, padding...)
	}

	n := copy(nd.bytes[f.Pos:], p)
	if n != len(p) {
		panic(fmt.Sprintf("Unexpected short copy: %v", n))
	}

	now := in.fs.clock.Now()
	nd.metadata.Mtime = now
	nd.metadata.Ctime = now

	f.Pos += uint64(n)
	return n, nil
}

func (in *inode) ReadDir(
	ctx context.Context,
	f *vfs.File,
	dirs []vfs.Direntry) (int, error) {
	in.fs.mu.RLock()
	defer in.fs.mu.RUnlock()

	nd, ok := in.fs.data[in.ino]
	if !ok {
		return 0, vfs.ENOENT
	}

	names := make([]string, 0, len(nd.childrenIno))
	for name := range nd.childrenIno {
		names = append(names, name)
	}
	sort.Strings(names)

	n := 0
	for i := int(f.Pos); i < len(names) && n < len(dirs); i++ {
		name := names[i]
		err := vfsutil.WriteDirentry(
			&dirs[n], nd.childrenIno[name], uint64(i), name)
		if err != nil {
			return n, err
		}

		n++
	}

	f.Pos += uint64(n)
	return n, nil
}

func (in *inode) ReadDirInodes(
	ctx context.Context,
	dir *vfs.Dentry) (map[string]vfs.InodeID, error) {
	in.fs.mu.RLock()
	defer in.fs.mu.RUnlock()

	nd, ok := in.fs.data[in.ino]
	if !ok {
		return nil, vfs.ENOENT
	}

	children := make(map[string]vfs.InodeID, len(nd.childrenIno))
	for name, ino := range nd.childrenIno {
		children[name] = ino
	}

	return children, nil
}

func (in *inode) GetAttr(
	ctx context.Context,
	d *vfs.Dentry,
	st *vfs.Stat) error {
	md := in.Metadata()

	st.Mode = md.Mode
	st.Uid = md.Uid
	st.Gid = md.Gid
	st.Ino = md.Ino
	st.Atime = md.Atime
	st.Mtime = md.Mtime
	st.Ctime = md.Ctime
	st.Nlink = md.Nlink

	return nil
}
