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

// Package ramfs implements the vfs driver contract purely in memory. The
// authoritative storage is a map from inode number to node data (bytes,
// children, metadata); inode objects handed to the resolver are cache
// entries reconstructible from that map.
package ramfs

import (
	"fmt"
	"sync"

	"github.com/jacobsa/syncutil"
	"github.com/jacobsa/timeutil"
	"github.com/jacobsa/vfs"
)

const defaultBlockSize = 4096

type RamFS struct {
	/////////////////////////
	// Dependencies
	/////////////////////////

	clock timeutil.Clock

	/////////////////////////
	// Constant data
	/////////////////////////

	blockSize int

	/////////////////////////
	// Mutable state
	/////////////////////////

	// Guards the inode cache and the node-data map. When acquiring this lock
	// the caller may hold the registry lock, never the reverse.
	mu syncutil.InvariantMutex

	// The last inode number issued. Held separately from mu so the counter
	// can bump before the write lock is taken.
	//
	// INVARIANT: maxInode only grows; inode numbers are never reused within
	// a mount lifetime.
	maxInodeMu sync.Mutex
	maxInode   vfs.InodeID // GUARDED_BY(maxInodeMu)

	// The root directory's inode.
	//
	// INVARIANT: root != nil
	// INVARIANT: data[root.ino].metadata.Mode == vfs.IFDIR
	root *inode

	// Materialized inode objects, by number.
	//
	// INVARIANT: For all keys k, inodes[k].ino == k
	// INVARIANT: For all keys k, data[k] exists
	inodes map[vfs.InodeID]*inode // GUARDED_BY(mu)

	// The authoritative storage.
	//
	// INVARIANT: For all keys k, data[k].metadata.Ino == k
	// INVARIANT: For all keys k, k <= maxInode
	// INVARIANT: Every ino appearing in a childrenIno map has an entry here
	// INVARIANT: Directories hold no bytes; regular files hold no children
	data map[vfs.InodeID]*nodeData // GUARDED_BY(mu)
}

// The persistent record for one inode.
type nodeData struct {
	bytes       []byte
	parentIno   vfs.InodeID
	childrenIno map[string]vfs.InodeID
	metadata    vfs.INodeMetaData
}

// Create an empty file system whose inode times are drawn from clock,
// returning it along with a dentry for its root directory.
func New(clock timeutil.Clock) (*RamFS, *vfs.Dentry) {
	fs := &RamFS{
		clock:     clock,
		blockSize: defaultBlockSize,
		inodes:    make(map[vfs.InodeID]*inode),
		data:      make(map[vfs.InodeID]*nodeData),
	}

	// Construction is single-threaded, so the root can be assembled before
	// invariant checking is armed.
	root := fs.allocInodeLocked(fs.nextIno(), vfs.INodeMetaData{Mode: vfs.IFDIR})
	fs.root = root

	rootDentry := vfs.NewDentry(nil, "/", root)
	root.dentries = append(root.dentries, rootDentry)

	fs.mu = syncutil.NewInvariantMutex(fs.checkInvariants)
	return fs, rootDentry
}

// Mount is a vfs.MountFunc using the wall clock. The device name is unused
// by this driver.
func Mount(devName string) (vfs.FileSystem, *vfs.Dentry, error) {
	fs, rootDentry := New(timeutil.RealClock())
	return fs, rootDentry, nil
}

func (fs *RamFS) BlockSize() int {
	return fs.blockSize
}

////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////

func (fs *RamFS) checkInvariants() {
	// INVARIANT: root != nil
	if fs.root == nil {
		panic("No root inode.")
	}

	// INVARIANT: data[root.ino].metadata.Mode == vfs.IFDIR
	rootData, ok := fs.data[fs.root.ino]
	if !ok || rootData.metadata.Mode != vfs.IFDIR {
		panic("Expected root to be a directory.")
	}

	fs.maxInodeMu.Lock()
	maxInode := fs.maxInode
	fs.maxInodeMu.Unlock()

	for ino, nd := range fs.data {
		// INVARIANT: For all keys k, data[k].metadata.Ino == k
		if nd.metadata.Ino != ino {
			panic(fmt.Sprintf("Ino mismatch: %d vs. %d", nd.metadata.Ino, ino))
		}

		// INVARIANT: For all keys k, k <= maxInode
		if ino > maxInode {
			panic(fmt.Sprintf("Inode %d beyond counter %d", ino, maxInode))
		}

		// INVARIANT: Every ino appearing in a childrenIno map has an entry
		for name, child := range nd.childrenIno {
			if _, ok := fs.data[child]; !ok {
				panic(fmt.Sprintf(
					"Dangling child %q of inode %d: %d", name, ino, child))
			}
		}

		// INVARIANT: Directories hold no bytes; regular files hold no children
		if nd.metadata.Mode == vfs.IFDIR && len(nd.bytes) != 0 {
			panic(fmt.Sprintf("Directory %d holds %d bytes", ino, len(nd.bytes)))
		}

		if nd.metadata.Mode == vfs.IFREG && len(nd.childrenIno) != 0 {
			panic(fmt.Sprintf("File %d holds children", ino))
		}
	}

	// INVARIANT: For all keys k, inodes[k].ino == k
	// INVARIANT: For all keys k, data[k] exists
	for ino, in := range fs.inodes {
		if in.ino != ino {
			panic(fmt.Sprintf("Cache key mismatch: %d vs. %d", in.ino, ino))
		}

		if _, ok := fs.data[ino]; !ok {
			panic(fmt.Sprintf("Cached inode %d without data", ino))
		}
	}
}

// Mint the next inode number.
func (fs *RamFS) nextIno() vfs.InodeID {
	fs.maxInodeMu.Lock()
	defer fs.maxInodeMu.Unlock()

	fs.maxInode++
	return fs.maxInode
}

// Register a fresh inode under the given number in the cache and the
// node-data map. Times are stamped from the clock; a zero metadata mode
// yields a regular file.
//
// EXCLUSIVE_LOCKS_REQUIRED(fs.mu)
func (fs *RamFS) allocInodeLocked(
	ino vfs.InodeID,
	md vfs.INodeMetaData) *inode {
	now := fs.clock.Now()
	md.Ino = ino
	md.Atime = now
	md.Mtime = now
	md.Ctime = now

	in := &inode{
		ino: ino,
		fs:  fs,
	}

	fs.inodes[ino] = in
	fs.data[ino] = &nodeData{
		childrenIno: make(map[string]vfs.InodeID),
		metadata:    md,
	}

	return in
}

func (fs *RamFS) allocInode(md vfs.INodeMetaData) *inode {
	// Mint the number before taking the write lock.
	ino := fs.nextIno()

	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.allocInodeLocked(ino, md)
}

// Insert name -> sub into parent's child map, bumping link counts on both
// sides. Bumping the parent as well as the child diverges from hard-link
// rules; see DESIGN.md.
func (fs *RamFS) linkInode(parent *inode, sub *inode, name string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parentData := fs.data[parent.ino]
	parentData.childrenIno[name] = sub.ino
	parentData.metadata.Nlink++
	parentData.metadata.Mtime = fs.clock.Now()

	subData := fs.data[sub.ino]
	subData.metadata.Nlink++
	subData.parentIno = parent.ino
}

// Return the inode object for the given number, materializing a cache entry
// from the node-data map if needed. Returns ENOENT for a number with no
// data record.
func (fs *RamFS) getInode(ino vfs.InodeID) (*inode, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if in, ok := fs.inodes[ino]; ok {
		return in, nil
	}

	if _, ok := fs.data[ino]; ok {
		in := &inode{
			ino: ino,
			fs:  fs,
		}

		fs.inodes[ino] = in
		return in, nil
	}

	return nil, vfs.ENOENT
}
