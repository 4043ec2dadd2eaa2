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

// A cached path node associating a (parent, name) pair with an inode. The
// dentry tree is the resolver's cache above the inode graph; it is
// non-authoritative, and on any miss the owning inode's Lookup is the
// source of truth.
//
// A dentry moves through three states: live while reachable from its
// parent's child cache, dead once unlinked (holders that already have a
// pointer still see it), and collected once no holder remains.
//
// All fields are guarded by the registry lock of the RegisteredFS the
// dentry is reachable from.
type Dentry struct {
	// The parent dentry, or nil for the root of a mount.
	parent *Dentry

	// The inode this dentry resolves to. Never nil for a dentry returned by
	// a driver, but Inode keeps its error path as the defensive check the
	// resolver relies on.
	inode Inode

	// Cached children of this dentry, by name.
	//
	// INVARIANT: For all names n, subdirs[n].parent == d
	subdirs map[string]*Dentry
}

// Create a dentry for the given inode and link it into parent's child cache
// under name. A nil parent creates a root dentry, in which case name is
// ignored.
func NewDentry(parent *Dentry, name string, inode Inode) *Dentry {
	d := &Dentry{
		parent:  parent,
		inode:   inode,
		subdirs: make(map[string]*Dentry),
	}

	if parent != nil {
		parent.subdirs[name] = d
	}

	return d
}

// Return the parent dentry, or nil for a root.
func (d *Dentry) Parent() *Dentry {
	return d.parent
}

// Return the inode the dentry resolves to, or ENOENT if the dentry no
// longer has one.
func (d *Dentry) Inode() (Inode, error) {
	if d.inode == nil {
		return nil, ENOENT
	}

	return d.inode, nil
}

// Return the cached child dentry for name, if any.
func (d *Dentry) Child(name string) (*Dentry, bool) {
	child, ok := d.subdirs[name]
	return child, ok
}

// Remove name from the child cache. Called by drivers from Unlink; the
// removed dentry becomes dead but remains usable by existing holders.
func (d *Dentry) RemoveChild(name string) {
	delete(d.subdirs, name)
}

func (d *Dentry) String() string {
	inode, err := d.Inode()
	if err != nil {
		return "inode_of_dentry: {dead}"
	}

	return fmt.Sprintf("inode_of_dentry: {%v}", inode.Metadata())
}
