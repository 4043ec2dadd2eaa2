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
	"strings"
)

// Resolution state for a single path walk: the dentry the walk currently
// stands on, the root it started from, and the remaining components.
type nameIData struct {
	current *Dentry
	root    *Dentry
	paths   []string
	curInd  int
}

// Split an absolute path into components, discarding empty ones so that
// "/", "/a/" and "/a//b" normalize.
func splitPath(path string) []string {
	var components []string
	for _, c := range strings.Split(path, "/") {
		if c != "" {
			components = append(components, c)
		}
	}

	return components
}

// Resolve path according to flags. With LOOKUP_PARENT the terminal
// component is left unresolved and nd.current names its parent; otherwise
// nd.current names the terminal itself.
//
// LOCKS_REQUIRED(fs.mu)
func (fs *RegisteredFS) pathLookup(
	ctx context.Context,
	path string,
	flags LookupFlag) (nd *nameIData, err error) {
	nd, err = fs.pathInit(path, flags)
	if err != nil {
		return nil, err
	}

	if err = fs.pathWalk(ctx, nd, flags); err != nil {
		return nil, err
	}

	// The path may have been "/", in which case there is no terminal
	// component to resolve.
	if nd.curInd < len(nd.paths) {
		if !flags.Contains(LOOKUP_PARENT) {
			if err = fs.lookupLast(ctx, nd, flags); err != nil {
				return nil, err
			}
		}
	}

	return nd, nil
}

// Set up resolution state for path. Only absolute paths are supported;
// relative resolution from a working directory would need a per-caller
// starting dentry.
//
// LOCKS_REQUIRED(fs.mu)
func (fs *RegisteredFS) pathInit(
	path string,
	flags LookupFlag) (*nameIData, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, EINVAL
	}

	root := fs.rootOrDie()
	return &nameIData{
		current: root,
		root:    root,
		paths:   splitPath(path),
	}, nil
}

// Walk every component except the terminal one, leaving nd.current at the
// terminal's parent.
//
// LOCKS_REQUIRED(fs.mu)
func (fs *RegisteredFS) pathWalk(
	ctx context.Context,
	nd *nameIData,
	flags LookupFlag) error {
	curInode, err := nd.current.Inode()
	if err != nil {
		return err
	}

	if curInode.Metadata().Mode != IFDIR {
		return ENOTDIR
	}

	for nd.curInd+1 < len(nd.paths) {
		if err := fs.walkComponent(ctx, nd, flags); err != nil {
			return err
		}
	}

	return nil
}

// Resolve the component at nd.curInd, require it to be a directory, and
// advance.
//
// LOCKS_REQUIRED(fs.mu)
func (fs *RegisteredFS) walkComponent(
	ctx context.Context,
	nd *nameIData,
	flags LookupFlag) error {
	dentry, err := fs.lookupAt(ctx, nd.paths[nd.curInd], nd.current, flags)
	if err != nil {
		return err
	}

	next, err := dentry.Inode()
	if err != nil {
		return ENOENT
	}

	if next.Metadata().Mode != IFDIR {
		return ENOTDIR
	}

	nd.curInd++
	nd.current = dentry
	return nil
}

// Resolve the terminal component, enforcing LOOKUP_DIRECTORY if set, and
// advance.
//
// LOCKS_REQUIRED(fs.mu)
func (fs *RegisteredFS) lookupLast(
	ctx context.Context,
	nd *nameIData,
	flags LookupFlag) error {
	dentry, err := fs.lookupAt(ctx, nd.paths[nd.curInd], nd.current, flags)
	if err != nil {
		return err
	}

	if flags.Contains(LOOKUP_DIRECTORY) {
		inode, err := dentry.Inode()
		if err != nil {
			return ENOENT
		}

		if inode.Metadata().Mode != IFDIR {
			return ENOTDIR
		}
	}

	nd.curInd++
	nd.current = dentry
	return nil
}

// Resolve name under current: consult the dentry cache first unless
// LOOKUP_REVAL is set, then fall through to the owning inode's Lookup,
// which links a fresh child dentry into the cache.
//
// LOCKS_REQUIRED(fs.mu)
func (fs *RegisteredFS) lookupAt(
	ctx context.Context,
	name string,
	current *Dentry,
	flags LookupFlag) (*Dentry, error) {
	if !flags.Contains(LOOKUP_REVAL) {
		if child, ok := current.Child(name); ok {
			return child, nil
		}
	}

	inode, err := current.Inode()
	if err != nil {
		return nil, err
	}

	return inode.Lookup(ctx, current, name)
}
