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

// Package vfs provides a Unix-style virtual file system layer: a mount
// registry with a path-based API (LookUp, MkDir, Create, Unlink, Open,
// Close, Read, Write, ReadDir, Stat) over pluggable file system drivers.
//
// Path resolution walks absolute paths component by component, consulting a
// cache of directory entries (dentries) and falling through to the owning
// inode's Lookup method on a miss. Drivers implement the Inode interface
// over their own storage; package ramfs contains a reference driver that
// lives entirely in memory.
//
// All top-level operations on a RegisteredFS serialize under a single
// registry lock. Operations never suspend; they run to completion or to an
// error return. Errors are syscall.Errno values, re-exported from this
// package, and propagate unchanged from the driver to the caller.
package vfs
