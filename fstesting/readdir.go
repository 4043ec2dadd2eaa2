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

package fstesting

import (
	"context"

	"github.com/jacobsa/vfs"
	"github.com/jacobsa/vfs/vfsutil"
)

// Drain the directory handle through repeated ReadDir calls with a small
// buffer, returning every entry seen before the terminating zero count.
func ReadDirAll(
	ctx context.Context,
	registry *vfs.RegisteredFS,
	f *vfs.File) ([]vfs.Direntry, error) {
	var all []vfs.Direntry
	var buf [2]vfs.Direntry

	for {
		n, err := registry.ReadDir(ctx, f, buf[:])
		if err != nil {
			return nil, err
		}

		if n == 0 {
			return all, nil
		}

		all = append(all, buf[:n]...)
	}
}

// Return the names carried by the given entries, in order.
func DirentryNames(entries []vfs.Direntry) []string {
	var names []string
	for i := range entries {
		names = append(names, vfsutil.DirentryName(&entries[i]))
	}

	return names
}
