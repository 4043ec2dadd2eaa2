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

package vfsutil_test

import (
	"strings"
	"testing"

	"github.com/jacobsa/vfs"
	"github.com/jacobsa/vfs/vfsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDirentry(t *testing.T) {
	var d vfs.Direntry

	err := vfsutil.WriteDirentry(&d, 17, 3, "taco")
	require.NoError(t, err)

	assert.Equal(t, vfs.InodeID(17), d.Ino)
	assert.Equal(t, uint64(3), d.Off)
	assert.Equal(t, uint32(4), d.NameLen)
	assert.Equal(t, "taco", vfsutil.DirentryName(&d))

	// NUL-terminated when shorter than the buffer.
	assert.Equal(t, byte(0), d.Name[4])
}

func TestWriteDirentryReuse(t *testing.T) {
	var d vfs.Direntry

	require.NoError(t, vfsutil.WriteDirentry(&d, 1, 0, "enchilada"))
	require.NoError(t, vfsutil.WriteDirentry(&d, 2, 1, "queso"))

	assert.Equal(t, "queso", vfsutil.DirentryName(&d))
	assert.Equal(t, byte(0), d.Name[5])
}

func TestWriteDirentryMaxName(t *testing.T) {
	var d vfs.Direntry
	name := strings.Repeat("x", vfs.NameMax)

	require.NoError(t, vfsutil.WriteDirentry(&d, 1, 0, name))
	assert.Equal(t, uint32(vfs.NameMax), d.NameLen)
	assert.Equal(t, name, vfsutil.DirentryName(&d))

	// A name of the maximum length still leaves room for the NUL.
	assert.Equal(t, byte(0), d.Name[vfs.NameMax])
}

func TestWriteDirentryOverLongName(t *testing.T) {
	var d vfs.Direntry
	name := strings.Repeat("x", vfs.NameMax+1)

	err := vfsutil.WriteDirentry(&d, 1, 0, name)
	assert.Equal(t, vfs.ENAMETOOLONG, err)
}
