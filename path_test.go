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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected []string
	}{
		{"root", "/", nil},
		{"repeated separators only", "///", nil},
		{"single component", "/a", []string{"a"}},
		{"trailing separator", "/a/", []string{"a"}},
		{"nested", "/a/b/c", []string{"a", "b", "c"}},
		{"repeated separators", "/a//b", []string{"a", "b"}},
		{"leading repeats", "//a/b/", []string{"a", "b"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, splitPath(tc.path))
		})
	}
}

func TestLookupFlagContains(t *testing.T) {
	flags := LOOKUP_PARENT | LOOKUP_DIRECTORY

	assert.True(t, flags.Contains(LOOKUP_PARENT))
	assert.True(t, flags.Contains(LOOKUP_DIRECTORY))
	assert.True(t, flags.Contains(LOOKUP_PARENT|LOOKUP_DIRECTORY))
	assert.False(t, flags.Contains(LOOKUP_REVAL))
	assert.False(t, flags.Contains(LOOKUP_PARENT|LOOKUP_REVAL))
}

func TestFileModeContains(t *testing.T) {
	mode := O_RDWR | O_APPEND

	assert.True(t, mode.Contains(O_RDWR))
	assert.True(t, mode.Contains(O_APPEND))
	assert.False(t, mode.Contains(O_RDONLY))
	assert.False(t, mode.Contains(O_DIRECTORY))
}

func TestINodeTypeZeroValue(t *testing.T) {
	// Metadata constructed without an explicit mode describes a regular file.
	var md INodeMetaData
	assert.Equal(t, IFREG, md.Mode)
}

func TestStringForms(t *testing.T) {
	assert.Equal(t, "RAMFS", RAMFS.String())
	assert.Equal(t, "IFDIR", IFDIR.String())
	assert.Equal(t, "IFREG", IFREG.String())

	md := INodeMetaData{Mode: IFDIR, Ino: 7, Nlink: 2}
	assert.Equal(t, "ino: 7 mode: IFDIR nlink: 2", md.String())
}
