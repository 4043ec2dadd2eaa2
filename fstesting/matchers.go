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

// Package fstesting provides matchers and helpers for tests that exercise a
// RegisteredFS.
package fstesting

import (
	"fmt"
	"reflect"
	"time"

	"github.com/jacobsa/oglematchers"
	"github.com/jacobsa/vfs"
)

// Match Stat or INodeMetaData values whose mode equals the given type.
func ModeIs(expected vfs.INodeType) oglematchers.Matcher {
	return oglematchers.NewMatcher(
		func(c interface{}) error { return modeIs(c, expected) },
		fmt.Sprintf("mode is %v", expected))
}

func modeIs(c interface{}, expected vfs.INodeType) error {
	actual, err := extractMode(c)
	if err != nil {
		return err
	}

	if actual != expected {
		return fmt.Errorf("which has mode %v", actual)
	}

	return nil
}

func extractMode(c interface{}) (vfs.INodeType, error) {
	switch v := c.(type) {
	case vfs.Stat:
		return v.Mode, nil

	case *vfs.Stat:
		return v.Mode, nil

	case vfs.INodeMetaData:
		return v.Mode, nil
	}

	return 0, fmt.Errorf("which is of type %v", reflect.TypeOf(c))
}

// Match Stat values whose mtime equals the given time.
func MtimeIs(expected time.Time) oglematchers.Matcher {
	return oglematchers.NewMatcher(
		func(c interface{}) error { return mtimeIs(c, expected) },
		fmt.Sprintf("mtime is %v", expected))
}

func mtimeIs(c interface{}, expected time.Time) error {
	var actual time.Time
	switch v := c.(type) {
	case vfs.Stat:
		actual = v.Mtime

	case *vfs.Stat:
		actual = v.Mtime

	default:
		return fmt.Errorf("which is of type %v", reflect.TypeOf(c))
	}

	if !actual.Equal(expected) {
		d := actual.Sub(expected)
		return fmt.Errorf("which has mtime %v, off by %v", actual, d)
	}

	return nil
}
