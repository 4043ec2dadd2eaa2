// Copyright 2015 Google Inc. All Rights Reserved.
// Author: jacobsa@google.com (Aaron Jacobs)

package vfs

import (
	"syscall"
)

const (
	// Errors corresponding to kernel error numbers. These are the values
	// produced by the registry and by drivers; callers compare against them
	// directly.
	ENOENT       = syscall.ENOENT
	ENOTDIR      = syscall.ENOTDIR
	EISDIR       = syscall.EISDIR
	EEXIST       = syscall.EEXIST
	ENOTEMPTY    = syscall.ENOTEMPTY
	EINVAL       = syscall.EINVAL
	EBUSY        = syscall.EBUSY
	EBADF        = syscall.EBADF
	ENOSYS       = syscall.ENOSYS
	ENAMETOOLONG = syscall.ENAMETOOLONG
)
