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

// vfsshell mounts a fresh in-memory file system and drives it from a small
// interactive prompt. Useful for poking at the VFS layer without writing a
// program against it.
//
// Commands:
//
//	ls [PATH]        list a directory
//	mkdir PATH       create a directory
//	touch PATH       create an empty file
//	rm PATH          unlink a file or empty directory
//	write PATH TEXT  append text to a file, creating it if needed
//	cat PATH         print a file's contents
//	stat PATH        print an inode's attributes
//	exit             leave the shell
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kylelemons/godebug/pretty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jacobsa/vfs"
	"github.com/jacobsa/vfs/ramfs"
	"github.com/jacobsa/vfs/vfsutil"
)

var fDevName string

var rootCmd = &cobra.Command{
	Use:   "vfsshell",
	Short: "An interactive shell over an in-memory VFS mount",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	// Make the library's flags (--vfs.debug) available alongside our own.
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentFlags().AddFlagSet(pflag.CommandLine)

	rootCmd.PersistentFlags().StringVar(
		&fDevName, "dev_name", "", "Device name handed to the driver at mount.")
}

func run() error {
	ctx := context.Background()

	registry := vfs.New()
	registry.Register(vfs.RAMFS, ramfs.Mount)

	_, rootDentry, err := registry.Mount(vfs.RAMFS, fDevName)
	if err != nil {
		return fmt.Errorf("Mount: %w", err)
	}

	registry.SetRoot(rootDentry)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("vfs> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "exit" || fields[0] == "quit" {
			break
		}

		if err := dispatch(ctx, registry, fields); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", fields[0], err)
		}
	}

	return scanner.Err()
}

func dispatch(
	ctx context.Context,
	registry *vfs.RegisteredFS,
	fields []string) error {
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "ls":
		path := "/"
		if len(args) > 0 {
			path = args[0]
		}
		return ls(ctx, registry, path)

	case "mkdir":
		if len(args) != 1 {
			return fmt.Errorf("usage: mkdir PATH")
		}
		_, err := registry.MkDir(ctx, args[0])
		return err

	case "touch":
		if len(args) != 1 {
			return fmt.Errorf("usage: touch PATH")
		}
		_, err := registry.Create(ctx, args[0])
		return err

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: rm PATH")
		}
		return registry.Unlink(ctx, args[0])

	case "write":
		if len(args) < 2 {
			return fmt.Errorf("usage: write PATH TEXT")
		}
		return write(ctx, registry, args[0], strings.Join(args[1:], " "))

	case "cat":
		if len(args) != 1 {
			return fmt.Errorf("usage: cat PATH")
		}
		return cat(ctx, registry, args[0])

	case "stat":
		if len(args) != 1 {
			return fmt.Errorf("usage: stat PATH")
		}
		var st vfs.Stat
		if err := registry.Stat(ctx, args[0], &st); err != nil {
			return err
		}
		fmt.Println(pretty.Sprint(st))
		return nil
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func ls(ctx context.Context, registry *vfs.RegisteredFS, path string) error {
	f, err := registry.Open(ctx, path, vfs.O_RDONLY|vfs.O_DIRECTORY)
	if err != nil {
		return err
	}
	defer registry.Close(ctx, f)

	dirs := make([]vfs.Direntry, 8)
	for {
		n, err := registry.ReadDir(ctx, f, dirs)
		if err != nil {
			return err
		}

		if n == 0 {
			return nil
		}

		for i := 0; i < n; i++ {
			fmt.Println(vfsutil.DirentryName(&dirs[i]))
		}
	}
}

func write(
	ctx context.Context,
	registry *vfs.RegisteredFS,
	path string,
	text string) error {
	if _, err := registry.LookUp(ctx, path); err == vfs.ENOENT {
		if _, err := registry.Create(ctx, path); err != nil {
			return err
		}
	}

	f, err := registry.Open(ctx, path, vfs.O_WRONLY|vfs.O_APPEND)
	if err != nil {
		return err
	}
	defer registry.Close(ctx, f)

	_, err = registry.Write(ctx, f, []byte(text))
	return err
}

func cat(ctx context.Context, registry *vfs.RegisteredFS, path string) error {
	f, err := registry.Open(ctx, path, vfs.O_RDONLY)
	if err != nil {
		return err
	}
	defer registry.Close(ctx, f)

	buf := make([]byte, 4096)
	for {
		n, err := registry.Read(ctx, f, buf)
		if err != nil {
			return err
		}

		if n == 0 {
			fmt.Println()
			return nil
		}

		os.Stdout.Write(buf[:n])
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
