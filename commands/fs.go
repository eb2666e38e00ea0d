package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"shelld/shell"
	"shelld/util"
)

const (
	msgNotADirectory   = " is not a directory"
	msgArgNotSpecified = "argument not specified"
	msgOpenSource      = "couldnt open source file"
	msgOpenDest        = "couldnt open destination file"
	msgMoveFailed      = "error moving file"

	dirMarkStart = "["
	dirMarkStop  = "]"

	padToFileSize = 40
	padToNextFile = 16
)

// sizeUnits are decimal-scaled, matching the listing format of the
// original implementation (1 kb = 1000 b).
var sizeUnits = []string{"b", "kb", "Mb", "Gb"}

// InstallFS registers the filesystem command set.
func InstallFS(reg *shell.Registry) {
	reg.Register("ls",
		"prints directory content, relative to the current directory\n"+
			"flags:\n"+
			"\t-l  print details\n"+
			"ls [-l] [relpath]",
		lsCmd)
	reg.Register("cd", "changes the current working directory", cdCmd)
	reg.Register("rm",
		"removes the specified file(s)\n"+
			"rm file [file file ...]",
		rmCmd)
	reg.Register("mkdir", "creates the specified directory", mkdirCmd)
	reg.Register("echo",
		"add text to new file:\n"+
			"\techo 123 > file.txt\n"+
			"append text on new line in a file:\n"+
			"\techo abc >> file.txt\n"+
			"accepts `, ' and \" quotes\n"+
			"to preserve quotes:\n"+
			"\techo `\"key\": \"value\"` > file.txt",
		echoCmd)
	reg.Register("cat", "reads the entire content of a file to the screen", catCmd)
	reg.Register("mv",
		"moves/renames a file\n"+
			"mv oldname newname",
		mvCmd)
	reg.Register("cp",
		"copies a file from one location to another\n"+
			"cp file newfile",
		cpCmd)
}

func lsCmd(out io.Writer, args []string) shell.ControlCode {
	long := hasSwitch("-l", args)

	dir, err := os.Getwd()
	if err != nil {
		return shell.Continue
	}
	// a trailing non-flag argument is a path relative to the cwd
	if (len(args) == 1 && !long) || (len(args) == 2 && long) {
		dir = filepath.Join(dir, finalArg(args))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		io.WriteString(out, dir+msgNotADirectory) //nolint:errcheck
		return shell.Continue
	}

	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() {
			io.WriteString(out, dirMarkStart+name+dirMarkStop) //nolint:errcheck
		} else {
			io.WriteString(out, name) //nolint:errcheck
		}

		if long {
			pad(out, padToFileSize-len(name))
			if info, err := ent.Info(); err == nil && info.Mode().IsRegular() {
				io.WriteString(out, formatSize(info.Size())) //nolint:errcheck
			} else {
				io.WriteString(out, "-") //nolint:errcheck
			}
			io.WriteString(out, "\n") //nolint:errcheck
		} else {
			pad(out, padToNextFile-len(name))
		}
	}
	return shell.Continue
}

func cdCmd(out io.Writer, args []string) shell.ControlCode {
	path := "/"
	if len(args) > 0 {
		path = argByIndex(0, args)
	}
	if err := os.Chdir(path); err != nil {
		io.WriteString(out, path+msgNotADirectory) //nolint:errcheck
		return shell.Continue
	}
	return shell.DirChanged
}

func rmCmd(out io.Writer, args []string) shell.ControlCode {
	if len(args) == 0 {
		io.WriteString(out, msgArgNotSpecified) //nolint:errcheck
		return shell.Continue
	}
	for _, path := range args {
		os.Remove(path) //nolint:errcheck
	}
	return shell.Continue
}

func mkdirCmd(out io.Writer, args []string) shell.ControlCode {
	dir := finalArg(args)
	if dir == "" {
		io.WriteString(out, msgArgNotSpecified) //nolint:errcheck
		return shell.Continue
	}
	os.Mkdir(dir, 0o777) //nolint:errcheck
	return shell.Continue
}

func echoCmd(out io.Writer, args []string) shell.ControlCode {
	if len(args) < 3 {
		return shell.PrintUsage
	}
	text := args[0]
	op := args[1]
	filename := args[2]

	flags := os.O_WRONLY | os.O_CREATE
	var appending bool
	switch {
	case strings.HasPrefix(op, ">>"):
		flags |= os.O_APPEND
		appending = true
	case strings.HasPrefix(op, ">"):
		flags |= os.O_TRUNC
	default:
		return shell.PrintUsage
	}

	f, err := os.OpenFile(filename, flags, 0o666)
	if err != nil {
		io.WriteString(out, msgOpenDest) //nolint:errcheck
		return shell.Continue
	}
	defer f.Close()

	if appending {
		f.WriteString("\n") //nolint:errcheck
	}
	f.WriteString(text) //nolint:errcheck
	return shell.Continue
}

func catCmd(out io.Writer, args []string) shell.ControlCode {
	if len(args) == 0 {
		return shell.PrintUsage
	}
	f, err := os.Open(args[0])
	if err != nil {
		return shell.Continue
	}
	defer f.Close()

	buf := util.GetBuf()
	defer util.PutBuf(buf)
	io.CopyBuffer(out, f, *buf) //nolint:errcheck
	return shell.Continue
}

func mvCmd(out io.Writer, args []string) shell.ControlCode {
	oldpath := argByIndex(0, args)
	newpath := argByIndex(1, args)
	if oldpath == "" || newpath == "" {
		io.WriteString(out, msgArgNotSpecified) //nolint:errcheck
		return shell.Continue
	}
	if err := os.Rename(oldpath, newpath); err != nil {
		io.WriteString(out, msgMoveFailed) //nolint:errcheck
	}
	return shell.Continue
}

func cpCmd(out io.Writer, args []string) shell.ControlCode {
	src := argByIndex(0, args)
	dst := argByIndex(1, args)
	if src == "" || dst == "" {
		io.WriteString(out, msgArgNotSpecified) //nolint:errcheck
		return shell.Continue
	}

	in, err := os.Open(src)
	if err != nil {
		io.WriteString(out, msgOpenSource) //nolint:errcheck
		return shell.Continue
	}
	defer in.Close()

	outf, err := os.Create(dst)
	if err != nil {
		io.WriteString(out, msgOpenDest) //nolint:errcheck
		return shell.Continue
	}
	defer outf.Close()

	buf := util.GetBuf()
	defer util.PutBuf(buf)
	io.CopyBuffer(outf, in, *buf) //nolint:errcheck
	return shell.Continue
}

// pad writes n spaces (at least one) so listing columns line up.
func pad(out io.Writer, n int) {
	if n < 1 {
		n = 1
	}
	io.WriteString(out, strings.Repeat(" ", n)) //nolint:errcheck
}

// formatSize renders a byte count with a decimal-scaled unit suffix.
func formatSize(size int64) string {
	i := 0
	for size > 1000 && i < len(sizeUnits)-1 {
		size /= 1000
		i++
	}
	return fmt.Sprintf("%d%s", size, sizeUnits[i])
}
