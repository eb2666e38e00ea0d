package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shelld/shell"
)

// chdir moves into dir for the duration of the test.  The fs commands
// operate on the process working directory, so these tests cannot run
// in parallel.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) }) //nolint:errcheck
}

func TestLs(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plain.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	var out bytes.Buffer
	if code := lsCmd(&out, nil); code != shell.Continue {
		t.Errorf("code = %v", code)
	}
	got := out.String()
	if !strings.Contains(got, "plain.txt") {
		t.Errorf("listing missing file: %q", got)
	}
	if !strings.Contains(got, "[sub]") {
		t.Errorf("directory not bracketed: %q", got)
	}
}

func TestLs_LongFormat(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f"), bytes.Repeat([]byte("a"), 2500), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	var out bytes.Buffer
	lsCmd(&out, []string{"-l"})
	got := out.String()
	if !strings.Contains(got, "2kb") {
		t.Errorf("long listing missing scaled size: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("long listing should be one entry per line: %q", got)
	}
}

func TestLs_RelativePath(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "inner"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	var out bytes.Buffer
	lsCmd(&out, []string{"sub"})
	if !strings.Contains(out.String(), "inner") {
		t.Errorf("relative listing = %q", out.String())
	}
}

func TestLs_BadPath(t *testing.T) {
	chdir(t, t.TempDir())
	var out bytes.Buffer
	lsCmd(&out, []string{"nonexistent"})
	if !strings.Contains(out.String(), msgNotADirectory) {
		t.Errorf("output = %q", out.String())
	}
}

func TestCd(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	var out bytes.Buffer
	if code := cdCmd(&out, []string{"sub"}); code != shell.DirChanged {
		t.Errorf("code = %v, want DirChanged", code)
	}
	wd, _ := os.Getwd()
	if filepath.Base(wd) != "sub" {
		t.Errorf("wd = %q", wd)
	}

	out.Reset()
	if code := cdCmd(&out, []string{"missing"}); code != shell.Continue {
		t.Errorf("failed cd code = %v, want Continue", code)
	}
	if !strings.Contains(out.String(), msgNotADirectory) {
		t.Errorf("output = %q", out.String())
	}
}

func TestEchoAndCat(t *testing.T) {
	chdir(t, t.TempDir())

	var out bytes.Buffer
	if code := echoCmd(&out, []string{"hello", ">", "f.txt"}); code != shell.Continue {
		t.Errorf("echo code = %v", code)
	}
	if code := echoCmd(&out, []string{"world", ">>", "f.txt"}); code != shell.Continue {
		t.Errorf("append code = %v", code)
	}

	out.Reset()
	if code := catCmd(&out, []string{"f.txt"}); code != shell.Continue {
		t.Errorf("cat code = %v", code)
	}
	if out.String() != "hello\nworld" {
		t.Errorf("content = %q", out.String())
	}
}

func TestEcho_Usage(t *testing.T) {
	var out bytes.Buffer
	if code := echoCmd(&out, []string{"text"}); code != shell.PrintUsage {
		t.Errorf("short echo code = %v, want PrintUsage", code)
	}
	if code := echoCmd(&out, []string{"text", "|", "file"}); code != shell.PrintUsage {
		t.Errorf("bad operator code = %v, want PrintUsage", code)
	}
}

func TestCat_NoArg(t *testing.T) {
	var out bytes.Buffer
	if code := catCmd(&out, nil); code != shell.PrintUsage {
		t.Errorf("code = %v, want PrintUsage", code)
	}
}

func TestMkdirAndRm(t *testing.T) {
	chdir(t, t.TempDir())

	var out bytes.Buffer
	mkdirCmd(&out, []string{"d"})
	if info, err := os.Stat("d"); err != nil || !info.IsDir() {
		t.Fatalf("mkdir did not create d: %v", err)
	}

	if err := os.WriteFile("a", nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("b", nil, 0o644); err != nil {
		t.Fatal(err)
	}
	rmCmd(&out, []string{"a", "b"})
	if _, err := os.Stat("a"); !os.IsNotExist(err) {
		t.Error("a still exists")
	}
	if _, err := os.Stat("b"); !os.IsNotExist(err) {
		t.Error("b still exists")
	}

	out.Reset()
	rmCmd(&out, nil)
	if out.String() != msgArgNotSpecified {
		t.Errorf("no-arg rm output = %q", out.String())
	}
}

func TestMv(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.WriteFile("old", []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	mvCmd(&out, []string{"old", "new"})
	if _, err := os.Stat("old"); !os.IsNotExist(err) {
		t.Error("old still exists")
	}
	data, err := os.ReadFile("new")
	if err != nil || string(data) != "data" {
		t.Errorf("new = %q, %v", data, err)
	}

	out.Reset()
	mvCmd(&out, []string{"missing", "dest"})
	if out.String() != msgMoveFailed {
		t.Errorf("failed mv output = %q", out.String())
	}
}

func TestCp(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.WriteFile("src", []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cpCmd(&out, []string{"src", "dst"})
	data, err := os.ReadFile("dst")
	if err != nil || string(data) != "payload" {
		t.Errorf("dst = %q, %v", data, err)
	}
	if _, err := os.Stat("src"); err != nil {
		t.Error("cp removed the source")
	}

	out.Reset()
	cpCmd(&out, []string{"missing", "dst2"})
	if out.String() != msgOpenSource {
		t.Errorf("failed cp output = %q", out.String())
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0b"},
		{999, "999b"},
		{2500, "2kb"},
		{3_000_000, "3Mb"},
		{5_000_000_000, "5Gb"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.size); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
