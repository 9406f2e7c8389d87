package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/oscoursework/bfs/bfs"
	"github.com/oscoursework/bfs/humanize"
)

const helpText = `commands:
  format                    lay down a fresh filesystem on the image
  mount                     attach to an already-formatted image
  su <uid>                  change the effective user
  chown <uid> <file>        change a file's owner
  chmod <octalMode> <file>  change a file's permission bits
  cat <file>                print a file's contents
  store <file> <hostPath>   copy a BFS file out to the host filesystem
  load <hostPath> <file>    copy a host file into BFS
  touch <file>              create an empty file
  mkdir <dir>               create an empty directory
  cd <dir>                  change the current directory
  ls [dir]                  list a directory (default: current)
  stat <file>               print size, mode, owner, and timestamps
  rm <file>                 remove a file or directory (recursively)
  write <file> <data>       overwrite a file's contents
  mv <from> <to>            rename/move a file
  cp <from> <to>            copy a file
  help                      print this text
  exit                      leave the shell`

// Shell is the BFS line-oriented REPL: it reads one command per line,
// dispatches it, and prints either the command's output or the error it
// returned. It never exits non-zero itself; only startup failures in main.go
// (a missing image path, a bad preset, an unopenable or empty image) do that.
type Shell struct {
	fs      *bfs.FileSystem
	in      *bufio.Scanner
	out     io.Writer
	mounted bool
}

// NewShell builds a Shell reading commands from in and writing output to out.
func NewShell(fs *bfs.FileSystem, in io.Reader, out io.Writer) *Shell {
	return &Shell{fs: fs, in: bufio.NewScanner(in), out: out}
}

// Run reads and dispatches commands until EOF or "exit".
func (s *Shell) Run() error {
	for {
		fmt.Fprint(s.out, "bfs> ")
		if !s.in.Scan() {
			return nil
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		cmd, rest := splitToken(line)
		if cmd == "exit" {
			return nil
		}

		var err error
		if cmd == "write" {
			err = s.cmdWrite(rest)
		} else {
			err = s.dispatch(cmd, strings.Fields(rest))
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// splitToken splits s at its first run of whitespace, returning the leading
// token and the trimmed remainder. write's data argument is taken verbatim
// from this remainder so it keeps whatever internal spacing the user typed,
// rather than being collapsed by strings.Fields.
func splitToken(s string) (token, rest string) {
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}

func (s *Shell) dispatch(cmd string, args []string) error {
	switch cmd {
	case "format":
		return s.cmdFormat()
	case "mount":
		return s.cmdMount()
	case "su":
		return s.cmdSu(args)
	case "chown":
		return s.cmdChown(args)
	case "chmod":
		return s.cmdChmod(args)
	case "cat":
		return s.cmdCat(args)
	case "store":
		return s.cmdStore(args)
	case "load":
		return s.cmdLoad(args)
	case "touch":
		return s.cmdTouch(args)
	case "mkdir":
		return s.cmdMkdir(args)
	case "cd":
		return s.cmdCd(args)
	case "ls":
		return s.cmdLs(args)
	case "stat":
		return s.cmdStat(args)
	case "rm":
		return s.cmdRm(args)
	case "mv":
		return s.cmdMv(args)
	case "cp":
		return s.cmdCp(args)
	case "help":
		fmt.Fprintln(s.out, helpText)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func requireArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func (s *Shell) cmdFormat() error {
	if err := s.fs.Format(); err != nil {
		return err
	}
	s.mounted = true
	fmt.Fprintln(s.out, "formatted")
	return nil
}

func (s *Shell) cmdMount() error {
	if err := s.fs.Mount(); err != nil {
		return err
	}
	s.mounted = true
	fmt.Fprintln(s.out, "mounted")
	return nil
}

func (s *Shell) cmdSu(args []string) error {
	if err := requireArgs(args, 1, "su <uid>"); err != nil {
		return err
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad uid %q", args[0])
	}
	s.fs.SetUid(uint16(n))
	return nil
}

func (s *Shell) cmdChown(args []string) error {
	if err := requireArgs(args, 2, "chown <uid> <file>"); err != nil {
		return err
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad uid %q", args[0])
	}
	return s.fs.ChangeOwner(args[1], uint16(n))
}

func (s *Shell) cmdChmod(args []string) error {
	if err := requireArgs(args, 2, "chmod <octalMode> <file>"); err != nil {
		return err
	}
	n, err := strconv.ParseUint(args[0], 8, 16)
	if err != nil {
		return fmt.Errorf("bad octal mode %q", args[0])
	}
	return s.fs.ChangeMode(args[1], bfs.Mode(n))
}

func (s *Shell) cmdCat(args []string) error {
	if err := requireArgs(args, 1, "cat <file>"); err != nil {
		return err
	}
	data, err := s.fs.ReadFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, string(data))
	return nil
}

func (s *Shell) cmdStore(args []string) error {
	if err := requireArgs(args, 2, "store <file> <hostPath>"); err != nil {
		return err
	}
	data, err := s.fs.ReadFile(args[0])
	if err != nil {
		return err
	}
	return os.WriteFile(args[1], data, 0o644)
}

func (s *Shell) cmdLoad(args []string) error {
	if err := requireArgs(args, 2, "load <hostPath> <file>"); err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	return s.fs.WriteFile(args[1], data)
}

func (s *Shell) cmdTouch(args []string) error {
	if err := requireArgs(args, 1, "touch <file>"); err != nil {
		return err
	}
	return s.fs.CreateFile(args[0])
}

func (s *Shell) cmdMkdir(args []string) error {
	if err := requireArgs(args, 1, "mkdir <dir>"); err != nil {
		return err
	}
	path := args[0]
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return s.fs.CreateFile(path)
}

func (s *Shell) cmdCd(args []string) error {
	if err := requireArgs(args, 1, "cd <dir>"); err != nil {
		return err
	}
	return s.fs.ChangeDirectory(args[0])
}

func (s *Shell) cmdLs(args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	entries, err := s.fs.ListDirectory(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintln(s.out, e.Name)
	}
	return nil
}

func (s *Shell) cmdStat(args []string) error {
	if err := requireArgs(args, 1, "stat <file>"); err != nil {
		return err
	}
	stat, err := s.fs.StatFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s %#o %d %s %s %s\n",
		humanize.FormatSize(stat.Size),
		uint16(stat.Mode),
		stat.UID,
		humanize.FormatTimestamp(stat.CreationTime),
		humanize.FormatTimestamp(stat.ModificationTime),
		args[0],
	)
	return nil
}

func (s *Shell) cmdRm(args []string) error {
	if err := requireArgs(args, 1, "rm <file>"); err != nil {
		return err
	}
	return s.fs.RemoveFile(args[0])
}

// cmdWrite handles "write <file> <data>" taken directly off the unsplit line
// remainder: file is its first token, and data is everything after it,
// verbatim, so multiple spaces in the payload survive.
func (s *Shell) cmdWrite(rest string) error {
	path, data := splitToken(rest)
	if path == "" || data == "" {
		return fmt.Errorf("usage: write <file> <data>")
	}
	return s.fs.WriteFile(path, []byte(data))
}

func (s *Shell) cmdMv(args []string) error {
	if err := requireArgs(args, 2, "mv <from> <to>"); err != nil {
		return err
	}
	return s.fs.MoveFile(args[0], args[1])
}

func (s *Shell) cmdCp(args []string) error {
	if err := requireArgs(args, 2, "cp <from> <to>"); err != nil {
		return err
	}
	return s.fs.CopyFile(args[0], args[1])
}
