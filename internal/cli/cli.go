// Package cli implements the toyc command-line driver: flag parsing and
// subcommand dispatch built on github.com/mna/mainer (reflection-based
// subcommand dispatch, the same Help/Version/Validate shape), with four
// subcommands: run (the default), and the tokenize/parse/check debug aids.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "toyc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<command>] <path>...
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<command>] <path>...
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and virtual machine for the toy language.

The <command> can be one of (default: run):
       run                       Compile and execute each file in turn.
       tokenize                  Print the scanned token stream.
       parse                     Print the parsed syntax tree.
       check                     Print the type-checked program.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --verbose                 Log per-file timing to stderr.
`, binName)
)

// Cmd is the mainer.Command implementation for the toyc binary.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`
	Verbose bool `flag:"verbose"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	cmds := commands(c)

	cmdName := "run"
	pathArgs := c.args
	if len(c.args) > 0 {
		if _, isCmd := cmds[c.args[0]]; isCmd {
			cmdName = c.args[0]
			pathArgs = c.args[1:]
		}
	}

	c.cmdFn = cmds[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	if len(pathArgs) == 0 {
		return errors.New("at least one file must be provided")
	}
	c.args = pathArgs
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: strings.ToUpper(binName) + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stdio.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	ctx = withLogger(ctx, logger)

	if err := c.cmdFn(ctx, stdio, c.args); err != nil {
		// each subcommand renders its own diagnostics before returning
		return mainer.Failure
	}
	return mainer.Success
}

// commands maps subcommand names to their dispatch functions via
// reflection over v's exported methods whose signature matches a
// subcommand handler; the map key is just the lowercased method name.
func commands(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
