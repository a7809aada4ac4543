package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/harrison/dirsh/internal/display"
	"github.com/harrison/dirsh/internal/logger"
	"github.com/harrison/dirsh/internal/search"
)

// ErrExit is returned by Execute when the line asked the shell to stop.
var ErrExit = errors.New("exit")

// Session is the state carried from one command to the next.
type Session struct {
	// Cwd is the absolute working directory
	Cwd string
	// ShowHidden makes ls, cd and find consider names starting with "."
	ShowHidden bool
}

// Options configures a Shell
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Fs is the filesystem searched and listed (nil = operating system)
	Fs afero.Fs
	// Logger receives diagnostics (nil = discard)
	Logger logger.Logger

	// Session is the initial state
	Session Session
	// PermissionMatch is the default comparison for find -p
	PermissionMatch search.PermissionMatch

	// Interactive prints a prompt before every line
	Interactive bool
	// Prompt is printed after the working directory
	Prompt string
}

// Shell reads commands from its input until exit or end of input.
type Shell struct {
	in      *bufio.Reader
	out     io.Writer
	errw    io.Writer
	fs      afero.Fs
	logger  logger.Logger
	engine  *search.Engine
	session *Session

	permissionMatch search.PermissionMatch
	interactive     bool
	prompt          string
}

// New creates a Shell from opts.
func New(opts Options) *Shell {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	if opts.In == nil {
		opts.In = strings.NewReader("")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Err == nil {
		opts.Err = opts.Out
	}

	session := opts.Session
	return &Shell{
		in:              bufio.NewReader(opts.In),
		out:             opts.Out,
		errw:            opts.Err,
		fs:              opts.Fs,
		logger:          opts.Logger,
		engine:          search.NewEngine(opts.Fs, opts.Logger),
		session:         &session,
		permissionMatch: opts.PermissionMatch,
		interactive:     opts.Interactive,
		prompt:          opts.Prompt,
	}
}

// Session returns a copy of the current session state.
func (s *Shell) Session() Session {
	return *s.session
}

// Run executes lines until exit or end of input. Command failures are
// reported and the loop continues; only a failure to read input is returned.
func (s *Shell) Run() error {
	for {
		if s.interactive {
			fmt.Fprint(s.out, display.Prompt(s.session.Cwd, s.prompt))
		}

		line, readErr := s.in.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			if err := s.Execute(line); errors.Is(err, ErrExit) {
				return nil
			}
		}

		if readErr == io.EOF {
			if s.interactive {
				fmt.Fprintln(s.out)
			}
			s.goodbye()
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("failed to read input: %w", readErr)
		}
	}
}

// Execute runs a single command line. It returns ErrExit for exit and nil
// otherwise; errors from the command itself are printed, not returned.
func (s *Shell) Execute(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	root := newCommandTree(s)
	verb, known := lookupVerb(root, args[0])
	if !known {
		s.logger.LogDebug(fmt.Sprintf("unknown command %q", args[0]))
		display.Error(s.errw, "dirsh", fmt.Errorf("unknown command %q, type \"help\" for a list of commands", args[0]))
		return nil
	}

	root.SetArgs(normalizeHelp(verb, args))
	cmd, err := root.ExecuteC()
	if errors.Is(err, ErrExit) {
		return ErrExit
	}
	if err != nil {
		display.Error(s.errw, cmd.Name(), err)
	}
	return nil
}

func (s *Shell) goodbye() {
	fmt.Fprintln(s.out, "Goodbye!")
}

// normalizeHelp spells a standalone -help the way pflag expects it. A
// "-help" that is the value of the preceding flag of cmd is left alone.
func normalizeHelp(cmd *cobra.Command, args []string) []string {
	out := make([]string, len(args))
	copy(out, args)

	valueNext := false
	for i := 1; i < len(out); i++ {
		arg := out[i]
		switch {
		case valueNext:
			valueNext = false
		case arg == "--":
			return out
		case arg == "-help":
			out[i] = "--help"
		default:
			valueNext = takesValue(cmd, arg)
		}
	}
	return out
}

// takesValue reports whether arg is a flag of cmd whose value is the next
// token. In a shorthand cluster such as -am only the last letter can be.
func takesValue(cmd *cobra.Command, arg string) bool {
	if cmd == nil || len(arg) < 2 || arg[0] != '-' || strings.Contains(arg, "=") {
		return false
	}

	flags := cmd.Flags()
	if strings.HasPrefix(arg, "--") {
		flag := flags.Lookup(arg[2:])
		return flag != nil && flag.NoOptDefVal == ""
	}

	for i := 1; i < len(arg); i++ {
		flag := flags.ShorthandLookup(arg[i : i+1])
		if flag == nil {
			return false
		}
		if flag.NoOptDefVal == "" {
			// the rest of the cluster is the value when anything follows
			return i == len(arg)-1
		}
	}
	return false
}
