package shell

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/dirsh/internal/display"
	"github.com/harrison/dirsh/internal/fileutil"
)

// newCommandTree builds the verbs for one input line. The tree is thrown
// away afterwards so parsed flag values never carry over.
func newCommandTree(s *Shell) *cobra.Command {
	root := &cobra.Command{
		Use:           "dirsh",
		Short:         "Interactive directory shell",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(s.out)
	root.SetErr(s.errw)

	root.AddCommand(
		newFindCommand(s),
		newCdCommand(s),
		newLsCommand(s),
		newShowCommand(s),
		newHideCommand(s),
		newExitCommand(s),
	)
	root.SetHelpCommand(newHelpCommand(root))

	return root
}

// lookupVerb finds the command verb names in root. help is known but not
// returned: cobra only attaches it when the tree executes.
func lookupVerb(root *cobra.Command, verb string) (*cobra.Command, bool) {
	if verb == "help" {
		return nil, true
	}
	for _, cmd := range root.Commands() {
		if cmd.Name() == verb || cmd.HasAlias(verb) {
			return cmd, true
		}
	}
	return nil, false
}

// noArgs rejects positional arguments with a message naming the first one.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	return nil
}

func newCdCommand(s *Shell) *cobra.Command {
	return &cobra.Command{
		Use:   "cd <directory>",
		Short: "Change the working directory",
		Long: `Change the working directory.

".." moves to the parent directory and an absolute path moves straight to
that directory. Any other name must be a directory directly inside the
current one. Hidden directories can only be entered after "show".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return errors.New("missing operand")
			case 1:
			default:
				return errors.New("too many arguments")
			}

			dir, err := fileutil.ResolveDirectory(s.fs, s.session.Cwd, args[0], s.session.ShowHidden)
			if err != nil {
				return err
			}

			s.logger.LogDebug(fmt.Sprintf("cwd %s -> %s", s.session.Cwd, dir))
			s.session.Cwd = dir
			return nil
		},
	}
}

func newLsCommand(s *Shell) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List the working directory",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := fileutil.ListDirectory(s.fs, s.session.Cwd, fileutil.ListOptions{
				ShowHidden: s.session.ShowHidden,
			})
			if err != nil {
				return err
			}

			for _, entry := range listing.Entries {
				if entry.IsDir() {
					fmt.Fprintln(s.out, display.Directory(entry.Name()))
					continue
				}
				fmt.Fprintln(s.out, entry.Name())
			}
			return nil
		},
	}
}

func newShowCommand(s *Shell) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: `Include entries whose name starts with "."`,
		Args:  noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s.session.ShowHidden = true
			fmt.Fprintln(s.out, "Hidden entries are now shown")
		},
	}
}

func newHideCommand(s *Shell) *cobra.Command {
	return &cobra.Command{
		Use:   "hide",
		Short: `Skip entries whose name starts with "."`,
		Args:  noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s.session.ShowHidden = false
			fmt.Fprintln(s.out, "Hidden entries are now hidden")
		},
	}
}

func newExitCommand(s *Shell) *cobra.Command {
	return &cobra.Command{
		Use:   "exit",
		Short: "Leave the shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			s.goodbye()
			return ErrExit
		},
	}
}

func newHelpCommand(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show this summary or the help of one command",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printSummary(cmd.OutOrStdout(), root)
				return nil
			}

			target, _, err := root.Find(args)
			if err != nil || target == root {
				return fmt.Errorf("unknown command %q", args[0])
			}
			return target.Help()
		},
	}
}

func printSummary(out io.Writer, root *cobra.Command) {
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range root.Commands() {
		if !cmd.IsAvailableCommand() && cmd.Name() != "help" {
			continue
		}
		fmt.Fprintf(out, "  %-6s %s\n", cmd.Name(), cmd.Short)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, `Run "<command> -help" for the flags of a command.`)
}
