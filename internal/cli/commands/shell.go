package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/molviz-labs/molsel/internal/cli/config"
	"github.com/molviz-labs/molsel/internal/loader"
	"github.com/molviz-labs/molsel/internal/state"
	"github.com/molviz-labs/molsel/pkg/atom"
	"github.com/molviz-labs/molsel/pkg/parser"
	"github.com/molviz-labs/molsel/pkg/selspec"
	"github.com/molviz-labs/molsel/pkg/token"
)

var (
	summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	noticeStyle  = lipgloss.NewStyle().Faint(true)
)

// NewShellCmd creates the interactive shell command.
func NewShellCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "shell <structure-file>",
		Short: "Interactive selection shell over a structure file",
		Long: `Open an interactive shell over a structure file. Typed selection
expressions are evaluated immediately; dot-commands manage named
selections. With --watch the structure is reloaded whenever the file
changes on disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, args[0], watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "reload the structure file when it changes")
	return cmd
}

// shellSession holds the mutable shell state. The structure snapshot is
// swapped atomically under mu when --watch reloads it.
type shellSession struct {
	mu    sync.Mutex
	path  string
	st    *loader.Structure
	store *state.SQLiteStore // nil when the state db is unavailable
	log   *slog.Logger
}

func (s *shellSession) atoms() []atom.Atom {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Atoms
}

func (s *shellSession) reload() {
	st, err := loader.Load(s.path)
	if err != nil {
		s.log.Warn("reload failed", "path", s.path, "error", err)
		return
	}
	s.mu.Lock()
	s.st = st
	s.mu.Unlock()
	s.log.Info("structure reloaded", "path", s.path, "atoms", len(st.Atoms))
}

func runShell(cmd *cobra.Command, path string, watch bool) error {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)
	log := config.GetLogger(ctx)

	st, err := loader.Load(path)
	if err != nil {
		return err
	}

	session := &shellSession{path: path, st: st, log: log}

	// The shell stays usable without the state db; only .save/.names/.delete
	// need it.
	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		log.Warn("named selections unavailable", "error", err)
	} else if err := store.Migrate(); err != nil {
		log.Warn("named selections unavailable", "error", err)
		_ = store.Close()
	} else {
		session.store = store
		defer func() { _ = store.Close() }()
	}

	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer func() { _ = watcher.Close() }()
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		go func() {
			for event := range watcher.Events {
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					session.reload()
				}
			}
		}()
	}

	historyFile := filepath.Join(filepath.Dir(cfg.StatePath), "shell_history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "molsel> ",
		HistoryFile:     historyFile,
		AutoComplete:    newShellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "molsel shell (%s, %d atoms)\n", st.Model, len(st.Atoms))
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := session.handleDotCommand(cmd, line); quit {
				break
			}
			continue
		}

		session.evaluateLine(cmd, cfg, line)
	}

	return nil
}

// evaluateLine parses and evaluates one typed expression.
func (s *shellSession) evaluateLine(cmd *cobra.Command, cfg *config.Config, line string) {
	out := cmd.OutOrStdout()

	expr, err := parser.Parse(line)
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	matched, spec, err := selectAtoms(expr, s.atoms())
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(out, summaryStyle.Render(fmt.Sprintf("%d atoms matched", len(matched))))
	if spec != nil {
		_, _ = fmt.Fprintln(out, noticeStyle.Render("(spec fast path)"))
	}
	if err := renderAtoms(out, matched, "table", cfg.Limit); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	_, _ = fmt.Fprintln(out)
}

// handleDotCommand handles shell dot-commands; returns true on quit.
func (s *shellSession) handleDotCommand(cmd *cobra.Command, line string) bool {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printShellHelp(out)

	case ".names":
		if s.store == nil {
			_, _ = fmt.Fprintln(errOut, "named selections are unavailable")
			return false
		}
		selections, err := s.store.ListSelections()
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false
		}
		renderSelections(out, selections)

	case ".save":
		if len(parts) < 3 {
			_, _ = fmt.Fprintln(errOut, "Usage: .save <name> <expression>")
			return false
		}
		if s.store == nil {
			_, _ = fmt.Fprintln(errOut, "named selections are unavailable")
			return false
		}
		name := parts[1]
		expression := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, parts[0]), " "+name))
		// A selection whose text does not parse is never stored.
		expr, err := parser.Parse(expression)
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false
		}
		matched, _, err := selectAtoms(expr, s.atoms())
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false
		}
		if _, err := s.store.SaveSelection(name, expression, len(matched)); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(out, "saved %q (%d atoms)\n", name, len(matched))

	case ".delete":
		if len(parts) != 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .delete <name>")
			return false
		}
		if s.store == nil {
			_, _ = fmt.Fprintln(errOut, "named selections are unavailable")
			return false
		}
		if err := s.store.DeleteSelection(parts[1]); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(out, "deleted %q\n", parts[1])

	case ".spec":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .spec <expression>")
			return false
		}
		expression := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
		expr, err := parser.Parse(expression)
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false
		}
		if spec, ok := selspec.Compile(expr); ok {
			_, _ = fmt.Fprintf(out, "%+v\n", *spec)
		} else {
			_, _ = fmt.Fprintln(out, "expression is not spec-convertible")
		}

	case ".reload":
		s.reload()
		s.mu.Lock()
		n := len(s.st.Atoms)
		s.mu.Unlock()
		_, _ = fmt.Fprintf(out, "reloaded (%d atoms)\n", n)

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  .help                    Show this help message
  .names                   List saved named selections
  .save <name> <expr>      Save an expression as a named selection
  .delete <name>           Delete a named selection
  .spec <expr>             Show the compiled spec for an expression
  .reload                  Reload the structure file
  .clear                   Clear the screen
  .quit / .exit            Exit the shell

Anything else is parsed as a selection expression and evaluated against
the loaded structure.
`
	_, _ = fmt.Fprintln(w, help)
}

// newShellCompleter completes selection keywords and dot-commands.
func newShellCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, kw := range token.Keywords() {
		items = append(items, readline.PcItem(kw))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".names"),
		readline.PcItem(".save"),
		readline.PcItem(".delete"),
		readline.PcItem(".spec"),
		readline.PcItem(".reload"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
