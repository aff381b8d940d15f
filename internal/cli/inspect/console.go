package inspect

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// ConsoleCommand is an instruction typed at the watch prompt.
type ConsoleCommand int

const (
	// CmdRunAll inspects everything (empty line, a, all).
	CmdRunAll ConsoleCommand = iota
	// CmdReload forgets failed paths (r, reload).
	CmdReload
	// CmdQuit stops watching (q, quit, exit, Ctrl-D).
	CmdQuit
	// CmdHelp lists the commands (h, help, ?).
	CmdHelp
)

func (c ConsoleCommand) String() string {
	switch c {
	case CmdRunAll:
		return "all"
	case CmdReload:
		return "reload"
	case CmdQuit:
		return "quit"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ParseCommand maps a console line to a command.
func ParseCommand(line string) (ConsoleCommand, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "a", "all":
		return CmdRunAll, nil
	case "r", "reload":
		return CmdReload, nil
	case "q", "quit", "exit":
		return CmdQuit, nil
	case "h", "help", "?":
		return CmdHelp, nil
	default:
		return 0, fmt.Errorf("unknown command %q (type help)", strings.TrimSpace(line))
	}
}

const consoleHelp = `Commands:
  <enter>, a, all   inspect all files
  r, reload         forget failed paths
  q, quit           stop watching
  h, help           show this help`

// console reads commands from the terminal and delivers them on a channel.
// After each command it waits on Handled before reading again: readline
// keeps the terminal raw while it reads, and Ctrl-C must raise SIGINT
// while a command's inspection runs.
type console struct {
	rl        *readline.Instance
	commands  chan ConsoleCommand
	handled   chan struct{}
	interrupt func()
	out       io.Writer

	done      chan struct{}
	closeOnce sync.Once
}

// newConsole reads from the terminal. interrupt is called when Ctrl-C is
// typed at the prompt or while an inspection triggered by a file change runs.
func newConsole(interrupt func()) (*console, error) {
	return newConsoleWithConfig(&readline.Config{
		Prompt:          color.New(color.FgCyan).Sprint("eslint-watch> "),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	}, interrupt)
}

func newConsoleWithConfig(cfg *readline.Config, interrupt func()) (*console, error) {
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &console{
		rl:        rl,
		commands:  make(chan ConsoleCommand),
		handled:   make(chan struct{}, 1),
		interrupt: interrupt,
		out:       rl.Stderr(),
		done:      make(chan struct{}),
	}, nil
}

// Commands delivers parsed commands. It is closed after CmdQuit or when
// input ends.
func (c *console) Commands() <-chan ConsoleCommand {
	return c.commands
}

// Handled receives one value per command once it has been carried out.
func (c *console) Handled() chan<- struct{} {
	return c.handled
}

// run reads lines until quit, EOF, interrupt, or Close.
func (c *console) run() {
	defer close(c.commands)
	for {
		line, err := c.rl.Readline()
		if err != nil {
			switch {
			case errors.Is(err, readline.ErrInterrupt):
				if c.interrupt != nil {
					c.interrupt()
				}
			case errors.Is(err, io.EOF):
				c.send(CmdQuit)
			}
			return
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(c.out, color.New(color.FgYellow).Sprint(err.Error()))
			continue
		}
		if cmd == CmdHelp {
			fmt.Fprintln(c.out, consoleHelp)
			continue
		}
		if !c.send(cmd) || cmd == CmdQuit {
			return
		}
		select {
		case <-c.handled:
		case <-c.done:
			return
		}
	}
}

func (c *console) send(cmd ConsoleCommand) bool {
	select {
	case c.commands <- cmd:
		return true
	case <-c.done:
		return false
	}
}

// Close stops reading and restores the terminal.
func (c *console) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.rl.Close()
	})
	return err
}
