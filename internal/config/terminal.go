package config

import (
	"fmt"
	"os/exec"
	"strings"
)

// knownTerminals maps terminal programs to the argument shape that runs a
// command in a titled window. Ordered by detection preference.
var knownTerminals = []struct {
	program string
	args    []string
}{
	{"alacritty", []string{"--title", "{title}", "-e", "sh", "-c", "{command}"}},
	{"kitty", []string{"--title", "{title}", "sh", "-c", "{command}"}},
	// wezterm start has no title flag; the script sets the window title with
	// an OSC 2 sequence before running the command.
	{"wezterm", []string{"start", "--", "sh", "-c", "printf '\x1b]2;{title}\x07'; {command}"}},
	{"gnome-terminal", []string{"--title", "{title}", "--", "sh", "-c", "{command}"}},
	{"konsole", []string{"--title", "{title}", "-e", "sh", "-c", "{command}"}},
	{"xterm", []string{"-T", "{title}", "-e", "sh", "-c", "{command}"}},
}

// SpawnCommand resolves the argv that opens a terminal window titled title
// and running command inside it. An explicit terminal.program/args config
// wins; "auto" walks the known terminal list and picks the first one found
// in PATH.
func (t Terminal) SpawnCommand(title, command string) ([]string, error) {
	program := strings.TrimSpace(t.Program)
	args := t.Args

	if program == "" || program == "auto" {
		detected, detectedArgs, err := detectTerminal()
		if err != nil {
			return nil, err
		}
		program, args = detected, detectedArgs
	} else if len(args) == 0 {
		for _, known := range knownTerminals {
			if known.program == program {
				args = known.args
				break
			}
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("terminal %q needs explicit args (no builtin argument shape)", program)
		}
	}

	argv := make([]string, 0, len(args)+1)
	argv = append(argv, program)
	for _, arg := range args {
		arg = strings.ReplaceAll(arg, "{title}", title)
		arg = strings.ReplaceAll(arg, "{command}", command)
		argv = append(argv, arg)
	}
	return argv, nil
}

func detectTerminal() (string, []string, error) {
	for _, known := range knownTerminals {
		if _, err := exec.LookPath(known.program); err == nil {
			return known.program, known.args, nil
		}
	}
	return "", nil, fmt.Errorf("no supported terminal emulator found in PATH")
}
