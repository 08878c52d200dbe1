package main

import (
	"strings"
	"testing"
)

func TestGenerateBashCompletion(t *testing.T) {
	output := generateBashCompletion()

	if !strings.Contains(output, "_endecoder") {
		t.Error("bash completion should contain _endecoder function name")
	}
	if !strings.Contains(output, "complete -F _endecoder endecoder") {
		t.Error("bash completion should register the completion function")
	}
	if !strings.Contains(output, "commands=") {
		t.Error("bash completion should define commands list")
	}

	subcommands := []string{"encode", "decode", "sniff", "history", "snippet", "completion", "version", "help"}
	for _, cmd := range subcommands {
		if !strings.Contains(output, cmd) {
			t.Errorf("bash completion should contain subcommand %q", cmd)
		}
	}

	for _, flag := range []string{"--tab", "--theme", "--lang", "--no-history", "--json", "--op", "--verify"} {
		if !strings.Contains(output, flag) {
			t.Errorf("bash completion should contain flag %q", flag)
		}
	}

	if !strings.Contains(output, "text-encode text-decode image-encode image-decode") {
		t.Error("bash completion should provide tab names")
	}
	if !strings.Contains(output, "list search delete clear") {
		t.Error("bash completion should provide history actions")
	}
}

func TestGenerateZshCompletion(t *testing.T) {
	output := generateZshCompletion()

	if !strings.Contains(output, "#compdef endecoder") {
		t.Error("zsh completion should contain #compdef endecoder directive")
	}
	if !strings.Contains(output, "_arguments") {
		t.Error("zsh completion should use _arguments for flag completion")
	}
	if !strings.Contains(output, "_describe") {
		t.Error("zsh completion should use _describe for command completion")
	}

	subcommands := []string{"encode:", "decode:", "sniff:", "history:", "snippet:", "completion:", "version:", "help:"}
	for _, cmd := range subcommands {
		if !strings.Contains(output, cmd) {
			t.Errorf("zsh completion should contain subcommand description for %q", cmd)
		}
	}

	if !strings.Contains(output, "(javascript python php)") {
		t.Error("zsh completion should provide snippet language values")
	}
	if !strings.Contains(output, "(en hi ta)") {
		t.Error("zsh completion should provide UI language values")
	}
}

func TestGenerateFishCompletion(t *testing.T) {
	output := generateFishCompletion()

	if !strings.Contains(output, "__fish_use_subcommand") {
		t.Error("fish completion should use __fish_use_subcommand for top-level completions")
	}
	if !strings.Contains(output, "__fish_seen_subcommand_from") {
		t.Error("fish completion should use __fish_seen_subcommand_from for subcommand flags")
	}

	subcommands := map[string]string{
		"encode":     "Encode text",
		"decode":     "Decode Base64",
		"sniff":      "Detect the file type",
		"history":    "List, search",
		"snippet":    "Print code",
		"completion": "Generate shell completion",
		"version":    "Print version",
		"help":       "Show help",
	}
	for cmd, desc := range subcommands {
		if !strings.Contains(output, "-a "+cmd) {
			t.Errorf("fish completion should register subcommand %q", cmd)
		}
		if !strings.Contains(output, desc) {
			t.Errorf("fish completion should have description containing %q for subcommand %q", desc, cmd)
		}
	}
}

func TestCompletionShellFormat(t *testing.T) {
	bash := strings.TrimSpace(generateBashCompletion())
	if !strings.HasPrefix(bash, "#") || !strings.HasSuffix(bash, "complete -F _endecoder endecoder") {
		t.Error("bash completion should start with a comment and end with complete registration")
	}

	zsh := strings.TrimSpace(generateZshCompletion())
	if !strings.HasPrefix(zsh, "#compdef endecoder") || !strings.HasSuffix(zsh, `_endecoder "$@"`) {
		t.Error("zsh completion should start with #compdef and end with the function call")
	}

	for _, line := range strings.Split(generateFishCompletion(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "complete ") {
			t.Errorf("fish completion non-comment line should start with 'complete': %q", line)
		}
	}
}

func TestCompletionCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{"bash", []string{"bash"}, exitOK, "complete -F _endecoder"},
		{"zsh", []string{"zsh"}, exitOK, "#compdef endecoder"},
		{"fish", []string{"fish"}, exitOK, "complete -c endecoder"},
		{"missing shell", nil, exitUsage, ""},
		{"unknown shell", []string{"powershell"}, exitUsage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, stdout, _ := testEnv(t, "")
			if code := completionCmd(e, tt.args); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.want != "" && !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("output missing %q", tt.want)
			}
			if tt.want == "" && stdout.Len() != 0 {
				t.Errorf("expected no stdout, got %q", stdout.String())
			}
		})
	}
}
