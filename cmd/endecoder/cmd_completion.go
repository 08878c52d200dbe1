package main

import (
	"flag"
	"fmt"
)

func completionCmd(e env, args []string) int {
	fs := flag.NewFlagSet("completion", flag.ContinueOnError)
	fs.SetOutput(e.stderr)

	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: endecoder completion <bash|zsh|fish>\n\n")
		fmt.Fprintf(e.stderr, "Generate shell completion scripts.\n\n")
		fmt.Fprintf(e.stderr, "Examples:\n")
		fmt.Fprintf(e.stderr, "  # Bash\n")
		fmt.Fprintf(e.stderr, "  endecoder completion bash > /usr/local/etc/bash_completion.d/endecoder\n")
		fmt.Fprintf(e.stderr, "  # Zsh\n")
		fmt.Fprintf(e.stderr, "  endecoder completion zsh > \"${fpath[1]}/_endecoder\"\n")
		fmt.Fprintf(e.stderr, "  # Fish\n")
		fmt.Fprintf(e.stderr, "  endecoder completion fish > ~/.config/fish/completions/endecoder.fish\n")
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(e.stderr, "Error: shell name is required (bash, zsh, or fish)\n\n")
		fs.Usage()
		return exitUsage
	}

	shell := fs.Arg(0)
	switch shell {
	case "bash":
		fmt.Fprint(e.stdout, generateBashCompletion())
	case "zsh":
		fmt.Fprint(e.stdout, generateZshCompletion())
	case "fish":
		fmt.Fprint(e.stdout, generateFishCompletion())
	default:
		fmt.Fprintf(e.stderr, "Error: unsupported shell %q (use bash, zsh, or fish)\n", shell)
		return exitUsage
	}
	return exitOK
}

func generateBashCompletion() string {
	return `# bash completion for endecoder                          -*- shell-script -*-

_endecoder() {
    local cur prev words cword
    _init_completion || return

    local commands="encode decode sniff history snippet completion version help"

    # Flags per subcommand
    local tui_flags="--tab --theme --lang --no-history --version"
    local encode_flags="-f --no-history"
    local decode_flags="-f -o --no-history"
    local sniff_flags="-f"
    local history_flags="--json"
    local snippet_flags="--lang --op --verify"

    local history_actions="list search delete clear"
    local tabs="text-encode text-decode image-encode image-decode"
    local langs="en hi ta"
    local snippet_langs="javascript python php"
    local ops="encode decode"
    local shells="bash zsh fish"

    if [[ ${cword} -eq 1 ]]; then
        if [[ "${cur}" == -* ]]; then
            COMPREPLY=($(compgen -W "${tui_flags}" -- "${cur}"))
        else
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
        fi
        return
    fi

    local command="${words[1]}"

    # Complete flag values
    case "${prev}" in
        -f|-o)
            _filedir
            return
            ;;
        --tab)
            COMPREPLY=($(compgen -W "${tabs}" -- "${cur}"))
            return
            ;;
        --lang)
            case "${command}" in
                snippet)
                    COMPREPLY=($(compgen -W "${snippet_langs}" -- "${cur}"))
                    ;;
                *)
                    COMPREPLY=($(compgen -W "${langs}" -- "${cur}"))
                    ;;
            esac
            return
            ;;
        --op)
            COMPREPLY=($(compgen -W "${ops}" -- "${cur}"))
            return
            ;;
        --theme)
            # Theme names are user-extensible
            return
            ;;
    esac

    # Complete flags for each subcommand
    case "${command}" in
        encode)
            COMPREPLY=($(compgen -W "${encode_flags}" -- "${cur}"))
            ;;
        decode)
            COMPREPLY=($(compgen -W "${decode_flags}" -- "${cur}"))
            ;;
        sniff)
            COMPREPLY=($(compgen -W "${sniff_flags}" -- "${cur}"))
            ;;
        history)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${history_flags}" -- "${cur}"))
            elif [[ ${cword} -eq 2 ]]; then
                COMPREPLY=($(compgen -W "${history_actions}" -- "${cur}"))
            fi
            ;;
        snippet)
            COMPREPLY=($(compgen -W "${snippet_flags}" -- "${cur}"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "${shells}" -- "${cur}"))
            ;;
        *)
            COMPREPLY=($(compgen -W "${tui_flags}" -- "${cur}"))
            ;;
    esac
}

complete -F _endecoder endecoder
`
}

func generateZshCompletion() string {
	return `#compdef endecoder

# zsh completion for endecoder

_endecoder() {
    local -a commands
    commands=(
        'encode:Encode text, a file or stdin to Base64'
        'decode:Decode Base64 text, a file or stdin'
        'sniff:Detect the file type of Base64 data or a file'
        'history:List, search, delete or clear conversion history'
        'snippet:Print code that reproduces a conversion'
        'completion:Generate shell completion scripts'
        'version:Print version information'
        'help:Show help message'
    )

    _arguments -C \
        '--tab[Start on a tab]:tab:(text-encode text-decode image-encode image-decode)' \
        '--theme[Color theme]:theme:' \
        '--lang[UI language]:language:(en hi ta)' \
        '--no-history[Keep history in memory only]' \
        '--version[Print version and exit]' \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'endecoder commands' commands
            ;;
        args)
            case $words[1] in
                encode)
                    _arguments \
                        '-f[Encode the contents of a file]:file:_files' \
                        '--no-history[Do not record the conversion in history]' \
                        '*:text:'
                    ;;
                decode)
                    _arguments \
                        '-f[Decode Base64 read from a file]:file:_files' \
                        '-o[Write decoded bytes to a file or directory]:output:_files' \
                        '--no-history[Do not record the conversion in history]' \
                        '*:base64:'
                    ;;
                sniff)
                    _arguments \
                        '-f[Inspect a file as is]:file:_files' \
                        '*:base64:'
                    ;;
                history)
                    _arguments \
                        '--json[Print items as JSON]' \
                        '1:action:(list search delete clear)' \
                        '*:argument:'
                    ;;
                snippet)
                    _arguments \
                        '--lang[Snippet language]:language:(javascript python php)' \
                        '--op[Operation]:operation:(encode decode)' \
                        '--verify[Run the JavaScript snippet and compare its output]' \
                        '*:text:'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_endecoder "$@"
`
}

func generateFishCompletion() string {
	return `# fish completion for endecoder

# Disable file completions by default
complete -c endecoder -f

# Subcommands
complete -c endecoder -n '__fish_use_subcommand' -a encode -d 'Encode text, a file or stdin to Base64'
complete -c endecoder -n '__fish_use_subcommand' -a decode -d 'Decode Base64 text, a file or stdin'
complete -c endecoder -n '__fish_use_subcommand' -a sniff -d 'Detect the file type of Base64 data or a file'
complete -c endecoder -n '__fish_use_subcommand' -a history -d 'List, search, delete or clear conversion history'
complete -c endecoder -n '__fish_use_subcommand' -a snippet -d 'Print code that reproduces a conversion'
complete -c endecoder -n '__fish_use_subcommand' -a completion -d 'Generate shell completion scripts'
complete -c endecoder -n '__fish_use_subcommand' -a version -d 'Print version information'
complete -c endecoder -n '__fish_use_subcommand' -a help -d 'Show help message'

# TUI flags
complete -c endecoder -n '__fish_use_subcommand' -l tab -d 'Start on a tab' -ra 'text-encode text-decode image-encode image-decode'
complete -c endecoder -n '__fish_use_subcommand' -l theme -d 'Color theme' -r
complete -c endecoder -n '__fish_use_subcommand' -l lang -d 'UI language' -ra 'en hi ta'
complete -c endecoder -n '__fish_use_subcommand' -l no-history -d 'Keep history in memory only'
complete -c endecoder -n '__fish_use_subcommand' -l version -d 'Print version and exit'

# encode flags
complete -c endecoder -n '__fish_seen_subcommand_from encode' -s f -d 'Encode the contents of a file' -rF
complete -c endecoder -n '__fish_seen_subcommand_from encode' -l no-history -d 'Do not record the conversion in history'

# decode flags
complete -c endecoder -n '__fish_seen_subcommand_from decode' -s f -d 'Decode Base64 read from a file' -rF
complete -c endecoder -n '__fish_seen_subcommand_from decode' -s o -d 'Write decoded bytes to a file or directory' -rF
complete -c endecoder -n '__fish_seen_subcommand_from decode' -l no-history -d 'Do not record the conversion in history'

# sniff flags
complete -c endecoder -n '__fish_seen_subcommand_from sniff' -s f -d 'Inspect a file as is' -rF

# history actions
complete -c endecoder -n '__fish_seen_subcommand_from history' -a 'list search delete clear' -d 'History action'
complete -c endecoder -n '__fish_seen_subcommand_from history' -l json -d 'Print items as JSON'

# snippet flags
complete -c endecoder -n '__fish_seen_subcommand_from snippet' -l lang -d 'Snippet language' -ra 'javascript python php'
complete -c endecoder -n '__fish_seen_subcommand_from snippet' -l op -d 'Operation' -ra 'encode decode'
complete -c endecoder -n '__fish_seen_subcommand_from snippet' -l verify -d 'Run the JavaScript snippet and compare its output'

# completion - shell names
complete -c endecoder -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish' -d 'Shell type'
`
}
