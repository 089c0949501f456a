// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/methodsig/internal/errors"
)

// bashCompletionTemplate is the bash completion script for methodsig.
const bashCompletionTemplate = `#!/bin/bash

# Bash completion script for methodsig
# Installation:
#   source <(methodsig completion bash)
#   Or add to ~/.bashrc:
#   echo 'source <(methodsig completion bash)' >> ~/.bashrc

_methodsig_completion() {
    local cur prev commands
    commands="parse scan init completion"

    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    if [ $COMP_CWORD -eq 1 ]; then
        if [[ ${cur} == -* ]] ; then
            COMPREPLY=( $(compgen -W "--config --json --no-color --quiet --verbose --version" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        fi
        return 0
    fi

    local cmd="${COMP_WORDS[1]}"
    case "${cmd}" in
        parse)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--stdin" -- ${cur}) )
            fi
            ;;
        scan)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--workers --exclude --max-file-size --only-malformed --metrics-addr" -- ${cur}) )
            else
                COMPREPLY=( $(compgen -d -- ${cur}) )
            fi
            ;;
        init)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--force" -- ${cur}) )
            fi
            ;;
        completion)
            if [ $COMP_CWORD -eq 2 ]; then
                COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            fi
            ;;
    esac
}

complete -F _methodsig_completion methodsig
`

// zshCompletionTemplate is the zsh completion script for methodsig.
const zshCompletionTemplate = `#compdef methodsig

# Zsh completion script for methodsig
# Installation:
#   methodsig completion zsh > "${fpath[1]}/_methodsig"

_methodsig() {
    local -a commands
    commands=(
        'parse:Parse signatures from arguments or stdin'
        'scan:Check method declarations in .java files'
        'init:Create .methodsig.yaml configuration'
        'completion:Generate shell completion script'
    )

    _arguments -C \
        '(- *)--version[Show version and exit]' \
        '--config[Path to .methodsig.yaml]:config file:_files -g "*.yaml"' \
        '--json[Write machine-readable JSON]' \
        '--no-color[Disable colored output]' \
        '(-q --quiet)'{-q,--quiet}'[Only print failures]' \
        '*'{-v,--verbose}'[Increase log verbosity]' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                parse)
                    _arguments \
                        '--stdin[Read signatures from stdin]' \
                        '*:signature:'
                    ;;
                scan)
                    _arguments \
                        '--workers[Parallel workers]:workers:' \
                        '*--exclude[Glob to skip]:glob:' \
                        '--max-file-size[Largest file to read in bytes]:bytes:' \
                        '--only-malformed[List only malformed declarations]' \
                        '--metrics-addr[Prometheus metrics address]:address:' \
                        '*:path:_files -/'
                    ;;
                init)
                    _arguments \
                        '--force[Overwrite existing configuration]'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_methodsig
`

// fishCompletionTemplate is the fish completion script for methodsig.
const fishCompletionTemplate = `# Fish completion script for methodsig
# Installation:
#   methodsig completion fish > ~/.config/fish/completions/methodsig.fish

# Commands
complete -c methodsig -f -n "__fish_use_subcommand" -a "parse" -d "Parse signatures from arguments or stdin"
complete -c methodsig -f -n "__fish_use_subcommand" -a "scan" -d "Check method declarations in .java files"
complete -c methodsig -f -n "__fish_use_subcommand" -a "init" -d "Create .methodsig.yaml configuration"
complete -c methodsig -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

# Global flags
complete -c methodsig -l version -d "Show version and exit"
complete -c methodsig -l config -d "Path to .methodsig.yaml" -r
complete -c methodsig -l json -d "Write machine-readable JSON"
complete -c methodsig -l no-color -d "Disable colored output"
complete -c methodsig -s q -l quiet -d "Only print failures"
complete -c methodsig -s v -l verbose -d "Increase log verbosity"

# parse command flags
complete -c methodsig -n "__fish_seen_subcommand_from parse" -l stdin -d "Read signatures from stdin"

# scan command flags
complete -c methodsig -n "__fish_seen_subcommand_from scan" -l workers -d "Parallel workers" -r
complete -c methodsig -n "__fish_seen_subcommand_from scan" -l exclude -d "Glob to skip" -r
complete -c methodsig -n "__fish_seen_subcommand_from scan" -l max-file-size -d "Largest file to read in bytes" -r
complete -c methodsig -n "__fish_seen_subcommand_from scan" -l only-malformed -d "List only malformed declarations"
complete -c methodsig -n "__fish_seen_subcommand_from scan" -l metrics-addr -d "Prometheus metrics address" -r

# init command flags
complete -c methodsig -n "__fish_seen_subcommand_from init" -l force -d "Overwrite existing configuration"

# completion command arguments
complete -c methodsig -n "__fish_seen_subcommand_from completion" -f -a "bash" -d "Generate bash completion script"
complete -c methodsig -n "__fish_seen_subcommand_from completion" -f -a "zsh" -d "Generate zsh completion script"
complete -c methodsig -n "__fish_seen_subcommand_from completion" -f -a "fish" -d "Generate fish completion script"
`

var completionScripts = map[string]string{
	"bash": bashCompletionTemplate,
	"zsh":  zshCompletionTemplate,
	"fish": fishCompletionTemplate,
}

// runCompletion executes the 'completion' CLI command, writing the script
// for bash, zsh or fish to stdout.
//
// Examples:
//
//	source <(methodsig completion bash)
//	methodsig completion zsh > "${fpath[1]}/_methodsig"
//	methodsig completion fish | source
func (c *cli) runCompletion(args []string) error {
	fs := flag.NewFlagSet("completion", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(c.stderr, `Usage: methodsig completion <shell>

Description:
  Generate shell completion scripts for bash, zsh, or fish.

Arguments:
  shell    Shell type: bash, zsh, or fish (required)

Installation:
  Bash:  source <(methodsig completion bash)
  Zsh:   methodsig completion zsh > "${fpath[1]}/_methodsig"
  Fish:  methodsig completion fish > ~/.config/fish/completions/methodsig.fish

`)
	}

	if ok, err := c.parseFlags(fs, args); !ok {
		return err
	}

	if fs.NArg() != 1 {
		return errors.NewInputError(
			"Invalid arguments",
			"The completion command requires exactly one argument: the shell name",
			"Run 'methodsig completion bash', 'methodsig completion zsh', or 'methodsig completion fish'",
		)
	}

	shell := fs.Arg(0)
	script, ok := completionScripts[shell]
	if !ok {
		return errors.NewInputError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", shell),
			"Run 'methodsig completion bash', 'methodsig completion zsh', or 'methodsig completion fish'",
		)
	}
	fmt.Fprint(c.stdout, script)
	return nil
}
