package main

import (
	"fmt"
)

const complete = `#! /bin/bash

_aceview_autocomplete() {
    local cur

    if declare -F _init_completion >/dev/null 2>&1; then
        _init_completion -n "=:" 2>/dev/null
    fi

    if [[ -z "$cur" ]]; then
        cur="${COMP_WORDS[COMP_CWORD]}"
    fi

    # -- keeps the flags of the completed command line away from "complete"
    local suggestions=$(aceview complete -- "${COMP_WORDS[@]}")

    if [ $? -eq 0 ]; then
        COMPREPLY=( $(compgen -W "$suggestions" -- "$cur") )
    fi
}

complete -o default -F _aceview_autocomplete aceview
`

func bashCommand(ui UI) error {
	_, err := fmt.Fprint(ui.Out, complete)
	return err
}
