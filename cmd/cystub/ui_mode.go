package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
	uiModeBar  uiMode = "bar"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	case "bar":
		return uiModeBar, nil
	default:
		return "", errors.Newf("invalid --ui value %q (expected auto|on|off|bar)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeAuto:
		return isTerminal(os.Stdout)
	default:
		return false
	}
}
