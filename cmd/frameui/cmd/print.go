package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/go-drift/frameui/cmd/frameui/internal/scene"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiCyan   = "\x1b[36m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
)

// printer formats replay reports, with color when stdout is a terminal.
type printer struct {
	color bool
}

func newPrinter() *printer {
	return &printer{color: useColor()}
}

// useColor reports whether stdout is a terminal and NO_COLOR is unset.
func useColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p *printer) key(code, key string) string {
	if key == "" {
		return p.paint(ansiDim, "-")
	}
	return p.paint(code, key)
}

func (p *printer) report(rep scene.Report, ops bool) {
	fmt.Fprintf(stdout, "%s: hovered=%s focused=%s layers=[%s] elements=%d candidates=%d\n",
		p.paint(ansiBold, fmt.Sprintf("frame %d", rep.Index)),
		p.key(ansiCyan, rep.Hovered), p.key(ansiYellow, rep.Focused),
		strings.Join(rep.Layers, " "), rep.Stats.Elements, rep.Stats.Candidates)
	if !ops || rep.Ops == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(rep.Ops, "\n"), "\n") {
		fmt.Fprintf(stdout, "    %s\n", p.paint(ansiDim, line))
	}
}
