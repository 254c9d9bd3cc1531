// Command vscroll-demo scrolls through a large list rendered by a vscroll
// Window. Without a terminal on stdout, or with -snapshot, it prints a single
// frame instead.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/vscroll"
	"golang.org/x/term"
)

var (
	count      = flag.Int("n", 10000, "number of items")
	itemHeight = flag.Int("item-height", 1, "nominal item height in rows")
	buffer     = flag.Int("buffer", vscroll.DefaultBuffer, "slots pooled beyond the visible count")
	noteEvery  = flag.Int("note-every", 10, "render every n-th item as a multi-line note (0 disables)")
	snapshot   = flag.Bool("snapshot", false, "print one frame and exit")
	width      = flag.Int("width", 60, "snapshot width")
	height     = flag.Int("height", 20, "snapshot height")
	index      = flag.Int("index", 0, "item scrolled to before the snapshot")
	logFile    = flag.String("log", "", "write debug logs to this file")
	frame      = flag.Duration("frame", vscroll.DefaultFrameInterval, "time between two frames")
)

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		vscroll.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	data := makeItems(*count, *noteEvery)
	if *snapshot || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := printSnapshot(os.Stdout, data); err != nil {
			fatal(err)
		}
		return
	}
	if err := run(data); err != nil {
		fatal(err)
	}
}

func run(data []item) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()

	app := vscroll.NewApplication().
		SetScreen(screen).
		SetFrameInterval(*frame)
	ui := newDemo(app, data)
	w, h := screen.Size()
	ui.SetRect(0, 0, w, h)

	window, err := vscroll.NewWindow(ui.viewport, ui.options(app))
	if err != nil {
		screen.Fini()
		return err
	}
	defer window.Destroy()
	ui.window = window

	return app.SetRoot(ui).Run()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "vscroll-demo:", err)
	os.Exit(1)
}
