package main

import (
	"log/slog"
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/detox/app"
	"github.com/ayoisaiah/detox/internal/logutil"
	"github.com/ayoisaiah/detox/internal/osutil"
	"github.com/ayoisaiah/detox/internal/pathutil"
)

func run(args []string) error {
	err := pathutil.Initialize()
	if err != nil {
		return err
	}

	_, closer := logutil.Setup(pathutil.LogFilePath())

	defer func() {
		_ = closer.Close()
	}()

	slog.Info("starting detox", slog.Any("args", args[1:]))

	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(int(osutil.ExitError))
	}
}
