package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"xlister/cli"
	"xlister/config"
	"xlister/utils"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := cli.ParseArgs(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return cli.ExitOK
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "xlister: %v\n", err)
		return cli.ExitUsage
	}

	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		utils.NewLogger().Error("Failed to load config: %v", err)
		return cli.ExitFailure
	}

	logger := utils.New(os.Stderr, cfg.LogLevel)
	logger.Debug("Config: log level %s | description preview %d | export dir %q",
		cfg.LogLevel, cfg.DescriptionPreview, cfg.ExportDir)

	return cli.NewApp(cfg, logger, os.Stdout).Run(opts)
}
