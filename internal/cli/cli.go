package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/docker/go-units"
	"github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-isatty"
	"github.com/rs/xid"

	"github.com/babarot/drash/internal/arena"
	"github.com/babarot/drash/internal/config"
	"github.com/babarot/drash/internal/debug"
	"github.com/babarot/drash/internal/drash"
	"github.com/babarot/drash/internal/env"
	"github.com/babarot/drash/internal/ui"
	"github.com/babarot/drash/internal/utils/log"
)

type Option struct {
	Force  bool   `short:"f" long:"force" description:"Delete files directly instead of moving them to the drashcan"`
	Config string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`

	List    ListCommand    `command:"list" description:"List the entries in the drashcan"`
	Remove  RemoveCommand  `command:"remove" description:"Permanently delete entries from the drashcan ('-' for the latest)"`
	Restore RestoreCommand `command:"restore" description:"Restore entries to their original location ('-' for the latest)"`
	Empty   EmptyCommand   `command:"empty" description:"Permanently delete everything in the drashcan"`
	Cat     CatCommand     `command:"cat" description:"Print the content of a trashed file"`
}

type MetaOption struct {
	Version bool   `short:"v" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type ListCommand struct{}

type RemoveCommand struct{}

type RestoreCommand struct {
	Overwrite bool `short:"o" long:"overwrite" description:"Overwrite existing files without asking"`
}

type EmptyCommand struct {
	Yes bool `short:"y" long:"yes" description:"Do not ask for confirmation"`
}

type CatCommand struct{}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string
	drash   *drash.Drash
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

// Run parses argv (without the program name) and executes the selected
// command.
func Run(v Version, argv []string) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] [FILES...]"
	parser.SubcommandsOptional = true
	args, err := parser.ParseArgs(argv)
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	if opt.Meta.Version {
		fmt.Fprint(os.Stdout, v.Print())
		return nil
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return &EnvError{Err: err}
	}
	logPath, err := env.LogPath()
	if err != nil {
		return &EnvError{Err: err}
	}

	if opt.Meta.Debug != "" {
		return debug.Logs(os.Stdout, logPath, opt.Meta.Debug == "live", cfg.Logging.Enabled)
	}

	closeLog := setupLogger(cfg.Logging, logPath)
	defer closeLog()

	defer slog.Debug("main function finished")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		printer := pp.New()
		printer.SetColoringEnabled(false)
		slog.Debug("config loaded", "config", printer.Sprint(cfg))
	}

	root, err := env.TrashDir(cfg.Core.TrashDir)
	if err != nil {
		return &EnvError{Err: err}
	}
	regionSize := arena.DefaultRegionSize
	if cfg.Core.RegionSize != "" {
		n, err := units.RAMInBytes(cfg.Core.RegionSize)
		if err != nil {
			return &EnvError{Err: fmt.Errorf("invalid region size: %w", err)}
		}
		regionSize = int(n)
	}

	a := arena.New(regionSize)
	defer func() {
		if err := a.Free(); err != nil {
			slog.Warn("failed to release arena", "error", err)
		}
	}()

	d, err := drash.New(drash.ConfigFrom(cfg, root), a,
		drash.WithTerminal(isatty.IsTerminal(os.Stdout.Fd())))
	if err != nil {
		return &EnvError{Err: err}
	}

	c := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		runID:   runID(),
		drash:   d,
	}

	if err := c.Run(parser.Active, args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func (c CLI) Run(cmd *flags.Command, args []string) error {
	name := ""
	if cmd != nil {
		name = cmd.Name
	}
	slog.Debug("cli.run", "command", name, "args", args)

	switch name {
	case "list":
		if len(args) > 0 {
			return fmt.Errorf("%w: list takes no arguments", ErrUsage)
		}
		return c.drash.List()
	case "remove":
		return c.drash.Remove(args)
	case "restore":
		return c.drash.Restore(args, c.option.Restore.Overwrite)
	case "empty":
		if len(args) > 0 {
			return fmt.Errorf("%w: empty takes no arguments", ErrUsage)
		}
		return c.drash.Empty(c.option.Empty.Yes)
	case "cat":
		if len(args) != 1 {
			return fmt.Errorf("%w: cat takes exactly one name", ErrUsage)
		}
		return c.drash.Cat(args[0])
	default:
		if c.option.Force {
			return c.drash.ForceRemove(args)
		}
		return c.drash.Put(args)
	}
}

// setupLogger installs the process logger and returns a function releasing
// its output.
func setupLogger(cfg config.Logging, path string) func() {
	if !cfg.Enabled {
		slog.SetDefault(log.Discard())
		return func() {}
	}

	var w io.Writer = io.Discard
	closer := func() {}
	rw, err := log.NewRotateWriter(path, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles)
	if err != nil {
		ui.PrintWarning(os.Stderr, fmt.Sprintf("logging disabled: %v", err))
	} else {
		w = rw
		closer = func() { _ = rw.Close() }
	}

	logger := log.New(
		log.UseOutput(w),
		log.UseLevelName(cfg.Level),
		log.UseFileFormat(),
		log.AsDefault(),
	)
	slog.SetDefault(logger.With("run_id", runID()))
	return closer
}
