package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/hupe1980/interop"
	"github.com/hupe1980/interop/blobstore"
	"github.com/hupe1980/interop/runfolder"
)

// errUsage marks invalid command line arguments.
var errUsage = errors.New("invalid arguments")

func rootCmd() *cli.Command {
	var (
		cycleToAlign int
		parallel     int
		compress     string
		logLevel     string
		logJSON      bool
	)

	return &cli.Command{
		Name:      "cyclesim",
		Usage:     "Rewind a sequencing run folder to an earlier cycle",
		ArgsUsage: "<run-folder> <output-dir> <max-cycle> <max-read>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cycle-to-align", Usage: "cycle at which alignment starts", Value: runfolder.DefaultCycleToAlign, Destination: &cycleToAlign},
			&cli.IntFlag{Name: "parallel", Usage: "metric categories processed at once", Value: 4, Destination: &parallel},
			&cli.StringFlag{Name: "compress", Usage: "compress output metric files (gz, zst or lz4)", Destination: &compress},
			&cli.StringFlag{Name: "log-level", Usage: "log level (debug, info, warn, error)", Value: "info", Destination: &logLevel},
			&cli.BoolFlag{Name: "log-json", Usage: "emit JSON logs", Destination: &logJSON},
		},
		Commands: []*cli.Command{
			dumpCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 4 {
				return fmt.Errorf("%w: expected <run-folder> <output-dir> <max-cycle> <max-read>", errUsage)
			}
			runFolder, outputDir := args[0], args[1]

			maxCycle, err := strconv.ParseUint(args[2], 10, 16)
			if err != nil || maxCycle == 0 {
				return fmt.Errorf("%w: max-cycle %q", errUsage, args[2])
			}
			maxRead, err := strconv.ParseUint(args[3], 10, 32)
			if err != nil || maxRead == 0 {
				return fmt.Errorf("%w: max-read %q", errUsage, args[3])
			}
			if cycleToAlign < 0 || cycleToAlign > math.MaxUint16 {
				return fmt.Errorf("%w: cycle-to-align %d", errUsage, cycleToAlign)
			}

			logger := newLogger(logLevel, logJSON)

			src, err := openSource(ctx, runFolder)
			if err != nil {
				return err
			}
			// Archived run folders may hold compressed metric files.
			src = blobstore.NewCompressedStore(src, nil)

			dstDir := filepath.Join(outputDir, runfolder.OutputName(runFolder, uint16(maxCycle)))
			local := blobstore.NewLocalStore(dstDir)

			var dst blobstore.WritableStore = local
			if compress != "" {
				codec, ok := blobstore.CodecForExt("." + compress)
				if !ok {
					return fmt.Errorf("%w: unknown compression %q", errUsage, compress)
				}
				dst = blobstore.NewCompressedStore(local, codec)
			}

			summary, err := runfolder.Copy(ctx, src, dst, uint16(maxCycle), uint32(maxRead),
				runfolder.WithCycleToAlign(uint16(cycleToAlign)),
				runfolder.WithParallelism(parallel),
				runfolder.WithLogger(logger.WithRunFolder(runFolder)),
			)
			if err != nil {
				return err
			}

			// Sidecars stay uncompressed even when metric files are not.
			if err := runfolder.CopySidecars(ctx, src, local); err != nil {
				return err
			}

			logger.InfoContext(ctx, "run folder copied",
				"output", dstDir,
				"written", summary.Written,
			)
			return nil
		},
	}
}

func newLogger(level string, jsonOutput bool) *interop.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if jsonOutput {
		return interop.NewJSONLogger(lvl)
	}
	return interop.NewTextLogger(lvl)
}
