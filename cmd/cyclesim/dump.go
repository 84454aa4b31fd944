package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/hupe1980/interop/blobstore"
	"github.com/hupe1980/interop/runfolder"
)

func dumpCmd() *cli.Command {
	var maxRecords int

	return &cli.Command{
		Name:      "dump",
		Usage:     "Decode one metric file and print it as JSON",
		ArgsUsage: "<metric-file>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "max-records", Usage: "limit printed records (0 = no limit)", Value: 20, Destination: &maxRecords},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("%w: expected <metric-file>", errUsage)
			}
			file := args[0]

			base := filepath.Base(file)
			codec, compressed := blobstore.CodecForExt(filepath.Ext(base))
			if compressed {
				base = strings.TrimSuffix(base, filepath.Ext(base))
			}
			cat, ok := runfolder.ByFileName(base)
			if !ok {
				return fmt.Errorf("%w: unknown metric file %q", errUsage, base)
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			if compressed {
				if data, err = codec.Decompress(data); err != nil {
					return err
				}
			}

			desc, err := cat.Describe(data, maxRecords)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(desc)
		},
	}
}
