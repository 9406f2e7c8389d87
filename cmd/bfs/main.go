// Command bfs is the interactive shell described in the coursework: it opens
// a disk image file and lets the user format, mount, and manipulate a BFS
// filesystem inside it one command at a time.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/oscoursework/bfs/bfs"
	"github.com/oscoursework/bfs/block"
)

const banner = `BFS shell. Image is not yet mounted; run "format" or "mount" to begin.
Type "help" for the list of commands.`

func main() {
	app := &cli.App{
		Name:      "bfs",
		Usage:     "a tiny block-structured filesystem shell",
		ArgsUsage: "<image-path>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name: "preset",
				Usage: fmt.Sprintf(
					"named disk geometry to size <image-path> with if it doesn't already exist or is empty (one of: %s)",
					strings.Join(block.PredefinedGeometrySlugs(), ", "),
				),
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("bfs: %v", err)
	}
}

func run(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("an image path is required", 1)
	}

	if preset := c.String("preset"); preset != "" {
		if err := ensureImageSized(path, preset); err != nil {
			return cli.Exit(err, 1)
		}
	}

	device, err := block.Open(path)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer device.Close()

	if device.Size() == 0 {
		return cli.Exit("image file is empty; pass --preset or format a pre-sized file first", 1)
	}

	fs := bfs.New(device)

	fmt.Println(banner)
	shell := NewShell(fs, os.Stdin, os.Stdout)
	return shell.Run()
}

// ensureImageSized grows path to the block count named by presetSlug (see
// block/geometries.csv) when it doesn't exist yet or is empty, so the user
// doesn't have to compute a byte count by hand before the first "format".
// An already-sized image is left untouched.
func ensureImageSized(path, presetSlug string) error {
	geometry, err := block.GetPredefinedGeometry(presetSlug)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	return file.Truncate(int64(geometry.TotalBlocks) * block.Size)
}
