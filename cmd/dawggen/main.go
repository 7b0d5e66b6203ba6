// dawggen builds, compresses and verifies DAWG word indexes.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

const (
	defaultWordList = "Word-List.txt"
	defaultBinary   = "Word-List.dat"
	defaultPacked   = "Word-List.min.dat"
)

var (
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "input `path`",
	}
	outputFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "output `path`",
	}
	packedFlag = &cli.StringFlag{
		Name:  "packed",
		Usage: "packed output `path`",
		Value: defaultPacked,
	}
	wordsFlag = &cli.StringFlag{
		Name:  "words",
		Usage: "word list `path` to verify against",
		Value: defaultWordList,
	}
	dumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "print a line per encoded node",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "log verbosity (0=silent, 3=info, 4=debug)",
		Value: 3,
	}
)

func main() {
	app := &cli.App{
		Name:  "dawggen",
		Usage: "build, compress and verify DAWG word indexes",
		Flags: []cli.Flag{verbosityFlag},
		Before: func(ctx *cli.Context) error {
			handler := log.NewTerminalHandlerWithLevel(os.Stderr,
				log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)), false)
			log.SetDefault(log.NewLogger(handler))
			return nil
		},
		Commands: []*cli.Command{
			generateCommand,
			packCommand,
			verifyCommand,
			statsCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
