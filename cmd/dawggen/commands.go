package main

import (
	"fmt"
	"os"

	dawg "github.com/chalup/dawggenerator"
	"github.com/ethereum/go-ethereum/log"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var generateCommand = &cli.Command{
	Name:  "generate",
	Usage: "run the full pipeline: word list in, verified binaries out",
	Flags: []cli.Flag{inputFlag, outputFlag, packedFlag},
	Action: func(ctx *cli.Context) error {
		input := pathOr(ctx, inputFlag, defaultWordList)
		output := pathOr(ctx, outputFlag, defaultBinary)
		packed := ctx.String(packedFlag.Name)

		log.Info("Reading word list", "path", input)
		words, err := dawg.ReadWordsFile(input)
		if err != nil {
			return err
		}

		builder := dawg.New()
		for _, word := range words {
			builder.Add(word)
		}
		finder, err := builder.Finish()
		if err != nil {
			return err
		}

		if _, err := finder.Save(output); err != nil {
			return err
		}
		log.Info("Wrote binary", "path", output)
		if _, err := finder.SavePacked(packed); err != nil {
			return err
		}
		log.Info("Wrote packed binary", "path", packed)

		// re-read both files and round-trip them against the input
		// checksum, so what lands on disk is what gets verified
		sum := finder.Checksum()
		for _, path := range []string{output, packed} {
			loaded, err := dawg.Load(path)
			if err != nil {
				return err
			}
			if err := loaded.Verify(sum); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		log.Info("Verified round trip", "words", finder.NumWords(), "nodes", finder.NumNodes())
		return nil
	},
}

var packCommand = &cli.Command{
	Name:  "pack",
	Usage: "repack an existing 4-byte binary into the packed format",
	Flags: []cli.Flag{inputFlag, outputFlag},
	Action: func(ctx *cli.Context) error {
		input := pathOr(ctx, inputFlag, defaultBinary)
		output := pathOr(ctx, outputFlag, defaultPacked)

		finder, err := dawg.Load(input)
		if err != nil {
			return err
		}
		if _, err := finder.SavePacked(output); err != nil {
			return err
		}

		stats := finder.Stats()
		log.Info("Packed binary",
			"nodes", stats.Nodes,
			"bits/index", stats.IndexBits,
			"bits/node", stats.BitsPerNode,
			"bytes", stats.PackedBytes,
			"saving", fmt.Sprintf("%.1f%%", 100*stats.Saving))
		return nil
	},
}

var verifyCommand = &cli.Command{
	Name:  "verify",
	Usage: "check a binary (either format) against a word list",
	Flags: []cli.Flag{inputFlag, wordsFlag},
	Action: func(ctx *cli.Context) error {
		input := pathOr(ctx, inputFlag, defaultBinary)

		words, err := dawg.ReadWordsFile(ctx.String(wordsFlag.Name))
		if err != nil {
			return err
		}
		dawg.SortWordList(words)

		finder, err := dawg.Load(input)
		if err != nil {
			return err
		}
		if err := finder.Verify(dawg.WordListChecksum(words)); err != nil {
			return err
		}
		log.Info("Verified", "path", input, "words", len(words))
		return nil
	},
}

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "print size statistics for a binary",
	Flags: []cli.Flag{inputFlag, dumpFlag},
	Action: func(ctx *cli.Context) error {
		input := pathOr(ctx, inputFlag, defaultBinary)

		finder, err := dawg.Load(input)
		if err != nil {
			return err
		}
		stats := finder.Stats()

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Stat", "Value"})
		table.Append([]string{"Words", fmt.Sprintf("%d", stats.Words)})
		table.Append([]string{"Nodes", fmt.Sprintf("%d", stats.Nodes)})
		table.Append([]string{"Bits per index", fmt.Sprintf("%d", stats.IndexBits)})
		table.Append([]string{"Bits per node", fmt.Sprintf("%d", stats.BitsPerNode)})
		table.Append([]string{"Unpacked bytes", fmt.Sprintf("%d", stats.UnpackedBytes)})
		table.Append([]string{"Packed bytes", fmt.Sprintf("%d", stats.PackedBytes)})
		table.Append([]string{"Packed saving", fmt.Sprintf("%.1f%%", 100*stats.Saving)})
		table.Render()

		if ctx.Bool(dumpFlag.Name) {
			data, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			return dawg.DumpNodes(os.Stdout, data)
		}
		return nil
	},
}

func pathOr(ctx *cli.Context, flag *cli.StringFlag, fallback string) string {
	if path := ctx.String(flag.Name); path != "" {
		return path
	}
	return fallback
}
