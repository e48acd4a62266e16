package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/arloliu/nbt"
	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/compress"
	"github.com/arloliu/nbt/format"
)

type cli struct {
	Path        string `arg:"" help:"NBT file to read."`
	Gzip        bool   `help:"Treat the input as gzip instead of detecting the envelope."`
	Dump        bool   `help:"Print the parsed tree."`
	Rewrite     string `help:"Write the parsed tree to this path." placeholder:"OUT"`
	Compression string `help:"Envelope for --rewrite: none, gzip, zlib, zstd, s2 or lz4. Defaults to the input envelope."`
	MaxDepth    int    `help:"Maximum nesting depth of lists and compounds." default:"512"`
	MaxLength   int    `help:"Maximum declared array or list length." default:"67108864"`
	Lossy       bool   `help:"Replace invalid UTF-8 in string values instead of failing."`
	Sorted      bool   `help:"Write compound entries in name order when rewriting."`
	Verbose     bool   `short:"v" help:"Enable debug logging."`
}

func main() {
	var args cli
	kong.Parse(&args,
		kong.Name("nbtstat"),
		kong.Description("Parse an NBT file and report how many scalar elements it holds."),
		kong.DefaultEnvars("NBTSTAT"),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(args, os.Stdout, logger); err != nil {
		logger.Error("nbtstat failed", "path", args.Path, "error", err)
		os.Exit(1)
	}
}

func run(args cli, out io.Writer, logger *slog.Logger) error {
	decodeOpts := []codec.DecoderOption{
		codec.WithMaxDepth(args.MaxDepth),
		codec.WithMaxLength(args.MaxLength),
	}
	if args.Lossy {
		decodeOpts = append(decodeOpts, codec.WithLossyStrings())
	}

	start := time.Now()
	doc, ct, err := readInput(args, decodeOpts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	logger.Debug("document decoded",
		"path", args.Path,
		"envelope", ct.String(),
		"root_name", doc.Name,
		"entries", doc.Root.Len(),
		"fingerprint", fmt.Sprintf("%016x", nbt.Fingerprint(doc)),
	)

	fmt.Fprintf(out, "Parsed %d elements\n", doc.CountElements())
	fmt.Fprintf(out, "Elapsed: %s\n", elapsed)

	if args.Dump {
		fmt.Fprintf(out, "%q: %s\n", doc.Name, doc.Root)
	}

	if args.Rewrite != "" {
		return rewrite(args, doc, ct, out, logger)
	}

	return nil
}

func readInput(args cli, opts []codec.DecoderOption) (nbt.Document, format.CompressionType, error) {
	if !args.Gzip {
		return nbt.ReadFile(args.Path, opts...)
	}

	f, err := os.Open(args.Path)
	if err != nil {
		return nbt.Document{}, format.CompressionGzip, err
	}
	defer f.Close()

	doc, err := nbt.ReadAs(f, format.CompressionGzip, opts...)

	return doc, format.CompressionGzip, err
}

func rewrite(args cli, doc nbt.Document, ct format.CompressionType, out io.Writer, logger *slog.Logger) error {
	if args.Compression != "" {
		parsed, ok := format.ParseCompressionType(args.Compression)
		if !ok {
			return fmt.Errorf("unknown compression %q", args.Compression)
		}
		ct = parsed
	}

	var encodeOpts []codec.EncoderOption
	if args.Sorted {
		encodeOpts = append(encodeOpts, codec.WithSortedKeys())
	}

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		logEnvelopeEstimate(logger, doc, ct, encodeOpts)
	}

	if err := nbt.WriteFile(args.Rewrite, doc, ct, encodeOpts...); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s (%s)\n", args.Rewrite, ct)

	return nil
}

// logEnvelopeEstimate reports how well the chosen envelope compresses the
// document as a block.
func logEnvelopeEstimate(logger *slog.Logger, doc nbt.Document, ct format.CompressionType, opts []codec.EncoderOption) {
	raw, err := codec.Marshal(doc, opts...)
	if err != nil {
		return
	}

	c, err := compress.GetCodec(ct)
	if err != nil {
		return
	}

	_, stats, err := compress.Measure(ct, c, raw)
	if err != nil {
		logger.Debug("envelope estimate failed", "envelope", ct.String(), "error", err)
		return
	}

	logger.Debug("envelope estimate",
		"envelope", ct.String(),
		"raw_bytes", stats.OriginalSize,
		"compressed_bytes", stats.CompressedSize,
		"savings_pct", fmt.Sprintf("%.1f", stats.SpaceSavings()),
		"took", stats.CompressionTime,
	)
}
