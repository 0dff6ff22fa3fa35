package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/destoken/internal/config"
	"github.com/mcncl/destoken/internal/errors"
	"github.com/mcncl/destoken/internal/formatter"
	"github.com/mcncl/destoken/internal/generator"
	"github.com/mcncl/destoken/internal/parser"
	"github.com/mcncl/destoken/internal/search"
)

// CLI defines the command-line interface
var CLI struct {
	Identifier string `arg:"" help:"User identifier, e.g. a roll number. Lowercased and stripped of spaces before hashing."`
	File       string `arg:"" help:"Path to the JSON file, or - to read standard input."`

	Key            string           `help:"JSON key whose first value is hashed." short:"k" default:"destination"`
	Match          string           `help:"How keys are compared: exact, fold or snake." short:"m" default:"exact" enum:"exact,fold,snake"`
	SaltLength     int              `help:"Number of salt characters." default:"8"`
	Seed           uint64           `help:"Seed for reproducible salts. 0 picks a random seed." short:"s" default:"0"`
	Format         string           `help:"Output format: plain, json or yaml." short:"f" default:"plain" enum:"plain,json,yaml"`
	Config         string           `help:"Path to a config file. Defaults to the nearest .destoken.yml." short:"c" type:"path"`
	LegacyTrailing bool             `help:"Drop a last value that is not followed by a comma or newline, like the original tool."`
	Verify         string           `help:"Check a printed token against the identifier and file instead of generating one." placeholder:"DIGEST;SALT"`
	Debug          bool             `help:"Enable debug logging." short:"d"`
	Version        kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("destoken"),
		kong.Description("Derive a salted verification token from the first \"destination\" value in a JSON file"),
		kong.UsageOnError(),
		kong.Vars{"version": "destoken version " + Version},
	)

	// Wrong argument counts print the usage and exit 1
	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// loadConfig resolves the config file and applies command-line overrides
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		Key:            CLI.Key,
		Match:          CLI.Match,
		SaltLength:     CLI.SaltLength,
		Seed:           CLI.Seed,
		Format:         CLI.Format,
		LegacyTrailing: CLI.LegacyTrailing,
		Debug:          CLI.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), errors.ErrInvalidConfig)
	}
	return cfg, nil
}

// run executes the main program logic. Nothing is written to Stdout unless
// every step succeeds.
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	// 1. Read and decode the JSON file
	var opts []parser.Option
	if cfg.Parser.LegacyTrailing {
		opts = append(opts, parser.WithLegacyTrailing())
	}
	root, err := parser.ParseFile(CLI.File, opts...)
	if err != nil {
		return err
	}
	debugf(ctx, "decoded %s: %d top-level keys", CLI.File, root.Len())

	// 2. Find the key
	finder := search.NewFinder(cfg.Key, search.WithMatch(cfg.MatchMode()))
	destination, found := finder.Find(root)
	if !found {
		return errors.NewSearchError(
			fmt.Sprintf("Key '%s' not found in the JSON file.", cfg.Key),
			errors.ErrKeyNotFound,
		)
	}
	debugf(ctx, "found %s=%q", cfg.Key, destination)

	if CLI.Verify != "" {
		return verifyToken(ctx, destination)
	}

	// 3. Build the token
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	token := gen.Generate(CLI.Identifier, destination)
	debugf(ctx, "hashing %q", token.Identifier+token.Destination+token.Salt)

	// 4. Render and write it
	out, err := formatter.NewFormatter().Format(token, cfg.OutputFormat())
	if err != nil {
		return errors.NewFormatError("failed to render token", err)
	}
	return writeOutput(ctx, out)
}

// newGenerator builds a salt generator, seeded when the config asks for it
func newGenerator(cfg *config.Config) (*generator.Generator, error) {
	opts := []generator.Option{
		generator.WithSaltLength(cfg.Salt.Length),
		generator.WithAlphabet(cfg.Salt.Alphabet),
	}
	if cfg.Salt.Seed != 0 {
		return generator.NewSeededGenerator(cfg.Salt.Seed, opts...)
	}
	return generator.NewRandomGenerator(opts...)
}

// verifyToken recomputes the digest for a token given on the command line
func verifyToken(ctx *Context, destination string) error {
	token, err := generator.ParseToken(CLI.Verify)
	if err != nil {
		return err
	}
	if !generator.Verify(CLI.Identifier, destination, token) {
		return errors.NewVerifyError("digest does not match identifier, destination and salt", errors.ErrTokenMismatch)
	}
	return writeOutput(ctx, "OK")
}

// writeOutput writes a single line to stdout
func writeOutput(ctx *Context, out string) error {
	w := ctx.Stdout
	if w == nil {
		w = os.Stdout
	}
	if _, err := fmt.Fprintln(w, out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

func debugf(ctx *Context, format string, args ...interface{}) {
	if !ctx.Debug {
		return
	}
	w := ctx.Stderr
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "[debug] "+format+"\n", args...)
}
