// Package command implements the tensorlogic command line: argument parsing,
// configuration and the actions behind each subcommand.
package command

import (
	"errors"

	"github.com/urfave/cli"
)

// Argument errors.
var (
	ErrMissingCommand  = errors.New("missing command")
	ErrMissingArgument = errors.New("missing argument")
)

// Arguments is the parsed command line. Exactly one command field is set.
type Arguments struct {
	ConfigFile string

	// Global overrides; nil means "use the config value".
	Debug      bool
	Precision  *int
	Workers    *int
	NoParallel bool
	Tokenizer  string

	Version *VersionArguments
	List    *ListArguments
	Run     *RunArguments
	Einsum  *EinsumArguments
	Export  *ExportArguments
	Show    *ShowArguments
	Save    *SaveArguments
}

// VersionArguments selects the version command.
type VersionArguments struct{}

// ListArguments configures the list command.
type ListArguments struct {
	Category string
	NoTable  bool
}

// RunArguments configures the run command.
type RunArguments struct {
	IDs []string
	All bool
}

// EinsumArguments configures the einsum command.
type EinsumArguments struct {
	Equation string
	Files    []string
	Name     string
	Output   string // optional SafeTensors file for the result
	Plan     bool   // print the index partition and cost
}

// ExportArguments configures the export command.
type ExportArguments struct {
	IDs    []string
	All    bool
	Format string
	Output string
}

// ShowArguments configures the show command.
type ShowArguments struct {
	File string
}

// SaveArguments configures the save command.
type SaveArguments struct {
	ID     string
	Output string
}

// ParseArguments parses argv. Error messages for bad flags are already printed.
func ParseArguments(argv []string, appVersion string) (*Arguments, error) {
	var args = Arguments{}
	app := cli.NewApp()
	app.Name = "tensorlogic"
	app.Description = "Tensor Logic: neural, symbolic and probabilistic models as tensor equations"
	app.Version = appVersion
	app.Usage = "Run Tensor Logic demos and evaluate einsum equations"
	app.UseShortOptionHandling = true

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config,c", Usage: "YAML configuration file"},
		cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
		cli.IntFlag{Name: "precision,p", Usage: "Digits after the decimal point for einsum results"},
		cli.IntFlag{Name: "workers,w", Usage: "Number of worker goroutines"},
		cli.BoolFlag{Name: "no-parallel", Usage: "Run demos sequentially"},
		cli.StringFlag{Name: "tokenizer,t", Usage: "Tokenizer for the attention demos (word, cl100k_base, ...)"},
	}

	app.Commands = []cli.Command{
		{
			Name:  "version",
			Usage: "Show version",
			Action: func(c *cli.Context) error {
				args.Version = &VersionArguments{}
				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List the demos",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "category,k", Usage: "Filter by category (symbolic, neural, probabilistic, hybrid)"},
				cli.BoolFlag{Name: "noTable", Usage: "Render pure text instead of table"},
			},
			Action: func(c *cli.Context) error {
				args.List = &ListArguments{
					Category: c.String("category"),
					NoTable:  c.Bool("noTable"),
				}
				return nil
			},
		},
		{
			Name:      "run",
			Usage:     "Run demos and print every step",
			ArgsUsage: "<id>...",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "all,a", Usage: "Run every demo"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 && !c.Bool("all") {
					return ErrMissingArgument
				}
				args.Run = &RunArguments{
					IDs: c.Args(),
					All: c.Bool("all"),
				}
				return nil
			},
		},
		{
			Name:      "einsum",
			Usage:     "Evaluate an equation over tensors loaded from JSON or SafeTensors files",
			ArgsUsage: "<equation> <file>...",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "name,n", Usage: "Name of the result tensor"},
				cli.StringFlag{Name: "output,o", Usage: "Write the result to a SafeTensors file"},
				cli.BoolFlag{Name: "plan", Usage: "Print free and summed indices and the cost"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					return ErrMissingArgument
				}
				args.Einsum = &EinsumArguments{
					Equation: c.Args().First(),
					Files:    c.Args().Tail(),
					Name:     c.String("name"),
					Output:   c.String("output"),
					Plan:     c.Bool("plan"),
				}
				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Export demo results as JSON, YAML or MessagePack",
			ArgsUsage: "[<id>...]",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "all,a", Usage: "Export every demo (default when no id is given)"},
				cli.StringFlag{Name: "format,f", Usage: "json, yaml or msgpack"},
				cli.StringFlag{Name: "output,o", Value: "-", Usage: "Output file, - for stdout; the format extension is added when missing"},
			},
			Action: func(c *cli.Context) error {
				args.Export = &ExportArguments{
					IDs:    c.Args(),
					All:    c.Bool("all") || c.NArg() == 0,
					Format: c.String("format"),
					Output: c.String("output"),
				}
				return nil
			},
		},
		{
			Name:      "show",
			Usage:     "Print demo runs from a file written by export",
			ArgsUsage: "<file.json|file.yaml|file.msgpack>",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return ErrMissingArgument
				}
				args.Show = &ShowArguments{File: c.Args().First()}
				return nil
			},
		},
		{
			Name:      "save",
			Usage:     "Save every tensor of a demo run to a SafeTensors file",
			ArgsUsage: "<id>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "output,o", Usage: "Target file (default <id>.safetensors)"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return ErrMissingArgument
				}
				id := c.Args().First()
				output := c.String("output")
				if output == "" {
					output = id + ".safetensors"
				}
				args.Save = &SaveArguments{ID: id, Output: output}
				return nil
			},
		},
	}
	app.Before = func(c *cli.Context) error {
		args.ConfigFile = c.GlobalString("config")
		args.Debug = c.GlobalBool("debug")
		args.NoParallel = c.GlobalBool("no-parallel")
		args.Tokenizer = c.GlobalString("tokenizer")
		if c.GlobalIsSet("precision") {
			p := c.GlobalInt("precision")
			args.Precision = &p
		}
		if c.GlobalIsSet("workers") {
			w := c.GlobalInt("workers")
			args.Workers = &w
		}
		return nil
	}
	app.Action = func(c *cli.Context) error {
		_ = cli.ShowAppHelp(c)
		return ErrMissingCommand
	}
	err := app.Run(argv)
	return &args, err
}

// Apply overlays the command-line overrides on cfg.
func (a *Arguments) Apply(cfg Config) Config {
	if a.Debug {
		cfg.Debug = true
	}
	if a.Precision != nil {
		cfg.Precision = max(*a.Precision, 0)
	}
	if a.Workers != nil {
		cfg.Workers = max(*a.Workers, 1)
	}
	if a.NoParallel {
		cfg.Parallel = false
	}
	if a.Tokenizer != "" {
		cfg.Tokenizer = a.Tokenizer
	}
	return cfg
}
