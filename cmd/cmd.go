package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rubiojr/simplish/ast"
	"github.com/rubiojr/simplish/parser"
	"github.com/rubiojr/simplish/render"
	"github.com/rubiojr/simplish/simplify"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Execute runs the simplish CLI with the given version string.
func Execute(version string) {
	setFlag := func() cli.Flag {
		return &cli.StringSliceFlag{
			Name:    "set",
			Aliases: []string{"s"},
			Usage:   "Pre-seed a variable binding (name=value), repeatable",
		}
	}
	cmd := &cli.Command{
		Name:                   "simplish",
		Usage:                  "Statically simplify bash scripts",
		Version:                version,
		UseShortOptionHandling: true,
		// Allow `simplish script.sh` as shorthand for `simplish simplify script.sh`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				arg := cmd.Args().First()
				if strings.HasSuffix(arg, ".sh") || isShellScript(arg) {
					return writeSimplified(arg, "", nil)
				}
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "simplify",
				Usage:     "Substitute known variables and resolve decidable conditionals",
				ArgsUsage: "<file.sh>",
				Flags: []cli.Flag{
					setFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the simplified script to a file instead of stdout",
					},
				},
				Action: simplifyAction,
			},
			{
				Name:      "vars",
				Usage:     "Print the variable bindings accumulated by one pass",
				ArgsUsage: "<file.sh>",
				Flags: []cli.Flag{
					setFlag(),
					&cli.BoolFlag{
						Name:    "no-color",
						Aliases: []string{"C"},
						Usage:   "Disable ANSI color output",
					},
				},
				Action: varsAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func simplifyAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: simplish simplify [-s name=value] [-o output] <file.sh>")
	}
	ns, err := seedNamespace(cmd.StringSlice("set"))
	if err != nil {
		return err
	}
	return writeSimplified(cmd.Args().First(), cmd.String("output"), ns)
}

func writeSimplified(path, output string, ns *simplify.Namespace) error {
	script, err := (&parser.Parser{}).ParseFile(path)
	if err != nil {
		return err
	}
	out := ast.Chain(simplify.Pass(ns)).Transform(script)
	text := render.Script(out)
	if output == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}

func varsAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: simplish vars [-s name=value] <file.sh>")
	}
	ns, err := seedNamespace(cmd.StringSlice("set"))
	if err != nil {
		return err
	}
	script, err := (&parser.Parser{}).ParseFile(cmd.Args().First())
	if err != nil {
		return err
	}
	final := simplify.SimplifyVars(ns, script)

	color := !cmd.Bool("no-color") && os.Getenv("NO_COLOR") == "" &&
		term.IsTerminal(int(os.Stdout.Fd()))
	for _, name := range final.Names() {
		segs, _ := final.Lookup(name)
		var val strings.Builder
		for _, seg := range segs {
			val.WriteString(render.BashString(seg))
		}
		if color {
			fmt.Printf("\x1b[36m%s\x1b[0m=%s\n", name, val.String())
		} else {
			fmt.Printf("%s=%s\n", name, val.String())
		}
	}
	return nil
}

// seedNamespace builds the starting namespace from --set name=value flags.
// Each value is bound as a single unquoted segment.
func seedNamespace(pairs []string) (*simplify.Namespace, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	ns := simplify.NewNamespace()
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", pair)
		}
		ns.Insert(name, []ast.BashString{&ast.Unquoted{Text: value}})
	}
	return ns, nil
}

func isShellScript(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, 64)
	n, _ := f.Read(buf)
	line := string(buf[:n])
	return strings.HasPrefix(line, "#!")
}
