package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/compiler/gen/standard"
	"github.com/syssam/tablegen/config"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <project.yaml>",
		Short: "Generate Go code from a project document",
		Example: `  tablegen generate shop.yaml
  tablegen generate shop.yaml --target ./models --package example.com/shop/models --feature inbound
  tablegen generate shop.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := a.generate(cmd.Context(), out, args[0]); err != nil {
				return err
			}
			if !a.v.GetBool("watch") {
				return nil
			}
			w, err := newWatcher(args[0], a.v.GetDuration("debounce"), a.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s for changes\n", yellow("watching"), args[0])
			return w.run(cmd.Context(), func(ctx context.Context) error {
				return a.generate(ctx, out, args[0])
			})
		},
	}
	f := cmd.Flags()
	f.String("target", "", "output directory (default is the package name next to the project file)")
	f.String("package", "", "import path of the generated package")
	f.String("header", gen.DefaultHeader, "header comment of the generated files")
	f.StringSlice("feature", nil, "enable a feature, see 'tablegen features'")
	f.StringSlice("disable", nil, "disable a default feature")
	f.Int("workers", 0, "translators run concurrently (default is GOMAXPROCS)")
	f.Bool("watch", false, "regenerate when the project document changes")
	f.Duration("debounce", 200*time.Millisecond, "delay before regenerating in watch mode")
	for _, name := range []string{"target", "package", "header", "workers", "watch", "debounce"} {
		a.bind(f, name, name)
	}
	a.bind(f, "features", "feature")
	a.bind(f, "disabled", "disable")
	return cmd
}

// generate loads, validates and generates the project stored in file.
func (a *app) generate(ctx context.Context, out io.Writer, file string) error {
	p, err := config.LoadFile(file)
	if err != nil {
		return err
	}
	if err := config.Validate(p); err != nil {
		return err
	}
	opts, target := a.generateOptions(p, file)
	start := time.Now()
	result, err := standard.Generate(ctx, p, opts...)
	if err != nil {
		return err
	}
	for _, f := range result.Files {
		a.log.Debug("wrote file", "file", f.Name, "bytes", f.Size)
	}
	for _, name := range result.Removed {
		fmt.Fprintf(out, "  %s %s\n", yellow("removed"), name)
	}
	fmt.Fprintf(out, "%s %d files into %s (%s)\n",
		green("generated"), len(result.Files), target, time.Since(start).Round(time.Millisecond))
	return nil
}

// generateOptions returns the generator options of the current settings and
// the target directory they resolve to.
func (a *app) generateOptions(p *config.Project, file string) ([]gen.Option, string) {
	pkg := a.v.GetString("package")
	target := a.v.GetString("target")
	if target == "" {
		target = filepath.Join(filepath.Dir(file), (&gen.Config{Package: pkg}).PackageName(p))
	}
	opts := []gen.Option{
		gen.WithTarget(target),
		gen.WithHeader(a.v.GetString("header")),
		gen.WithLogger(a.log),
		gen.WithFeatureNames(a.v.GetStringSlice("features")...),
		gen.WithoutFeatureNames(a.v.GetStringSlice("disabled")...),
	}
	if pkg != "" {
		opts = append(opts, gen.WithPackage(pkg))
	}
	if n := a.v.GetInt("workers"); n > 0 {
		opts = append(opts, gen.WithWorkers(n))
	}
	return opts, target
}

func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the code generation features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, f := range gen.AllFeatures {
				def := ""
				if f.Default {
					def = " (default)"
				}
				fmt.Fprintf(out, "%-10s %-8s %s%s\n", boldCyan(f.Name), f.Stage, f.Description, def)
			}
			return nil
		},
	}
}
