package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sunholo/semcheck/internal/config"
	"github.com/sunholo/semcheck/internal/diag"
	"github.com/sunholo/semcheck/internal/env"
	"github.com/sunholo/semcheck/internal/importer"
	"github.com/sunholo/semcheck/internal/infer"
	"github.com/sunholo/semcheck/internal/semantic"
	"github.com/sunholo/semcheck/internal/subst"
	"github.com/sunholo/semcheck/internal/symbol"
	"github.com/sunholo/semcheck/internal/types"
	"github.com/sunholo/semcheck/internal/vectorize"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <semcheck.yaml>",
		Short: "Run inference over a project's package and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
	return cmd
}

func runCheck(cmd *cobra.Command, configPath string) error {
	proj, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	reg := importer.NewRegistry()
	for alias, path := range proj.Imports {
		reg.Register(path, types.Mono(types.Record{Row: types.EmptyRow{}}), map[string]symbol.Symbol{
			alias: symbol.New(alias),
		})
	}

	sub := subst.New()
	pkg := semantic.Convert(demoPackage(proj.Package), sub)
	e := env.New()

	errs := infer.InferPackage(pkg, e, sub, reg)

	reports := make([]*diag.Report, len(errs))
	for i, loc := range errs {
		reports[i] = diag.ReportFor(loc)
	}

	semantic.InjectTypes(pkg, sub)

	if err := vectorize.Vectorize(pkg, sub); err != nil {
		rep, ok := diag.AsReport(err)
		if !ok {
			return fmt.Errorf("vectorize: %w", err)
		}
		reports = append(reports, rep)
	}

	if err := renderReports(cmd, proj, reports); err != nil {
		return err
	}

	if len(reports) > 0 {
		cmd.SilenceErrors = true
		return fmt.Errorf("%d diagnostic(s)", len(reports))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s package %q: no errors\n", green("✓"), proj.Package)
	return nil
}

func renderReports(cmd *cobra.Command, proj *config.Project, reports []*diag.Report) error {
	color.NoColor = !proj.Output.Color

	if proj.Output.Format == "json" {
		for _, r := range reports {
			j, err := r.ToJSON(proj.Output.Compact)
			if err != nil {
				return fmt.Errorf("encoding diagnostic: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), j)
		}
		return nil
	}

	if len(reports) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), diag.RenderAll(reports))
	}
	return nil
}
