package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/colprof/internal/pipeline"
	"github.com/ajitpratap0/colprof/pkg/colerrors"
	"github.com/ajitpratap0/colprof/pkg/column"
	"github.com/ajitpratap0/colprof/pkg/json"
	"github.com/ajitpratap0/colprof/pkg/logger"
)

func addProfilingFlags(cmd *cobra.Command) {
	cmd.Flags().String("model-dir", "./models", "Model directory (path, file://, s3:// or gs://)")
	cmd.Flags().Int("workers", 0, "Number of columns profiled in parallel (0 = number of CPUs)")
	cmd.Flags().Bool("recompute-on-reclassify", false, "Recompute features and storage category after a type override")
}

func newProfileCommand(a *app) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile every column of a document",
		Long: `Profile every column of a JSON document and write a report with one
summary per column. Documents and reports may be compressed; the codec is
chosen from the file extension (.gz, .zst, .lz4, .sz, .s2).

Example:
  colprof profile --input columns.json.zst --output report.json --model-dir s3://models/colprof`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProfile(cmd, input, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to the input document, or - for stdin (required)")
	cmd.Flags().StringVarP(&output, "output", "o", pipeline.Stdio, "Path to the report, or - for stdout")
	_ = cmd.MarkFlagRequired("input")
	addProfilingFlags(cmd)

	return cmd
}

func (a *app) runProfile(cmd *cobra.Command, input, output string) error {
	ctx := cmd.Context()

	model, err := pipeline.LoadModel(ctx, a.cfg, a.logger, a.collector)
	if err != nil {
		return err
	}

	doc, err := pipeline.ReadDocument(ctx, input)
	if err != nil {
		return err
	}

	log := a.logger.With(zap.String(string(logger.SourceKey), input))
	report, err := pipeline.New(a.cfg, model, log, a.collector).Run(ctx, doc)
	if err != nil {
		return err
	}

	if output == pipeline.Stdio {
		return pipeline.EncodeReport(cmd.OutOrStdout(), report)
	}
	if err := pipeline.WriteReport(output, report); err != nil {
		return err
	}
	log.Info("report written", zap.String("output", output))
	return nil
}

// reclassification is printed by the reclassify command.
type reclassification struct {
	Before column.Summary `json:"before"`
	After  column.Summary `json:"after"`
}

func newReclassifyCommand(a *app) *cobra.Command {
	var input, name, typ string

	cmd := &cobra.Command{
		Use:   "reclassify",
		Short: "Profile one column and override its type",
		Long: `Profile one column of a document, reclassify it to the given type and
print the summaries before and after.

Example:
  colprof reclassify --input columns.json --column age --type string`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReclassify(cmd, input, name, typ)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to the input document, or - for stdin (required)")
	cmd.Flags().StringVar(&name, "column", "", "Name of the column (required)")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Type to assign (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("type")
	addProfilingFlags(cmd)

	return cmd
}

func (a *app) runReclassify(cmd *cobra.Command, input, name, typ string) error {
	ctx := cmd.Context()

	doc, err := pipeline.ReadDocument(ctx, input)
	if err != nil {
		return err
	}
	in, ok := doc.Find(name)
	if !ok {
		return colerrors.Newf(colerrors.ErrorTypeData, "column %q not found", name).
			WithDetail("input", input)
	}

	model, err := pipeline.LoadModel(ctx, a.cfg, a.logger, a.collector)
	if err != nil {
		return err
	}

	// the override is applied below so both states can be reported
	in.OverrideType = ""
	col, err := pipeline.New(a.cfg, model, a.logger, a.collector).Profile(ctx, in)
	if err != nil {
		return err
	}

	before := col.Summary()
	err = col.Reclassify(typ)
	a.collector.ObserveReclassify(err)
	if err != nil {
		a.logger.Error("failed to reclassify column",
			zap.String("column", name),
			zap.Strings("known_types", col.KnownTypes()),
			zap.Error(err))
		return err
	}

	return json.WriteIndented(cmd.OutOrStdout(), reclassification{
		Before: before,
		After:  col.Summary(),
	})
}
