package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"research-backend/internal/extract"
	"research-backend/research/assemble"
	"research-backend/research/model"
	"research-backend/research/render"
)

type exportOptions struct {
	input     string
	subject   string
	notesFile string
	format    string
	outDir    string
}

func newExportCmd() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a research payload to files",
		Long: `Render a research payload (JSON or YAML, flat or "framework" shaped) to one
or all export formats. Without --input a built-in sample is rendered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), opts, time.Now(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.input, "input", "", "research payload (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&opts.subject, "subject", "AAPL - Apple Inc.", "subject label, e.g. \"AAPL - Apple Inc.\"")
	cmd.Flags().StringVar(&opts.notesFile, "notes-file", "", "file with analyst notes")
	cmd.Flags().StringVar(&opts.format, "format", "all", "md, pdf, docx or all")
	cmd.Flags().StringVar(&opts.outDir, "out", "./out", "output directory")
	return cmd
}

func runExport(ctx context.Context, opts exportOptions, now time.Time, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formats, err := selectFormats(opts.format)
	if err != nil {
		return err
	}
	record, err := loadRecord(opts.input)
	if err != nil {
		return err
	}
	notes := ""
	if opts.notesFile != "" {
		data, err := os.ReadFile(opts.notesFile)
		if err != nil {
			return fmt.Errorf("read notes: %w", err)
		}
		notes = string(data)
	}
	ectx := model.ExportContext{
		SubjectLabel: strings.TrimSpace(opts.subject),
		Notes:        notes,
		GeneratedAt:  now,
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}
	for _, f := range formats {
		renderer, err := render.For(f)
		if err != nil {
			return err
		}
		artifact, err := renderer.Render(record, ectx)
		if err != nil {
			return fmt.Errorf("render %s: %w", f, err)
		}
		if err := extract.Verify(ctx, artifact); err != nil {
			return fmt.Errorf("verify %s: %w", f, err)
		}
		path := filepath.Join(opts.outDir, artifact.FileName)
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			return err
		}
		if artifact.PageCount > 0 {
			fmt.Fprintf(stdout, "OK: wrote %s (%d pages)\n", path, artifact.PageCount)
		} else {
			fmt.Fprintf(stdout, "OK: wrote %s\n", path)
		}
	}
	return nil
}

func selectFormats(raw string) ([]render.Format, error) {
	if strings.EqualFold(strings.TrimSpace(raw), "all") {
		return render.Formats, nil
	}
	f, err := render.ParseFormat(raw)
	if err != nil {
		return nil, err
	}
	return []render.Format{f}, nil
}

func loadRecord(path string) (model.ResearchRecord, error) {
	if path == "" {
		return sampleRecord(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ResearchRecord{}, fmt.Errorf("read input: %w", err)
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return model.ResearchRecord{}, fmt.Errorf("parse input %s: %w", path, err)
	}
	return assemble.Assemble(raw), nil
}

func sampleRecord() model.ResearchRecord {
	return model.ResearchRecord{
		Questions: []string{
			"How durable is services revenue growth?",
			"What share of hardware demand is replacement driven?",
		},
		BusinessModel: "Designs and sells consumer hardware, monetizing the installed base through services and subscriptions.",
		Risks: []string{
			"Regulatory scrutiny of app store economics",
			"Supply chain concentration",
		},
		GrowthDrivers: []string{
			"Services attach rate",
			"Wearables and new device categories",
		},
	}
}
