// Command nestcut packs cut lists onto stock sheets and exports the
// resulting layouts.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelwright/nestcut/internal/costing"
	"github.com/panelwright/nestcut/internal/engine"
	"github.com/panelwright/nestcut/internal/export"
	"github.com/panelwright/nestcut/internal/importer"
	"github.com/panelwright/nestcut/internal/model"
	"github.com/panelwright/nestcut/internal/project"
	"github.com/panelwright/nestcut/internal/render"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nestcut",
		Short: "Guillotine sheet-cutting optimizer",
		Long: `NestCut packs rectangular parts onto stock sheets with a deterministic
guillotine nesting algorithm, accounting for saw kerf, grain direction,
and edge banding. Results export to PDF layouts, QR part labels, Excel
cut lists, and PNG previews.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newPackCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newEstimateCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func newPackCommand() *cobra.Command {
	var (
		outPath     string
		pdfPath     string
		labelsPath  string
		cutlistPath string
		imagesDir   string
		ratesPath   string
		kerf        float64
		noRotation  bool
		singleSheet bool
	)

	cmd := &cobra.Command{
		Use:   "pack <project-file>",
		Short: "Pack a project's parts onto its stock sheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load project: %w", err)
			}

			opts := proj.Options
			if cmd.Flags().Changed("kerf") {
				opts.Kerf = kerf
			}
			if noRotation {
				opts.AllowRotation = false
			}
			if singleSheet {
				opts.SingleSheetOnly = true
			}

			result, err := engine.Pack(proj.Parts, proj.Stocks, opts)
			if err != nil {
				return err
			}

			printSummary(cmd, proj.Name, result)

			if outPath != "" {
				if err := project.SaveResult(outPath, proj.Name, result); err != nil {
					return err
				}
				cmd.Printf("Result written to %s\n", outPath)
			}
			if pdfPath != "" {
				if err := export.ExportPDF(pdfPath, result, opts); err != nil {
					return err
				}
				cmd.Printf("Layout PDF written to %s\n", pdfPath)
			}
			if labelsPath != "" {
				if err := export.ExportLabels(labelsPath, result, proj.Parts); err != nil {
					return err
				}
				cmd.Printf("Labels written to %s\n", labelsPath)
			}
			if cutlistPath != "" {
				if err := export.ExportCutList(cutlistPath, result, proj.Parts); err != nil {
					return err
				}
				cmd.Printf("Cut list written to %s\n", cutlistPath)
			}
			if imagesDir != "" {
				paths, err := render.SaveSheetImages(imagesDir, result, render.DefaultOptions())
				if err != nil {
					return err
				}
				cmd.Printf("Wrote %d sheet images to %s\n", len(paths), imagesDir)
			}
			if ratesPath != "" {
				rates, err := costing.LoadRates(ratesPath)
				if err != nil {
					return err
				}
				printInvoice(cmd, costing.Estimate(result, rates))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the packing result to this JSON/YAML file")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "export layout diagrams to this PDF file")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "export QR part labels to this PDF file")
	cmd.Flags().StringVar(&cutlistPath, "cutlist", "", "export the cut list to this Excel file")
	cmd.Flags().StringVar(&imagesDir, "images", "", "render PNG previews into this directory")
	cmd.Flags().StringVar(&ratesPath, "rates", "", "price the layout using this rates file (JSON or YAML)")
	cmd.Flags().Float64Var(&kerf, "kerf", model.DefaultOptions().Kerf, "saw kerf in mm (overrides the project setting)")
	cmd.Flags().BoolVar(&noRotation, "no-rotation", false, "disallow 90 degree part rotation")
	cmd.Flags().BoolVar(&singleSheet, "single-sheet", false, "fail parts that need more than one sheet")
	return cmd
}

func newImportCommand() *cobra.Command {
	var (
		projectPath string
		name        string
	)

	cmd := &cobra.Command{
		Use:   "import <parts-file>",
		Short: "Import parts from CSV, Excel, or DXF into a project",
		Long: `Reads a part list from a CSV, Excel (.xlsx), or DXF file and writes a
project file. CSV and Excel columns are mapped by header names; DXF closed
shapes become parts sized to their bounding boxes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]

			var result importer.ImportResult
			switch strings.ToLower(filepath.Ext(src)) {
			case ".csv", ".txt":
				result = importer.ImportCSV(src)
			case ".xlsx", ".xls":
				result = importer.ImportExcel(src)
			case ".dxf":
				result = importer.ImportDXF(src)
			default:
				return fmt.Errorf("unsupported file type %q", filepath.Ext(src))
			}

			for _, w := range result.Warnings {
				cmd.PrintErrln("warning:", w)
			}
			for _, e := range result.Errors {
				cmd.PrintErrln("error:", e)
			}
			if len(result.Parts) == 0 {
				return fmt.Errorf("no parts imported from %s", src)
			}

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
			}
			proj := project.New(name)
			proj.Parts = result.Parts

			lib, err := loadDefaultStocks()
			if err == nil {
				proj.Stocks = lib
			}

			if projectPath == "" {
				projectPath = name + ".json"
			}
			if err := project.Save(projectPath, proj); err != nil {
				return err
			}
			cmd.Printf("Imported %d parts into %s\n", len(result.Parts), projectPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "project file to write (default <name>.json)")
	cmd.Flags().StringVar(&name, "name", "", "project name (default derived from the file name)")
	return cmd
}

func newEstimateCommand() *cobra.Command {
	var wastePercent float64

	cmd := &cobra.Command{
		Use:   "estimate <project-file>",
		Short: "Estimate sheet and edge-banding needs without packing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load project: %w", err)
			}
			if len(proj.Stocks) == 0 {
				return fmt.Errorf("project has no stock sheets")
			}

			est := model.EstimatePurchase(proj.Parts, proj.Stocks[0], proj.Options.Kerf, wastePercent)
			cmd.Printf("Stock: %s (%.0f x %.0f mm)\n", proj.Stocks[0].Label, proj.Stocks[0].Length, proj.Stocks[0].Width)
			cmd.Printf("Part area incl. kerf: %.0f mm²\n", est.TotalPartArea)
			cmd.Printf("Sheets needed: %.2f exact, %d minimum, %d with %.0f%% waste\n",
				est.SheetsNeededExact, est.SheetsNeededMin, est.SheetsWithWaste, wastePercent)

			banding := model.EstimateEdgeBanding(proj.Parts, wastePercent)
			if banding.EdgeCount > 0 {
				cmd.Printf("Edge banding: %.1f m (%.1f m with waste) across %d edges\n",
					banding.TotalLinearM, banding.TotalWithWasteM, banding.EdgeCount)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&wastePercent, "waste", 10, "waste allowance percentage")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("nestcut %s (%s)\n", version, commit)
		},
	}
}

func printSummary(cmd *cobra.Command, name string, result model.LayoutResult) {
	cmd.Printf("Project %s: %d sheets, %.1f%% efficiency\n", name, len(result.Sheets), result.TotalEfficiency())
	cmd.Printf("Cuts: %d (%.1f m)\n", result.Stats.CutCount, result.Stats.TotalCutLength/1000)
	for class, length := range result.Stats.BandingByClass {
		cmd.Printf("Edge banding %s: %.1f m\n", class, length/1000)
	}
	for _, label := range result.SheetExhausted {
		cmd.PrintErrf("note: sheet type %q ran out of stock\n", label)
	}
	for _, up := range result.Unplaced {
		cmd.PrintErrf("unplaced: %s (%.0f x %.0f mm): %s\n", up.Part.Label, up.Part.Length, up.Part.Width, up.Reason)
	}
}

func printInvoice(cmd *cobra.Command, inv costing.Invoice) {
	cmd.Println("Cost estimate:")
	for _, item := range inv.Items {
		cmd.Printf("  %-30s %8s %-6s @ %8s = %10s\n",
			item.Description, item.Quantity.String(), item.Unit,
			item.UnitPrice.StringFixed(2), item.Total.StringFixed(2))
	}
	cmd.Printf("  Total: %s\n", inv.Total.StringFixed(2))
}

func loadDefaultStocks() ([]model.StockSheet, error) {
	path, err := project.DefaultLibraryPath()
	if err != nil {
		return nil, err
	}
	lib, err := project.LoadLibrary(path)
	if err != nil {
		return nil, err
	}
	return lib.Stocks, nil
}
