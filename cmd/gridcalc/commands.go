package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/output"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/store"
	"go.alis.build/alog"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <doc> <formula>",
		Short: "Evaluate a formula against a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), session.Evaluate(args[1]).String())
			return err
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <doc> [range]",
		Short: "Print the evaluated cells of a range as JSON",
		Long:  "Print the evaluated cells of a range as JSON. Without a range the used area is shown.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			sel, ok := session.Store().Bounds()
			if len(args) == 2 {
				if sel, err = address.ParseRange(args[1]); err != nil {
					return err
				}
			} else if !ok {
				sel = models.SingleCell(0, 0)
			}
			view := output.BuildView(session.Store(), sel)
			data, err := output.ViewToJSON(&view, cfg.Pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), data)
		},
	}
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <doc> <label> <value>",
		Short: "Set the raw text of a cell and print its displayed value",
		Long: `Set the raw text of a cell and print its displayed value.
A value starting with "=" is a formula. An empty value clears the cell but keeps its style.
The document is created when it does not exist.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := openSession(ctx, args[0], true)
			if err != nil {
				return err
			}
			addr, err := address.Parse(args[1])
			if err != nil {
				return err
			}
			if err := session.SetCell(addr.Row, addr.Col, args[2]); err != nil {
				return err
			}
			if err := session.SetActiveCell(addr.Row, addr.Col); err != nil {
				return err
			}
			if err := saveSession(ctx, args[0], session); err != nil {
				return err
			}
			for _, label := range session.Dependents(addr.Row, addr.Col) {
				alog.Debugf(ctx, "%s depends on %s", label, args[1])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), session.Display(addr.Row, addr.Col))
			return err
		},
	}
}

func newStyleCmd() *cobra.Command {
	var (
		bold, italic, underline, reset bool
		fontSize, step                 int
		color, background, align       string
		borders                        []string
	)

	cmd := &cobra.Command{
		Use:   "style <doc> <range>",
		Short: "Change the formatting of a cell or range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var mutators []store.StyleMutator
			if reset {
				mutators = append(mutators, store.ClearStyle())
			}
			if bold {
				mutators = append(mutators, store.ToggleBold())
			}
			if italic {
				mutators = append(mutators, store.ToggleItalic())
			}
			if underline {
				mutators = append(mutators, store.ToggleUnderline())
			}
			if fontSize != 0 {
				mutators = append(mutators, store.SetFontSize(fontSize))
			}
			if step != 0 {
				mutators = append(mutators, store.StepFontSize(step))
			}
			if color != "" {
				mutators = append(mutators, store.SetFontColor(color))
			}
			if background != "" {
				mutators = append(mutators, store.SetBackgroundColor(background))
			}
			if align != "" {
				a, err := parseAlignment(align)
				if err != nil {
					return err
				}
				mutators = append(mutators, store.Align(a))
			}
			for _, name := range borders {
				edge, err := parseEdge(name)
				if err != nil {
					return err
				}
				mutators = append(mutators, store.ToggleBorder(edge))
			}
			if len(mutators) == 0 {
				return fmt.Errorf("no style change requested")
			}

			ctx := cmd.Context()
			session, err := openSession(ctx, args[0], true)
			if err != nil {
				return err
			}
			sel, err := address.ParseRange(args[1])
			if err != nil {
				return err
			}
			if err := session.Select(sel); err != nil {
				return err
			}
			if err := session.FormatSelection(store.Chain(mutators...)); err != nil {
				return err
			}
			return saveSession(ctx, args[0], session)
		},
	}

	cmd.Flags().BoolVar(&bold, "bold", false, "Toggle bold")
	cmd.Flags().BoolVar(&italic, "italic", false, "Toggle italic")
	cmd.Flags().BoolVar(&underline, "underline", false, "Toggle underline")
	cmd.Flags().BoolVar(&reset, "reset", false, "Remove all formatting before applying other changes")
	cmd.Flags().IntVar(&fontSize, "font-size", 0, "Font size in points (8-72)")
	cmd.Flags().IntVar(&step, "step", 0, "Grow (positive) or shrink (negative) the font by ladder steps")
	cmd.Flags().StringVar(&color, "color", "", "Font color, e.g. #FF0000")
	cmd.Flags().StringVar(&background, "background", "", "Fill color, e.g. #FFFF00")
	cmd.Flags().StringVar(&align, "align", "", "Horizontal alignment: left, center, right")
	cmd.Flags().StringSliceVar(&borders, "border", nil, "Toggle border edges: top, right, bottom, left")
	return cmd
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <doc> <range>",
		Short: "Delete the cells of a range, including their formatting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := openSession(ctx, args[0], false)
			if err != nil {
				return err
			}
			sel, err := address.ParseRange(args[1])
			if err != nil {
				return err
			}
			if err := session.DeleteRegion(sel); err != nil {
				return err
			}
			return saveSession(ctx, args[0], session)
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <doc> <range>",
		Short: "Print count, sum, average, min and max of a range as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			sel, err := address.ParseRange(args[1])
			if err != nil {
				return err
			}
			if err := session.Select(sel); err != nil {
				return err
			}
			summary := session.Stats()
			data, err := output.ToJSON(&summary, cfg.Pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), data)
		},
	}
}

// refsView lists the cells a formula reads and the formulas reading a cell.
type refsView struct {
	Cell       string   `json:"cell"`
	Precedents []string `json:"precedents"`
	Dependents []string `json:"dependents"`
}

func newRefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refs <doc> <label>",
		Short: "Print the precedents and dependents of a cell as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			addr, err := address.Parse(args[1])
			if err != nil {
				return err
			}
			view := refsView{
				Cell:       address.Label(addr),
				Precedents: session.Precedents(addr.Row, addr.Col),
				Dependents: session.Dependents(addr.Row, addr.Col),
			}
			if view.Precedents == nil {
				view.Precedents = []string{}
			}
			if view.Dependents == nil {
				view.Dependents = []string{}
			}
			data, err := output.ToJSON(&view, cfg.Pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), data)
		},
	}
}

func newImportCmd() *cobra.Command {
	var outputPath, sheet string

	cmd := &cobra.Command{
		Use:   "import <input.xlsx>",
		Short: "Import an xlsx workbook",
		Long: `Import an xlsx workbook. With --output the selected sheet (default: the first)
is written as a document; otherwise every sheet is printed as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := cfg.ImportOptions()
			if sheet != "" {
				opts.Sheet = sheet
			}
			wb, err := gridcalc.Import(ctx, args[0], opts)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			if outputPath == "" {
				data, err := output.WorkbookToJSON(wb, cfg.Pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				return writeJSON(cmd.OutOrStdout(), data)
			}

			if len(wb.SheetNames) == 0 {
				return fmt.Errorf("%w: workbook has no sheets", gridcalc.ErrSheetNotFound)
			}
			name := wb.SheetNames[0]
			if err := gridcalc.Save(ctx, outputPath, wb.Sheets[name], cfg.Pretty); err != nil {
				return err
			}
			alog.Infof(ctx, "imported sheet %q into %s", name, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Document path (default: print the workbook to stdout)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to import (default: all sheets)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var outputPath, sheet string

	cmd := &cobra.Command{
		Use:   "export <doc>",
		Short: "Export a document as an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			state, err := gridcalc.Load(ctx, args[0])
			if err != nil {
				return err
			}
			if err := gridcalc.Export(ctx, outputPath, sheet, state); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			alog.Infof(ctx, "exported %s to %s", args[0], outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output xlsx path")
	cmd.Flags().StringVar(&sheet, "sheet", "Sheet1", "Worksheet name")
	cmd.MarkFlagRequired("output")
	return cmd
}

func parseAlignment(name string) (models.Alignment, error) {
	switch a := models.Alignment(strings.ToLower(name)); a {
	case models.AlignLeft, models.AlignCenter, models.AlignRight:
		return a, nil
	}
	return "", fmt.Errorf("invalid alignment: %s (must be left, center, or right)", name)
}

func parseEdge(name string) (store.Edge, error) {
	switch e := store.Edge(strings.ToLower(strings.TrimSpace(name))); e {
	case store.EdgeTop, store.EdgeRight, store.EdgeBottom, store.EdgeLeft:
		return e, nil
	}
	return "", fmt.Errorf("invalid border edge: %s (must be top, right, bottom, or left)", name)
}
