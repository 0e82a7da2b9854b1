package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Guy-Maoz/insights-deck-ai/internal/brand"
	"github.com/Guy-Maoz/insights-deck-ai/internal/dashboard"
	"github.com/Guy-Maoz/insights-deck-ai/internal/insight"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive <workbook.xlsx>",
	Short: "Start an interactive dashboard session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger("")
		gen, err := newGenerator(log)
		if err != nil {
			return err
		}

		fmt.Println("\nWelcome to the Interactive Dashboard Generator!")
		fmt.Println("\nLoading your sales data...")

		session, err := newSession(args[0], gen, log)
		if err != nil {
			return err
		}
		defer session.Close()

		fmt.Println("\nData Summary:")
		fmt.Println(session.DataSummary())

		ov := session.Overview()
		fmt.Printf("\nTotal Brands: %d\n", ov.BrandCount)
		fmt.Printf("Top %d Brands by Revenue:\n", len(ov.TopBrands))
		for _, b := range ov.TopBrands {
			fmt.Printf("- %s\n", b.Brand)
		}

		repl := &replSession{session: session, in: bufio.NewScanner(os.Stdin), cmd: cmd}
		repl.printMenu()
		repl.run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

type replSession struct {
	session *insight.Session
	in      *bufio.Scanner
	cmd     *cobra.Command
}

func (r *replSession) printMenu() {
	fmt.Println("\nAnalysis Options:")
	fmt.Println("1. Market Overview (no specific brand)")
	fmt.Println("2. Brand Analysis (your brand)")
	fmt.Println("3. Competitive Analysis (your brand + competitors)")
	fmt.Println("4. Exit")
	fmt.Println("\nYou can also type:")
	fmt.Println("  show columns                      - display available data columns")
	fmt.Println("  create dashboard <instructions>   - generate a custom dashboard")
	fmt.Println("  help                              - show this message")
	fmt.Println("  exit                              - end the session")
}

func (r *replSession) run() {
	for {
		line, ok := r.prompt("\nWhat would you like to analyze? ")
		if !ok {
			fmt.Println("\nEnding session...")
			return
		}
		cleaned := strings.ToLower(strings.Trim(line, `'" `))

		switch {
		case cleaned == "4" || cleaned == "exit" || cleaned == "quit":
			fmt.Println("Ending session...")
			return
		case cleaned == "help" || cleaned == "?":
			r.printMenu()
		case cleaned == "show columns" || cleaned == "columns":
			fmt.Println("\nAvailable columns:")
			for _, col := range r.session.Columns() {
				fmt.Printf("- %s\n", col)
			}
		case cleaned == "1" || cleaned == "market" || cleaned == "overview":
			fmt.Println("\nGenerating market overview dashboard...")
			r.generate(dashboard.Request{Mode: dashboard.ModeOverview})
		case cleaned == "2" || cleaned == "brand":
			r.brandAnalysis()
		case cleaned == "3" || cleaned == "competitive":
			r.competitiveAnalysis()
		case strings.HasPrefix(cleaned, "create dashboard"):
			instructions := strings.TrimSpace(line[strings.Index(strings.ToLower(line), "create dashboard")+len("create dashboard"):])
			if instructions == "" {
				fmt.Println("Please provide instructions for the dashboard.")
				fmt.Println("Example: create dashboard Show me a bar chart of top 10 categories by Revenue")
				continue
			}
			fmt.Println("\nGenerating dashboard...")
			r.generate(dashboard.Request{Mode: dashboard.ModeCustom, Instructions: instructions})
		default:
			fmt.Println("\nUnrecognized option. Type 'help' for available commands.")
		}
	}
}

func (r *replSession) brandAnalysis() {
	name, ok := r.askBrand("\nEnter your brand name: ")
	if !ok {
		return
	}
	fmt.Printf("\nGenerating analysis for %s...\n", name)
	r.generate(dashboard.Request{Mode: dashboard.ModeBrand, Brand: name})
}

func (r *replSession) competitiveAnalysis() {
	name, ok := r.askBrand("\nEnter your brand name: ")
	if !ok {
		return
	}
	line, ok := r.prompt("\nEnter competitor brands (comma-separated) or press Enter for top competitors: ")
	if !ok {
		return
	}
	var competitors []string
	if line != "" {
		queries := strings.Split(line, ",")
		competitors = r.session.ResolveAll(queries)
		if len(competitors) == 0 {
			fmt.Printf("None of the competitors matched known brands. Available brands: %s\n",
				strings.Join(r.session.Catalog, ", "))
			return
		}
	}
	fmt.Printf("\nGenerating competitive analysis for %s...\n", name)
	r.generate(dashboard.Request{Mode: dashboard.ModeCompetitive, Brand: name, Competitors: competitors})
}

// askBrand reads a brand name and resolves it against the catalog,
// walking the user through a pick list when the match is fuzzy.
func (r *replSession) askBrand(promptText string) (string, bool) {
	query, ok := r.prompt(promptText)
	if !ok {
		return "", false
	}
	if query == "" {
		fmt.Println("Please provide a brand name.")
		return "", false
	}

	res := r.session.Resolve(query)
	switch res.Kind {
	case brand.Resolved:
		return res.Brand, true
	case brand.Ambiguous:
		return r.pickCandidate(query, res.Candidates)
	default:
		fmt.Printf("Brand %q not found. Available brands: %s\n", query, strings.Join(res.Catalog, ", "))
		return "", false
	}
}

// pickCandidate shows the fuzzy candidates as a numbered list; 0 keeps the
// name exactly as typed.
func (r *replSession) pickCandidate(query string, candidates []string) (string, bool) {
	fmt.Printf("\nDid you mean one of these brands?\n")
	for i, c := range candidates {
		fmt.Printf("%d. %s\n", i+1, c)
	}
	fmt.Printf("0. Use %q as typed\n", query)

	line, ok := r.prompt("Select an option: ")
	if !ok {
		return "", false
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 0 || n > len(candidates) {
		fmt.Println("Invalid selection.")
		return "", false
	}
	if n == 0 {
		return query, true
	}
	return candidates[n-1], true
}

func (r *replSession) generate(req dashboard.Request) {
	path, err := r.session.GenerateDashboard(r.cmd.Context(), req)
	if err != nil {
		fmt.Printf("Error creating dashboard: %v\n", err)
		return
	}
	fmt.Printf("Dashboard created successfully at: %s\n", path)
}

func (r *replSession) prompt(text string) (string, bool) {
	fmt.Print(text)
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}
