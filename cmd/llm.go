package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM calls made while generating questions",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM calls recorded.")
			return nil
		}

		t := newTable(out,
			column{title: "ID", width: 5, right: true},
			column{title: "When", width: 19},
			column{title: "Purpose", width: 14},
			column{title: "Model", width: 28},
			column{title: "In", width: 6, right: true},
			column{title: "Out", width: 6, right: true},
			column{title: "Ms", width: 7, right: true},
			column{title: "OK", width: 2},
		)
		t.header()
		for _, e := range events {
			t.row(e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Purpose, e.Model,
				e.InputTokens, e.OutputTokens, e.LatencyMs, mark(e.Success))
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and raw reply of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get llm event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("llm event %d not found", id)
		}
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func printLLMEvent(out io.Writer, e *store.LLMEventRecord) {
	fields := [][2]string{
		{"ID", strconv.Itoa(e.ID)},
		{"Time", e.Timestamp.Local().Format("2006-01-02 15:04:05")},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Success", strconv.FormatBool(e.Success)},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(out, "%-10s %s\n", f[0]+":", f[1])
	}

	section := func(title, body string) {
		rule := strings.Repeat("─", 60)
		fmt.Fprintf(out, "\n%s\n%s\n%s\n", rule, title, rule)
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintln(out, body)
	}
	section("REQUEST", e.RequestBody)
	section("RESPONSE", e.ResponseBody)
}

// usageReport is the machine-readable form of `llm stats`.
type usageReport struct {
	Purposes       []store.PurposeUsage `json:"purposes"`
	Models         []modelCost          `json:"models"`
	TotalCostUSD   float64              `json:"total_cost_usd"`
	UnpricedModels []string             `json:"unpriced_models,omitempty"`
}

type modelCost struct {
	store.ModelUsage
	CostUSD *float64 `json:"cost_usd"`
}

func buildUsageReport(purposes []store.PurposeUsage, models []store.ModelUsage) usageReport {
	r := usageReport{Purposes: purposes}
	for _, mu := range models {
		mc := modelCost{ModelUsage: mu}
		if price := llm.LookupCost(mu.Model); price != nil {
			c := price.Cost(mu.InputTokens, mu.OutputTokens)
			mc.CostUSD = &c
			r.TotalCostUSD += c
		} else {
			r.UnpricedModels = append(r.UnpricedModels, mu.Model)
		}
		r.Models = append(r.Models, mc)
	}
	return r
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost of question generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		purposes, err := st.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		models, err := st.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		report := buildUsageReport(purposes, models)

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		if len(purposes) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		printUsageReport(out, report)
		return nil
	},
}

func printUsageReport(out io.Writer, r usageReport) {
	fmt.Fprintln(out, "Usage by purpose")
	t := newTable(out,
		column{title: "Purpose", width: 16},
		column{title: "Calls", width: 6, right: true},
		column{title: "Input", width: 10, right: true},
		column{title: "Output", width: 10, right: true},
		column{title: "Avg Ms", width: 8, right: true},
	)
	t.header()
	var calls, in, outTok int
	for _, p := range r.Purposes {
		t.row(p.Purpose, p.Calls, p.InputTokens, p.OutputTokens, p.AvgLatencyMs)
		calls += p.Calls
		in += p.InputTokens
		outTok += p.OutputTokens
	}
	t.rule()
	t.row("TOTAL", calls, in, outTok, "")

	if len(r.Models) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Estimated cost (USD)")
	t = newTable(out,
		column{title: "Model", width: 32},
		column{title: "Calls", width: 6, right: true},
		column{title: "Input", width: 10, right: true},
		column{title: "Output", width: 10, right: true},
		column{title: "Cost", width: 10, right: true},
	)
	t.header()
	for _, m := range r.Models {
		cost := "?"
		if m.CostUSD != nil {
			cost = formatCost(*m.CostUSD)
		}
		t.row(m.Model, m.Calls, m.InputTokens, m.OutputTokens, cost)
	}
	t.rule()
	label := "TOTAL"
	if len(r.UnpricedModels) > 0 {
		label = "TOTAL (partial)"
	}
	t.row(label, "", "", "", formatCost(r.TotalCostUSD))
	if len(r.UnpricedModels) > 0 {
		fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(r.UnpricedModels, ", "))
	}
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose (e.g. "+llm.PurposeTriviaBatch+")")
	llmStatsCmd.Flags().Bool("json", false, "Print the report as JSON")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
