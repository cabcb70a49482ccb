package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"brainstormer-hq/distill/pkg/cli"
	"brainstormer-hq/distill/pkg/client"
	"brainstormer-hq/distill/pkg/config"
	"brainstormer-hq/distill/pkg/distill"
	"brainstormer-hq/distill/pkg/runninglist"

	"github.com/spf13/cobra"
)

var planFlags struct {
	file      string
	serverURL string
	offline   bool
	strict    bool
	expand    bool
	addToList bool
	format    string
}

var planCmd = &cobra.Command{
	Use:   "plan [text...]",
	Short: "Distill text into an action plan",
	Long: `Send a brain dump to a distill server and print the resulting plan.

Text comes from the arguments, from --file, or from stdin. When the server
cannot produce a plan an offline keyword-based plan is printed instead,
unless --strict is set.

Examples:
  # From arguments
  distill plan "finish report, gym monday, call mom"

  # From a file, as Markdown
  distill plan --file notes.txt --format markdown

  # From stdin against a remote server
  cat notes.txt | distill plan --server https://distill.example.com

  # Without a server, with suggested follow-ups
  distill plan --offline --expand "study for the exam"`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planFlags.file, "file", "f", "", "read text from file (- for stdin)")
	planCmd.Flags().StringVarP(&planFlags.serverURL, "server", "s", "", "distill server URL (default: http://<server.listen_address>)")
	planCmd.Flags().BoolVar(&planFlags.offline, "offline", false, "skip the server and use the offline generator")
	planCmd.Flags().BoolVar(&planFlags.strict, "strict", false, "fail instead of falling back to the offline generator")
	planCmd.Flags().BoolVar(&planFlags.expand, "expand", false, "append suggested follow-up items to every section")
	planCmd.Flags().BoolVar(&planFlags.addToList, "add-to-list", false, "append every item to the running list")
	planCmd.Flags().StringVarP(&planFlags.format, "format", "o", "text", "output format (text, json, markdown, html)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	setupClientLogging(cmd.ErrOrStderr())

	format, err := cli.ParseOutputFormat(planFlags.format)
	if err != nil {
		return err
	}
	if planFlags.offline && planFlags.strict {
		return cli.NewConfigError("plan", "--offline and --strict cannot be combined")
	}

	text, err := readPlanInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	progress := cli.NewProgressReporter(cmd.ErrOrStderr())

	var plan distill.Plan
	switch {
	case planFlags.offline:
		plan = client.MockPlan(text)

	default:
		baseURL := planFlags.serverURL
		if baseURL == "" {
			baseURL = "http://" + cfg.Server.ListenAddress
		}
		c, err := client.New(client.Config{BaseURL: baseURL, Timeout: cfg.Server.WriteTimeout})
		if err != nil {
			return cli.NewConfigError("server", err.Error())
		}

		progress.Start("Distilling")
		if planFlags.strict {
			plan, err = c.Distill(cmd.Context(), text)
			if err != nil {
				progress.Error(err)
				return cli.NewCommandError("plan", err)
			}
		} else {
			var offline bool
			plan, offline = c.Generate(cmd.Context(), text)
			if offline {
				fmt.Fprintln(cmd.ErrOrStderr(), "! Server unavailable, showing an offline plan")
			}
		}
		progress.Finish(fmt.Sprintf("%d sections", len(plan.Sections)))
	}

	if planFlags.expand {
		for i := range plan.Sections {
			plan.Sections[i].Items = append(plan.Sections[i].Items, client.ExpandSection(plan.Sections[i])...)
		}
	}

	if planFlags.addToList {
		if err := addPlanToList(cmd, cfg.RunningList, plan); err != nil {
			return err
		}
	}

	return cli.NewFormatter(format).FormatPlan(cmd.OutOrStdout(), plan)
}

// readPlanInput returns the text to distill: args joined by spaces, or the
// contents of --file, or stdin.
func readPlanInput(stdin io.Reader, args []string) (string, error) {
	var text string
	switch {
	case len(args) > 0 && planFlags.file != "":
		return "", cli.NewConfigError("plan", "pass text as arguments or --file, not both")
	case len(args) > 0:
		text = strings.Join(args, " ")
	case planFlags.file != "" && planFlags.file != "-":
		data, err := os.ReadFile(planFlags.file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(data)
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", cli.NewConfigError("plan", "no text to distill")
	}
	return text, nil
}

func addPlanToList(cmd *cobra.Command, cfg config.RunningListConfig, plan distill.Plan) error {
	store, err := runninglist.Open(cfg)
	if err != nil {
		return cli.NewCommandError("plan", err)
	}
	defer store.Close()

	list := runninglist.NewList(cmd.Context(), store)
	added := 0
	for _, section := range plan.Sections {
		for _, item := range section.Items {
			if _, err := list.Add(cmd.Context(), item.Text); err != nil {
				return cli.NewCommandError("plan", err)
			}
			added++
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Added %d items to the running list\n", added)
	return nil
}
