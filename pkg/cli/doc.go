/*
Package cli provides helpers shared by the distill command.

Output Formatting:

Plans and running lists are printed as text, JSON, Markdown or HTML:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatPlan(os.Stdout, plan); err != nil {
		return err
	}

Progress Reporting:

Status lines go to stderr so formatted output can be piped:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start("Distilling")
	progress.Finish("3 sections")

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Exit Codes:

ExitCode maps command errors to 0, 1 (failure) or 2 (configuration).
*/
package cli
