/*
Package cli provides helpers shared by the ponyini commands.

Output Formatting:

Commands that print structured results accept --format text|json|yaml:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, result); err != nil {
		return err
	}

YAML output is produced from the JSON encoding, so both formats use the same
keys.

Errors and Exit Codes:

Commands wrap failures in CommandError and configuration problems in
ConfigError. ExitCode maps them to the process exit status: 2 for
configuration errors, 1 for everything else including ErrProblemsFound.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
