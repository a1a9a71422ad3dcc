package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/bitsane/constants"
	"github.com/lukehollenback/bitsane/exchange"
	"github.com/rs/zerolog"
)

// Exit statuses returned by Run.
const (
	ExitOK        = 0
	ExitAPI       = 1
	ExitUsage     = 2
	ExitTransport = 3
	ExitDecode    = 4
)

//
// Env carries everything a command needs to run. Authenticated should be false when no API
// credentials were configured so that private commands can refuse to run before touching the
// network.
//
type Env struct {
	Client        exchange.Client
	Authenticated bool
	Out           io.Writer
	Err           io.Writer
	Logger        zerolog.Logger
}

//
// usageError marks a problem with the command line itself rather than with the exchange.
//
type usageError struct {
	msg string
}

func (o *usageError) Error() string {
	return o.msg
}

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

//
// Run executes the sub-command named by args[0] and returns the process exit status. The command's
// result is written to env.Out as indented JSON; everything else goes to env.Err.
//
func Run(ctx context.Context, args []string, env Env) int {
	if len(args) == 0 {
		printUsage(env.Err)
		return ExitUsage
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "-help" || name == "--help" {
		printUsage(env.Out)
		return ExitOK
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(env.Err, "%s unknown command %q\n\n", aurora.Bold(aurora.Red("error:")), name)
		printUsage(env.Err)
		return ExitUsage
	}

	//
	// Parse the command's own flags.
	//
	fs := flag.NewFlagSet(constants.AppName+" "+name, flag.ContinueOnError)
	fs.SetOutput(env.Err)

	run := cmd.setup(fs)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}

		return ExitUsage
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(env.Err, "%s unexpected arguments %v\n", aurora.Bold(aurora.Red("error:")), fs.Args())
		return ExitUsage
	}

	if cmd.private && !env.Authenticated {
		fmt.Fprintf(
			env.Err,
			"%s %s is a private command and needs BITSANE_API_KEY and BITSANE_API_SECRET\n",
			aurora.Bold(aurora.Red("error:")), name,
		)
		return ExitUsage
	}

	//
	// Make the call.
	//
	env.Logger.Debug().Str("command", name).Bool("private", cmd.private).Msg("running command")

	resp, err := run(ctx, env.Client, visited(fs))
	if err != nil {
		return report(env.Err, err)
	}

	return printResult(env.Out, env.Err, resp.Body())
}

//
// visited returns the set of flags that were explicitly supplied on the command line. Optional
// parameters are only forwarded when they appear here.
//
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)

	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	return set
}

func printResult(out io.Writer, errOut io.Writer, body []byte) int {
	if len(body) == 0 {
		fmt.Fprintln(out, "null")
		return ExitOK
	}

	var buf bytes.Buffer

	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return report(errOut, &exchange.DecodeError{Err: err})
	}

	buf.WriteByte('\n')

	_, _ = buf.WriteTo(out)

	return ExitOK
}

//
// report prints the error in a form that makes its class obvious and maps the class to an exit
// status.
//
func report(w io.Writer, err error) int {
	var (
		usageErr     *usageError
		requestErr   *exchange.RequestError
		apiErr       exchange.APIError
		httpErr      *exchange.HTTPError
		transportErr *exchange.TransportError
		decodeErr    *exchange.DecodeError
	)

	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(w, "%s %s\n", aurora.Bold(aurora.Red("error:")), usageErr)
		return ExitUsage

	case errors.As(err, &requestErr):
		fmt.Fprintf(w, "%s %s\n", aurora.Bold(aurora.Red("config error:")), err)
		return ExitUsage

	case errors.As(err, &apiErr):
		fmt.Fprintf(
			w, "%s %s (code %s)\n",
			aurora.Bold(aurora.Red("api error:")), apiErr.Message(), aurora.Yellow(strconv.Itoa(apiErr.Code())),
		)
		return ExitAPI

	case errors.As(err, &httpErr), errors.As(err, &transportErr):
		fmt.Fprintf(w, "%s %s\n", aurora.Bold(aurora.Red("transport error:")), err)
		return ExitTransport

	case errors.As(err, &decodeErr):
		fmt.Fprintf(w, "%s %s\n", aurora.Bold(aurora.Red("decode error:")), err)
		return ExitDecode
	}

	fmt.Fprintf(w, "%s %s\n", aurora.Bold(aurora.Red("error:")), err)

	return ExitAPI
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [flags]\n\nCommands:\n", constants.AppName)

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]

		tag := ""
		if cmd.private {
			tag = aurora.Yellow(" [private]").String()
		}

		fmt.Fprintf(w, "  %-18s %s%s\n", name, cmd.usage, tag)
	}

	fmt.Fprintf(w, "\nRun '%s <command> -h' for the flags of a command.\n", constants.AppName)
}
