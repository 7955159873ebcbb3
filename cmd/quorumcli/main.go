package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/quorum"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and the command line arguments
// without the program and the command name. It is the responsibility of the
// command function to parse the arguments. Commands operate on the state
// stored in the -home directory and run one transaction at a time.
//
//   $ quorumcli keygen -key alice.key
//   $ quorumcli create-group -owners $(quorumcli keyaddr -key alice.key) -threshold 1
//   $ quorumcli propose -key alice.key -group 1 -target <address>
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"approve":        cmdApprove,
	"create-group":   cmdCreateGroup,
	"execute":        cmdExecute,
	"init":           cmdInit,
	"keyaddr":        cmdKeyaddr,
	"keygen":         cmdKeygen,
	"list-proposals": cmdListProposals,
	"propose":        cmdPropose,
	"reconfigure":    cmdReconfigure,
	"version":        cmdVersion,
	"view-group":     cmdViewGroup,
	"view-proposal":  cmdViewProposal,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the quorum threshold authorization engine.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, quorum.Version())
	return nil
}
