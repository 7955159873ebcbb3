package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x/multisig"
)

func cmdCreateGroup(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a new group of owners. Anyone can create a group, no key is required.
The ID of the new group is printed.
`)
		fl.PrintDefaults()
	}
	var (
		ef          = registerEnvFlags(fl)
		ownersFl    = flAddresses(fl, "owners", "Comma separated, ordered list of owner addresses.")
		thresholdFl = fl.Uint("threshold", 1, "Number of approvals required to execute a proposal.")
	)
	fl.Parse(args)

	msg := &multisig.CreateGroupMsg{
		Metadata:  &quorum.Metadata{Schema: 1},
		Owners:    *ownersFl,
		Threshold: uint32(*thresholdFl),
	}
	return runTx(output, ef, "", msg)
}

func cmdReconfigure(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Replace owners and threshold of a group. The key must belong to one of the
current owners. All pending proposals of the group become stale.
`)
		fl.PrintDefaults()
	}
	var (
		ef          = registerEnvFlags(fl)
		keyPathFl   = keyFlag(fl)
		groupFl     = fl.Int64("group", 0, "ID of the group.")
		ownersFl    = flAddresses(fl, "owners", "Comma separated, ordered list of the new owner addresses.")
		thresholdFl = fl.Uint("threshold", 1, "New number of approvals required to execute a proposal.")
	)
	fl.Parse(args)

	msg := &multisig.ReconfigureMsg{
		Metadata:  &quorum.Metadata{Schema: 1},
		GroupID:   sequenceID(*groupFl),
		Owners:    *ownersFl,
		Threshold: uint32(*thresholdFl),
	}
	return runTx(output, ef, *keyPathFl, msg)
}

func cmdViewGroup(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the current state of a group.
`)
		fl.PrintDefaults()
	}
	var (
		ef      = registerEnvFlags(fl)
		groupFl = fl.Int64("group", 0, "ID of the group.")
	)
	fl.Parse(args)

	return view(ef, func(db quorum.ReadOnlyKVStore) error {
		g, err := multisig.NewController(nil).Group(db, sequenceID(*groupFl))
		if err != nil {
			return fmt.Errorf("cannot load group: %s", err)
		}
		return writeJSON(output, groupView{
			ID:        *groupFl,
			Owners:    g.Owners,
			Threshold: g.Threshold,
			Epoch:     g.Epoch,
		})
	})
}

type groupView struct {
	ID        int64            `json:"id"`
	Owners    []quorum.Address `json:"owners"`
	Threshold uint32           `json:"threshold"`
	Epoch     uint64           `json:"epoch"`
}
