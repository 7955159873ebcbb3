package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x/multisig"
)

func cmdPropose(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a new proposal for a group. The key must belong to one of the current
owners. The action is stored verbatim and handed out only once the proposal
is executed. The ID of the new proposal is printed.
`)
		fl.PrintDefaults()
	}
	var (
		ef             = registerEnvFlags(fl)
		keyPathFl      = keyFlag(fl)
		groupFl        = fl.Int64("group", 0, "ID of the group.")
		targetFl       = flAddress(fl, "target", "", "Address of the program or resource the action is invoked against.")
		participantsFl = flParticipants(fl, "participants", "Comma separated accounts touched by the action, each as <address>[:sw] where s marks a signer and w a writable account.")
		payloadFl      = flHex(fl, "payload", "", "Hex encoded, opaque action payload.")
	)
	fl.Parse(args)

	msg := &multisig.ProposeMsg{
		Metadata: &quorum.Metadata{Schema: 1},
		GroupID:  sequenceID(*groupFl),
		Action: &multisig.Action{
			Target:       *targetFl,
			Participants: *participantsFl,
			Payload:      *payloadFl,
		},
	}
	return runTx(output, ef, *keyPathFl, msg)
}

func cmdApprove(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Approve a proposal as the owner of the key.
`)
		fl.PrintDefaults()
	}
	var (
		ef         = registerEnvFlags(fl)
		keyPathFl  = keyFlag(fl)
		groupFl    = fl.Int64("group", 0, "ID of the group.")
		proposalFl = fl.Int64("proposal", 0, "ID of the proposal.")
	)
	fl.Parse(args)

	msg := &multisig.ApproveMsg{
		Metadata:   &quorum.Metadata{Schema: 1},
		GroupID:    sequenceID(*groupFl),
		ProposalID: sequenceID(*proposalFl),
	}
	return runTx(output, ef, *keyPathFl, msg)
}

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Execute a proposal that collected enough approvals. Anyone can execute a
proposal, use an empty -key to run without a signer. The action descriptor
is printed before the transaction result.
`)
		fl.PrintDefaults()
	}
	var (
		ef         = registerEnvFlags(fl)
		keyPathFl  = fl.String("key", env("QUORUMCLI_PRIV_KEY", ""), "Optional path to the private key file of the caller.")
		groupFl    = fl.Int64("group", 0, "ID of the group.")
		proposalFl = fl.Int64("proposal", 0, "ID of the proposal.")
	)
	fl.Parse(args)

	msg := &multisig.ExecuteMsg{
		Metadata:   &quorum.Metadata{Schema: 1},
		GroupID:    sequenceID(*groupFl),
		ProposalID: sequenceID(*proposalFl),
	}
	return runTx(output, ef, *keyPathFl, msg)
}

func cmdViewProposal(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the current state of a proposal together with its status.
`)
		fl.PrintDefaults()
	}
	var (
		ef         = registerEnvFlags(fl)
		groupFl    = fl.Int64("group", 0, "ID of the group.")
		proposalFl = fl.Int64("proposal", 0, "ID of the proposal.")
	)
	fl.Parse(args)

	return view(ef, func(db quorum.ReadOnlyKVStore) error {
		ctrl := multisig.NewController(nil)
		g, err := ctrl.Group(db, sequenceID(*groupFl))
		if err != nil {
			return fmt.Errorf("cannot load group: %s", err)
		}
		p, err := ctrl.Proposal(db, sequenceID(*groupFl), sequenceID(*proposalFl))
		if err != nil {
			return fmt.Errorf("cannot load proposal: %s", err)
		}
		return writeJSON(output, newProposalView(*proposalFl, *groupFl, p, g))
	})
}

func cmdListProposals(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print all proposals of a group, ordered by their ID.
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
		keys, proposals, err := multisig.NewProposalBucket().ByGroup(db, sequenceID(*groupFl))
		if err != nil {
			return fmt.Errorf("cannot list proposals: %s", err)
		}
		views := make([]proposalView, 0, len(proposals))
		for i, p := range proposals {
			id, err := orm.DecodeSequence(keys[i])
			if err != nil {
				return err
			}
			views = append(views, newProposalView(id, *groupFl, p, g))
		}
		return writeJSON(output, views)
	})
}

type proposalView struct {
	ID        int64                   `json:"id"`
	Group     int64                   `json:"group"`
	Proposer  quorum.Address          `json:"proposer"`
	Action    *multisig.Action        `json:"action"`
	Approvals []bool                  `json:"approvals"`
	Executed  bool                    `json:"executed"`
	Epoch     uint64                  `json:"epoch"`
	Status    multisig.ProposalStatus `json:"status"`
}

func newProposalView(id, group int64, p *multisig.Proposal, g *multisig.Group) proposalView {
	return proposalView{
		ID:        id,
		Group:     group,
		Proposer:  p.Proposer,
		Action:    p.Action,
		Approvals: p.Approvals,
		Executed:  p.Executed,
		Epoch:     p.Epoch,
		Status:    p.Status(g),
	}
}
