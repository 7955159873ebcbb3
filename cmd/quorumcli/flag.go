package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *quorum.Address {
	var a quorum.Address
	if defaultVal != "" {
		var err error
		a, err = quorum.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q quorum.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flAddresses returns a comma separated list of addresses flag.
func flAddresses(fl *flag.FlagSet, name, usage string) *[]quorum.Address {
	var addrs addressList
	fl.Var(&addrs, name, usage)
	return (*[]quorum.Address)(&addrs)
}

type addressList []quorum.Address

func (l addressList) String() string {
	chunks := make([]string, len(l))
	for i, a := range l {
		chunks[i] = a.String()
	}
	return strings.Join(chunks, ",")
}

func (l *addressList) Set(raw string) error {
	var addrs []quorum.Address
	for _, enc := range strings.Split(raw, ",") {
		a, err := quorum.ParseAddress(strings.TrimSpace(enc))
		if err != nil {
			return err
		}
		addrs = append(addrs, a)
	}
	*l = addrs
	return nil
}

// flParticipants returns a participant list flag. Each participant is an
// address optionally followed by ":" and the access flags "s" (signer) and
// "w" (writable), for example "8A3B...F0:sw".
func flParticipants(fl *flag.FlagSet, name, usage string) *[]*multisig.Participant {
	var ps participantList
	fl.Var(&ps, name, usage)
	return (*[]*multisig.Participant)(&ps)
}

type participantList []*multisig.Participant

func (l participantList) String() string {
	chunks := make([]string, len(l))
	for i, p := range l {
		access := ""
		if p.IsSigner {
			access += "s"
		}
		if p.IsWritable {
			access += "w"
		}
		chunks[i] = p.Address.String() + ":" + access
	}
	return strings.Join(chunks, ",")
}

func (l *participantList) Set(raw string) error {
	var ps []*multisig.Participant
	for _, enc := range strings.Split(raw, ",") {
		p, err := parseParticipant(strings.TrimSpace(enc))
		if err != nil {
			return err
		}
		ps = append(ps, p)
	}
	*l = ps
	return nil
}

func parseParticipant(enc string) (*multisig.Participant, error) {
	var access string
	if i := strings.LastIndex(enc, ":"); i > 0 && strings.Trim(enc[i+1:], "sw") == "" {
		enc, access = enc[:i], enc[i+1:]
	}
	addr, err := quorum.ParseAddress(enc)
	if err != nil {
		return nil, errors.Wrapf(err, "participant %q", enc)
	}
	if addr == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "participant address")
	}
	return &multisig.Participant{
		Address:    addr,
		IsSigner:   strings.Contains(access, "s"),
		IsWritable: strings.Contains(access, "w"),
	}, nil
}

// flHex returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flHex(fl *flag.FlagSet, name, defaultVal, usage string) *[]byte {
	var b []byte
	if defaultVal != "" {
		var err error
		b, err = hex.DecodeString(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q hex encoded flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var((*flagbyte)(&b), name, usage)
	return &b
}

type flagbyte []byte

func (b flagbyte) String() string {
	return hex.EncodeToString(b)
}

func (b *flagbyte) Set(raw string) error {
	val, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}
	*b = val
	return nil
}
