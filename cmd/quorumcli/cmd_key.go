package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/quorum/crypto"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.

By default a random key is created. When a hex encoded master seed is given,
the key is derived from it using the SLIP-0010 derivation path.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = keyFlag(fl)
		seedFl    = flHex(fl, "seed", "", "Hex encoded master seed to derive the key from.")
		pathFl    = fl.String("path", crypto.DefaultDerivationPath, "SLIP-0010 derivation path used with -seed.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Never overwrite an existing key. It must be removed manually.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	var (
		key *crypto.PrivateKey
		err error
	)
	if len(*seedFl) != 0 {
		key, err = crypto.DerivePrivKeyEd25519(*seedFl, *pathFl)
	} else {
		key, err = crypto.GenPrivKeyEd25519()
	}
	if err != nil {
		return fmt.Errorf("cannot create key: %s", err)
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(key.Ed25519); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key. By default the
address is hex encoded.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = keyFlag(fl)
		bech32Fl  = fl.String("bech32", "", "Print the address in bech32 format using given human readable part, for example \"tiov\".")
	)
	fl.Parse(args)

	signer, err := loadSigner(*keyPathFl)
	if err != nil {
		return err
	}
	addr := signer.Address()
	if *bech32Fl == "" {
		_, err = fmt.Fprintln(output, addr)
		return err
	}
	enc, err := addr.Bech32(*bech32Fl)
	if err != nil {
		return fmt.Errorf("cannot encode address: %s", err)
	}
	_, err = fmt.Fprintln(output, "bech32:"+enc)
	return err
}
