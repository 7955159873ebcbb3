package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/x/multisig"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the state from a genesis file. The "app_state" section may declare
the initial groups under the "multisig" key and the package configuration
under "conf.multisig". The state can be initialized only once.
`)
		fl.PrintDefaults()
	}
	var (
		ef        = registerEnvFlags(fl)
		genesisFl = fl.String("genesis", "genesis.json", "Path to the genesis file.")
	)
	fl.Parse(args)

	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}

	s, err := openStore(*ef.home)
	if err != nil {
		return err
	}
	defer s.Close()

	db := s.CacheWrap()
	if err := app.InitChain(db, gen, app.ChainInitializers(multisig.Initializer{})); err != nil {
		db.Discard()
		return fmt.Errorf("cannot initialize: %s", err)
	}
	if err := db.Write(); err != nil {
		return fmt.Errorf("cannot write state: %s", err)
	}
	if _, err := s.Commit(); err != nil {
		return fmt.Errorf("cannot commit state: %s", err)
	}
	_, err = fmt.Fprintf(output, "initialized chain %q\n", gen.ChainID)
	return err
}
