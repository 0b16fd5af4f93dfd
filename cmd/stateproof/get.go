// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"

	"code.vegaprotocol.io/stateproof/config"
	"code.vegaprotocol.io/stateproof/entities"
	"code.vegaprotocol.io/stateproof/libs/json"
	"code.vegaprotocol.io/stateproof/logging"
	"code.vegaprotocol.io/stateproof/objectstore"
	"code.vegaprotocol.io/stateproof/sqlstore"
	"code.vegaprotocol.io/stateproof/stateproof"

	"github.com/jessevdk/go-flags"
)

type GetCmd struct {
	config.HomeFlag

	Nonce     int32 `long:"nonce" description:"Nonce of the transaction" default:"0"`
	Scheduled bool  `long:"scheduled" description:"Look up the scheduled transaction"`

	Args struct {
		TransactionID string `positional-arg-name:"transaction-id" description:"e.g. 0.0.1001-1234567890-000000123"`
	} `positional-args:"yes" required:"yes"`
}

var getCmd GetCmd

func (cmd *GetCmd) Execute(_ []string) error {
	log := logging.NewLoggerFromConfig(logging.NewDefaultConfig())
	defer log.AtExit()

	if cmd.Nonce < 0 {
		return errors.New("nonce must not be negative")
	}

	txID, err := entities.ParseTransactionID(cmd.Args.TransactionID)
	if err != nil {
		return fmt.Errorf("invalid transaction id: %w", err)
	}

	conf, err := config.Read(cmd.Home)
	if err != nil {
		return fmt.Errorf("couldn't read configuration file: %w", err)
	}
	log = logging.NewLoggerFromConfig(conf.Logging)

	ctx := context.Background()

	connectionSource, err := sqlstore.NewConnectionSource(ctx, log, conf.SQLStore.ConnectionConfig)
	if err != nil {
		return err
	}
	defer connectionSource.Close()

	addressBooks, err := sqlstore.NewAddressBooks(connectionSource, conf.SQLStore)
	if err != nil {
		return err
	}

	bucket, err := objectstore.NewBucket(ctx, conf.ObjectStore)
	if err != nil {
		return err
	}

	svc := stateproof.NewService(
		log,
		conf.StateProof,
		sqlstore.NewTransactions(connectionSource, conf.SQLStore),
		sqlstore.NewRecordFiles(connectionSource, conf.SQLStore),
		addressBooks,
		objectstore.NewDownloader(log, conf.ObjectStore, bucket),
	)

	proof, err := svc.Build(ctx, txID, cmd.Nonce, cmd.Scheduled)
	if err != nil {
		return err
	}

	return json.PrettyPrint(proof)
}

func Get(ctx context.Context, parser *flags.Parser) error {
	getCmd = GetCmd{}

	short := "Builds the state proof of a transaction"
	long := "Builds the state proof of a transaction from the mirror node database and the record stream bucket, then prints it"

	_, err := parser.AddCommand("get", short, long, &getCmd)
	return err
}
