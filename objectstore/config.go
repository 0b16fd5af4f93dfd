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

package objectstore

import (
	"time"

	"code.vegaprotocol.io/stateproof/config/encoding"
	"code.vegaprotocol.io/stateproof/logging"
)

// namedLogger is the identifier for package and should ideally match the package name
// this is simply emitted as a hierarchical label e.g. 'api.grpc'.
const namedLogger = "objectstore"

const (
	ProviderS3  = "s3"
	ProviderGCP = "gcp"
)

type Config struct {
	Level          encoding.LogLevel `long:"log-level"`
	Provider       string            `long:"provider" description:"Cloud provider hosting the record stream bucket" choice:"s3" choice:"gcp"`
	Bucket         string            `long:"bucket" description:"Name of the record stream bucket"`
	StreamPrefix   string            `long:"stream-prefix" description:"Key prefix of the record stream files, the node account id and file name follow it"`
	Timeout        encoding.Duration `long:"timeout" description:"Maximum duration of a single object download"`
	MaxConcurrency int               `long:"max-concurrency" description:"Maximum number of concurrent downloads, 0 means unlimited"`

	S3  S3Config  `group:"S3" namespace:"s3"`
	GCP GCPConfig `group:"GCP" namespace:"gcp"`
}

type S3Config struct {
	Region    string `long:"region"`
	Endpoint  string `long:"endpoint" description:"Override of the S3 endpoint, for S3 compatible stores"`
	AccessKey string `long:"access-key"`
	SecretKey string `long:"secret-key"`
}

type GCPConfig struct {
	ProjectID       string `long:"project-id" description:"Project billed for the requester pays downloads"`
	Endpoint        string `long:"endpoint"`
	CredentialsFile string `long:"credentials-file"`
}

func NewDefaultConfig() Config {
	return Config{
		Level:          encoding.LogLevel{Level: logging.InfoLevel},
		Provider:       ProviderS3,
		Bucket:         "hedera-mainnet-streams",
		StreamPrefix:   "recordstreams/record",
		Timeout:        encoding.Duration{Duration: 20 * time.Second},
		MaxConcurrency: 0,
		S3: S3Config{
			Region: "us-east-1",
		},
	}
}
