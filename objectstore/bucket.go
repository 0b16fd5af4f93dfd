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
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"google.golang.org/api/option"
)

// Bucket reads objects by key. Every read is billed to the requester.
type Bucket interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// S3Client is the part of the aws s3 client used to download objects.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Bucket struct {
	client S3Client
	name   string
}

func NewS3Bucket(client S3Client, name string) Bucket {
	return &s3Bucket{
		client: client,
		name:   name,
	}
}

func (b *s3Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket:       aws.String(b.name),
		Key:          aws.String(key),
		RequestPayer: types.RequestPayerRequester,
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

type gcsBucket struct {
	handle *storage.BucketHandle
}

// NewGCSBucket reads from the bucket billing projectID for the downloads.
func NewGCSBucket(client *storage.Client, name, projectID string) Bucket {
	return &gcsBucket{
		handle: client.Bucket(name).UserProject(projectID),
	}
}

func (b *gcsBucket) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := b.handle.Object(key).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// NewBucket connects to the bucket of the configured provider.
func NewBucket(ctx context.Context, cfg Config) (Bucket, error) {
	switch cfg.Provider {
	case ProviderS3:
		client, err := newS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("couldn't create s3 client: %w", err)
		}
		return NewS3Bucket(client, cfg.Bucket), nil
	case ProviderGCP:
		opts := []option.ClientOption{}
		if cfg.GCP.Endpoint != "" {
			opts = append(opts, option.WithEndpoint(cfg.GCP.Endpoint))
		}
		if cfg.GCP.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCP.CredentialsFile))
		}
		client, err := storage.NewClient(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("couldn't create gcs client: %w", err)
		}
		return NewGCSBucket(client, cfg.Bucket, cfg.GCP.ProjectID), nil
	default:
		return nil, fmt.Errorf("unsupported cloud provider %q", cfg.Provider)
	}
}

func newS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
