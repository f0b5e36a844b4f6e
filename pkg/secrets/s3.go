// Copyright 2026 The Release Signing Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secrets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Environment variables carrying object-store authorization. These are the
// standard AWS names so CI secret injection works unchanged.
const (
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
)

// s3API is the slice of the S3 client the source needs; it exists so tests
// can stub object retrieval without a live endpoint.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source fetches a credential bundle from S3-compatible object storage,
// authorized by access keys from the environment.
type S3Source struct {
	// Bucket and Key locate the encrypted bundle.
	Bucket string
	Key    string
	// Region is the bucket region. Defaults to us-east-1.
	Region string
	// Endpoint overrides the S3 endpoint for non-AWS object stores.
	// Custom endpoints use path-style addressing.
	Endpoint string

	client s3API
}

var _ Source = (*S3Source)(nil)

// Description identifies the source for logs.
func (s *S3Source) Description() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}

// Fetch downloads the bundle. Missing environment authorization, a missing
// object, or denied access wrap ErrUnavailable.
func (s *S3Source) Fetch(ctx context.Context) (*Blob, error) {
	if s.Bucket == "" || s.Key == "" {
		return nil, fmt.Errorf("%w: no object-store pointer configured", ErrUnavailable)
	}

	client := s.client
	if client == nil {
		accessKey := os.Getenv(EnvAccessKeyID)
		secretKey := os.Getenv(EnvSecretAccessKey)
		if accessKey == "" || secretKey == "" {
			return nil, fmt.Errorf("%w: %s/%s not set in environment",
				ErrUnavailable, EnvAccessKeyID, EnvSecretAccessKey)
		}

		region := s.Region
		if region == "" {
			region = "us-east-1"
		}

		cfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		)
		if err != nil {
			return nil, fmt.Errorf("loading object-store config: %w", err)
		}

		client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			if s.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.Endpoint)
				o.UsePathStyle = true
			}
		})
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		if isAbsence(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, s.Description(), err)
		}
		return nil, fmt.Errorf("fetching %s: %w", s.Description(), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Description(), err)
	}
	return &Blob{Data: data, Origin: s.Description()}, nil
}

// isAbsence classifies object-store errors that mean "no credential for
// this run" rather than a broken run: missing objects and rejected or
// insufficient authorization.
func isAbsence(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "NoSuchKey", "NotFound":
			return true
		}
	}
	return strings.Contains(err.Error(), "StatusCode: 403") ||
		strings.Contains(err.Error(), "StatusCode: 404")
}
