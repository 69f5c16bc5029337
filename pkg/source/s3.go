// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
	"github.com/walteh/soprc/pkg/sop"
	"gitlab.com/tozd/go/errors"
)

// 🌐 defaultS3Endpoint is used when no endpoint-url override is given
const defaultS3Endpoint = "s3.amazonaws.com"

func init() {
	RegisterType("s3", func(params map[string]string) (Source, error) {
		if params["bucket"] == "" {
			return nil, errors.Errorf("s3 bucket is required")
		}
		return NewS3Source(S3Options{
			Bucket:      params["bucket"],
			Prefix:      params["prefix"],
			Region:      params["region"],
			EndpointURL: params["endpoint-url"],
			Profile:     params["profile"],
		}), nil
	})
}

// 🔧 S3Options configures an S3 source
type S3Options struct {
	Bucket      string // Bucket name (required)
	Prefix      string // Key prefix to list under
	Region      string // AWS region
	EndpointURL string // Endpoint override, e.g. http://localhost:9000
	Profile     string // Shared credentials profile name
}

// 🔌 objectAPI is the slice of the S3 client the source needs. It exists so
// tests can substitute a mock transport.
type objectAPI interface {
	// 📂 ListObjects streams object metadata under a prefix
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo

	// 📄 GetObject retrieves a single object's body
	GetObject(ctx context.Context, bucket string, key string) (io.ReadCloser, error)
}

// 🔌 minioAPI adapts *minio.Client to objectAPI
type minioAPI struct {
	client *minio.Client
}

func (m *minioAPI) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return m.client.ListObjects(ctx, bucket, opts)
}

func (m *minioAPI) GetObject(ctx context.Context, bucket string, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// 🪣 S3Source loads SOPs from an S3 bucket. The transport client is created
// on first use and reused for the lifetime of the source.
type S3Source struct {
	opts     S3Options
	initOnce sync.Once
	initErr  error
	client   objectAPI
}

// 🏭 NewS3Source creates a source over the given bucket and prefix
func NewS3Source(opts S3Options) *S3Source {
	return &S3Source{opts: opts}
}

// 🔑 ensureClient lazily initializes the S3 client
func (s *S3Source) ensureClient() error {
	s.initOnce.Do(func() {
		if s.client != nil {
			return
		}

		endpoint, secure, err := resolveEndpoint(s.opts.EndpointURL)
		if err != nil {
			s.initErr = err
			return
		}

		var creds *credentials.Credentials
		if s.opts.Profile != "" {
			creds = credentials.NewFileAWSCredentials("", s.opts.Profile)
		} else {
			creds = credentials.NewChainCredentials([]credentials.Provider{
				&credentials.EnvAWS{},
				&credentials.FileAWSCredentials{},
				&credentials.IAM{},
			})
		}

		client, err := minio.New(endpoint, &minio.Options{
			Creds:  creds,
			Secure: secure,
			Region: s.opts.Region,
		})
		if err != nil {
			s.initErr = errors.Errorf("creating s3 client: %w", err)
			return
		}

		s.client = &minioAPI{client: client}
	})
	return s.initErr
}

// 🔍 resolveEndpoint turns an optional endpoint-url override into the
// host[:port] and TLS flag minio expects
func resolveEndpoint(endpointURL string) (string, bool, error) {
	if endpointURL == "" {
		return defaultS3Endpoint, true, nil
	}

	if !strings.Contains(endpointURL, "://") {
		return endpointURL, true, nil
	}

	u, err := url.Parse(endpointURL)
	if err != nil {
		return "", false, errors.Errorf("parsing endpoint-url %q: %w", endpointURL, err)
	}
	if u.Host == "" {
		return "", false, errors.Errorf("endpoint-url %q has no host", endpointURL)
	}

	return u.Host, u.Scheme != "http", nil
}

// 📂 Load lists all keys under the bucket/prefix, fetches the ones ending in
// ".sop.md", and parses each into a SOP. Per-object failures skip that object
// only; transport failures fail the whole source.
func (s *S3Source) Load(ctx context.Context) ([]sop.SOP, error) {
	logger := zerolog.Ctx(ctx)

	if err := s.ensureClient(); err != nil {
		return nil, err
	}

	var sops []sop.SOP
	for obj := range s.client.ListObjects(ctx, s.opts.Bucket, minio.ListObjectsOptions{
		Prefix:    s.opts.Prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			if code := minio.ToErrorResponse(obj.Err).Code; code != "" {
				return nil, errors.Errorf("listing objects in %s (%s): %w", s.String(), code, obj.Err)
			}
			return nil, errors.Errorf("listing objects in %s: %w", s.String(), obj.Err)
		}
		if !strings.HasSuffix(obj.Key, sop.FileSuffix) {
			continue
		}

		parsed, err := s.loadObject(ctx, obj.Key)
		if err != nil {
			logger.Warn().Err(err).Str("key", obj.Key).Msg("skipping S3 object")
			continue
		}

		sops = append(sops, parsed)
	}

	return sops, nil
}

// 📄 loadObject fetches and parses a single object
func (s *S3Source) loadObject(ctx context.Context, key string) (sop.SOP, error) {
	body, err := s.client.GetObject(ctx, s.opts.Bucket, key)
	if err != nil {
		return sop.SOP{}, errors.Errorf("getting object: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return sop.SOP{}, errors.Errorf("reading object body: %w", err)
	}

	return sop.Parse(sop.NameFromFile(key), string(data))
}

// 📝 String returns the source identity for diagnostics
func (s *S3Source) String() string {
	return fmt.Sprintf("s3://%s/%s", s.opts.Bucket, s.opts.Prefix)
}
