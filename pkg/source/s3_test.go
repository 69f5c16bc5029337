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
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockObjectAPI is a mock implementation of the objectAPI interface
type MockObjectAPI struct {
	mock.Mock
}

func (m *MockObjectAPI) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	result := m.Called(ctx, bucket, opts)
	return result.Get(0).(<-chan minio.ObjectInfo)
}

func (m *MockObjectAPI) GetObject(ctx context.Context, bucket string, key string) (io.ReadCloser, error) {
	result := m.Called(ctx, bucket, key)
	if result.Get(0) == nil {
		return nil, result.Error(1)
	}
	return result.Get(0).(io.ReadCloser), result.Error(1)
}

// objectChan builds a closed listing channel from object infos
func objectChan(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, obj := range objs {
		ch <- obj
	}
	close(ch)
	return ch
}

func body(content string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(content))
}

func newTestS3Source(opts S3Options, api objectAPI) *S3Source {
	src := NewS3Source(opts)
	src.client = api
	return src
}

func TestS3SourceLoad(t *testing.T) {
	ctx := testContext(t)

	t.Run("loads_matching_objects_in_listing_order", func(t *testing.T) {
		api := &MockObjectAPI{}
		api.On("ListObjects", mock.Anything, "b", minio.ListObjectsOptions{Prefix: "sops/", Recursive: true}).
			Return(objectChan(
				minio.ObjectInfo{Key: "sops/alpha.sop.md"},
				minio.ObjectInfo{Key: "sops/readme.md"},
				minio.ObjectInfo{Key: "sops/nested/beta.sop.md"},
			))
		api.On("GetObject", mock.Anything, "b", "sops/alpha.sop.md").
			Return(body("## Overview\nAlpha procedure.\n"), nil)
		api.On("GetObject", mock.Anything, "b", "sops/nested/beta.sop.md").
			Return(body("## Overview\nBeta procedure.\n"), nil)

		src := newTestS3Source(S3Options{Bucket: "b", Prefix: "sops/"}, api)
		sops, err := src.Load(ctx)
		require.NoError(t, err, "load should succeed")
		require.Len(t, sops, 2, "only .sop.md keys should load")
		assert.Equal(t, "alpha", sops[0].Name, "listing order")
		assert.Equal(t, "beta", sops[1].Name, "name from final path segment")
		assert.Equal(t, "Alpha procedure.", sops[0].Description, "description from Overview")
		api.AssertExpectations(t)
	})

	t.Run("per_object_failure_skips_that_object", func(t *testing.T) {
		api := &MockObjectAPI{}
		api.On("ListObjects", mock.Anything, "b", mock.Anything).
			Return(objectChan(
				minio.ObjectInfo{Key: "broken.sop.md"},
				minio.ObjectInfo{Key: "good.sop.md"},
			))
		api.On("GetObject", mock.Anything, "b", "broken.sop.md").
			Return(nil, errors.New("access denied"))
		api.On("GetObject", mock.Anything, "b", "good.sop.md").
			Return(body("## Overview\nStill good.\n"), nil)

		src := newTestS3Source(S3Options{Bucket: "b"}, api)
		sops, err := src.Load(ctx)
		require.NoError(t, err, "one broken object should not fail the source")
		require.Len(t, sops, 1, "the broken object is skipped")
		assert.Equal(t, "good", sops[0].Name, "valid object should survive")
	})

	t.Run("object_without_overview_is_skipped", func(t *testing.T) {
		api := &MockObjectAPI{}
		api.On("ListObjects", mock.Anything, "b", mock.Anything).
			Return(objectChan(minio.ObjectInfo{Key: "bad.sop.md"}))
		api.On("GetObject", mock.Anything, "b", "bad.sop.md").
			Return(body("# No overview\n"), nil)

		src := newTestS3Source(S3Options{Bucket: "b"}, api)
		sops, err := src.Load(ctx)
		require.NoError(t, err, "invalid document should not fail the source")
		assert.Empty(t, sops, "invalid document contributes nothing")
	})

	t.Run("listing_failure_fails_the_source", func(t *testing.T) {
		api := &MockObjectAPI{}
		api.On("ListObjects", mock.Anything, "b", mock.Anything).
			Return(objectChan(minio.ObjectInfo{Err: errors.New("bucket not found")}))

		src := newTestS3Source(S3Options{Bucket: "b"}, api)
		sops, err := src.Load(ctx)
		require.Error(t, err, "transport failure surfaces as a source error")
		assert.Contains(t, err.Error(), "listing objects", "error should name the operation")
		assert.Empty(t, sops, "no partial results on listing failure")
	})
}

func TestS3SourceString(t *testing.T) {
	src := NewS3Source(S3Options{Bucket: "my-bucket", Prefix: "sops/"})
	assert.Equal(t, "s3://my-bucket/sops/", src.String(), "identity should match")

	src = NewS3Source(S3Options{Bucket: "my-bucket"})
	assert.Equal(t, "s3://my-bucket/", src.String(), "empty prefix leaves a bare bucket path")
}

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		wantHost   string
		wantSecure bool
		wantErr    bool
	}{
		{
			name:       "default_when_empty",
			endpoint:   "",
			wantHost:   "s3.amazonaws.com",
			wantSecure: true,
		},
		{
			name:       "bare_host_stays_secure",
			endpoint:   "minio.internal:9000",
			wantHost:   "minio.internal:9000",
			wantSecure: true,
		},
		{
			name:       "http_scheme_disables_tls",
			endpoint:   "http://localhost:9000",
			wantHost:   "localhost:9000",
			wantSecure: false,
		},
		{
			name:       "https_scheme_keeps_tls",
			endpoint:   "https://s3.eu-west-1.amazonaws.com",
			wantHost:   "s3.eu-west-1.amazonaws.com",
			wantSecure: true,
		},
		{
			name:     "scheme_without_host",
			endpoint: "http://",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, secure, err := resolveEndpoint(tt.endpoint)
			if tt.wantErr {
				require.Error(t, err, "resolve should fail")
				return
			}

			require.NoError(t, err, "resolve should succeed")
			assert.Equal(t, tt.wantHost, host, "host should match")
			assert.Equal(t, tt.wantSecure, secure, "TLS flag should match")
		})
	}
}
