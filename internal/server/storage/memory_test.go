package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_UploadDownload(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	err := s.UploadFile(ctx, "invites/a.ics", strings.NewReader("BEGIN:VCALENDAR"), -1, "text/calendar")
	require.NoError(t, err)

	rc, err := s.DownloadFile(ctx, "invites/a.ics")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCALENDAR", string(data))
}

func TestMemoryStorage_SizeLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	require.NoError(t, s.UploadFile(ctx, "k", strings.NewReader("abcdef"), 3, ""))

	rc, err := s.DownloadFile(ctx, "k")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "abc", string(data))
}

func TestMemoryStorage_NotFound(t *testing.T) {
	_, err := NewMemoryStorage().DownloadFile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestMinioConfig_Enabled(t *testing.T) {
	assert.False(t, MinioConfig{}.Enabled())
	assert.False(t, MinioConfig{Endpoint: "localhost:9000"}.Enabled())
	assert.True(t, MinioConfig{Endpoint: "localhost:9000", BucketName: "invites"}.Enabled())
}
