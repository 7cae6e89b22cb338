package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/dmitrijs2005/favfood/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	data        []byte
	contentType string
}

type fakeGCS struct {
	objects  map[string]fakeObject
	writeErr error
}

type fakeWriter struct {
	g           *fakeGCS
	key         string
	contentType string
	buf         bytes.Buffer
}

func (w *fakeWriter) Write(p []byte) (int, error) {
	if w.g.writeErr != nil {
		return 0, w.g.writeErr
	}
	return w.buf.Write(p)
}

func (w *fakeWriter) Close() error {
	if w.g.writeErr != nil {
		return nil
	}
	w.g.objects[w.key] = fakeObject{data: w.buf.Bytes(), contentType: w.contentType}
	return nil
}

func (g *fakeGCS) NewWriter(_ context.Context, key, contentType string) io.WriteCloser {
	return &fakeWriter{g: g, key: key, contentType: contentType}
}

func (g *fakeGCS) NewReader(_ context.Context, key string) (io.ReadCloser, string, error) {
	o, ok := g.objects[key]
	if !ok {
		return nil, "", storage.ErrObjectNotExist
	}
	return io.NopCloser(bytes.NewReader(o.data)), o.contentType, nil
}

func (g *fakeGCS) Delete(_ context.Context, key string) error {
	if _, ok := g.objects[key]; !ok {
		return storage.ErrObjectNotExist
	}
	delete(g.objects, key)
	return nil
}

func TestGCSStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := &fakeGCS{objects: map[string]fakeObject{}}
	s := &GCSStore{objects: fake}

	require.NoError(t, s.Put(ctx, "k", []byte("jpeg"), "image/jpeg"))

	data, ct, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
	assert.Equal(t, "image/jpeg", ct)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, _, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGCSStore_WriteError(t *testing.T) {
	fake := &fakeGCS{objects: map[string]fakeObject{}, writeErr: errors.New("quota")}
	s := &GCSStore{objects: fake}

	err := s.Put(context.Background(), "k", []byte("x"), "text/plain")
	assert.ErrorContains(t, err, "gcs write k: quota")
	assert.Empty(t, fake.objects)
}
