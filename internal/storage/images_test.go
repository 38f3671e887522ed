package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal valid PNG (8-byte signature + IHDR is enough for sniffing)
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func newTestStore(t *testing.T) *ImageStore {
	t.Helper()
	return NewImageStore(t.TempDir(), 1024)
}

func TestSaveAndRemove(t *testing.T) {
	s := newTestStore(t)
	url, err := s.Save(bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "/uploads/")
	_, err = os.Stat(filepath.Join(s.Dir, name))
	require.NoError(t, err)

	require.NoError(t, s.Remove(url))
	_, err = os.Stat(filepath.Join(s.Dir, name))
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	assert.NoError(t, s.Remove(url))
}

func TestSaveRejectsOversized(t *testing.T) {
	s := newTestStore(t)
	big := append(append([]byte{}, pngHeader...), make([]byte, 2048)...)
	_, err := s.Save(bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSaveRejectsNonImage(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Save(strings.NewReader("#!/bin/sh\nrm -rf /\n"))
	assert.ErrorIs(t, err, ErrBadType)

	// a GIF is an image but not on the allow-list
	_, err = s.Save(strings.NewReader("GIF89a......."))
	assert.ErrorIs(t, err, ErrBadType)
}

func TestRemoveRejectsForeignPaths(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.Remove("/etc/passwd"))
	assert.Error(t, s.Remove("/uploads/../../etc/passwd"))
	assert.Error(t, s.Remove("/uploads/"))
}
