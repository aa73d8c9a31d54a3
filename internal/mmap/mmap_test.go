package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unit.arc")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestMapping_OpenReadClose(t *testing.T) {
	content := []byte("Hello, Arena!")
	m, err := Open(writeTemp(t, content), AdviceSequential)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, len(content), m.Size())
	assert.Equal(t, content, m.Bytes())

	t.Run("read at", func(t *testing.T) {
		buf := make([]byte, 6)
		n, err := m.ReadAt(buf, 7)
		require.NoError(t, err)
		assert.Equal(t, 6, n)
		assert.Equal(t, "Arena!", string(buf))
	})

	t.Run("read past end", func(t *testing.T) {
		n, err := m.ReadAt(make([]byte, 10), 100)
		assert.Equal(t, 0, n)
		assert.Equal(t, io.EOF, err)
	})

	t.Run("partial read", func(t *testing.T) {
		buf := make([]byte, 10)
		n, err := m.ReadAt(buf, 7)
		assert.Equal(t, 6, n)
		assert.Equal(t, io.EOF, err)
	})

	t.Run("negative offset", func(t *testing.T) {
		_, err := m.ReadAt(make([]byte, 1), -1)
		assert.Equal(t, ErrInvalidOffset, err)
	})
}

func TestMapping_EmptyFile(t *testing.T) {
	m, err := Open(writeTemp(t, nil), AdviceRandom)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Size())
	assert.Nil(t, m.Bytes())
	require.NoError(t, m.Close())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"), AdviceNormal)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMapping_AfterClose(t *testing.T) {
	m, err := Open(writeTemp(t, []byte("data")), AdviceWillNeed)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "close is idempotent")

	assert.Nil(t, m.Bytes())
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMapAnon(t *testing.T) {
	m, err := MapAnon(4096)
	require.NoError(t, err)
	defer m.Close()

	data := m.Bytes()
	require.Len(t, data, 4096)
	for _, b := range data[:64] {
		assert.Zero(t, b)
	}

	data[0], data[4095] = 0xAB, 0xCD
	assert.Equal(t, byte(0xAB), m.Bytes()[0])
	assert.Equal(t, byte(0xCD), m.Bytes()[4095])

	_, err = MapAnon(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
