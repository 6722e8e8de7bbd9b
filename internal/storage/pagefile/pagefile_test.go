package pagefile

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bietkhonhungvandi212/pool-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/pool-db/internal/utils"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name          string
		initialPages  int
		expectedError error
		shouldSucceed bool
	}{
		{
			name:          "Valid creation with 1 page",
			initialPages:  1,
			shouldSucceed: true,
		},
		{
			name:          "Valid creation with 10 pages",
			initialPages:  10,
			shouldSucceed: true,
		},
		{
			name:          "Invalid negative pages",
			initialPages:  -1,
			expectedError: util.ErrInvalidInitialPages,
			shouldSucceed: false,
		},
		{
			name:          "Zero pages (edge case)",
			initialPages:  0,
			expectedError: util.ErrInvalidInitialPages,
			shouldSucceed: false,
		},
		{
			name:          "Large but valid page count",
			initialPages:  1000,
			shouldSucceed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := util.CreateTempFile(t)
			err := Create(path, tt.initialPages)

			if tt.shouldSucceed {
				require.NoError(t, err)

				info, err := os.Stat(path)
				require.NoError(t, err)
				assert.Equal(t, int64(tt.initialPages)*page.Size, info.Size(), "file size")

				m, err := Open(path)
				require.NoError(t, err)
				assert.Equal(t, int64(tt.initialPages), m.NumPages(), "NumPages")
				assert.NoError(t, m.Close())
			} else {
				assert.ErrorIs(t, err, tt.expectedError)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		m, err := Open(util.CreateTempFile(t))
		assert.ErrorIs(t, err, util.ErrFileNotFound)
		assert.Nil(t, m)
	})

	t.Run("SizeNotMultipleOfPageSize", func(t *testing.T) {
		path := util.CreateTempFile(t)
		require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o666))

		m, err := Open(path)
		assert.ErrorIs(t, err, util.ErrInvalidFileSize)
		assert.Nil(t, m)
	})

	t.Run("Exists", func(t *testing.T) {
		path := util.CreateTempFile(t)
		assert.False(t, Exists(path), "missing file")

		require.NoError(t, Create(path, 1))
		assert.True(t, Exists(path), "created file")
	})
}

func TestReadWriteBlock(t *testing.T) {
	path := util.CreateTempFile(t)
	require.NoError(t, Create(path, 3))
	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	t.Run("Roundtrip", func(t *testing.T) {
		out := make([]byte, page.Size)
		copy(out, []byte("block 1 test data"))
		require.NoError(t, m.WriteBlock(1, out))

		in := make([]byte, page.Size)
		require.NoError(t, m.ReadBlock(1, in))
		assert.Equal(t, out, in, "read back what was written")
	})

	t.Run("FreshBlockIsZeroed", func(t *testing.T) {
		in := make([]byte, page.Size)
		require.NoError(t, m.ReadBlock(2, in))
		assert.Equal(t, make([]byte, page.Size), in, "untouched block")
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		buf := make([]byte, page.Size)
		assert.ErrorIs(t, m.ReadBlock(3, buf), util.ErrPageOutOfBounds)
		assert.ErrorIs(t, m.WriteBlock(3, buf), util.ErrPageOutOfBounds)
		assert.ErrorIs(t, m.ReadBlock(-1, buf), util.ErrPageOutOfBounds)
		assert.ErrorIs(t, m.WriteBlock(-1, buf), util.ErrPageOutOfBounds)
	})

	t.Run("WrongBufferSize", func(t *testing.T) {
		short := make([]byte, page.Size-1)
		assert.ErrorIs(t, m.ReadBlock(0, short), util.ErrInvalidPageSize)
		assert.ErrorIs(t, m.WriteBlock(0, short), util.ErrInvalidPageSize)
	})
}

func TestClose(t *testing.T) {
	path := util.CreateTempFile(t)
	require.NoError(t, Create(path, 1))
	m, err := Open(path)
	require.NoError(t, err)

	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close(), "close is idempotent")
}
