package carmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	cars := Default()

	name, err := cars.Lookup(0)
	assert.NoError(t, err)
	assert.Equal(t, "Porsche 991 GT3 R", name)

	_, err = cars.Lookup(999)
	assert.ErrorIs(t, err, ErrUnknownCarModel)
	assert.Contains(t, err.Error(), "999")
}

func TestMergeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yml")
	err := os.WriteFile(path, []byte("999: Custom Car\n0: Renamed Porsche\n"), 0o600)
	assert.NoError(t, err)

	cars := Default()
	assert.NoError(t, cars.MergeFile(path))

	name, err := cars.Lookup(999)
	assert.NoError(t, err)
	assert.Equal(t, "Custom Car", name)

	// file entries override the built-in name
	name, err = cars.Lookup(0)
	assert.NoError(t, err)
	assert.Equal(t, "Renamed Porsche", name)
}

func TestMergeFile_Errors(t *testing.T) {
	cars := Default()
	assert.Error(t, cars.MergeFile(filepath.Join(t.TempDir(), "missing.yml")))

	path := filepath.Join(t.TempDir(), "broken.yml")
	assert.NoError(t, os.WriteFile(path, []byte("not: [valid: yaml"), 0o600))
	assert.Error(t, cars.MergeFile(path))
}

func TestIDs(t *testing.T) {
	cars := Default()
	ids := cars.IDs()
	assert.Equal(t, cars.Len(), len(ids))
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}
