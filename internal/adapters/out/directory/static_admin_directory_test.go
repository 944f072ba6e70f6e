package directory_test

import (
	"context"
	"testing"

	"hubflow/internal/adapters/out/directory"
	"hubflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAdminDirectory(t *testing.T) {
	d, err := directory.NewStaticAdminDirectory(directory.ParseAdminIDs(" admin-1, ,admin-2,admin-1"))
	require.NoError(t, err)

	ids, err := d.AdminIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"admin-1", "admin-2"}, ids)

	ids[0] = "changed"
	again, _ := d.AdminIDs(context.Background())
	assert.Equal(t, "admin-1", again[0])
}

func TestStaticAdminDirectory_RequiresAnAdmin(t *testing.T) {
	_, err := directory.NewStaticAdminDirectory(directory.ParseAdminIDs(" , "))
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
