package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/storage"
	"github.com/sushihentaime/contenthub/internal/storage/mongodb"
	"github.com/sushihentaime/contenthub/internal/storage/storagetest"
)

func TestBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mongodb integration test in short mode")
	}

	db := common.TestMongo(t)

	storagetest.Run(t, func(t *testing.T) *storage.Backend {
		ctx := context.Background()
		require.NoError(t, db.Drop(ctx))

		b, err := mongodb.New(ctx, db)
		require.NoError(t, err)

		return b
	})
}
