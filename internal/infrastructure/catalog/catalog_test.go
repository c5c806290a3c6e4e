package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ctx := context.Background()

	items, err := Default().Items(ctx)
	r.NoError(err)
	r.Len(items, 2)
	r.Equal("iron", items[0].ID)
	r.Equal("Iron", items[0].Name)
	r.Equal("oil", items[1].ID)
	r.Equal("barrel", items[1].Unit)
	r.Nil(items[1].BasePrice)

	_, ok := Default().Item(ctx, "gold")
	r.False(ok)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(r *require.Assertions, c *Catalog)
	}{
		{
			name: "items with base price",
			body: `
items:
  - id: wheat
    name: Wheat
    unit: bushel
    basePrice: 12.5
  - id: oil
    label: Crude oil
    category: energy
  - id: oil
    label: Duplicate
  - name: no id
`,
			check: func(r *require.Assertions, c *Catalog) {
				items, err := c.Items(context.Background())
				r.NoError(err)
				r.Len(items, 2)

				wheat, ok := c.Item(context.Background(), "wheat")
				r.True(ok)
				r.Equal("Wheat", wheat.Name)
				r.NotNil(wheat.BasePrice)
				r.InDelta(12.5, *wheat.BasePrice, 1e-12)

				oil, ok := c.Item(context.Background(), "oil")
				r.True(ok)
				r.Equal("Crude oil", oil.Name)
			},
		},
		{name: "negative base price", body: "items:\n  - id: oil\n    basePrice: -1\n", wantErr: true},
		{name: "malformed", body: "items: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)

			path := filepath.Join(t.TempDir(), "catalog.yaml")
			r.NoError(os.WriteFile(path, []byte(tt.body), 0o600))

			c, err := Load(path)
			if tt.wantErr {
				r.Error(err)
				return
			}

			r.NoError(err)
			tt.check(r, c)
		})
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	c, err := Load("")
	r.NoError(err)

	_, ok := c.Item(context.Background(), "oil")
	r.True(ok)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	r.Error(err)
}
