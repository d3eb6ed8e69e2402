package source

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camlist-cli/internal/client"
)

func TestLoader_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/camlist.zip", []byte("local"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	l := &Loader{Fs: fs, Client: client.New(client.ClientConfig{})}

	t.Run("local file", func(t *testing.T) {
		data, err := l.Load("/data/camlist.zip", "")
		require.NoError(t, err)
		assert.Equal(t, []byte("local"), data)
	})

	t.Run("missing local file", func(t *testing.T) {
		_, err := l.Load("/data/missing.zip", "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("url", func(t *testing.T) {
		data, err := l.Load(srv.URL+"/camlist.zip", client.Checksum([]byte("remote")))
		require.NoError(t, err)
		assert.Equal(t, []byte("remote"), data)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		_, err := l.Load("/data/camlist.zip", client.Checksum([]byte("other")))
		assert.Error(t, err)
	})

	t.Run("no location", func(t *testing.T) {
		_, err := l.Load("", "")
		assert.Error(t, err)
	})

	t.Run("url without client", func(t *testing.T) {
		_, err := (&Loader{Fs: fs}).Load(srv.URL, "")
		assert.Error(t, err)
	})
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.zip"))
	assert.True(t, IsURL("http://example.com/a.zip"))
	assert.False(t, IsURL("/tmp/a.zip"))
	assert.False(t, IsURL("ftp://example.com/a.zip"))
}
