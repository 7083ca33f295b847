package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveKeepsExtension(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	name, err := s.Save("receipt.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "1700000000000-"), name)
	assert.Equal(t, ".png", filepath.Ext(name))

	b, err := os.ReadFile(filepath.Join(s.Dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))
}

func TestStore_NamesDoNotCollide(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1) }

	a, err := s.Save("a.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := s.Save("a.jpg", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStore_RemoveIsDetached(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	name, err := s.Save("x.gif", strings.NewReader("gif"))
	require.NoError(t, err)

	done := make(chan struct{})
	s.Remove(name, done)
	<-done
	_, err = os.Stat(filepath.Join(s.Dir, name))
	assert.True(t, os.IsNotExist(err))

	// a missing file is only logged
	done = make(chan struct{})
	s.Remove("missing.png", done)
	<-done
}

func TestStore_ContentType(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	png, err := s.Save("a.png", strings.NewReader("\x89PNG\r\n\x1a\n\x00\x00"))
	require.NoError(t, err)
	ct, err := s.ContentType(png)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	fake, err := s.Save("b.png", strings.NewReader("hello"))
	require.NoError(t, err)
	ct, err = s.ContentType(fake)
	require.NoError(t, err)
	assert.False(t, IsImage(ct), ct)

	_, err = s.ContentType("missing.png")
	assert.Error(t, err)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("Image/JPEG"))
	assert.False(t, IsImage("application/pdf"))
	assert.False(t, IsImage(""))
}
