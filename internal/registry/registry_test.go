package registry

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/lumen/internal/logger"
	"github.com/alexisbeaulieu97/lumen/internal/theme/themetest"
	lumenerrors "github.com/alexisbeaulieu97/lumen/pkg/errors"
)

func TestRegistryNew(t *testing.T) {
	t.Parallel()

	reg := New()
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Names())
}

func TestRegistryInstallAndResolve(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	reg := New(WithClock(func() time.Time { return fixed }))

	entry, err := reg.Install(themetest.Definition("Dark", "#121212"))
	require.NoError(t, err)
	assert.Equal(t, "Dark", entry.Name())
	assert.Equal(t, uint64(1), entry.Revision)
	assert.Equal(t, fixed, entry.InstalledAt)

	def, err := reg.Resolve("Dark")
	require.NoError(t, err)
	assert.Equal(t, "#121212", def.Colors.Background)
	assert.True(t, reg.Has("Dark"))
}

func TestRegistryResolveUnknown(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Resolve("Nope")

	var nf *lumenerrors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Nope", nf.Name)
	assert.Equal(t, "theme", nf.Kind)
}

func TestRegistryStoresNormalizedCopy(t *testing.T) {
	t.Parallel()

	reg := New()
	def := themetest.Definition("Light", "#FFF")
	_, err := reg.Install(def)
	require.NoError(t, err)

	def.Colors.Background = "#000000"

	stored, err := reg.Resolve("Light")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", stored.Colors.Background)

	// resolved copies are private too
	stored.Colors.Background = "#010101"
	again, err := reg.Resolve("Light")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", again.Colors.Background)
}

func TestRegistryInstallReplaces(t *testing.T) {
	t.Parallel()

	reg := New()
	first, err := reg.Install(themetest.Definition("Dark", "#121212"))
	require.NoError(t, err)
	second, err := reg.Install(themetest.Definition("Dark", "#202020"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Digest, second.Digest)
	assert.Greater(t, second.Revision, first.Revision)
	assert.Equal(t, 1, reg.Len())

	def, err := reg.Resolve("Dark")
	require.NoError(t, err)
	assert.Equal(t, "#202020", def.Colors.Background)
}

func TestRegistryFailedInstallKeepsPrevious(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Install(themetest.Definition("Dark", "#121212"))
	require.NoError(t, err)

	broken := themetest.Definition("Dark", "not-a-colour")
	_, err = reg.Install(broken)

	var ve *lumenerrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "colors.background")

	def, err := reg.Resolve("Dark")
	require.NoError(t, err)
	assert.Equal(t, "#121212", def.Colors.Background)
}

func TestRegistryRemove(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Install(themetest.Definition("Dark", "#121212"))
	require.NoError(t, err)
	_, err = reg.Install(themetest.Definition("Light", "#ffffff"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Dark", "Light"}, reg.Names())
	require.NoError(t, reg.Remove("Dark"))
	assert.Equal(t, []string{"Light"}, reg.Names())

	var nf *lumenerrors.NotFoundError
	assert.True(t, errors.As(reg.Remove("Dark"), &nf))
}

func TestRegistryLogsInstallAndRejection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	reg := New(WithLogger(log))
	_, err = reg.Install(themetest.Definition("Dark", "#121212"))
	require.NoError(t, err)
	_, err = reg.Install(themetest.Definition("Dark", "#131313"))
	require.NoError(t, err)
	_, err = reg.Install(themetest.Definition("", "#121212"))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "theme installed")
	assert.Contains(t, out, "theme replaced")
	assert.Contains(t, out, "theme rejected")
}

func TestRegistryConcurrentAccess(t *testing.T) {
	t.Parallel()

	reg := New()
	_, err := reg.Install(themetest.Definition("Dark", "#121212"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = reg.Install(themetest.Definition("Dark", "#121212"))
		}()
		go func() {
			defer wg.Done()
			_, err := reg.Resolve("Dark")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, reg.Len())
}
