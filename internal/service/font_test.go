package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/launchdeckapp/launchdeck-server/internal/errors"
)

func TestFontLifecycle(t *testing.T) {
	st := newTestStore(t)
	settings := NewSettingsService(st, testLogger())
	t.Cleanup(func() { settings.Close() })
	svc := NewFontService(st, settings, testLogger())
	ctx := context.Background()

	font, err := svc.Create(ctx, CreateFontRequest{
		Name:     "Inter",
		Family:   "Inter",
		URL:      "https://fonts.example.com/inter.woff2",
		Provider: "custom",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, font.ID)

	fonts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, fonts, 1)

	require.NoError(t, svc.Delete(ctx, font.ID))
	fonts, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, fonts)

	err = svc.Delete(ctx, font.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestFontDeleteResetsSettingsReference(t *testing.T) {
	st := newTestStore(t)
	settings := NewSettingsService(st, testLogger())
	svc := NewFontService(st, settings, testLogger())
	ctx := context.Background()

	_, err := settings.Replace(ctx, SettingsUpdateRequest{
		Config: json.RawMessage(`{"titleFont":"Inter"}`),
	})
	require.NoError(t, err)

	font, err := svc.Create(ctx, CreateFontRequest{Name: "Inter", Family: "Inter"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, font.ID))
	require.NoError(t, settings.Close())

	stored, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"titleFont":""}`, string(stored.Config))
}

func TestFontValidation(t *testing.T) {
	st := newTestStore(t)
	settings := NewSettingsService(st, testLogger())
	t.Cleanup(func() { settings.Close() })
	svc := NewFontService(st, settings, testLogger())

	_, err := svc.Create(context.Background(), CreateFontRequest{Name: "X"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
