package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsReplaceFlushesOnClose(t *testing.T) {
	st := newTestStore(t)
	svc := NewSettingsService(st, testLogger())
	ctx := context.Background()

	_, err := svc.Replace(ctx, SettingsUpdateRequest{
		Layout:       json.RawMessage(`{"columns":4}`),
		SearchEngine: "duckduckgo",
	})
	require.NoError(t, err)

	// Pending write is visible before the flush lands.
	current, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "duckduckgo", current.SearchEngine)

	// Close drains the pending write to sqlite.
	require.NoError(t, svc.Close())

	stored, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "duckduckgo", stored.SearchEngine)
	assert.JSONEq(t, `{"columns":4}`, string(stored.Layout))
}

func TestSettingsBurstCoalesces(t *testing.T) {
	st := newTestStore(t)
	svc := NewSettingsService(st, testLogger())
	ctx := context.Background()

	for _, engine := range []string{"google", "bing", "kagi"} {
		_, err := svc.Replace(ctx, SettingsUpdateRequest{SearchEngine: engine})
		require.NoError(t, err)
	}
	require.NoError(t, svc.Close())

	// Only the last document of the burst survives.
	stored, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "kagi", stored.SearchEngine)
}

func TestResetFontReferences(t *testing.T) {
	st := newTestStore(t)
	svc := NewSettingsService(st, testLogger())
	ctx := context.Background()

	_, err := svc.Replace(ctx, SettingsUpdateRequest{
		Config: json.RawMessage(`{"titleFont":"Inter","widgets":[{"font":"Inter"},{"font":"Mono"}]}`),
		Theme:  json.RawMessage(`{"accent":"#fff"}`),
	})
	require.NoError(t, err)

	require.NoError(t, svc.ResetFontReferences(ctx, "Inter"))
	require.NoError(t, svc.Close())

	stored, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"titleFont":"","widgets":[{"font":""},{"font":"Mono"}]}`, string(stored.Config))
	assert.JSONEq(t, `{"accent":"#fff"}`, string(stored.Theme))
}

func TestResetFontReferencesNoMatchIsNoop(t *testing.T) {
	st := newTestStore(t)
	svc := NewSettingsService(st, testLogger())
	ctx := context.Background()

	_, err := svc.Replace(ctx, SettingsUpdateRequest{Config: json.RawMessage(`{"titleFont":"Mono"}`)})
	require.NoError(t, err)
	require.NoError(t, svc.ResetFontReferences(ctx, "Inter"))
	require.NoError(t, svc.Close())

	stored, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"titleFont":"Mono"}`, string(stored.Config))
}
