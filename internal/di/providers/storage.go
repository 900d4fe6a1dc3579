package providers

import (
	"github.com/samber/do/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/config"
	"github.com/launchdeckapp/launchdeck-server/internal/media/icons"
	"github.com/launchdeckapp/launchdeck-server/internal/media/wallpapers"
)

// MediaStorages groups the on-disk media stores.
type MediaStorages struct {
	Icons      *icons.Storage
	Wallpapers *wallpapers.Storage
}

// ProvideMediaStorages provides the icon and wallpaper file stores.
func ProvideMediaStorages(i do.Injector) (*MediaStorages, error) {
	cfg := do.MustInvoke[*config.Config](i)

	iconStorage, err := icons.NewStorage(cfg.IconsPath())
	if err != nil {
		return nil, err
	}

	wpStorage, err := wallpapers.NewStorage(cfg.WallpapersPath())
	if err != nil {
		return nil, err
	}

	return &MediaStorages{Icons: iconStorage, Wallpapers: wpStorage}, nil
}
