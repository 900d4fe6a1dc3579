package domain

import "time"

// WallpaperType discriminates Bing daily images from user uploads.
type WallpaperType string

// Wallpaper types.
const (
	WallpaperTypeBing   WallpaperType = "bing"
	WallpaperTypeCustom WallpaperType = "custom"
)

// Wallpaper is a background image record. URL is the locally served path;
// the backing file lives under wallpapers/{type}/{filename}.
type Wallpaper struct {
	ID        string        `json:"id"`
	URL       string        `json:"url"`
	Type      WallpaperType `json:"type"`
	Filename  string        `json:"filename"`
	Size      int64         `json:"size"`
	Blurhash  string        `json:"blurhash,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}
