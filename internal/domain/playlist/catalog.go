package playlist

import "github.com/osa030/relaxbox/internal/domain/track"

// defaultTracks is the built-in relaxation catalog.
var defaultTracks = []track.Track{
	{
		Title:    "Relaxing Sleep Music + Insomnia",
		Artist:   "The Soul of Wind",
		Duration: "3:05:48",
		URL:      "https://www.youtube.com/watch?v=V1RPi2MYptM",
		Category: "Nature",
		Cover:    "https://synctuition.com/wp-content/uploads/2021/08/Webp.net-compress-image-35.jpg",
	},
	{
		Title:    "Krishna Flute Music",
		Artist:   "Nova Gujrati",
		Duration: "1:00:05",
		URL:      "https://youtu.be/5jca-sWgemI?si=RjDtkBSqJpB0KSk2",
		Category: "Nature",
		Cover:    "https://i.pinimg.com/736x/79/b2/a0/79b2a04e3d2159d20f833cba0878fe2a.jpg",
	},
	{
		Title:    "Beautiful Relaxing Music with Piano, Guitar & Bird Sounds",
		Artist:   "Peder B. Helland",
		Duration: "3:03:39",
		URL:      "https://youtu.be/hlWiI4xVXKY?si=8qVFNl39TfvKgQHw",
		Category: "Meditation",
		Cover:    "https://www.nwf.org/-/media/NEW-WEBSITE/Shared-Folder/Magazines/2024/Spring/GALBATROSS-Eastern-bluebirds-SPRING24-960x630.jpg",
	},
	{
		Title:    "Relaxing Music for Focus, Sleep & Relaxation",
		Artist:   "Peder B. Helland",
		Duration: "58:41",
		URL:      "https://youtu.be/lCOF9LN_Zxs?si=tcIRFFmTy03pDiMP",
		Category: "Meditation",
		Cover:    "wallpaperflare.com_wallpaper.jpg",
	},
	{
		Title:    "Beautiful Meditation Music",
		Artist:   "Peder B. Helland",
		Duration: "37:54",
		URL:      "https://youtu.be/zLH3iZKvhKg?si=fkSSPkhwu-r_tFeV",
		Category: "Meditation",
		Cover:    "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcTukUe2b_4EuOEN8B1SfFlhDm1F_NP_N8huFg&s",
	},
}

// Default returns the built-in catalog.
func Default() *Playlist {
	return MustNew(defaultTracks)
}
