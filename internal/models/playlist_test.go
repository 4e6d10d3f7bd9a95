package models

import "testing"

func TestPlaylistItemBody(t *testing.T) {
	tests := []struct {
		name string
		item PlaylistItem
		want string
	}{
		{name: "description only", item: PlaylistItem{Description: "chapter summary"}, want: "chapter summary"},
		{name: "legacy notes only", item: PlaylistItem{Notes: "old notes"}, want: "old notes"},
		{name: "description wins over notes", item: PlaylistItem{Description: "new", Notes: "old"}, want: "new"},
		{name: "both empty", item: PlaylistItem{}, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.Body(); got != tc.want {
				t.Fatalf("Body() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPlaylistLikedByUser(t *testing.T) {
	playlist := &Playlist{LikedBy: []string{"u1", "u2"}}

	if !playlist.LikedByUser("u1") {
		t.Fatal("expected u1 to be in the liked-by set")
	}
	if playlist.LikedByUser("u3") {
		t.Fatal("did not expect u3 in the liked-by set")
	}
	if (&Playlist{}).LikedByUser("u1") {
		t.Fatal("empty set should not match")
	}
}
