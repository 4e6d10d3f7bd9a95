package main

import (
	"context"
	"errors"
	"fmt"

	"studylist/internal/models"
	"studylist/internal/store"
)

const demoUID = "demo-user"

// seedDemoData populates a sample profile and playlists so a fresh
// install has something to browse. Safe to run repeatedly.
func seedDemoData(ctx context.Context, dataStore *store.Store) error {
	if err := ensureDemoProfile(ctx, dataStore); err != nil {
		return err
	}
	return ensureDemoPlaylists(ctx, dataStore)
}

func ensureDemoProfile(ctx context.Context, dataStore *store.Store) error {
	if _, err := dataStore.GetUserProfile(ctx, demoUID); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrProfileNotFound) {
		return fmt.Errorf("check demo profile: %w", err)
	}

	strPtr := func(v string) *string { return &v }
	intPtr := func(v int) *int { return &v }
	tagsPtr := func(v ...string) *[]string { return &v }

	if err := dataStore.UpsertUserProfile(ctx, demoUID, models.ProfileUpdate{
		Email:       strPtr("demo@studylist.local"),
		DisplayName: strPtr("Demo Student"),
		Level:       intPtr(2),
		Subjects:    tagsPtr("Computer Science", "Mathematics"),
		Bio:         strPtr("Sample account seeded for local development."),
	}); err != nil {
		return fmt.Errorf("seed demo profile: %w", err)
	}
	return nil
}

func ensureDemoPlaylists(ctx context.Context, dataStore *store.Store) error {
	existing, err := dataStore.ListPlaylistsByAuthor(ctx, demoUID, true)
	if err != nil {
		return fmt.Errorf("check demo playlists: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	seeds := []models.NewPlaylist{
		{
			Name:        "Intro to Algorithms",
			Description: "A gentle path through the classics.",
			AuthorID:    demoUID,
			AuthorName:  "Demo Student",
			AuthorLevel: 2,
			Items: []models.PlaylistItem{
				{Title: "Big-O in 10 minutes", Type: models.ItemVideo, URL: "https://www.youtube.com/watch?v=g2o22C3CRfU"},
				{Title: "CLRS reading notes", Type: models.ItemNote, Description: "Chapters 1-4, focus on recurrences."},
				{Title: "Sorting visualizer", Type: models.ItemLink, URL: "https://visualgo.net/en/sorting"},
			},
		},
		{
			Name:        "Linear Algebra Refresher",
			Description: "Everything needed before the ML course.",
			AuthorID:    demoUID,
			AuthorName:  "Demo Student",
			AuthorLevel: 2,
			Items: []models.PlaylistItem{
				{Title: "Essence of linear algebra", Type: models.ItemVideo, URL: "https://www.youtube.com/watch?v=fNk_zzaMoSs"},
				{Title: "Matrix cookbook", Type: models.ItemDocument, URL: "https://example.edu/matrixcookbook.pdf"},
			},
		},
	}

	for i := range seeds {
		seeds[i].Items = assignItemIDs(seeds[i].Items)
		if _, err := dataStore.CreatePlaylist(ctx, seeds[i]); err != nil {
			return fmt.Errorf("seed playlist %q: %w", seeds[i].Name, err)
		}
	}
	return nil
}

func assignItemIDs(items []models.PlaylistItem) []models.PlaylistItem {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = fmt.Sprintf("seed-item-%d", i+1)
		}
	}
	return items
}
