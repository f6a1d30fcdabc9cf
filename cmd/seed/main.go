// Command seed fills the configured store with a demo user, communities,
// posts and comments. Running it again skips what already exists.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
	"github.com/emilythestrangee/discuss/backend/internal/auth"
	"github.com/emilythestrangee/discuss/backend/internal/config"
	"github.com/emilythestrangee/discuss/backend/internal/forum"
	"github.com/emilythestrangee/discuss/backend/internal/handlers"
	"github.com/emilythestrangee/discuss/backend/internal/models"
	"github.com/emilythestrangee/discuss/backend/internal/server"
)

type seedPost struct {
	community string
	title     string
	content   string
	comments  []string
}

var (
	seedCommunities = []struct{ name, description string }{
		{"technology", "All things tech"},
		{"programming", "Code, tools and craft"},
		{"funny", "Things that made you laugh"},
		{"askreddit", "Ask and answer thought-provoking questions"},
	}

	seedPosts = []seedPost{
		{
			community: "technology",
			title:     "Just built my first React app!",
			content:   "After weeks of learning, I finally built my first **React** app. It was a challenge but totally worth it.",
			comments:  []string{"Congrats! What did you build?", "React hooks make it so much nicer."},
		},
		{
			community: "programming",
			title:     "What's your favorite programming language?",
			content:   "I've been coding for a few years and I'm curious what everyone prefers and why.",
			comments:  []string{"Go, for the tooling alone."},
		},
		{
			community: "funny",
			title:     "My code worked on the first try",
			content:   "I don't trust it.",
		},
		{
			community: "askreddit",
			title:     "What's the best advice you've ever received?",
			content:   "Looking for some wisdom today.",
			comments:  []string{"Read the error message."},
		},
	}
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	cfg := config.Load()

	store, closeStore, err := server.OpenStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer closeStore()

	srv, err := server.New(cfg, store)
	if err != nil {
		log.Fatalf("Failed to wire services: %v", err)
	}
	if err := seed(context.Background(), srv.Services()); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("✅ Seed data ready (login: testuser / password123)")
}

func seed(ctx context.Context, s handlers.Services) error {
	id, err := seedUser(ctx, s.Accounts)
	if err != nil {
		return err
	}

	communities, err := seedCommunityIDs(ctx, s.Communities, id)
	if err != nil {
		return err
	}

	existing, err := s.Content.ListUserPosts(ctx, id.Username)
	if err != nil {
		return err
	}
	titles := make(map[string]bool, len(existing))
	for _, p := range existing {
		titles[p.Title] = true
	}

	for _, sp := range seedPosts {
		if titles[sp.title] {
			continue
		}
		post, err := s.Content.CreatePost(ctx, id, forum.NewPost{
			Title:       sp.title,
			Content:     sp.content,
			CommunityID: communities[sp.community],
		})
		if err != nil {
			return err
		}
		for _, text := range sp.comments {
			if _, err := s.Content.CreateComment(ctx, id, post.ID, text, nil); err != nil {
				return err
			}
		}
		if err := s.Ledger.CastVote(ctx, id, models.PostTarget(post.ID), models.Upvote); err != nil {
			return err
		}
		log.Printf("created post %q", sp.title)
	}
	return nil
}

func seedUser(ctx context.Context, accounts *forum.Accounts) (auth.Identity, error) {
	resp, err := accounts.Register(ctx, "testuser", "test@example.com", "password123")
	if apperr.IsKind(err, apperr.KindConflict) {
		resp, err = accounts.Authenticate(ctx, "testuser", "password123")
	}
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{UserID: resp.User.ID, Username: resp.User.Username}, nil
}

func seedCommunityIDs(ctx context.Context, registry *forum.Communities, id auth.Identity) (map[string]int, error) {
	list, err := registry.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int, len(list))
	for _, c := range list {
		ids[c.Name] = c.ID
	}

	for _, sc := range seedCommunities {
		if _, ok := ids[sc.name]; ok {
			continue
		}
		c, err := registry.Create(ctx, id, sc.name, sc.description)
		if err != nil {
			return nil, err
		}
		ids[c.Name] = c.ID
		log.Printf("created subreddit %q", c.Name)
	}
	return ids, nil
}
