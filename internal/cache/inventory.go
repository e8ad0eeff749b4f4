package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix     = "profile:user:%d"
	ProfilesListKey      = "profiles:all"
	GithubReposKeyPrefix = "github:repos:%s"
	PostKeyPrefix        = "post:%d"
	PostsListKey         = "posts:all"
)

const (
	ProfileTTL     = 5 * time.Minute
	ProfileListTTL = 1 * time.Minute
	GithubReposTTL = 10 * time.Minute
	PostTTL        = 2 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func GithubReposKey(username string) string {
	return fmt.Sprintf(GithubReposKeyPrefix, username)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client == nil {
		return
	}
	for _, key := range keys {
		client.Del(ctx, key)
	}
}

// InvalidateProfile drops the per-user profile entry and the list view that
// embeds it.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID), ProfilesListKey)
}

// InvalidatePost drops the per-post entry and the feed view.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID), PostsListKey)
}
