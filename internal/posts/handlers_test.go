// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package posts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkravets/inkwell/internal/command"
	"github.com/dkravets/inkwell/internal/platform/apperr"
	"github.com/dkravets/inkwell/internal/platform/dberr"
	"github.com/dkravets/inkwell/internal/reactions"
	"github.com/dkravets/inkwell/pkg/pagination"
)

// fakeRepo is an in-memory [Repository].
type fakeRepo struct {
	posts map[string]*Post
}

func newFakeRepo(seed ...*Post) *fakeRepo {
	repo := &fakeRepo{posts: make(map[string]*Post)}
	for _, post := range seed {
		repo.posts[post.ID] = post
	}
	return repo
}

func (r *fakeRepo) Load(_ context.Context, id string) (*Post, error) {
	if post, ok := r.posts[id]; ok {
		copied := *post
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepo) Save(_ context.Context, post *Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakeRepo) FindVisible(context.Context, pagination.Params) ([]Post, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) FindVisibleForBlog(context.Context, string, pagination.Params) ([]Post, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) AllForBlog(_ context.Context, blogID string) ([]Post, error) {
	matched := make([]Post, 0)
	for _, post := range r.posts {
		if post.BlogID == blogID {
			matched = append(matched, *post)
		}
	}
	return matched, nil
}

func (r *fakeRepo) DeleteAllForBlog(_ context.Context, blogID string) error {
	for id, post := range r.posts {
		if post.BlogID == blogID {
			delete(r.posts, id)
		}
	}
	return nil
}

func (r *fakeRepo) PostOf(_ context.Context, postID string) (string, string, string, string, error) {
	post, ok := r.posts[postID]
	if !ok || post.IsBanned {
		return "", "", "", "", dberr.ErrNotFound
	}
	return post.BlogID, post.BlogName, post.BlogOwnerID, post.Title, nil
}

// fakeBlogs is a fixed blog directory.
type fakeBlogs struct {
	blogs map[string][2]string // id -> {name, ownerID}
}

func (d *fakeBlogs) InfoOf(_ context.Context, blogID string) (string, string, error) {
	if info, ok := d.blogs[blogID]; ok {
		return info[0], info[1], nil
	}
	return "", "", dberr.ErrNotFound
}

func seedPost(id, blogID, ownerID string) *Post {
	return &Post{
		ID:          id,
		BlogID:      blogID,
		BlogName:    "Field Notes",
		BlogOwnerID: ownerID,
		Title:       "First post",
		Content:     "hello",
		CreatedAt:   time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}
}

/*
TestCreatePostDenormalizesBlogIdentity verifies blog name and owner are
captured at creation time.
*/
func TestCreatePostDenormalizesBlogIdentity(t *testing.T) {
	repo := newFakeRepo()
	handlers := NewHandlers(repo, &fakeBlogs{blogs: map[string][2]string{"blog-1": {"Field Notes", "user-1"}}})

	postID, err := handlers.CreatePost(context.Background(), command.CreatePost{
		BlogID:  "blog-1",
		ActorID: "user-1",
		Title:   "Hello",
		Content: "first",
	})

	require.NoError(t, err)
	post := repo.posts[postID]
	require.NotNil(t, post)
	assert.Equal(t, "Field Notes", post.BlogName)
	assert.Equal(t, "user-1", post.BlogOwnerID)
	assert.False(t, post.IsBanned)
}

/*
TestCreatePostGuards verifies the foreign-blog and missing-blog surfaces.
*/
func TestCreatePostGuards(t *testing.T) {
	handlers := NewHandlers(newFakeRepo(), &fakeBlogs{blogs: map[string][2]string{"blog-1": {"Field Notes", "user-1"}}})

	_, err := handlers.CreatePost(context.Background(), command.CreatePost{BlogID: "ghost", ActorID: "user-1"})
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = handlers.CreatePost(context.Background(), command.CreatePost{BlogID: "blog-1", ActorID: "intruder"})
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestEditPostUnderWrongBlogIsNotFound verifies that addressing a post through
a blog it does not belong to hides its existence rather than revealing it
with a 403.
*/
func TestEditPostUnderWrongBlogIsNotFound(t *testing.T) {
	repo := newFakeRepo(seedPost("post-1", "blog-1", "user-1"))
	handlers := NewHandlers(repo, &fakeBlogs{})

	err := handlers.EditPost(context.Background(), command.EditPost{
		BlogID:  "blog-2",
		PostID:  "post-1",
		ActorID: "user-1",
		Title:   "x",
	})

	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestBanPostsForBlogRoundTrip verifies the cascade flips visibility on every
post of the blog and only that blog, preserving content and reactions.
*/
func TestBanPostsForBlogRoundTrip(t *testing.T) {
	first := seedPost("post-1", "blog-1", "user-1")
	first.React("u2", "bob", reactions.Like, time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC))
	second := seedPost("post-2", "blog-1", "user-1")
	other := seedPost("post-3", "blog-2", "user-9")
	repo := newFakeRepo(first, second, other)
	handlers := NewHandlers(repo, &fakeBlogs{})

	require.NoError(t, handlers.BanPostsForBlog(context.Background(), command.BanPostsForBlog{
		BlogID:   "blog-1",
		IsBanned: true,
	}))

	assert.True(t, repo.posts["post-1"].IsBanned)
	assert.True(t, repo.posts["post-2"].IsBanned)
	assert.False(t, repo.posts["post-3"].IsBanned, "other blogs are untouched")

	require.NoError(t, handlers.BanPostsForBlog(context.Background(), command.BanPostsForBlog{
		BlogID:   "blog-1",
		IsBanned: false,
	}))

	restored := repo.posts["post-1"]
	assert.False(t, restored.IsBanned)
	assert.Equal(t, "First post", restored.Title)
	assert.Equal(t, 1, restored.Likes.Likes(), "reactions survive the ban round-trip")
}

/*
TestUpdatePostLikeStatusOnHiddenPost verifies that reacting to a post under a
banned blog answers NotFound, the same surface an anonymous reader sees.
*/
func TestUpdatePostLikeStatusOnHiddenPost(t *testing.T) {
	hidden := seedPost("post-1", "blog-1", "user-1")
	hidden.SetParentBan(true)
	handlers := NewHandlers(newFakeRepo(hidden), &fakeBlogs{})

	err := handlers.UpdatePostLikeStatus(context.Background(), command.UpdatePostLikeStatus{
		PostID:     "post-1",
		UserID:     "u2",
		UserLogin:  "bob",
		LikeStatus: reactions.Like,
	})

	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestPostViewProjectsExtendedLikes verifies the reader projection: counts,
viewer status and the newest-likes window.
*/
func TestPostViewProjectsExtendedLikes(t *testing.T) {
	post := seedPost("post-1", "blog-1", "user-1")
	base := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	post.React("u2", "bob", reactions.Like, base)
	post.React("u3", "carol", reactions.Like, base.Add(time.Minute))
	post.React("u4", "dave", reactions.Dislike, base.Add(2*time.Minute))

	view := NewPostView(post, "u4")

	assert.Equal(t, 2, view.ExtendedLikesInfo.LikesCount)
	assert.Equal(t, 1, view.ExtendedLikesInfo.DislikesCount)
	assert.Equal(t, reactions.Dislike, view.ExtendedLikesInfo.MyStatus)
	require.Len(t, view.ExtendedLikesInfo.NewestLikes, 2)
	assert.Equal(t, "carol", view.ExtendedLikesInfo.NewestLikes[0].Login)
	assert.Equal(t, "bob", view.ExtendedLikesInfo.NewestLikes[1].Login)

	anonymous := NewPostView(post, "")
	assert.Equal(t, reactions.None, anonymous.ExtendedLikesInfo.MyStatus)
}
