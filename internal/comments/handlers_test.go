// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package comments

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
	comments map[string]*Comment
}

func newFakeRepo(seed ...*Comment) *fakeRepo {
	repo := &fakeRepo{comments: make(map[string]*Comment)}
	for _, comment := range seed {
		repo.comments[comment.ID] = comment
	}
	return repo
}

func (r *fakeRepo) Load(_ context.Context, id string) (*Comment, error) {
	if comment, ok := r.comments[id]; ok {
		copied := *comment
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeRepo) Save(_ context.Context, comment *Comment) error {
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeRepo) FindVisibleForPost(context.Context, string, pagination.Params) ([]Comment, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) FindForBlogOwner(context.Context, string, pagination.Params) ([]Comment, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) AllByCommentatorForBlog(_ context.Context, userID, blogID string) ([]Comment, error) {
	matched := make([]Comment, 0)
	for _, comment := range r.comments {
		if comment.CommentatorID == userID && comment.BlogID == blogID {
			matched = append(matched, *comment)
		}
	}
	return matched, nil
}

// fakePosts is a fixed post directory.
type fakePosts struct {
	posts map[string][4]string // id -> {blogID, blogName, blogOwnerID, title}
}

func (d *fakePosts) PostOf(_ context.Context, postID string) (string, string, string, string, error) {
	if info, ok := d.posts[postID]; ok {
		return info[0], info[1], info[2], info[3], nil
	}
	return "", "", "", "", dberr.ErrNotFound
}

// fakeBans marks user/blog pairs as banned.
type fakeBans struct {
	banned map[string]bool // blogID + "/" + userID
}

func (d *fakeBans) UserBannedOn(_ context.Context, blogID, userID string) (bool, error) {
	return d.banned[blogID+"/"+userID], nil
}

func seedComment(id, blogID, commentatorID string) *Comment {
	return &Comment{
		ID:               id,
		PostID:           "post-1",
		BlogID:           blogID,
		BlogName:         "Field Notes",
		BlogOwnerID:      "owner-1",
		PostTitle:        "First post",
		CommentatorID:    commentatorID,
		CommentatorLogin: "alice",
		Content:          "a comment long enough to pass",
		CreatedAt:        time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newTestHandlers(repo *fakeRepo) *Handlers {
	return NewHandlers(repo,
		&fakePosts{posts: map[string][4]string{"post-1": {"blog-1", "Field Notes", "owner-1", "First post"}}},
		&fakeBans{banned: map[string]bool{"blog-1/pariah": true}},
	)
}

/*
TestCreateCommentDenormalizesParentage verifies the post's title and blog
identity are captured on the comment at creation time.
*/
func TestCreateCommentDenormalizesParentage(t *testing.T) {
	repo := newFakeRepo()
	handlers := newTestHandlers(repo)

	commentID, err := handlers.CreateComment(context.Background(), command.CreateComment{
		PostID:    "post-1",
		UserID:    "user-2",
		UserLogin: "bob",
		Content:   "a comment long enough to pass",
	})

	require.NoError(t, err)
	comment := repo.comments[commentID]
	require.NotNil(t, comment)
	assert.Equal(t, "blog-1", comment.BlogID)
	assert.Equal(t, "Field Notes", comment.BlogName)
	assert.Equal(t, "owner-1", comment.BlogOwnerID)
	assert.Equal(t, "First post", comment.PostTitle)
	assert.Equal(t, "bob", comment.CommentatorLogin)
	assert.True(t, comment.IsVisible())
}

/*
TestCreateCommentGuards verifies the unknown-post and banned-commentator
surfaces.
*/
func TestCreateCommentGuards(t *testing.T) {
	handlers := newTestHandlers(newFakeRepo())

	_, err := handlers.CreateComment(context.Background(), command.CreateComment{
		PostID: "ghost",
		UserID: "user-2",
	})
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = handlers.CreateComment(context.Background(), command.CreateComment{
		PostID: "post-1",
		UserID: "pariah",
	})
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

/*
TestUpdateCommentAuthorGuards verifies the existence, visibility and
authorship surfaces of comment editing.
*/
func TestUpdateCommentAuthorGuards(t *testing.T) {
	hidden := seedComment("comment-2", "blog-1", "user-2")
	hidden.SetCommentatorBan(true)
	repo := newFakeRepo(seedComment("comment-1", "blog-1", "user-2"), hidden)
	handlers := newTestHandlers(repo)

	tests := []struct {
		name      string
		commentID string
		actorID   string
		wantCode  string
	}{
		{name: "unknown comment", commentID: "ghost", actorID: "user-2", wantCode: "NOT_FOUND"},
		{name: "hidden comment, even for its author", commentID: "comment-2", actorID: "user-2", wantCode: "NOT_FOUND"},
		{name: "foreign comment", commentID: "comment-1", actorID: "intruder", wantCode: "FORBIDDEN"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := handlers.UpdateComment(context.Background(), command.UpdateComment{
				CommentID: test.commentID,
				ActorID:   test.actorID,
				Content:   "replacement content of valid length",
			})
			require.NotNil(t, apperr.As(err))
			assert.Equal(t, test.wantCode, apperr.As(err).Code)
		})
	}

	require.NoError(t, handlers.UpdateComment(context.Background(), command.UpdateComment{
		CommentID: "comment-1",
		ActorID:   "user-2",
		Content:   "replacement content of valid length",
	}))
	assert.Equal(t, "replacement content of valid length", repo.comments["comment-1"].Content)
}

/*
TestBanCommentsByCommentatorScopesToBlog verifies the per-blog ban hides the
user's comments on that blog only and round-trips with reactions intact.
*/
func TestBanCommentsByCommentatorScopesToBlog(t *testing.T) {
	onBlog := seedComment("comment-1", "blog-1", "user-2")
	onBlog.React("user-3", "carol", reactions.Like, time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC))
	elsewhere := seedComment("comment-2", "blog-9", "user-2")
	byOther := seedComment("comment-3", "blog-1", "user-3")
	repo := newFakeRepo(onBlog, elsewhere, byOther)
	handlers := newTestHandlers(repo)

	require.NoError(t, handlers.BanCommentsByCommentator(context.Background(), command.BanCommentsByCommentator{
		UserID:   "user-2",
		BlogID:   "blog-1",
		IsBanned: true,
	}))

	assert.False(t, repo.comments["comment-1"].IsVisible())
	assert.True(t, repo.comments["comment-2"].IsVisible(), "other blogs are untouched")
	assert.True(t, repo.comments["comment-3"].IsVisible(), "other commentators are untouched")

	require.NoError(t, handlers.BanCommentsByCommentator(context.Background(), command.BanCommentsByCommentator{
		UserID:   "user-2",
		BlogID:   "blog-1",
		IsBanned: false,
	}))

	restored := repo.comments["comment-1"]
	assert.True(t, restored.IsVisible())
	assert.Equal(t, 1, restored.Likes.Likes(), "reactions survive the ban round-trip")
}

/*
TestBanCommentHidesFromReactions verifies an admin-banned comment answers
NotFound to reaction attempts while staying directly addressable for the
unban.
*/
func TestBanCommentHidesFromReactions(t *testing.T) {
	repo := newFakeRepo(seedComment("comment-1", "blog-1", "user-2"))
	handlers := newTestHandlers(repo)

	require.NoError(t, handlers.BanComment(context.Background(), command.BanComment{
		CommentID: "comment-1",
		IsBanned:  true,
	}))

	err := handlers.UpdateCommentLikeStatus(context.Background(), command.UpdateCommentLikeStatus{
		CommentID:  "comment-1",
		UserID:     "user-3",
		UserLogin:  "carol",
		LikeStatus: reactions.Like,
	})
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	require.NoError(t, handlers.BanComment(context.Background(), command.BanComment{
		CommentID: "comment-1",
		IsBanned:  false,
	}))
	assert.True(t, repo.comments["comment-1"].IsVisible())
}

/*
TestDeleteCommentAuthorOnly verifies only the author may delete and the
document is gone afterwards.
*/
func TestDeleteCommentAuthorOnly(t *testing.T) {
	repo := newFakeRepo(seedComment("comment-1", "blog-1", "user-2"))
	handlers := newTestHandlers(repo)

	err := handlers.DeleteComment(context.Background(), command.DeleteComment{
		CommentID: "comment-1",
		ActorID:   "intruder",
	})
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, handlers.DeleteComment(context.Background(), command.DeleteComment{
		CommentID: "comment-1",
		ActorID:   "user-2",
	}))
	assert.NotContains(t, repo.comments, "comment-1")
}
