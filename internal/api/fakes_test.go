package api

import (
	"context"
	"sort"
	"strings"

	"github.com/pulse-social/pulse/internal/db"
	"github.com/pulse-social/pulse/internal/models"
)

// In-memory repositories for handler tests. They honor the same
// contracts as the gorm-backed implementations: Get methods return
// (nil, nil) on miss, duplicate inserts return db.ErrDuplicate.

type fakeUsers struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{users: make(map[int64]*models.User)}
	for _, u := range users {
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return db.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

type followEdge struct {
	follower, following int64
}

type fakeFollows struct {
	edges map[followEdge]bool
}

func newFakeFollows() *fakeFollows {
	return &fakeFollows{edges: make(map[followEdge]bool)}
}

func (f *fakeFollows) Create(_ context.Context, followerID, followingID int64) error {
	edge := followEdge{followerID, followingID}
	if f.edges[edge] {
		return db.ErrDuplicate
	}
	f.edges[edge] = true
	return nil
}

func (f *fakeFollows) Delete(_ context.Context, followerID, followingID int64) (bool, error) {
	edge := followEdge{followerID, followingID}
	if !f.edges[edge] {
		return false, nil
	}
	delete(f.edges, edge)
	return true, nil
}

func (f *fakeFollows) Exists(_ context.Context, followerID, followingID int64) (bool, error) {
	return f.edges[followEdge{followerID, followingID}], nil
}

func (f *fakeFollows) CountFollowing(_ context.Context, userID int64) (int64, error) {
	var count int64
	for edge := range f.edges {
		if edge.follower == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFollows) CountFollowers(_ context.Context, userID int64) (int64, error) {
	var count int64
	for edge := range f.edges {
		if edge.following == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFollows) FollowingIDs(_ context.Context, userID int64) ([]int64, error) {
	var ids []int64
	for edge := range f.edges {
		if edge.follower == userID {
			ids = append(ids, edge.following)
		}
	}
	return ids, nil
}

type fakePosts struct {
	posts   map[int64]*models.Post
	follows *fakeFollows
	nextID  int64
}

func newFakePosts(follows *fakeFollows, posts ...*models.Post) *fakePosts {
	f := &fakePosts{posts: make(map[int64]*models.Post), follows: follows}
	for _, p := range posts {
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakePosts) Create(_ context.Context, post *models.Post) error {
	f.nextID++
	post.ID = f.nextID
	f.posts[post.ID] = post
	return nil
}

func (f *fakePosts) GetByID(_ context.Context, id int64) (*models.Post, error) {
	return f.posts[id], nil
}

func (f *fakePosts) Update(_ context.Context, post *models.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakePosts) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.posts[id]; !ok {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

func (f *fakePosts) List(_ context.Context, opts db.ListPostsOptions) ([]*models.Post, int64, error) {
	var matched []*models.Post
	for _, p := range f.posts {
		if opts.AuthorID != 0 && p.AuthorID != opts.AuthorID {
			continue
		}
		if opts.Search != "" {
			needle := strings.ToLower(opts.Search)
			if !strings.Contains(strings.ToLower(p.Title), needle) &&
				!strings.Contains(strings.ToLower(p.Content), needle) {
				continue
			}
		}
		matched = append(matched, p)
	}
	sortNewestFirst(matched)
	return pagePosts(matched, opts.Limit, opts.Offset), int64(len(matched)), nil
}

func (f *fakePosts) Feed(ctx context.Context, userID int64, limit, offset int) ([]*models.Post, int64, error) {
	ids, _ := f.follows.FollowingIDs(ctx, userID)
	followed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		followed[id] = true
	}

	var matched []*models.Post
	for _, p := range f.posts {
		if followed[p.AuthorID] {
			matched = append(matched, p)
		}
	}
	sortNewestFirst(matched)
	return pagePosts(matched, limit, offset), int64(len(matched)), nil
}

func sortNewestFirst(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func pagePosts(posts []*models.Post, limit, offset int) []*models.Post {
	if offset >= len(posts) {
		return nil
	}
	posts = posts[offset:]
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}

type likeEdge struct {
	user, post int64
}

type fakeLikes struct {
	likes map[likeEdge]bool
}

func newFakeLikes() *fakeLikes {
	return &fakeLikes{likes: make(map[likeEdge]bool)}
}

func (f *fakeLikes) Create(_ context.Context, userID, postID int64) (*models.Like, error) {
	edge := likeEdge{userID, postID}
	if f.likes[edge] {
		return nil, db.ErrDuplicate
	}
	f.likes[edge] = true
	return &models.Like{UserID: userID, PostID: postID}, nil
}

func (f *fakeLikes) Delete(_ context.Context, userID, postID int64) (bool, error) {
	edge := likeEdge{userID, postID}
	if !f.likes[edge] {
		return false, nil
	}
	delete(f.likes, edge)
	return true, nil
}

func (f *fakeLikes) CountByPost(_ context.Context, postID int64) (int64, error) {
	var count int64
	for edge := range f.likes {
		if edge.post == postID {
			count++
		}
	}
	return count, nil
}

type fakeComments struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newFakeComments() *fakeComments {
	return &fakeComments{comments: make(map[int64]*models.Comment)}
}

func (f *fakeComments) Create(_ context.Context, comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeComments) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	return f.comments[id], nil
}

func (f *fakeComments) Update(_ context.Context, comment *models.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.comments[id]; !ok {
		return false, nil
	}
	delete(f.comments, id)
	return true, nil
}

func (f *fakeComments) ListByPost(_ context.Context, postID int64, limit, offset int) ([]*models.Comment, int64, error) {
	var matched []*models.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

type fakeNotifs struct {
	notifs []*models.Notification
	nextID int64
}

func newFakeNotifs() *fakeNotifs {
	return &fakeNotifs{}
}

func (f *fakeNotifs) Create(_ context.Context, notif *models.Notification) error {
	f.nextID++
	notif.ID = f.nextID
	f.notifs = append(f.notifs, notif)
	return nil
}

func (f *fakeNotifs) ListByRecipient(_ context.Context, recipientID int64, limit, offset int) ([]*models.Notification, int64, error) {
	var matched []*models.Notification
	for _, n := range f.notifs {
		if n.RecipientID == recipientID {
			matched = append(matched, n)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeNotifs) CountUnread(_ context.Context, recipientID int64) (int64, error) {
	var count int64
	for _, n := range f.notifs {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotifs) MarkAllRead(_ context.Context, recipientID int64) (int64, error) {
	var updated int64
	for _, n := range f.notifs {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}
