// Package repotest provides in-memory implementations of the repository
// interfaces for use in tests.
package repotest

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// clock hands out strictly increasing timestamps so ordering is deterministic
type clock struct {
	mu   sync.Mutex
	next time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.next.IsZero() {
		c.next = time.Date(2022, time.October, 1, 12, 0, 0, 0, time.UTC)
	}
	c.next = c.next.Add(time.Second)
	return c.next
}

func notFound(kind string) error {
	return fmt.Errorf("%s: %w", kind, repositories.ErrNotFound)
}

func parseID(kind, id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s id %q: %w", kind, id, repositories.ErrInvalidID)
	}
	return objID, nil
}

// Store bundles one fake per repository
type Store struct {
	Users     *Users
	Follows   *Follows
	Freets    *Freets
	Profiles  *Profiles
	Bookmarks *Bookmarks
	Tags      *Tags
}

func NewStore() *Store {
	c := &clock{}
	return &Store{
		Users:     &Users{byID: map[uint]models.User{}},
		Follows:   &Follows{},
		Freets:    &Freets{clock: c},
		Profiles:  &Profiles{clock: c},
		Bookmarks: &Bookmarks{clock: c},
		Tags:      &Tags{},
	}
}

// Users is an in-memory repositories.UserRepository
type Users struct {
	mu     sync.Mutex
	byID   map[uint]models.User
	nextID uint
	// Err, when set, is returned by every call
	Err error
}

var _ repositories.UserRepository = (*Users)(nil)

func (u *Users) CreateUser(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	for _, existing := range u.byID {
		if existing.Username == user.Username {
			return fmt.Errorf("duplicate username %q", user.Username)
		}
	}
	u.nextID++
	user.ID = u.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	u.byID[user.ID] = *user
	return nil
}

func (u *Users) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	user, ok := u.byID[id]
	if !ok {
		return nil, notFound("user")
	}
	return &user, nil
}

func (u *Users) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	for _, user := range u.byID {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, notFound("user")
}

func (u *Users) GetUserByFirebaseUID(_ context.Context, firebaseUID string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	for _, user := range u.byID {
		if user.FirebaseUID != nil && *user.FirebaseUID == firebaseUID {
			return &user, nil
		}
	}
	return nil, notFound("user")
}

func (u *Users) GetUsersByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	users := []models.User{}
	for _, id := range ids {
		if user, ok := u.byID[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (u *Users) UpdateUser(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	if _, ok := u.byID[user.ID]; !ok {
		return notFound("user")
	}
	user.UpdatedAt = time.Now()
	u.byID[user.ID] = *user
	return nil
}

func (u *Users) DeleteUser(_ context.Context, id uint) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	if _, ok := u.byID[id]; !ok {
		return notFound("user")
	}
	delete(u.byID, id)
	return nil
}

// Follows is an in-memory repositories.FollowRepository. Like the real
// store it accepts duplicate edges.
type Follows struct {
	mu    sync.Mutex
	edges []models.Follow
	Err   error
}

var _ repositories.FollowRepository = (*Follows)(nil)

// Len reports how many edges are stored
func (f *Follows) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.edges)
}

func (f *Follows) CreateFollow(_ context.Context, follow *models.Follow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	follow.ID = primitive.NewObjectID()
	f.edges = append(f.edges, *follow)
	return nil
}

func (f *Follows) GetFollowByID(_ context.Context, id string) (*models.Follow, error) {
	objID, err := parseID("follow", id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	for _, e := range f.edges {
		if e.ID == objID {
			return &e, nil
		}
	}
	return nil, notFound("follow")
}

func (f *Follows) GetFollowByPair(_ context.Context, followerID, followeeID uint) (*models.Follow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	for _, e := range f.edges {
		if e.FollowerID == followerID && e.FolloweeID == followeeID {
			return &e, nil
		}
	}
	return nil, notFound("follow")
}

func (f *Follows) filter(keep func(models.Follow) bool) []models.Follow {
	out := []models.Follow{}
	for _, e := range f.edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f *Follows) GetFollowsByFollowerID(_ context.Context, followerID uint) ([]models.Follow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.filter(func(e models.Follow) bool { return e.FollowerID == followerID }), nil
}

func (f *Follows) GetFollowsByFolloweeID(_ context.Context, followeeID uint) ([]models.Follow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.filter(func(e models.Follow) bool { return e.FolloweeID == followeeID }), nil
}

func (f *Follows) DeleteFollow(_ context.Context, followerID, followeeID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	before := len(f.edges)
	f.edges = f.filter(func(e models.Follow) bool {
		return !(e.FollowerID == followerID && e.FolloweeID == followeeID)
	})
	return len(f.edges) < before, nil
}

func (f *Follows) DeleteFollowsByUserID(_ context.Context, userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	before := len(f.edges)
	f.edges = f.filter(func(e models.Follow) bool {
		return e.FollowerID != userID && e.FolloweeID != userID
	})
	return int64(before - len(f.edges)), nil
}

// Freets is an in-memory repositories.FreetRepository
type Freets struct {
	mu     sync.Mutex
	clock  *clock
	freets []models.Freet
	Err    error
}

var _ repositories.FreetRepository = (*Freets)(nil)

func (f *Freets) newestFirst(keep func(models.Freet) bool) []models.Freet {
	out := []models.Freet{}
	for _, fr := range f.freets {
		if keep(fr) {
			out = append(out, fr)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateCreated.After(out[j].DateCreated) })
	return out
}

func (f *Freets) index(id primitive.ObjectID) int {
	for i, fr := range f.freets {
		if fr.ID == id {
			return i
		}
	}
	return -1
}

func (f *Freets) CreateFreet(_ context.Context, freet *models.Freet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	freet.ID = primitive.NewObjectID()
	freet.DateCreated = f.clock.now()
	freet.DateModified = freet.DateCreated
	if freet.Tags == nil {
		freet.Tags = []primitive.ObjectID{}
	}
	f.freets = append(f.freets, *freet)
	return nil
}

func (f *Freets) GetFreetByID(_ context.Context, id string) (*models.Freet, error) {
	objID, err := parseID("freet", id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if i := f.index(objID); i >= 0 {
		freet := f.freets[i]
		return &freet, nil
	}
	return nil, notFound("freet")
}

func (f *Freets) GetAllFreets(_ context.Context) ([]models.Freet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.newestFirst(func(models.Freet) bool { return true }), nil
}

func (f *Freets) GetFreetsByAuthorID(_ context.Context, authorID uint) ([]models.Freet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.newestFirst(func(fr models.Freet) bool { return fr.AuthorID == authorID }), nil
}

func (f *Freets) GetFreetsByAuthorIDs(_ context.Context, authorIDs []uint) ([]models.Freet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	set := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		set[id] = true
	}
	return f.newestFirst(func(fr models.Freet) bool { return set[fr.AuthorID] }), nil
}

func (f *Freets) GetFreetsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Freet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return f.newestFirst(func(fr models.Freet) bool { return set[fr.ID] }), nil
}

func (f *Freets) FindFreetIDsByContent(_ context.Context, keyword string) ([]primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	ids := []primitive.ObjectID{}
	for _, fr := range f.freets {
		if strings.Contains(fr.Content, keyword) {
			ids = append(ids, fr.ID)
		}
	}
	return ids, nil
}

func (f *Freets) UpdateFreetContent(_ context.Context, id string, content string) (*models.Freet, error) {
	objID, err := parseID("freet", id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	i := f.index(objID)
	if i < 0 {
		return nil, notFound("freet")
	}
	f.freets[i].Content = content
	f.freets[i].DateModified = f.clock.now()
	freet := f.freets[i]
	return &freet, nil
}

func (f *Freets) DeleteFreet(_ context.Context, id string) error {
	objID, err := parseID("freet", id)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	i := f.index(objID)
	if i < 0 {
		return notFound("freet")
	}
	f.freets = append(f.freets[:i], f.freets[i+1:]...)
	return nil
}

func (f *Freets) AddTag(_ context.Context, freetID, tagID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	i := f.index(freetID)
	if i < 0 {
		return notFound("freet")
	}
	for _, t := range f.freets[i].Tags {
		if t == tagID {
			return nil
		}
	}
	f.freets[i].Tags = append(f.freets[i].Tags, tagID)
	return nil
}

func (f *Freets) RemoveTag(_ context.Context, freetID, tagID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	i := f.index(freetID)
	if i < 0 {
		return false, nil
	}
	tags := f.freets[i].Tags[:0:0]
	for _, t := range f.freets[i].Tags {
		if t != tagID {
			tags = append(tags, t)
		}
	}
	removed := len(tags) < len(f.freets[i].Tags)
	f.freets[i].Tags = tags
	return removed, nil
}

// Profiles is an in-memory repositories.ProfileRepository
type Profiles struct {
	mu       sync.Mutex
	clock    *clock
	profiles []models.Profile
	Err      error
}

var _ repositories.ProfileRepository = (*Profiles)(nil)

func nameMatches(stored, query string) bool {
	re := regexp.MustCompile("(?i)^" + regexp.QuoteMeta(strings.TrimSpace(query)) + "$")
	return re.MatchString(stored)
}

func (p *Profiles) CreateProfile(_ context.Context, profile *models.Profile) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	profile.ID = primitive.NewObjectID()
	profile.DateCreated = p.clock.now()
	p.profiles = append(p.profiles, *profile)
	return nil
}

func (p *Profiles) GetAllProfiles(_ context.Context) ([]models.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	out := append([]models.Profile{}, p.profiles...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateCreated.After(out[j].DateCreated) })
	return out, nil
}

func (p *Profiles) GetProfilesByUserID(_ context.Context, userID uint) ([]models.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	out := []models.Profile{}
	for _, pr := range p.profiles {
		if pr.UserID == userID {
			out = append(out, pr)
		}
	}
	return out, nil
}

func (p *Profiles) GetProfileByID(_ context.Context, id string) (*models.Profile, error) {
	objID, err := parseID("profile", id)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	for _, pr := range p.profiles {
		if pr.ID == objID {
			return &pr, nil
		}
	}
	return nil, notFound("profile")
}

func (p *Profiles) GetProfileByName(_ context.Context, profileName string) (*models.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	for _, pr := range p.profiles {
		if nameMatches(pr.ProfileName, profileName) {
			return &pr, nil
		}
	}
	return nil, notFound("profile")
}

func (p *Profiles) GetProfileByNameAndUserID(_ context.Context, profileName string, userID uint) (*models.Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	for _, pr := range p.profiles {
		if pr.UserID == userID && nameMatches(pr.ProfileName, profileName) {
			return &pr, nil
		}
	}
	return nil, notFound("profile")
}

func (p *Profiles) DeleteProfile(_ context.Context, id primitive.ObjectID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	for i, pr := range p.profiles {
		if pr.ID == id {
			p.profiles = append(p.profiles[:i], p.profiles[i+1:]...)
			return nil
		}
	}
	return notFound("profile")
}

// Bookmarks is an in-memory repositories.BookmarkRepository
type Bookmarks struct {
	mu        sync.Mutex
	clock     *clock
	bookmarks []models.Bookmark
	Err       error
}

var _ repositories.BookmarkRepository = (*Bookmarks)(nil)

func (b *Bookmarks) recentlyAddedFirst(keep func(models.Bookmark) bool) []models.Bookmark {
	out := []models.Bookmark{}
	for _, bm := range b.bookmarks {
		if keep(bm) {
			out = append(out, bm)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateAdded.After(out[j].DateAdded) })
	return out
}

func (b *Bookmarks) deleteWhere(match func(models.Bookmark) bool) int64 {
	kept := b.bookmarks[:0:0]
	for _, bm := range b.bookmarks {
		if !match(bm) {
			kept = append(kept, bm)
		}
	}
	n := int64(len(b.bookmarks) - len(kept))
	b.bookmarks = kept
	return n
}

func (b *Bookmarks) CreateBookmark(_ context.Context, bookmark *models.Bookmark) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	bookmark.ID = primitive.NewObjectID()
	bookmark.DateAdded = b.clock.now()
	b.bookmarks = append(b.bookmarks, *bookmark)
	return nil
}

func (b *Bookmarks) GetBookmarkByID(_ context.Context, id string) (*models.Bookmark, error) {
	objID, err := parseID("bookmark", id)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	for _, bm := range b.bookmarks {
		if bm.ID == objID {
			return &bm, nil
		}
	}
	return nil, notFound("bookmark")
}

func (b *Bookmarks) GetAllBookmarks(_ context.Context) ([]models.Bookmark, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	return b.recentlyAddedFirst(func(models.Bookmark) bool { return true }), nil
}

func (b *Bookmarks) GetBookmarksByProfileID(_ context.Context, profileID primitive.ObjectID) ([]models.Bookmark, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	return b.recentlyAddedFirst(func(bm models.Bookmark) bool { return bm.ProfileID == profileID }), nil
}

func (b *Bookmarks) GetBookmarksByProfileIDAndFreetIDs(_ context.Context, profileID primitive.ObjectID, freetIDs []primitive.ObjectID) ([]models.Bookmark, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	set := make(map[primitive.ObjectID]bool, len(freetIDs))
	for _, id := range freetIDs {
		set[id] = true
	}
	return b.recentlyAddedFirst(func(bm models.Bookmark) bool {
		return bm.ProfileID == profileID && set[bm.FreetID]
	}), nil
}

func (b *Bookmarks) DeleteBookmark(_ context.Context, id primitive.ObjectID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	if b.deleteWhere(func(bm models.Bookmark) bool { return bm.ID == id }) == 0 {
		return notFound("bookmark")
	}
	return nil
}

func (b *Bookmarks) DeleteBookmarksByProfileID(_ context.Context, profileID primitive.ObjectID) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return 0, b.Err
	}
	return b.deleteWhere(func(bm models.Bookmark) bool { return bm.ProfileID == profileID }), nil
}

func (b *Bookmarks) DeleteBookmarksByFreetID(_ context.Context, freetID primitive.ObjectID) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return 0, b.Err
	}
	return b.deleteWhere(func(bm models.Bookmark) bool { return bm.FreetID == freetID }), nil
}

// Tags is an in-memory repositories.TagRepository
type Tags struct {
	mu   sync.Mutex
	tags []models.Tag
	Err  error
}

var _ repositories.TagRepository = (*Tags)(nil)

func (t *Tags) index(id primitive.ObjectID) int {
	for i, tag := range t.tags {
		if tag.ID == id {
			return i
		}
	}
	return -1
}

func sortedByContent(tags []models.Tag) []models.Tag {
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].Content < tags[j].Content })
	return tags
}

func (t *Tags) CreateTag(_ context.Context, tag *models.Tag) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	tag.ID = primitive.NewObjectID()
	if tag.Tagged == nil {
		tag.Tagged = []primitive.ObjectID{}
	}
	t.tags = append(t.tags, *tag)
	return nil
}

func (t *Tags) GetTagByID(_ context.Context, id string) (*models.Tag, error) {
	objID, err := parseID("tag", id)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	if i := t.index(objID); i >= 0 {
		tag := t.tags[i]
		return &tag, nil
	}
	return nil, notFound("tag")
}

func (t *Tags) GetTagByContent(_ context.Context, content string) (*models.Tag, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	for _, tag := range t.tags {
		if tag.Content == content {
			return &tag, nil
		}
	}
	return nil, notFound("tag")
}

func (t *Tags) GetTagsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Tag, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	out := []models.Tag{}
	for _, id := range ids {
		if i := t.index(id); i >= 0 {
			out = append(out, t.tags[i])
		}
	}
	return sortedByContent(out), nil
}

func (t *Tags) GetAllTags(_ context.Context) ([]models.Tag, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return nil, t.Err
	}
	return sortedByContent(append([]models.Tag{}, t.tags...)), nil
}

func (t *Tags) AddTagged(_ context.Context, tagID, freetID primitive.ObjectID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	i := t.index(tagID)
	if i < 0 {
		return notFound("tag")
	}
	for _, id := range t.tags[i].Tagged {
		if id == freetID {
			return nil
		}
	}
	t.tags[i].Tagged = append(t.tags[i].Tagged, freetID)
	return nil
}

func (t *Tags) RemoveTagged(_ context.Context, tagID, freetID primitive.ObjectID) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return false, t.Err
	}
	i := t.index(tagID)
	if i < 0 {
		return false, nil
	}
	return t.pull(i, freetID), nil
}

func (t *Tags) RemoveFreetFromAllTags(_ context.Context, freetID primitive.ObjectID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	for i := range t.tags {
		t.pull(i, freetID)
	}
	return nil
}

func (t *Tags) pull(i int, freetID primitive.ObjectID) bool {
	kept := t.tags[i].Tagged[:0:0]
	for _, id := range t.tags[i].Tagged {
		if id != freetID {
			kept = append(kept, id)
		}
	}
	removed := len(kept) < len(t.tags[i].Tagged)
	t.tags[i].Tagged = kept
	return removed
}
