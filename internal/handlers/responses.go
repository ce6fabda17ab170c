package handlers

import (
	"fmt"
	"time"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// formatDate renders t like "October 1st 2022, 3:04:05 pm"
func formatDate(t time.Time) string {
	return fmt.Sprintf("%s %s %s", t.Format("January"), ordinal(t.Day()), t.Format("2006, 3:04:05 pm"))
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}

type FreetResponse struct {
	ID           string   `json:"_id"`
	Author       string   `json:"author"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	DateCreated  string   `json:"dateCreated"`
	DateModified string   `json:"dateModified"`
}

func newFreetResponse(f models.FreetWithAuthor) FreetResponse {
	return FreetResponse{
		ID:           f.ID.Hex(),
		Author:       f.Author.Username,
		Content:      f.Content,
		Tags:         hexIDs(f.Tags),
		DateCreated:  formatDate(f.DateCreated),
		DateModified: formatDate(f.DateModified),
	}
}

func newFreetResponses(freets []models.FreetWithAuthor) []FreetResponse {
	out := make([]FreetResponse, len(freets))
	for i, f := range freets {
		out[i] = newFreetResponse(f)
	}
	return out
}

// followeesOf lists the users on the receiving end of each edge
func followeesOf(edges []models.PopulatedFollow) []models.UserCompact {
	out := make([]models.UserCompact, len(edges))
	for i := range edges {
		out[i] = edges[i].Followee.ToCompact()
	}
	return out
}

// followersOf lists the users on the following end of each edge
func followersOf(edges []models.PopulatedFollow) []models.UserCompact {
	out := make([]models.UserCompact, len(edges))
	for i := range edges {
		out[i] = edges[i].Follower.ToCompact()
	}
	return out
}

type ProfileResponse struct {
	ID          string `json:"_id"`
	ProfileName string `json:"profileName"`
	Username    string `json:"username"`
}

func newProfileResponses(profiles []models.PopulatedProfile) []ProfileResponse {
	out := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		out[i] = ProfileResponse{ID: p.ID.Hex(), ProfileName: p.ProfileName, Username: p.User.Username}
	}
	return out
}

type BookmarkResponse struct {
	ID          string `json:"_id"`
	ProfileName string `json:"profileName"`
	FreetID     string `json:"freetId"`
	Freet       string `json:"freet"`
	DateAdded   string `json:"dateAdded"`
}

func newBookmarkResponse(b models.PopulatedBookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID.Hex(),
		ProfileName: b.Profile.ProfileName,
		FreetID:     b.Freet.ID.Hex(),
		Freet:       b.Freet.Content,
		DateAdded:   formatDate(b.DateAdded),
	}
}

func newBookmarkResponses(bookmarks []models.PopulatedBookmark) []BookmarkResponse {
	out := make([]BookmarkResponse, len(bookmarks))
	for i, b := range bookmarks {
		out[i] = newBookmarkResponse(b)
	}
	return out
}

type TagResponse struct {
	ID      string   `json:"_id"`
	Content string   `json:"content"`
	Tagged  []string `json:"tagged"`
}

func newTagResponse(t models.Tag) TagResponse {
	return TagResponse{ID: t.ID.Hex(), Content: t.Content, Tagged: hexIDs(t.Tagged)}
}

func newTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = newTagResponse(t)
	}
	return out
}

// ok writes the success envelope shared by every endpoint
func ok(c echo.Context, status int, message string, data interface{}) error {
	body := echo.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(status, body)
}
