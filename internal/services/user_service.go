package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/anonto42/fritter/backend/internal/models"
	"github.com/anonto42/fritter/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

var nonWordChars = regexp.MustCompile(`\W+`)

// UserService manages accounts. Deleting an account removes everything the
// user owns, in a fixed order, without rollback.
type UserService struct {
	users    repositories.UserRepository
	follows  repositories.FollowRepository
	freets   repositories.FreetRepository
	resolver *UserResolver
	profile  *ProfileService
	freet    *FreetService
}

func NewUserService(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	freets repositories.FreetRepository,
	resolver *UserResolver,
	profileService *ProfileService,
	freetService *FreetService,
) *UserService {
	return &UserService{
		users:    users,
		follows:  follows,
		freets:   freets,
		resolver: resolver,
		profile:  profileService,
		freet:    freetService,
	}
}

// SignUp creates a local account with a bcrypt-hashed password
func (s *UserService) SignUp(ctx context.Context, username, password string) (*models.User, error) {
	if err := s.ensureUsernameFree(ctx, username); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Username: username, Password: string(hashed)}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SignIn checks a username and password. Both failure modes return
// ErrInvalidCredentials.
func (s *UserService) SignIn(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// FirebaseUser returns the account linked to firebaseUID, creating one on
// first login. The username is derived from the email's local part.
func (s *UserService) FirebaseUser(ctx context.Context, firebaseUID, email string) (*models.User, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	username, err := s.availableUsername(ctx, usernameFromEmail(email, firebaseUID))
	if err != nil {
		return nil, err
	}
	uid := firebaseUID
	user = &models.User{Username: username, FirebaseUID: &uid}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create firebase user: %w", err)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.resolver.ResolveID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.resolver.ResolveUsername(ctx, username)
}

// Update changes the username and/or password of userID. Empty fields are left alone.
func (s *UserService) Update(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.resolver.ResolveID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Username != "" && req.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, req.Username); err != nil {
			return nil, err
		}
		user.Username = req.Username
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %d: %w", userID, err)
	}
	return user, nil
}

// DeleteAccount removes, in order: every profile (and its bookmarks), every
// freet (with its bookmarks and tag references), every follow edge touching
// the user, then the user. The first failing step aborts the rest.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.resolver.ResolveID(ctx, userID); err != nil {
		return err
	}
	if err := s.profile.DeleteAllOf(ctx, userID); err != nil {
		return fmt.Errorf("delete profiles of user %d: %w", userID, err)
	}

	freets, err := s.freets.GetFreetsByAuthorID(ctx, userID)
	if err != nil {
		return fmt.Errorf("list freets of user %d: %w", userID, err)
	}
	for i := range freets {
		if err := s.freet.deleteCascade(ctx, &freets[i]); err != nil {
			return fmt.Errorf("delete freets of user %d: %w", userID, err)
		}
	}

	if _, err := s.follows.DeleteFollowsByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return notFoundAs(err, ErrUserNotFound)
	}
	return nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string) error {
	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return fmt.Errorf("%q: %w", username, ErrUsernameTaken)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return nil
}

// availableUsername appends a counter to base until it is unused
func (s *UserService) availableUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		err := s.ensureUsernameFree(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, ErrUsernameTaken) {
			return "", err
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

func usernameFromEmail(email, fallback string) string {
	local, _, _ := strings.Cut(email, "@")
	name := nonWordChars.ReplaceAllString(local, "_")
	if name == "" || name == "_" {
		name = nonWordChars.ReplaceAllString(fallback, "_")
	}
	if len(name) > 40 {
		name = name[:40]
	}
	return name
}
