package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	errUserNotFound      = apperr.NotFound("user_not_found", "User not found")
	errCommunityNotFound = apperr.NotFound("community_not_found", "Subreddit not found")
	errPostNotFound      = apperr.NotFound("post_not_found", "Post not found")
	errCommentNotFound   = apperr.NotFound("comment_not_found", "Comment not found")
	errParentNotFound    = apperr.NotFound("parent_not_found", "Parent comment not found")
	errUsernameTaken     = apperr.Conflict("username_taken", "Username already exists")
	errEmailTaken        = apperr.Conflict("email_taken", "Email already exists")
	errCommunityExists   = apperr.Conflict("subreddit_exists", "Subreddit already exists")
)

// translate maps driver errors onto the apperr taxonomy. notFound is
// returned for gorm.ErrRecordNotFound.
func translate(op string, err error, notFound *apperr.Error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return conflictFor(pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return missingReference(pgErr.ConstraintName)
		}
	}
	return apperr.StoreFailure(op, err)
}

func conflictFor(constraint string) error {
	switch {
	case strings.Contains(constraint, "username"):
		return errUsernameTaken
	case strings.Contains(constraint, "email"):
		return errEmailTaken
	case strings.Contains(constraint, "communities"):
		return errCommunityExists
	}
	return apperr.Conflict("conflict", "Resource already exists")
}

// missingReference reads the relation from gorm's fk_<table>_<relation> name.
func missingReference(constraint string) error {
	switch constraint[strings.LastIndex(constraint, "_")+1:] {
	case "user":
		return errUserNotFound
	case "community":
		return errCommunityNotFound
	case "post":
		return errPostNotFound
	case "parent":
		return errParentNotFound
	case "comment":
		return errCommentNotFound
	}
	return apperr.NotFound("reference_not_found", "Referenced resource not found")
}
