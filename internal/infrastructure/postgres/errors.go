package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/campus-social/pkg/apperror"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// translate maps driver errors onto the application taxonomy. resource names
// the row the statement was about.
func translate(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound(resource)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return apperror.Conflict(resource+" already exists", err)
	case codeForeignKeyViolation:
		return &apperror.Error{Kind: apperror.KindNotFound, Message: referencedResource(pgErr, resource) + " not found", Err: err}
	case codeInvalidText:
		// malformed uuid in a lookup
		return &apperror.Error{Kind: apperror.KindNotFound, Message: resource + " not found", Err: err}
	case codeCheckViolation:
		return &apperror.Error{Kind: apperror.KindValidation, Message: "invalid " + resource, Err: err}
	}
	return err
}

// referencedResource guesses the missing parent from the violated constraint,
// e.g. likes_post_id_fkey -> post.
func referencedResource(pgErr *pgconn.PgError, fallback string) string {
	name := pgErr.ConstraintName
	switch {
	case strings.Contains(name, "post_id"):
		return "post"
	case strings.Contains(name, "user_id"), strings.Contains(name, "author_id"),
		strings.Contains(name, "requester_id"), strings.Contains(name, "target_id"):
		return "user"
	}
	return fallback
}

func constraintOf(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
