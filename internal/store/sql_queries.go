// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-api-gate/models"
)

const usersTable = "users"

// userColumns is the canonical column order used by every user query and
// by [scanUser].
var userColumns = []string{"user_id", "email", "name", "password_hash", "password_salt", "created_at"}

func (r *userRepository) selectUsersQuery() sq.SelectBuilder {
	return r.db.builder.
		Select(userColumns...).
		From(usersTable).
		OrderBy("user_id")
}

func (r *userRepository) selectUserByIDQuery(userID int64) sq.SelectBuilder {
	return r.db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"user_id": userID})
}

func (r *userRepository) selectUserByEmailQuery(email string) sq.SelectBuilder {
	return r.db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"email": email})
}

func (r *userRepository) insertUserQuery(user models.User) sq.InsertBuilder {
	return r.db.builder.
		Insert(usersTable).
		Columns("email", "name", "password_hash", "password_salt").
		Values(user.Email, user.Name, user.PasswordHash, user.PasswordSalt).
		Suffix("RETURNING user_id, email, name, password_hash, password_salt, created_at")
}

func (r *userRepository) updateUserQuery(user models.User) sq.UpdateBuilder {
	b := r.db.builder.
		Update(usersTable).
		Set("email", user.Email).
		Set("name", user.Name)

	// credentials are rewritten only when the caller supplied a new password
	if user.PasswordHash != "" {
		b = b.Set("password_hash", user.PasswordHash).
			Set("password_salt", user.PasswordSalt)
	}

	return b.
		Where(sq.Eq{"user_id": user.UserID}).
		Suffix("RETURNING user_id, email, name, password_hash, password_salt, created_at")
}

func (r *userRepository) deleteUserQuery(userID int64) sq.DeleteBuilder {
	return r.db.builder.
		Delete(usersTable).
		Where(sq.Eq{"user_id": userID})
}
