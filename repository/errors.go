package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicate is returned when a unique column (users.email,
// blog_posts.title) already holds the value being written.
var ErrDuplicate = errors.New("duplicate value")

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
