// Package auth provides a high-level API for persisting and retrieving portal passwords from the system keyring.
package auth

import (
	"errors"

	"github.com/echo360-dl/echo360/constant"
	"github.com/zalando/go-keyring"
)

// ErrNotFound is returned when no password is stored for a username.
var ErrNotFound = keyring.ErrNotFound

// SetPassword persists the portal password of username to the system keyring.
func SetPassword(username, password string) error {
	if username == "" {
		return errors.New("username is empty")
	}
	return keyring.Set(constant.App, username, password)
}

// GetPassword retrieves the portal password of username from the system keyring.
func GetPassword(username string) (string, error) {
	return keyring.Get(constant.App, username)
}

// DeletePassword removes the portal password of username from the system keyring.
func DeletePassword(username string) error {
	return keyring.Delete(constant.App, username)
}
