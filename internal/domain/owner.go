// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrOwnerNotFound indicates that the owner is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrUsernameAlreadyExists indicates that the owner with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrWrongPassword indicates the wrong password for the given owner.
	ErrWrongPassword = errors.New("wrong password")
)

// Owner holds account owner data.
type Owner struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateOwnerParams is the input data to register an owner.
type CreateOwnerParams struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	Name           string `json:"name"`
}

// OwnerWithoutPassword is Owner data excluding credentials.
type OwnerWithoutPassword struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
