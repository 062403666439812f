package client

import "errors"

// ErrGameNotFound indicates IGDB has no game with the requested ID
var ErrGameNotFound = errors.New("game not found")

// ErrInvalidToken indicates the identity provider rejected the presented token
var ErrInvalidToken = errors.New("invalid identity token")
