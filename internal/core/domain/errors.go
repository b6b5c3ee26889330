package domain

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrSessionExpired = errors.New("session expired")
var ErrForbidden = errors.New("access forbidden")
var ErrCoursePurchased = errors.New("course already purchased")
var ErrBackendUnavailable = errors.New("backend unavailable")
